package app

import (
	"flag"
	"testing"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("socio-ca", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-rows", "12", "-cols", "20", "-rule", "education", "-seed", "9", "-sps", "2"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Rows != 12 || cfg.Cols != 20 || cfg.Rule != "education" || cfg.Seed != 9 || cfg.SPS != 2 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Scale != 15 || cfg.Sim != "socio" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	m := cfg.SimConfig()
	if m["rows"] != "12" || m["cols"] != "20" || m["rule"] != "education" || m["seed"] != "9" {
		t.Fatalf("unexpected sim config %v", m)
	}
}
