package socio

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Config controls the dimensions, seeding and rule of an Automaton.
type Config struct {
	Rows int
	Cols int

	Seed int64
	Rule Rule

	// Workers > 1 splits each step's rows across that many goroutines.
	Workers int

	Logger *slog.Logger
}

// DefaultConfig returns the standard 40x40 configuration.
func DefaultConfig() Config {
	return Config{
		Rows:    40,
		Cols:    40,
		Seed:    42,
		Rule:    RuleInfrastructure,
		Workers: 1,
	}
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Missing keys keep their defaults; a present key with an
// unparseable or non-positive value is an error.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	var err error
	if v, ok := cfg["rows"]; ok {
		if c.Rows, err = positiveInt("rows", v); err != nil {
			return Config{}, err
		}
	}
	if v, ok := cfg["cols"]; ok {
		if c.Cols, err = positiveInt("cols", v); err != nil {
			return Config{}, err
		}
	}
	if v, ok := cfg["seed"]; ok {
		if c.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("seed: %w", err)
		}
	}
	if v, ok := cfg["rule"]; ok {
		if c.Rule, err = ParseRule(v); err != nil {
			return Config{}, err
		}
	}
	if v, ok := cfg["workers"]; ok {
		if c.Workers, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("workers: %w", err)
		}
		if c.Workers < 1 {
			return Config{}, fmt.Errorf("workers must be positive, got %d", c.Workers)
		}
	}
	return c, nil
}

func positiveInt(key, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidDimensions, key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s=%d", ErrInvalidDimensions, key, n)
	}
	return n, nil
}
