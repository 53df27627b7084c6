package main

import (
	"fmt"
	"log/slog"
	"os"

	"socio-ca/internal/logging"
	"socio-ca/internal/sims/socio"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "socio-sim",
		Short: "Headless socioeconomic cellular automaton",
		Long: `socio-sim evolves a grid of neighbourhoods under the infrastructure,
education and redistribution rules and reports how the low / medium /
high status distribution changes.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newRunCmd(),
		newSweepCmd(),
		newParamsCmd(),
		newRulesCmd(),
	)
	return rootCmd
}

func commandLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.NewLogger(level, cmd.ErrOrStderr())
}

// gridFlags are the automaton settings shared by run, sweep and params.
type gridFlags struct {
	rows     int
	cols     int
	seed     int64
	rule     string
	workers  int
	scenario string
}

func (g *gridFlags) bind(cmd *cobra.Command) {
	def := socio.DefaultConfig()
	cmd.Flags().IntVar(&g.rows, "rows", def.Rows, "Grid rows")
	cmd.Flags().IntVar(&g.cols, "cols", def.Cols, "Grid columns")
	cmd.Flags().Int64Var(&g.seed, "seed", def.Seed, "Seed for the initial grid")
	cmd.Flags().StringVar(&g.rule, "rule", def.Rule.String(), "Transition rule (infrastructure, education, redistribution)")
	cmd.Flags().IntVar(&g.workers, "workers", def.Workers, "Goroutines per step (1 = sequential pass)")
	cmd.Flags().StringVar(&g.scenario, "scenario", "", "YAML scenario file (overrides grid flags and rule)")
}

// load resolves the configuration and the optional scenario program.
func (g *gridFlags) load(logger *slog.Logger) (socio.Config, *socio.Scenario, error) {
	if g.scenario != "" {
		sc, err := socio.LoadScenario(g.scenario)
		if err != nil {
			return socio.Config{}, nil, err
		}
		cfg, err := sc.Config(logger)
		if err != nil {
			return socio.Config{}, nil, err
		}
		return cfg, &sc, nil
	}
	rule, err := socio.ParseRule(g.rule)
	if err != nil {
		return socio.Config{}, nil, err
	}
	cfg := socio.DefaultConfig()
	cfg.Rows = g.rows
	cfg.Cols = g.cols
	cfg.Seed = g.seed
	cfg.Rule = rule
	cfg.Workers = g.workers
	cfg.Logger = logger
	return cfg, nil, nil
}
