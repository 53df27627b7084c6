package main

import (
	"encoding/json"
	"fmt"

	"socio-ca/internal/sims/socio"

	"github.com/spf13/cobra"
)

func newParamsCmd() *cobra.Command {
	var grid gridFlags
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the parameter snapshot of a freshly seeded grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			cfg, _, err := grid.load(commandLogger(cmd))
			if err != nil {
				return err
			}
			a, err := socio.New(cfg)
			if err != nil {
				return err
			}
			snap := a.Parameters()
			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(snap)
			}
			for _, group := range snap.Groups {
				fmt.Fprintf(out, "%s:\n", group.Name)
				for _, p := range group.Params {
					fmt.Fprintf(out, "  %-14s %s\n", p.Key+":", p.Value)
				}
			}
			return nil
		},
	}
	grid.bind(cmd)
	return cmd
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the transition rules",
		Run: func(cmd *cobra.Command, args []string) {
			for _, r := range socio.Rules() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s\n", r.String(), r.Label())
			}
		},
	}
}
