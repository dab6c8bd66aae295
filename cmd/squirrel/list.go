package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/squirrel-ui/squirrel/pkg/component"
)

func listCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the components discovered in the components source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			names, err := component.Scan(cmd.Context(), cfg.Components.Source(), cfg.Components.ScanOptions())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
