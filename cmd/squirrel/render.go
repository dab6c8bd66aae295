package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/squirrel-ui/squirrel"
	"github.com/squirrel-ui/squirrel/internal/errors"
	"github.com/squirrel-ui/squirrel/pkg/render"
)

func renderCmd(g *globals) *cobra.Command {
	var (
		pretty   bool
		props    string
		template bool
		page     bool
	)

	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Build a component and print its HTML",
		Long: `Build a built-in component (or, with --template, a template from the
configured templates file) into a fresh document and print the HTML.

Examples:
  squirrel render button
  squirrel render slider --props '{"value": 30}' --pretty
  squirrel render card --template`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			var p map[string]any
			if props != "" {
				if err := json.Unmarshal([]byte(props), &p); err != nil {
					return errors.New(errors.CodeInvalidConfig).
						WithDetail("--props must be a JSON object: " + err.Error())
				}
			}

			engine := squirrel.New(
				squirrel.WithLogger(slog.Default()),
				squirrel.WithFactoryOptions(cfg.FactoryOptions()...),
			)
			f := engine.Factory()
			if path := cfg.TemplatesPath(); path != "" {
				if _, err := f.LoadTemplateFile(path); err != nil {
					return err
				}
			}

			var a *squirrel.Atome
			if template {
				if _, ok := f.Template(args[0]); !ok {
					return errors.New(errors.CodeResolutionMiss).
						WithDetail("no template named " + args[0])
				}
				a = f.CreateFrom(args[0], p)
			} else {
				a, err = engine.Build(cmd.Context(), args[0], p)
				if err != nil {
					return err
				}
			}

			r := render.New(render.Options{Pretty: pretty})
			if page {
				return r.RenderPage(cmd.OutOrStdout(), render.PageData{Title: args[0], Body: a.Node()})
			}
			if err := r.RenderToWriter(cmd.OutOrStdout(), a.Node()); err != nil {
				return err
			}
			if !pretty {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the output")
	cmd.Flags().StringVar(&props, "props", "", "Builder props as a JSON object")
	cmd.Flags().BoolVarP(&template, "template", "t", false, "Render a template instead of a component")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the output in a complete HTML document")

	return cmd
}
