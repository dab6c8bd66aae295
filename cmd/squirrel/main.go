package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/squirrel-ui/squirrel/internal/config"
	"github.com/squirrel-ui/squirrel/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐ ┬ ┬┬┬─┐┬─┐┌─┐┬
  └─┐│─┼┐│ │││├┬┘├┬┘├┤ │
  └─┘└─┘└└─┘┴┴└─┴└─└─┘┴─┘
`

// globals holds the persistent flags.
type globals struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:   "squirrel",
		Short: "Declarative UI composition engine",
		Long: `squirrel turns configuration maps into live UI nodes.

Commands work on the project described by squirrel.json:

  • sync keeps the component declaration in step with the builders
  • list shows discovered components
  • render prints a component as HTML
  • serve starts the interactive preview server`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to squirrel.json (default: nearest in parent directories)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		syncCmd(g),
		listCmd(g),
		renderCmd(g),
		serveCmd(g),
		versionCmd(),
	)
	return rootCmd
}

func (g *globals) setupLogging() error {
	if g.logLevel == "" {
		return nil
	}
	level, err := config.LogConfig{Level: g.logLevel}.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads the configured file, or the nearest squirrel.json.
// Without one the defaults apply relative to the working directory.
func (g *globals) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFile(g.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
		if errors.IsCode(err, errors.CodeConfigNotFound) {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g.logLevel == "" {
		level, _ := cfg.Log.SlogLevel()
		var handler slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		if cfg.Log.Format == "json" {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		}
		slog.SetDefault(slog.New(handler))
	}
	return cfg, nil
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
