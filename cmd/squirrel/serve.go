package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/squirrel-ui/squirrel"
	"github.com/squirrel-ui/squirrel/internal/preview"
	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/telemetry"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the component preview server",
		Long: `Start an HTTP server for inspecting components.

Every component is rendered on request into a fresh document. Opening a
component page starts a websocket session that drags the component on
the server and streams the resulting transform back.

Examples:
  squirrel serve
  squirrel serve --port=8080
  squirrel serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), g, port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from squirrel.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from squirrel.json)")

	return cmd
}

func runServe(ctx context.Context, g *globals, port int, host string) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Preview.Port = port
	}
	if host != "" {
		cfg.Preview.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(telemetry.WithRegistry(reg))
	engine := squirrel.New(
		squirrel.WithMetrics(metrics),
		squirrel.WithLogger(slog.Default()),
		squirrel.WithFactoryOptions(cfg.FactoryOptions()...),
	)

	templates := map[string]atome.Config{}
	if path := cfg.TemplatesPath(); path != "" {
		f := engine.Factory()
		names, err := f.LoadTemplateFile(path)
		if err != nil {
			return err
		}
		for _, name := range names {
			templates[name], _ = f.Template(name)
		}
	}

	srv := preview.New(preview.Options{
		Components:     engine.Components,
		Particles:      engine.Particles,
		FactoryOptions: append(cfg.FactoryOptions(), atome.WithMetrics(metrics)),
		Templates:      templates,
		Cursor:         cfg.Drag.Cursor,
		Metrics:        metrics,
		Gatherer:       reg,
		Registerer:     reg,
		Logger:         slog.Default(),
	})

	httpServer := &http.Server{
		Addr:              cfg.PreviewAddress(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	printBanner()
	success("Preview server on %s", cfg.PreviewURL())
	info("%d components, %d templates", len(engine.Components.Names()), len(templates))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview server: %w", err)
	case <-ctx.Done():
	}

	fmt.Println("\n  Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		warn("shutdown: %v", err)
	}
	return nil
}
