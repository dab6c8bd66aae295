package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/squirrel-ui/squirrel/internal/errors"
	"github.com/squirrel-ui/squirrel/internal/watch"
	"github.com/squirrel-ui/squirrel/pkg/component"
)

func syncCmd(g *globals) *cobra.Command {
	var check, watchDir bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Rewrite the component declaration from the builders on disk",
		Long: `Scan the components source and rewrite the declaration list.

The source is components.dir, or the S3 bucket in components.s3 when
set. The declaration is the []string variable components.declarationVar
inside components.declarationFile. Running sync twice leaves the file
byte-identical.

With --watch, sync keeps running and rewrites the declaration whenever
a file in components.dir is created, modified or removed.

Examples:
  squirrel sync
  squirrel sync --check
  squirrel sync --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runSync(cmd.Context(), g, check); err != nil {
				return err
			}
			if watchDir && !check {
				return watchSync(cmd.Context(), g)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Fail if the declaration is out of date instead of rewriting it")
	cmd.Flags().BoolVarP(&watchDir, "watch", "w", false, "Keep running and sync on every change")

	return cmd
}

func runSync(ctx context.Context, g *globals, check bool) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	cc := cfg.Components
	names, err := component.Scan(ctx, cc.Source(), cc.ScanOptions())
	if err != nil {
		return err
	}
	decl := cc.Declaration(slog.Default())
	path := cc.DeclarationPath()

	if check {
		content, err := os.ReadFile(path)
		if err != nil {
			return errors.New(errors.CodeRegistryWriteFailure).
				WithDetail("cannot read " + path).
				Wrap(err)
		}
		current, err := component.ReadDeclaration(content, decl)
		if err != nil {
			return err
		}
		if diff := cmp.Diff(current, names); diff != "" {
			return fmt.Errorf("%s is out of date (-declared +discovered):\n%s", path, diff)
		}
		success("%s lists %d components", path, len(names))
		return nil
	}

	changed, err := component.ReconcileFile(ctx, path, names, decl)
	if err != nil {
		return err
	}
	if changed {
		success("Updated %s with %d components", path, len(names))
	} else {
		info("%s already lists %d components", path, len(names))
	}
	return nil
}

func watchSync(ctx context.Context, g *globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	cc := cfg.Components
	if cc.S3.Bucket != "" {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail("--watch needs a local components.dir; components.s3 is set")
	}

	if !watch.Exists(cc.Path()) {
		return errors.New(errors.CodeSourceListing).
			WithDetail(cc.Path() + " is not a directory")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ignore := append([]string{filepath.Base(cc.DeclarationPath())}, watch.DefaultIgnore...)
	w := watch.New(watch.Config{Dirs: []string{cc.Path()}, Ignore: ignore, Logger: slog.Default()})
	info("Watching %s", cc.Path())

	err = w.Run(ctx, func(changes []watch.Change) {
		for _, c := range changes {
			slog.Debug("component source changed", "path", c.Path, "op", c.Op)
		}
		if err := runSync(ctx, g, false); err != nil {
			warn("sync failed: %v", err)
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}
