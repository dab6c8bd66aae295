// Package component discovers, registers and resolves named component
// builders.
//
// A builder turns props into an atome.Config. Builders are registered by
// name, either directly or behind a lazy Loader, and resolved on demand:
//
//	reg := component.NewRegistry()
//	reg.Register("badge", widgets.Badge)
//	a, err := reg.Build(ctx, factory, "badge", map[string]any{"text": "new"})
//
// # Discovery and Sync
//
// The canonical component list is the sorted set of names found in a
// Source (a directory, an fs.FS or an S3 prefix). Scan derives names from
// source identifiers by stripping the extension and an optional suffix.
// Reconcile rewrites a Go []string declaration so it lists exactly those
// names; running it twice yields byte-identical output.
//
//	names, _ := component.Scan(ctx, component.DirSource{Dir: "widgets"}, component.ScanOptions{})
//	err := component.ReconcileFile("widgets/available_gen.go", names, component.Declaration{Var: "Available"})
package component
