// Package widgets provides the built-in component builders.
//
// Each builder lives in a file named <name>_builder.go and is listed in
// Available, which `squirrel sync` regenerates from the directory.
// Register installs every builder into a component registry.
package widgets
