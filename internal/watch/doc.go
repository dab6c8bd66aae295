// Package watch polls directories for file changes.
//
// It backs `squirrel sync --watch`, which rewrites the component
// declaration whenever a builder file appears, changes or disappears.
package watch
