// Package errors provides structured, actionable error messages for Squirrel.
//
// Errors carry a stable code that maps to a category, a short message, a
// longer explanation and a documentation link. Two policies coexist in the
// engine: construction-time code (the element factory, particle dispatch and
// the drag controller) never returns errors and only logs, while registry
// integrity code (component discovery and reconciliation) reports failures
// through this package.
//
// # Error Codes
//
//   - E001: resolution miss (selector or component name not found)
//   - E002: registry write failure (backing declaration not matched)
//   - E003: duplicate definition (logged only, never returned)
//   - E010-E019: component source errors
//   - E020-E029: configuration errors
//   - E030-E039: template errors
//
// # Usage
//
//	err := errors.New("E002").
//	    WithLocation("pkg/widgets/available_gen.go", 1, 0).
//	    WithSuggestion("Add `var Available = []string{}` to the file")
//
//	fmt.Println(err.Format())
package errors
