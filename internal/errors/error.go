package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryResolution Category = "resolution"
	CategoryRegistry   Category = "registry"
	CategorySource     Category = "source"
	CategoryTemplate   Category = "template"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	switch {
	case l.Line <= 0:
		return l.File
	case l.Column > 0:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// SquirrelError is a structured error with source location, suggestions, and documentation.
type SquirrelError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (registry, resolution, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source location the error refers to, if any.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SquirrelError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SquirrelError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a SquirrelError with the same code.
func (e *SquirrelError) Is(target error) bool {
	t, ok := target.(*SquirrelError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithLocation points the error at file:line:column and captures the
// surrounding lines when the file is readable.
func (e *SquirrelError) WithLocation(file string, line, column int) *SquirrelError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line)
	return e
}

// AtOffset points the error at the byte offset within data, which was
// read from file. Offsets past the end clamp to the last byte.
func (e *SquirrelError) AtOffset(file string, data []byte, offset int64) *SquirrelError {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, c := range data[:offset] {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return e.WithLocation(file, line, col)
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SquirrelError) WithSuggestion(s string) *SquirrelError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *SquirrelError) WithDetail(d string) *SquirrelError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *SquirrelError) Wrap(err error) *SquirrelError {
	e.Wrapped = err
	return e
}

// contextRadius is the number of lines kept on each side of a location.
const contextRadius = 2

func readContextLines(filename string, target int) []string {
	if target <= 0 {
		return nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for n := 1; scanner.Scan(); n++ {
		if n > target+contextRadius {
			break
		}
		if n >= target-contextRadius {
			lines = append(lines, scanner.Text())
		}
	}
	return lines
}

// New creates a SquirrelError from a registered error code.
func New(code string) *SquirrelError {
	template, ok := registry[code]
	if !ok {
		return &SquirrelError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SquirrelError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new SquirrelError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SquirrelError {
	return &SquirrelError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a SquirrelError.
func FromError(err error, code string) *SquirrelError {
	if err == nil {
		return nil
	}
	var se *SquirrelError
	if stderrors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}

// IsCode reports whether err, or any error it wraps, carries the given code.
func IsCode(err error, code string) bool {
	var se *SquirrelError
	for err != nil {
		if stderrors.As(err, &se) {
			if se.Code == code {
				return true
			}
			err = se.Wrapped
			continue
		}
		return false
	}
	return false
}

// As is errors.As from the standard library.
func As(err error, target any) bool { return stderrors.As(err, target) }
