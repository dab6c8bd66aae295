package component

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/squirrel-ui/squirrel/internal/errors"
	"github.com/squirrel-ui/squirrel/pkg/telemetry"
)

// Declaration identifies the Go []string variable that backs a component
// list.
type Declaration struct {
	// Var is the variable name (default "Available").
	Var string

	// Logger receives the loose-match warning. Default: slog.Default().
	Logger *slog.Logger
}

func (d Declaration) name() string {
	if d.Var == "" {
		return "Available"
	}
	return d.Var
}

func (d Declaration) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// listBody matches the inside of a []string literal. Quoted names may
// contain braces.
const listBody = `(?:"(?:[^"\\\n]|\\.)*"|[^}"])*`

// primary matches a top-level declaration:
//
//	var Available = []string{
//		"a",
//	}
func (d Declaration) primary() *regexp.Regexp {
	return regexp.MustCompile(`(?m)^(var ` + regexp.QuoteMeta(d.name()) + ` = \[\]string\{)` + listBody + `(\})`)
}

// loose matches the variable anywhere with any spacing, e.g. inside a
// var block or with a different indentation.
func (d Declaration) loose() *regexp.Regexp {
	return regexp.MustCompile(`(\b` + regexp.QuoteMeta(d.name()) + `\s*(?:=|:=)\s*\[\]string\s*\{)` + listBody + `(\})`)
}

// locate returns the submatch indices of the declaration in content.
func (d Declaration) locate(content []byte) ([]int, error) {
	if loc := d.primary().FindSubmatchIndex(content); loc != nil {
		return loc, nil
	}
	if loc := d.loose().FindSubmatchIndex(content); loc != nil {
		d.logger().Warn("component declaration matched loosely",
			"var", d.name())
		return loc, nil
	}
	return nil, errors.New(errors.CodeRegistryWriteFailure).
		WithDetail("declaration of " + d.name() + " not found").
		WithSuggestion("Declare it as: var " + d.name() + " = []string{}")
}

// Reconcile returns content with the declaration's list replaced by names.
// The rest of content is left untouched.
func Reconcile(content []byte, names []string, decl Declaration) ([]byte, error) {
	loc, err := decl.locate(content)
	if err != nil {
		return nil, err
	}
	// loc: [full start, full end, open start, open end, close start, close end]
	var buf bytes.Buffer
	buf.Grow(len(content) + len(names)*16)
	buf.Write(content[:loc[3]])
	buf.WriteString(renderList(names))
	buf.Write(content[loc[4]:])
	return buf.Bytes(), nil
}

func renderList(names []string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('\n')
	for _, n := range names {
		b.WriteByte('\t')
		b.WriteString(strconv.Quote(n))
		b.WriteString(",\n")
	}
	return b.String()
}

var quoted = regexp.MustCompile(`"(?:[^"\\\n]|\\.)*"`)

// ReadDeclaration returns the names currently listed in the declaration.
func ReadDeclaration(content []byte, decl Declaration) ([]string, error) {
	loc, err := decl.locate(content)
	if err != nil {
		return nil, err
	}
	body := content[loc[3]:loc[4]]
	var names []string
	for _, lit := range quoted.FindAll(body, -1) {
		s, err := strconv.Unquote(string(lit))
		if err != nil {
			return nil, errors.New(errors.CodeRegistryWriteFailure).
				WithDetail("invalid string literal " + string(lit)).
				Wrap(err)
		}
		names = append(names, s)
	}
	return names, nil
}

// ReconcileFile rewrites the declaration in the Go file at path so that it
// lists exactly names. The file is replaced atomically and left untouched
// when already up to date. It reports whether the file changed.
func ReconcileFile(ctx context.Context, path string, names []string, decl Declaration) (changed bool, err error) {
	_, span := telemetry.StartSpan(ctx, "component.ReconcileFile",
		attribute.String("component.file", path),
		attribute.Int("component.count", len(names)))
	defer func() { telemetry.EndSpan(span, err) }()

	content, err := os.ReadFile(path)
	if err != nil {
		return false, errors.New(errors.CodeRegistryWriteFailure).
			WithDetail("cannot read " + path).
			Wrap(err)
	}
	out, err := Reconcile(content, names, decl)
	if err != nil {
		if se, ok := err.(*errors.SquirrelError); ok {
			se.Location = &errors.Location{File: path}
		}
		return false, err
	}
	if bytes.Equal(out, content) {
		return false, nil
	}
	if err := writeAtomic(path, out); err != nil {
		return false, errors.New(errors.CodeRegistryWriteFailure).
			WithDetail("cannot write " + path).
			Wrap(err)
	}
	return true, nil
}

// writeAtomic writes data to a temp file beside path and renames it over
// path, keeping the original permissions.
func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
