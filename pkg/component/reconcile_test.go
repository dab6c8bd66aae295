package component

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/squirrel-ui/squirrel/internal/errors"
)

const declared = `// Code generated by squirrel sync. DO NOT EDIT.

package widgets

// Available lists the registered widgets.
var Available = []string{
	"old",
}

var Other = []string{"keep"}
`

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReconcile(t *testing.T) {
	out, err := Reconcile([]byte(declared), []string{"a", "b"}, Declaration{Var: "Available"})
	if err != nil {
		t.Fatal(err)
	}
	want := `// Code generated by squirrel sync. DO NOT EDIT.

package widgets

// Available lists the registered widgets.
var Available = []string{
	"a",
	"b",
}

var Other = []string{"keep"}
`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Errorf("Reconcile mismatch (-want +got):\n%s", diff)
	}

	again, err := Reconcile(out, []string{"a", "b"}, Declaration{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, again) {
		t.Error("Reconcile is not idempotent")
	}
}

func TestReconcile_BracesInNames(t *testing.T) {
	names, err := Scan(context.Background(),
		SliceSource{"a.go", "we}ird.go", `q"u{o}te.go`, "}.go"},
		GoScanOptions())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		content string
	}{
		{"top level", declared},
		{"var block", "package widgets\n\nvar (\n\tAvailable = []string{\"old\"}\n\tOther = []string{\"}\"}\n)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once, err := Reconcile([]byte(tt.content), names, Declaration{Logger: quiet()})
			if err != nil {
				t.Fatal(err)
			}
			twice, err := Reconcile(once, names, Declaration{Logger: quiet()})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(string(once), string(twice)); diff != "" {
				t.Errorf("second Reconcile changed content (-first +second):\n%s", diff)
			}

			got, err := ReadDeclaration(twice, Declaration{Logger: quiet()})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(names, got); diff != "" {
				t.Errorf("ReadDeclaration mismatch (-want +got):\n%s", diff)
			}

			// Going through a different list first must not matter.
			other, err := Reconcile(twice, []string{"x"}, Declaration{Logger: quiet()})
			if err != nil {
				t.Fatal(err)
			}
			back, err := Reconcile(other, names, Declaration{Logger: quiet()})
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(back, once) {
				t.Errorf("content depends on prior list:\n%s", back)
			}
		})
	}
}

func TestReconcile_Empty(t *testing.T) {
	out, err := Reconcile([]byte(declared), nil, Declaration{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte("var Available = []string{}\n")) {
		t.Errorf("empty list not rendered:\n%s", out)
	}
	names, err := ReadDeclaration(out, Declaration{})
	if err != nil || len(names) != 0 {
		t.Errorf("ReadDeclaration = %v, %v", names, err)
	}
}

func TestReconcile_LoosePattern(t *testing.T) {
	var logs bytes.Buffer
	src := "package w\n\nvar (\n\tAvailable   =  []string{ \"x\" }\n)\n"
	decl := Declaration{Var: "Available", Logger: slog.New(slog.NewTextHandler(&logs, nil))}

	out, err := Reconcile([]byte(src), []string{"y"}, decl)
	if err != nil {
		t.Fatal(err)
	}
	names, err := ReadDeclaration(out, decl)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"y"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Contains(logs.Bytes(), []byte("matched loosely")) {
		t.Errorf("expected loose-match warning, logs: %s", logs.String())
	}
}

func TestReconcile_Missing(t *testing.T) {
	_, err := Reconcile([]byte("package w\n\nvar Available = map[string]bool{}\n"), []string{"a"}, Declaration{Logger: quiet()})
	if !errors.IsCode(err, errors.CodeRegistryWriteFailure) {
		t.Errorf("err = %v, want E002", err)
	}
}

func TestReadDeclaration(t *testing.T) {
	src := "var Available = []string{\n\t\"a\",\n\t\"b\\\"q\",\n}\n"
	names, err := ReadDeclaration([]byte(src), Declaration{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", `b"q`}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "available_gen.go")
	if err := os.WriteFile(path, []byte(declared), 0o600); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	changed, err := ReconcileFile(ctx, path, []string{"a", "b"}, Declaration{})
	if err != nil || !changed {
		t.Fatalf("first ReconcileFile = %v, %v", changed, err)
	}
	first, _ := os.ReadFile(path)

	changed, err = ReconcileFile(ctx, path, []string{"a", "b"}, Declaration{})
	if err != nil || changed {
		t.Fatalf("second ReconcileFile = %v, %v", changed, err)
	}
	second, _ := os.ReadFile(path)
	if !bytes.Equal(first, second) {
		t.Error("second reconcile changed the file")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestReconcileFile_Errors(t *testing.T) {
	ctx := context.Background()
	_, err := ReconcileFile(ctx, filepath.Join(t.TempDir(), "nope.go"), nil, Declaration{})
	if !errors.IsCode(err, errors.CodeRegistryWriteFailure) {
		t.Errorf("missing file: err = %v, want E002", err)
	}

	path := filepath.Join(t.TempDir(), "bad.go")
	if err := os.WriteFile(path, []byte("package x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = ReconcileFile(ctx, path, nil, Declaration{Logger: quiet()})
	if !errors.IsCode(err, errors.CodeRegistryWriteFailure) {
		t.Fatalf("err = %v, want E002", err)
	}
	se := err.(*errors.SquirrelError)
	if se.Location == nil || se.Location.File != path {
		t.Errorf("Location = %v, want %s", se.Location, path)
	}
}
