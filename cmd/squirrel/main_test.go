package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// project creates a components directory with two builders and a stale
// declaration.
func project(t *testing.T) (dir, config, decl string) {
	t.Helper()
	dir = t.TempDir()
	for _, name := range []string{"alpha_builder.go", "beta_builder.go", "helpers.go", "alpha_builder_test.go"} {
		writeFile(t, filepath.Join(dir, name), "package ui\n")
	}
	decl = filepath.Join(dir, "available_gen.go")
	writeFile(t, decl, "package ui\n\nvar Available = []string{\n\t\"old\",\n}\n")
	config = filepath.Join(dir, "squirrel.json")
	writeFile(t, config, `{"components": {"dir": ".", "declarationFile": "available_gen.go"}, "log": {"level": "error"}}`)
	return dir, config, decl
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if out != "dev\n" {
		t.Errorf("output = %q", out)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := run(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var b buildInfo
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("output %q: %v", out, err)
	}
	if b.Version != "dev" || b.Go != runtime.Version() {
		t.Errorf("build = %+v", b)
	}
}

func TestList(t *testing.T) {
	_, config, _ := project(t)
	out, err := run(t, "--config", config, "list")
	if err != nil {
		t.Fatal(err)
	}
	if out != "alpha\nbeta\n" {
		t.Errorf("output = %q", out)
	}
}

func TestSync(t *testing.T) {
	_, config, decl := project(t)

	if _, err := run(t, "--config", config, "sync", "--check"); err == nil || !strings.Contains(err.Error(), "out of date") {
		t.Fatalf("check on stale declaration: err = %v", err)
	}
	if _, err := run(t, "--config", config, "sync"); err != nil {
		t.Fatalf("sync: %v", err)
	}
	got, err := os.ReadFile(decl)
	if err != nil {
		t.Fatal(err)
	}
	want := "package ui\n\nvar Available = []string{\n\t\"alpha\",\n\t\"beta\",\n}\n"
	if string(got) != want {
		t.Errorf("declaration =\n%s\nwant\n%s", got, want)
	}
	if _, err := run(t, "--config", config, "sync", "--check"); err != nil {
		t.Errorf("check after sync: %v", err)
	}
}

func TestRender(t *testing.T) {
	_, config, _ := project(t)
	out, err := run(t, "--config", config, "render", "badge", "--props", `{"text": "3"}`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, `<span id="atome_1" class="hs-badge" style=`) || !strings.HasSuffix(out, ">3</span>\n") {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, "--config", config, "render", "badge", "--props", `[1]`); err == nil {
		t.Error("expected error for non-object props")
	}
	if _, err := run(t, "--config", config, "render", "missing"); err == nil {
		t.Error("expected error for unknown component")
	}
}

func TestRender_Template(t *testing.T) {
	dir, _, _ := project(t)
	writeFile(t, filepath.Join(dir, "templates.yaml"), "card:\n  class: card\n  width: 120\n")
	config := filepath.Join(dir, "squirrel.json")
	writeFile(t, config, `{"templates": "templates.yaml", "log": {"level": "error"}}`)

	out, err := run(t, "--config", config, "render", "card", "--template", "--props", `{"text": "hi"}`)
	if err != nil {
		t.Fatal(err)
	}
	want := `<div id="atome_1" class="card" style="width: 120px;">hi</div>` + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}
