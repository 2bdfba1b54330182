// File: listfile_test.go
// Title: Listfile Engine Tests
// Description: Tests for the engine facade: formatting, linting, dumps and
//              concurrent file formatting.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package listfile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/msto63/listfmt/foundation/core/config"
	mdwerror "github.com/msto63/listfmt/foundation/core/error"
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
	"github.com/msto63/listfmt/foundation/listfile/format"
)

func newEngine(t *testing.T, mutate func(cfg *config.Config)) *Engine {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	e, err := New(Options{Config: cfg, Workers: 2})
	require.NoError(t, err, "engine creation failed")
	return e
}

func TestEngineParseChecksTreeWhenDebugging(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelDebug, Format: mdwlog.FormatText, Output: &buf})
	e, err := New(Options{Logger: logger})
	require.NoError(t, err)

	tree, err := e.Parse("CMakeLists.txt", "if(A)\n  foreach(x a b)\n    foo(${x})\n  endforeach()\nendif()\n")
	require.NoError(t, err)
	if tree == nil {
		t.Fatal("Expected a tree")
	}
	if strings.Contains(buf.String(), "invariant violated") {
		t.Errorf("Expected a well formed tree, got log:\n%s", buf.String())
	}
}

func TestEngineFormat(t *testing.T) {
	e := newEngine(t, nil)
	result, err := e.Format(context.Background(), "CMakeLists.txt", "PROJECT( foo )\n")
	require.NoError(t, err)
	if result.Text != "project(foo)\n" {
		t.Errorf("Expected %q, got %q", "project(foo)\n", result.Text)
	}
	if !result.ReflowValid {
		t.Error("Expected a valid layout")
	}
}

func TestEngineParseError(t *testing.T) {
	e := newEngine(t, nil)
	_, err := e.Format(context.Background(), "broken.cmake", "foo(\n")
	if err == nil {
		t.Fatal("Expected parse error")
	}
	if !mdwerror.HasCode(err, mdwerror.CodeMalformedStatement) {
		t.Errorf("Expected code %s, got %s", mdwerror.CodeMalformedStatement, mdwerror.GetCode(err))
	}
	var mdwErr *mdwerror.Error
	if !errors.As(err, &mdwErr) {
		t.Fatalf("Expected foundation error, got %T", err)
	}
	if path := mdwErr.Details()["path"]; path != "broken.cmake" {
		t.Errorf("Expected path detail broken.cmake, got %v", path)
	}
}

func TestEngineCancelled(t *testing.T) {
	e := newEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Format(ctx, "x", "foo()\n"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if _, err := e.Lint(ctx, "x", "foo()\n"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

// countingCache records lookups on top of a map
type countingCache struct {
	items map[string]format.Result
	hits  int
}

func (c *countingCache) GetOrSet(key string, fn func() (format.Result, error)) (format.Result, error) {
	if r, ok := c.items[key]; ok {
		c.hits++
		return r, nil
	}
	r, err := fn()
	if err != nil {
		return r, err
	}
	c.items[key] = r
	return r, nil
}

func TestEngineCache(t *testing.T) {
	results := &countingCache{items: make(map[string]format.Result)}
	e, err := New(Options{Cache: results})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		result, err := e.Format(context.Background(), "CMakeLists.txt", "PROJECT( foo )\n")
		require.NoError(t, err)
		if result.Text != "project(foo)\n" {
			t.Errorf("Expected %q, got %q", "project(foo)\n", result.Text)
		}
	}
	if results.hits != 2 || len(results.items) != 1 {
		t.Errorf("Expected 1 entry and 2 hits, got %d entries and %d hits", len(results.items), results.hits)
	}

	if _, err := e.Format(context.Background(), "x", "foo(\n"); err == nil {
		t.Error("Expected parse error")
	}
	if len(results.items) != 1 {
		t.Errorf("Expected parse failures not to be cached, got %d entries", len(results.items))
	}
}

func TestEngineLint(t *testing.T) {
	e := newEngine(t, nil)
	records, err := e.Lint(context.Background(), "CMakeLists.txt", "FOO()\n")
	require.NoError(t, err)
	if len(records) != 1 || records[0].ID != "W0106" {
		t.Errorf("Expected a single W0106 record, got %v", records)
	}

	records, err = e.Lint(context.Background(), "CMakeLists.txt", "foo(")
	if err == nil {
		t.Error("Expected parse error")
	}
	if len(records) != 1 || records[0].ID != "C0304" {
		t.Errorf("Expected line rules to run on unparsable text, got %v", records)
	}
}

func TestEngineLintDisabled(t *testing.T) {
	e := newEngine(t, func(cfg *config.Config) { cfg.Lint.Disabled = []string{"W0106"} })
	records, err := e.Lint(context.Background(), "CMakeLists.txt", "FOO()\n")
	require.NoError(t, err)
	if len(records) != 0 {
		t.Errorf("Expected no records, got %v", records)
	}
}

func TestEngineDumps(t *testing.T) {
	e := newEngine(t, nil)
	text := "set(A b)\n"

	tests := []struct {
		name string
		dump func(buf *bytes.Buffer) error
		want []string
	}{
		{"tokens", func(buf *bytes.Buffer) error { return e.DumpTokens(buf, text) }, []string{`WORD:1,0 "set"`, `LEFT_PAREN:1,3 "("`}},
		{"tree", func(buf *bytes.Buffer) error { return e.DumpTree(buf, "x", text) }, []string{"BODY", "STATEMENT", "FUNNAME"}},
		{"layout", func(buf *bytes.Buffer) error { return e.DumpLayout(buf, "x", text) }, []string{"BODY[VERTICAL]", "STATEMENT[ALIGNED] (0,0)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.dump(&buf))
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Expected %q in dump:\n%s", want, buf.String())
				}
			}
		})
	}

	var buf bytes.Buffer
	if err := e.DumpTree(&buf, "x", "foo(\n"); err == nil {
		t.Error("Expected parse error from tree dump")
	}
}

func TestFormatFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.cmake": "FOO( a )\n",
		"b.cmake": "foo(b)\n",
		"c.cmake": "foo(\n",
	}
	var paths []string
	for _, name := range []string{"a.cmake", "b.cmake", "c.cmake", "missing.cmake"} {
		path := filepath.Join(dir, name)
		if content, ok := files[name]; ok {
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		}
		paths = append(paths, path)
	}

	e := newEngine(t, nil)
	var got []string
	err := e.FormatFiles(context.Background(), paths, func(r FileResult) error {
		status := "ok"
		switch {
		case r.Err != nil && mdwerror.HasCode(r.Err, mdwerror.CodeIOError):
			status = "io"
		case r.Err != nil:
			status = "error"
		case r.Changed():
			status = "changed"
		}
		got = append(got, filepath.Base(r.Path)+" "+status)
		return nil
	})
	require.NoError(t, err)

	expected := []string{"a.cmake changed", "b.cmake ok", "c.cmake error", "missing.cmake io"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("FormatFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatFilesStopsOnCallbackError(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.cmake", "b.cmake"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("foo()\n"), 0o644))
		paths = append(paths, path)
	}

	stop := errors.New("stop")
	calls := 0
	err := newEngine(t, nil).FormatFiles(context.Background(), paths, func(FileResult) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("Expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 callback, got %d", calls)
	}
}

func TestFormatFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := newEngine(t, nil).FormatFiles(ctx, []string{"a", "b"}, func(FileResult) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
