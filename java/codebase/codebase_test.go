package codebase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestScanAll(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/A.java":       "package a; public class A { int x; }",
		"b/B.java":       "class B { int x = ; }",
		"b/C.java":       "enum C { X, Y }",
		".hidden/H.java": "class H { int = ; }",
		"notes.txt":      "not java",
	})

	c := New(root)
	if err := c.ScanAll(context.Background(), 2); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	files := c.Files()
	want := []string{"a/A.java", "b/B.java", "b/C.java"}
	if len(files) != len(want) {
		t.Fatalf("scanned %d files, want %d", len(files), len(want))
	}
	for i, f := range files {
		if got, _ := filepath.Rel(root, f.Path); filepath.ToSlash(got) != want[i] {
			t.Errorf("file %d = %s, want %s", i, got, want[i])
		}
		if f.AST == nil {
			t.Errorf("%s: no tree", f.Path)
		}
	}
	if got := c.ErrorCount(); got != 1 {
		t.Errorf("ErrorCount = %d, want 1", got)
	}

	b := filepath.Join(root, "b", "B.java")
	c.RemoveFile(b)
	if c.GetFile(b) != nil {
		t.Error("removed file still present")
	}
	if got := c.ErrorCount(); got != 0 {
		t.Errorf("ErrorCount after remove = %d, want 0", got)
	}
}

func TestScanAllCanceled(t *testing.T) {
	root := writeTree(t, map[string]string{"A.java": "class A {}"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New(root).ScanAll(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("ScanAll = %v, want context.Canceled", err)
	}
}

func TestScanAllMissingRoot(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "missing"))
	if err := c.ScanAll(context.Background(), 1); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ScanAll = %v, want os.ErrNotExist", err)
	}
}

func TestUpdateFile(t *testing.T) {
	c := New(".")
	info := c.UpdateFile("X.java", []byte("/** The X. */\nclass X {\n  // note\n  void m() {}\n}\n"))
	if info.ErrorCount() != 0 || info.ParseErr != nil {
		t.Fatalf("diagnostics = %v, err = %v", info.Diagnostics, info.ParseErr)
	}
	if len(info.Comments) != 2 {
		t.Errorf("comments = %d, want 2", len(info.Comments))
	}
	if got := info.Docs[info.AST.Child(0).ID]; got != "The X." {
		t.Errorf("doc = %q", got)
	}
	if c.GetFile("X.java") != info {
		t.Error("GetFile does not return the latest parse")
	}

	again := c.UpdateFile("X.java", []byte("class X { void m( }"))
	if again.ErrorCount() == 0 {
		t.Error("expected errors after update")
	}
	if c.GetFile("X.java") != again {
		t.Error("update did not replace the file")
	}
}

func TestJavaFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"z/Z.java":    "",
		"A.java":      "",
		".git/G.java": "",
		"m/Readme.md": "",
		"m/n/M.java":  "",
	})
	files, err := JavaFiles(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"A.java", "m/n/M.java", "z/Z.java"}
	if len(files) != len(want) {
		t.Fatalf("files = %v", files)
	}
	for i, f := range files {
		if got, _ := filepath.Rel(root, f); filepath.ToSlash(got) != want[i] {
			t.Errorf("file %d = %s, want %s", i, got, want[i])
		}
	}
}
