package scan

import (
	"os"
	"path/filepath"
	"testing"
)

// setupTree builds a fixture directory:
//
//	a.jpg, b.JPG, c.jpeg, notes.txt, dir.jpg/ (a directory), sub/d.jpg
func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}

	write("a.jpg", "aa")
	write("b.JPG", "bbb")
	write("c.jpeg", "cccc")
	write("notes.txt", "n")
	write(filepath.Join("sub", "d.jpg"), "ddddd")
	if err := os.Mkdir(filepath.Join(root, "dir.jpg"), 0755); err != nil {
		t.Fatalf("failed to create dir.jpg: %v", err)
	}
	return root
}

func names(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.Base(f.Path)
	}
	return out
}

func assertNames(t *testing.T, files []File, want ...string) {
	t.Helper()
	got := names(files)
	if len(got) != len(want) {
		t.Fatalf("got files %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got files %v, want %v", got, want)
		}
	}
}

func TestFilesNonRecursive(t *testing.T) {
	root := setupTree(t)

	files, err := Files(root, "*.jpg", false)
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}

	// Case-insensitive name match; c.jpeg does not match *.jpg; the
	// dir.jpg directory and sub/ files are excluded.
	assertNames(t, files, "a.jpg", "b.JPG")
}

func TestFilesUppercasePattern(t *testing.T) {
	root := setupTree(t)

	files, err := Files(root, "*.JPG", false)
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	assertNames(t, files, "a.jpg", "b.JPG")
}

func TestFilesRecursive(t *testing.T) {
	root := setupTree(t)

	files, err := Files(root, "*.jpg", true)
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	assertNames(t, files, "a.jpg", "b.JPG", "d.jpg")
}

func TestFilesSizes(t *testing.T) {
	root := setupTree(t)

	files, err := Files(root, "*.jpg", false)
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}

	want := map[string]int64{"a.jpg": 2, "b.JPG": 3}
	for _, f := range files {
		if got := want[filepath.Base(f.Path)]; f.Size != got {
			t.Errorf("%s: size %d, want %d", f.Path, f.Size, got)
		}
	}
}

func TestFilesInvalidPattern(t *testing.T) {
	root := setupTree(t)

	if _, err := Files(root, "[", false); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestFilesMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	if _, err := Files(missing, "*.jpg", false); err == nil {
		t.Error("expected error for missing root (non-recursive)")
	}
	if _, err := Files(missing, "*.jpg", true); err == nil {
		t.Error("expected error for missing root (recursive)")
	}
}

func TestFilesSkipsUnreadableSubtree(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, directory permissions are not enforced")
	}

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.jpg"), []byte("aa"), 0644); err != nil {
		t.Fatalf("failed to write a.jpg: %v", err)
	}
	locked := filepath.Join(root, "locked")
	if err := os.MkdirAll(locked, 0755); err != nil {
		t.Fatalf("failed to create locked dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(locked, "hidden.jpg"), []byte("hh"), 0644); err != nil {
		t.Fatalf("failed to write hidden.jpg: %v", err)
	}
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("failed to chmod locked dir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	// The unreadable subtree is skipped, not fatal; its files are simply
	// absent from the result.
	files, err := Files(root, "*.jpg", true)
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	assertNames(t, files, "a.jpg")
}

func TestFilesNoMatches(t *testing.T) {
	root := setupTree(t)

	files, err := Files(root, "*.bmp", false)
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", names(files))
	}
}
