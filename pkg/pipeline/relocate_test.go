// pkg/pipeline/relocate_test.go
package pipeline

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func makeSiteDir(t *testing.T, files map[string]string) (libDir, siteDir string) {
	t.Helper()
	libDir = filepath.Join(t.TempDir(), "lib")
	siteDir = filepath.Join(libDir, "python3.12", "site-packages")
	if err := os.MkdirAll(siteDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		path := filepath.Join(siteDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return libDir, siteDir
}

func TestRelocateCompact(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"mypkg/__init__.py":            "VERSION = '1.0'\n",
		"mypkg/data/template.txt":      "hello template\n",
		"mypkg-1.0.dist-info/METADATA": "Metadata-Version: 2.1\n",
		"toplevel.py":                  "x = 1\n",
	}
	libDir, siteDir := makeSiteDir(t, files)
	archivePath := filepath.Join(libDir, "mypkg.zip")

	r := NewRunner(nil)
	got, err := r.relocate(siteDir, archivePath, true)
	if err != nil {
		t.Fatalf("relocate: %v", err)
	}
	if got != archivePath {
		t.Errorf("result: got %q, want %q", got, archivePath)
	}

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != len(files) {
		t.Errorf("entry count: got %d, want %d", len(zr.File), len(files))
	}
	for _, f := range zr.File {
		want, ok := files[f.Name]
		if !ok {
			t.Errorf("unexpected entry %q", f.Name)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != want {
			t.Errorf("entry %q: got %q, want %q", f.Name, data, want)
		}
	}

	if _, err := os.Stat(siteDir); !os.IsNotExist(err) {
		t.Errorf("site-packages still present: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(siteDir)); !os.IsNotExist(err) {
		t.Errorf("versioned lib dir still present: %v", err)
	}
}

func TestRelocateCompactEmptyTree(t *testing.T) {
	t.Parallel()

	libDir, siteDir := makeSiteDir(t, nil)
	if err := os.MkdirAll(filepath.Join(siteDir, "empty", "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	archivePath := filepath.Join(libDir, "mypkg.zip")

	r := NewRunner(nil)
	if _, err := r.relocate(siteDir, archivePath, true); err != nil {
		t.Fatalf("relocate: %v", err)
	}

	if _, err := os.Stat(archivePath); !os.IsNotExist(err) {
		t.Errorf("empty archive not discarded: %v", err)
	}
}

func TestRelocateExpanded(t *testing.T) {
	t.Parallel()

	files := map[string]string{"mypkg/__init__.py": "pass\n"}
	libDir, siteDir := makeSiteDir(t, files)
	archivePath := filepath.Join(libDir, "mypkg.zip")

	r := NewRunner(nil)
	got, err := r.relocate(siteDir, archivePath, false)
	if err != nil {
		t.Fatalf("relocate: %v", err)
	}

	want := filepath.Join(libDir, "mypkg")
	if got != want {
		t.Errorf("result: got %q, want %q", got, want)
	}
	data, err := os.ReadFile(filepath.Join(want, "mypkg", "__init__.py"))
	if err != nil {
		t.Fatalf("moved tree unreadable: %v", err)
	}
	if string(data) != "pass\n" {
		t.Errorf("moved file content: %q", data)
	}
	if _, err := os.Stat(siteDir); !os.IsNotExist(err) {
		t.Errorf("source tree still present: %v", err)
	}
}
