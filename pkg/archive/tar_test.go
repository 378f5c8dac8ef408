// pkg/archive/tar_test.go
package archive

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

func makeTree(t *testing.T, files map[string]string) string {
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

func readEntries(t *testing.T, tr *tar.Reader) map[string]*tar.Header {
	t.Helper()
	entries := make(map[string]*tar.Header)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		entries[hdr.Name] = hdr
		io.Copy(io.Discard, tr)
	}
	return entries
}

func TestWriteTarNormalizesOwnership(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"bin/mycmd":          "#! /usr/bin/env python3\n",
		"lib/mypkg.zip":      "PK\x03\x04",
		"lib/deep/a/b/c.txt": "leaf\n",
	}
	root := makeTree(t, files)
	dest := filepath.Join(t.TempDir(), "out.tar.gz")

	if err := WriteTar(root, dest, "mypkg/usr/", Gzip); err != nil {
		t.Fatalf("WriteTar: %v", err)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	entries := readEntries(t, tar.NewReader(gz))

	if len(entries) != len(files) {
		t.Errorf("entry count: got %d, want %d", len(entries), len(files))
	}
	for name := range files {
		hdr, ok := entries["mypkg/usr/"+name]
		if !ok {
			t.Errorf("missing entry for %q", name)
			continue
		}
		if hdr.Uid != 0 || hdr.Gid != 0 {
			t.Errorf("%s: uid/gid = %d/%d, want 0/0", name, hdr.Uid, hdr.Gid)
		}
		if hdr.Uname != "root" || hdr.Gname != "root" {
			t.Errorf("%s: uname/gname = %s/%s, want root/root", name, hdr.Uname, hdr.Gname)
		}
	}
}

func TestWriteTarXz(t *testing.T) {
	t.Parallel()

	root := makeTree(t, map[string]string{"bin/tool": "data\n"})
	dest := filepath.Join(t.TempDir(), "out.tar.xz")

	if err := WriteTar(root, dest, "p-1.0/usr/", Xz); err != nil {
		t.Fatalf("WriteTar: %v", err)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	xr, err := xz.NewReader(f)
	if err != nil {
		t.Fatalf("xz reader: %v", err)
	}
	entries := readEntries(t, tar.NewReader(xr))
	if _, ok := entries["p-1.0/usr/bin/tool"]; !ok {
		t.Errorf("missing prefixed entry, got %v", entries)
	}
}
