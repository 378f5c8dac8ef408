// pkg/archive/tar.go
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
)

// Compression selects the tar stream compression
type Compression string

const (
	// Gzip produces .tar.gz output
	Gzip Compression = "gz"
	// Xz produces .tar.xz output
	Xz Compression = "xz"
)

// WriteTar archives every regular file under rootDir into dest, naming
// each entry prefix plus the file's path relative to rootDir. Ownership
// is normalized to root:root (uid 0, gid 0) so the stream is reproducible
// and installable regardless of who built it.
func WriteTar(rootDir, dest, prefix string, comp Compression) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}

	var cw io.WriteCloser
	switch comp {
	case Xz:
		cw, err = xz.NewWriter(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("creating xz writer: %w", err)
		}
	default:
		cw = gzip.NewWriter(f)
	}
	tw := tar.NewWriter(cw)

	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = prefix + filepath.ToSlash(rel)
		hdr.Uid = 0
		hdr.Gid = 0
		hdr.Uname = "root"
		hdr.Gname = "root"
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(tw, src); err != nil {
			src.Close()
			return err
		}
		return src.Close()
	})
	if err != nil {
		tw.Close()
		cw.Close()
		f.Close()
		return fmt.Errorf("archiving %s: %w", rootDir, err)
	}

	if err := tw.Close(); err != nil {
		cw.Close()
		f.Close()
		return fmt.Errorf("finishing tar: %w", err)
	}
	if err := cw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finishing compression: %w", err)
	}
	return f.Close()
}
