// pkg/pipeline/relocate.go
package pipeline

import (
	"archive/zip"
	"compress/flate"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// relocate moves the installed site-packages tree to its final location
// and returns that location. In compact mode every file is streamed into
// a zip archive at archivePath and deleted as it goes; an archive that
// would contain zero files is discarded. Otherwise the tree is renamed to
// archivePath with its extension trimmed.
func (r *Runner) relocate(siteDir, archivePath string, compact bool) (string, error) {
	if !compact {
		dest := strings.TrimSuffix(archivePath, filepath.Ext(archivePath))
		r.logger.Debug("moving site-packages", "from", siteDir, "to", dest)
		if err := os.Rename(siteDir, dest); err != nil {
			return "", fmt.Errorf("moving site-packages: %w", err)
		}
		return dest, nil
	}

	r.logger.Debug("compacting site-packages", "from", siteDir, "to", archivePath)
	count, err := zipTree(siteDir, archivePath)
	if err != nil {
		return "", err
	}
	if count == 0 {
		r.logger.Warn("nothing to archive, discarding", "archive", archivePath)
		os.Remove(archivePath)
	} else {
		r.logger.Info("compacted site-packages", "archive", archivePath, "files", count)
	}

	// Cleanup of the emptied lib/pythonX.Y tree is best-effort; leftover
	// directories never invalidate the archive.
	os.RemoveAll(siteDir)
	os.Remove(filepath.Dir(siteDir))

	return archivePath, nil
}

// zipTree streams every regular file under siteDir into a new zip archive
// at archivePath, removing each source file once it has been written.
// Entry names are slash paths relative to siteDir. Returns the number of
// files archived; a missing siteDir counts as an empty tree.
func zipTree(siteDir, archivePath string) (int, error) {
	f, err := os.Create(archivePath)
	if err != nil {
		return 0, fmt.Errorf("creating archive: %w", err)
	}

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	count := 0
	err = filepath.WalkDir(siteDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == siteDir {
				return nil
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(siteDir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, src); err != nil {
			src.Close()
			return err
		}
		src.Close()
		count++
		return os.Remove(path)
	})
	if err != nil {
		zw.Close()
		f.Close()
		return 0, fmt.Errorf("compacting %s: %w", siteDir, err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return 0, fmt.Errorf("finishing archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing archive: %w", err)
	}
	return count, nil
}
