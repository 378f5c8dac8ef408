// pkg/pipeline/patch.go
package pipeline

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// patchBin rewrites every executable script directly under binDir so it
// runs under pythonName and can find libPath from wherever the finished
// package finally lands. Files that cannot be processed are logged and
// skipped; patching is best-effort per file.
func (r *Runner) patchBin(binDir, libPath, pythonName string) error {
	entries, err := os.ReadDir(binDir)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Debug("no bin directory, nothing to patch", "dir", binDir)
			return nil
		}
		return fmt.Errorf("reading %s: %w", binDir, err)
	}

	if pythonName == "" {
		pythonName = "python"
	}

	for _, ent := range entries {
		if !ent.Type().IsRegular() {
			continue
		}
		path := filepath.Join(binDir, ent.Name())
		if unix.Access(path, unix.X_OK) != nil {
			continue
		}
		if err := r.patchFile(path, libPath, pythonName); err != nil {
			r.logger.Warn("skipping script", "file", path, "error", err)
		}
	}
	return nil
}

// patchFile rewrites a single script in place. Scripts are opaque text:
// any line starting with "#!" becomes an env-lookup shebang for
// pythonName, and a line that is exactly "import sys" gets a search-path
// stanza inserted right after it. A file whose first bytes are not a
// shebang is left untouched.
func (r *Runner) patchFile(path, libPath, pythonName string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !bytes.HasPrefix(data, []byte("#!/")) {
		r.logger.Debug("no shebang, leaving untouched", "file", path)
		return nil
	}

	// Relative to the script file itself: the first ".." cancels the file
	// name on join, so the expression resolves from the script's final
	// install location no matter where the tree is placed.
	rel, err := filepath.Rel(path, libPath)
	if err != nil {
		return err
	}
	stanza := fmt.Sprintf("sys.path.insert(0, os.path.abspath(os.path.join(__file__, %q)))", rel)

	tmp := path + ".new"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "#!"):
			fmt.Fprintf(out, "#! /usr/bin/env %s\n", pythonName)
		case line == "import sys":
			fmt.Fprintf(out, "import os\nimport sys\n%s\n", stanza)
		default:
			fmt.Fprintln(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o755); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	r.logger.Info("patched script", "file", path, "python", pythonName)
	return nil
}
