// pkg/archive/nar.go
package archive

import (
	"fmt"
	"os"

	"zombiezen.com/go/nix/nar"
)

// DumpNar serializes the tree rooted at rootDir into a NAR file at dest.
// NAR already normalizes ownership and timestamps, so the output is
// reproducible by construction.
func DumpNar(rootDir, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if err := nar.DumpPath(f, rootDir); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("dumping nar: %w", err)
	}
	return f.Close()
}
