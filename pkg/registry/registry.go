// pkg/registry/registry.go
package registry

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/wtnb75/localpkg/pkg/alpine"
	"github.com/wtnb75/localpkg/pkg/core"
	"github.com/wtnb75/localpkg/pkg/deb"
	"github.com/wtnb75/localpkg/pkg/narball"
	"github.com/wtnb75/localpkg/pkg/pacman"
	"github.com/wtnb75/localpkg/pkg/rpm"
	"github.com/wtnb75/localpkg/pkg/tarball"
)

// Get resolves an output format name to its builder
func Get(format string, logger *log.Logger) (core.Builder, error) {
	switch format {
	case "tar":
		return tarball.New(&tarball.Config{Logger: logger}), nil
	case "deb":
		return deb.New(&deb.Config{Logger: logger}), nil
	case "rpm":
		return rpm.New(&rpm.Config{Logger: logger}), nil
	case "apk":
		return alpine.New(&alpine.Config{Logger: logger}), nil
	case "pacman":
		return pacman.New(&pacman.Config{Logger: logger}), nil
	case "nar":
		return narball.New(&narball.Config{Logger: logger}), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrFormatNotSupported, format)
	}
}

// Formats lists the supported output format names
func Formats() []string {
	return []string{"tar", "deb", "rpm", "apk", "pacman", "nar"}
}
