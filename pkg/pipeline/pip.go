// pkg/pipeline/pip.go
package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// proxyVars is the only host environment state allowed to leak into the
// installer. Everything else is dropped so builds stay reproducible.
var proxyVars = map[string]bool{
	"http_proxy":  true,
	"https_proxy": true,
	"ftp_proxy":   true,
	"no_proxy":    true,
	"all_proxy":   true,
	"HTTP_PROXY":  true,
	"HTTPS_PROXY": true,
	"FTP_PROXY":   true,
	"NO_PROXY":    true,
	"ALL_PROXY":   true,
}

// installEnv builds pip's environment from scratch: the proxy allow-list
// taken from environ plus PYTHONUSERBASE pointing --user installs at
// userBase.
func installEnv(userBase string, environ []string) []string {
	env := make([]string, 0, len(proxyVars)+1)
	for _, kv := range environ {
		name, _, ok := strings.Cut(kv, "=")
		if ok && proxyVars[name] {
			env = append(env, kv)
		}
	}
	return append(env, "PYTHONUSERBASE="+userBase)
}

// pipInstall installs all requirements in a single pip invocation with
// --user semantics, confined to userBase. Bytecode compilation is always
// requested or suppressed explicitly, never left to pip's default.
func (r *Runner) pipInstall(ctx context.Context, pip string, bctx *Context, userBase string) error {
	args := []string{"install", "--user", "--disable-pip-version-check"}
	if bctx.Compile {
		args = append(args, "--compile")
	} else {
		args = append(args, "--no-compile")
	}
	args = append(args, bctx.Requirements...)

	r.logger.Info("installing requirements",
		"pip", pip,
		"compile", bctx.Compile,
		"requirements", strings.Join(bctx.Requirements, " "))

	cmd := exec.CommandContext(ctx, pip, args...)
	cmd.Env = installEnv(userBase, os.Environ())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install: %w", err)
	}
	return nil
}
