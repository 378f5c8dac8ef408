// pkg/pipeline/patch_test.go
package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func TestPatchFileKeepsNonScript(t *testing.T) {
	t.Parallel()

	r := NewRunner(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "tool")
	content := "\x7fELF not a script\x00\x01"
	writeScript(t, path, content, 0o755)

	if err := r.patchFile(path, filepath.Join(dir, "lib", "x.zip"), "python3"); err != nil {
		t.Fatalf("patchFile: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Errorf("file changed: got %q, want %q", got, content)
	}
}

func TestPatchFileRewrite(t *testing.T) {
	t.Parallel()

	r := NewRunner(nil)
	root := t.TempDir()
	script := filepath.Join(root, "usr", "bin", "mycmd")
	libPath := filepath.Join(root, "usr", "lib", "mypkg.zip")
	writeScript(t, script,
		"#!/tmp/build-venv/bin/python\n"+
			"# entry point\n"+
			"import sys\n"+
			"from mypkg import main\n"+
			"sys.exit(main())\n",
		0o755)

	if err := r.patchFile(script, libPath, "python3"); err != nil {
		t.Fatalf("patchFile: %v", err)
	}

	data, err := os.ReadFile(script)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"#! /usr/bin/env python3",
		"# entry point",
		"import os",
		"import sys",
		`sys.path.insert(0, os.path.abspath(os.path.join(__file__, "../../lib/mypkg.zip")))`,
		"from mypkg import main",
		"sys.exit(main())",
		"",
	}
	got := strings.Split(string(data), "\n")
	if len(got) != len(want) {
		t.Fatalf("line count: got %d, want %d\n%s", len(got), len(want), data)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}

	info, err := os.Stat(script)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode: got %o, want 0755", info.Mode().Perm())
	}
}

func TestPatchFileNoSysImport(t *testing.T) {
	t.Parallel()

	r := NewRunner(nil)
	root := t.TempDir()
	script := filepath.Join(root, "usr", "bin", "runner.sh")
	writeScript(t, script, "#!/bin/sh\nexec something \"$@\"\n", 0o755)

	if err := r.patchFile(script, filepath.Join(root, "usr", "lib", "p"), "python3"); err != nil {
		t.Fatalf("patchFile: %v", err)
	}

	data, err := os.ReadFile(script)
	if err != nil {
		t.Fatal(err)
	}
	want := "#! /usr/bin/env python3\nexec something \"$@\"\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestPatchRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		lib    string
	}{
		{
			name:   "bin and lib under usr",
			script: "usr/bin/tool",
			lib:    "usr/lib/mypkg.zip",
		},
		{
			name:   "expanded library directory",
			script: "usr/bin/tool",
			lib:    "usr/lib/mypkg",
		},
		{
			name:   "flat prefix",
			script: "bin/tool",
			lib:    "lib/mypkg.zip",
		},
		{
			name:   "deep prefix",
			script: "opt/vendor/app/bin/tool",
			lib:    "opt/vendor/app/lib/mypkg.zip",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Evaluate the injected expression the way Python would:
			// join the script's own path with the relative part, then
			// normalize.
			for _, installRoot := range []string{"/", "/opt/elsewhere", "/var/tmp/stage"} {
				script := filepath.Join(installRoot, tt.script)
				lib := filepath.Join(installRoot, tt.lib)
				rel, err := filepath.Rel(script, lib)
				if err != nil {
					t.Fatal(err)
				}
				resolved := filepath.Join(script, rel)
				if resolved != lib {
					t.Errorf("root %s: resolved %q, want %q", installRoot, resolved, lib)
				}
			}
		})
	}
}

func TestPatchBin(t *testing.T) {
	t.Parallel()

	r := NewRunner(nil)
	root := t.TempDir()
	binDir := filepath.Join(root, "usr", "bin")
	libPath := filepath.Join(root, "usr", "lib", "mypkg.zip")

	script := filepath.Join(binDir, "cmd")
	writeScript(t, script, "#!/venv/bin/python\nimport sys\nsys.exit(0)\n", 0o755)

	data := filepath.Join(binDir, "notes.txt")
	writeScript(t, data, "#!/venv/bin/python\nimport sys\n", 0o644)

	binary := filepath.Join(binDir, "native")
	writeScript(t, binary, "\x7fELF\x00", 0o755)

	if err := os.Mkdir(filepath.Join(binDir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := r.patchBin(binDir, libPath, "python3"); err != nil {
		t.Fatalf("patchBin: %v", err)
	}

	patched, _ := os.ReadFile(script)
	if !strings.HasPrefix(string(patched), "#! /usr/bin/env python3\n") {
		t.Errorf("executable script not patched: %q", patched)
	}
	untouched, _ := os.ReadFile(data)
	if string(untouched) != "#!/venv/bin/python\nimport sys\n" {
		t.Errorf("non-executable file changed: %q", untouched)
	}
	elf, _ := os.ReadFile(binary)
	if string(elf) != "\x7fELF\x00" {
		t.Errorf("binary changed: %q", elf)
	}
}

func TestPatchBinMissingDir(t *testing.T) {
	t.Parallel()

	r := NewRunner(nil)
	if err := r.patchBin(filepath.Join(t.TempDir(), "nope"), "/lib/p", "python3"); err != nil {
		t.Errorf("missing bin dir should be a no-op, got %v", err)
	}
}
