package generator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/toyz/implementor/internal/utils"
)

// JavacOptions configures the javac compiler
type JavacOptions struct {
	Path        string   // explicit executable; empty searches JAVA_HOME then PATH
	Release     string   // target release, e.g. "17"; empty leaves the toolchain default
	Flags       []string // extra flags inserted before the source file
	Diagnostics *utils.DiagnosticSystem
}

// Javac runs the JDK compiler as an external process
type Javac struct {
	path        string
	release     string
	flags       []string
	diagnostics *utils.DiagnosticSystem
	lookPath    func(string) (string, error)
	getenv      func(string) string
}

// NewJavac creates a javac-backed Compiler
func NewJavac(opts JavacOptions) *Javac {
	diagnostics := opts.Diagnostics
	if diagnostics == nil {
		diagnostics = utils.NewSilentDiagnostics()
	}
	return &Javac{
		path:        opts.Path,
		release:     opts.Release,
		flags:       opts.Flags,
		diagnostics: diagnostics,
		lookPath:    exec.LookPath,
		getenv:      os.Getenv,
	}
}

// Executable resolves the javac binary: the configured path, then
// $JAVA_HOME/bin/javac, then PATH.
func (j *Javac) Executable() (string, error) {
	if j.path != "" {
		return j.lookPath(j.path)
	}

	if home := j.getenv("JAVA_HOME"); home != "" {
		candidate := filepath.Join(home, "bin", executableName("javac"))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	path, err := j.lookPath("javac")
	if err != nil {
		return "", fmt.Errorf("javac executable not found (set JAVA_HOME or add the JDK to PATH): %w", err)
	}
	return path, nil
}

// Version reports the toolchain version in canonical semver form, e.g. "v17.0.2" or "v1.8.0"
func (j *Javac) Version(ctx context.Context) (string, error) {
	exe, err := j.Executable()
	if err != nil {
		return "", err
	}

	output, err := exec.CommandContext(ctx, exe, "-version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s -version failed: %w", exe, err)
	}

	version := ParseJavacVersion(string(output))
	if version == "" {
		return "", fmt.Errorf("unrecognized javac version output %q", strings.TrimSpace(string(output)))
	}
	return version, nil
}

// Compile runs javac on req.SourceFile and fails with the compiler output
// when javac exits non-zero
func (j *Javac) Compile(ctx context.Context, req CompileRequest) error {
	exe, err := j.Executable()
	if err != nil {
		return err
	}

	version := ""
	if j.release != "" {
		if version, err = j.Version(ctx); err != nil {
			j.diagnostics.Warn("Could not determine javac version: %v", err)
		}
	}

	args := j.Args(req, version)
	j.diagnostics.Verbose("Running %s %s", exe, strings.Join(args, " "))

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("javac failed: %w\n%s", err, strings.TrimSpace(output.String()))
	}
	return nil
}

// Args builds the javac command line for req. version is the toolchain
// version reported by Version and may be empty when unknown.
func (j *Javac) Args(req CompileRequest, version string) []string {
	var args []string

	if len(req.Classpath) > 0 {
		args = append(args, "-cp", strings.Join(req.Classpath, string(os.PathListSeparator)))
	}
	if req.Encoding != "" {
		args = append(args, "-encoding", req.Encoding)
	}
	if req.OutputDir != "" {
		args = append(args, "-d", req.OutputDir)
	}
	args = append(args, j.releaseArgs(version)...)
	args = append(args, j.flags...)

	return append(args, req.SourceFile)
}

// releaseArgs selects --release, which javac only understands from 9 on
func (j *Javac) releaseArgs(version string) []string {
	if j.release == "" {
		return nil
	}
	if version != "" && semver.Compare(version, "v9") < 0 {
		return []string{"-source", j.release, "-target", j.release}
	}
	return []string{"--release", j.release}
}

// ParseJavacVersion extracts a semver version from `javac -version` output.
// "javac 1.8.0_292" gives "v1.8.0", "javac 17.0.2" gives "v17.0.2" and
// "javac 21-ea" gives "v21.0.0".
func ParseJavacVersion(output string) string {
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != "javac" {
			continue
		}

		raw := fields[1]
		if i := strings.IndexAny(raw, "_-+"); i >= 0 {
			raw = raw[:i]
		}

		version := semver.Canonical("v" + raw)
		if version != "" {
			return version
		}
	}
	return ""
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
