// Package generator writes generated implementations to disk and, in packaged
// mode, compiles them and assembles the resulting class into a jar.
package generator

import (
	"context"
	"os"
	"path/filepath"

	"github.com/toyz/implementor/internal/errors"
	"github.com/toyz/implementor/internal/models"
	"github.com/toyz/implementor/internal/templates"
	"github.com/toyz/implementor/internal/utils"
	"github.com/toyz/implementor/internal/utils/fileops"
)

// DefaultEncoding is requested explicitly from the compiler; generated text is ASCII
const DefaultEncoding = "UTF-8"

// WorkspacePrefix prefixes the name of every packaged-mode scratch directory
const WorkspacePrefix = "impl-"

// Options configures an Implementor
type Options struct {
	Emitter        SourceEmitter
	Compiler       Compiler
	Diagnostics    *utils.DiagnosticSystem
	ExtraClasspath []string // appended after the archive and the type origin
	KeepWorkspace  bool     // keep the scratch directory after a successful build
}

// Implementor produces stub implementations in direct and packaged mode
type Implementor struct {
	emitter        SourceEmitter
	compiler       Compiler
	fileOps        *fileops.FileOps
	diagnostics    *utils.DiagnosticSystem
	extraClasspath []string
	keepWorkspace  bool
	locks          *pathLocks
}

// NewImplementor creates an Implementor. A nil emitter defaults to the
// template emitter and a nil compiler to javac found on the system.
func NewImplementor(opts Options) *Implementor {
	emitter := opts.Emitter
	if emitter == nil {
		emitter = templates.NewEmitter()
	}
	compiler := opts.Compiler
	if compiler == nil {
		compiler = NewJavac(JavacOptions{Diagnostics: opts.Diagnostics})
	}
	diagnostics := opts.Diagnostics
	if diagnostics == nil {
		diagnostics = utils.NewSilentDiagnostics()
	}

	return &Implementor{
		emitter:        emitter,
		compiler:       compiler,
		fileOps:        fileops.NewFileOps(),
		diagnostics:    diagnostics,
		extraClasspath: opts.ExtraClasspath,
		keepWorkspace:  opts.KeepWorkspace,
		locks:          newPathLocks(),
	}
}

// SourceFile returns where Implement writes the source for desc below root
func SourceFile(desc *models.TypeDescriptor, root string) string {
	return filepath.Join(root, filepath.FromSlash(models.SourcePath(desc)))
}

// Implement writes the implementation of desc to
// <root>/<package path>/<Name>Impl.java, creating missing directories and
// overwriting an existing file.
func (g *Implementor) Implement(desc *models.TypeDescriptor, root string) error {
	artifact, err := g.emitter.Generate(desc)
	if err != nil {
		return err
	}

	target := filepath.Join(root, filepath.FromSlash(artifact.RelativePath))
	g.diagnostics.Debug("Writing %s", target)

	if err := g.fileOps.EnsureParent(target); err != nil {
		return err
	}
	return g.fileOps.WriteFile(target, []byte(artifact.Content))
}

// ImplementJar compiles the implementation of desc and packages it as the
// single class entry of the archive at jarPath. The archive is only replaced
// once every step succeeded.
func (g *Implementor) ImplementJar(ctx context.Context, desc *models.TypeDescriptor, jarPath string) error {
	if err := desc.Validate(); err != nil {
		return err
	}

	archive, err := g.fileOps.PathValidator().Absolute(jarPath)
	if err != nil {
		return errors.WrapWorkspaceError(jarPath, err)
	}

	unlock := g.locks.Lock(archive)
	defer unlock()

	run := newBuildRun(desc, archive, g.diagnostics)

	workspace, err := g.fileOps.CreateWorkspace(filepath.Dir(archive), WorkspacePrefix)
	if err != nil {
		return run.fail(err)
	}
	run.workspace = workspace
	defer func() {
		g.finish(run)
	}()

	if err := g.Implement(desc, workspace); err != nil {
		return run.fail(err)
	}
	run.advance(StateSourceWritten)

	req := CompileRequest{
		SourceFile: SourceFile(desc, workspace),
		OutputDir:  workspace,
		Classpath:  g.classpath(desc, archive),
		Encoding:   DefaultEncoding,
	}
	g.diagnostics.Debug("Compiling %s with classpath %v", req.SourceFile, req.Classpath)
	if err := g.compiler.Compile(ctx, req); err != nil {
		return run.fail(errors.WrapCompileError(desc.QualifiedName(), err).
			WithContext("archive", archive).
			WithContext("workspace", workspace).
			WithSuggestions(
				"Check that the interface and its dependencies are on the classpath",
				"Run with -verbose to see the compiler command line",
			))
	}
	run.advance(StateCompiled)

	classFile := filepath.Join(workspace, filepath.FromSlash(models.ClassEntryName(desc)))
	staged := filepath.Join(workspace, filepath.Base(archive))
	if err := writeJar(staged, models.ClassEntryName(desc), classFile); err != nil {
		return run.fail(errors.WrapPackagingError(archive, err).WithContext("workspace", workspace))
	}
	if err := os.Rename(staged, archive); err != nil {
		return run.fail(errors.WrapPackagingError(archive, err).WithContext("workspace", workspace))
	}
	run.advance(StatePackaged)

	return nil
}

// classpath is the archive when it already exists, then the origin of the
// type, then any configured extra entries
func (g *Implementor) classpath(desc *models.TypeDescriptor, archive string) []string {
	var classpath []string
	if g.fileOps.IsFile(archive) {
		classpath = append(classpath, archive)
	}
	if desc.Origin != "" {
		classpath = append(classpath, desc.Origin)
	}
	return append(classpath, g.extraClasspath...)
}

// finish removes the workspace of a successful run and keeps it for a failed one
func (g *Implementor) finish(run *buildRun) {
	if run.workspace == "" {
		return
	}
	if run.state == StatePackaged && !g.keepWorkspace {
		if err := g.fileOps.RemoveAll(run.workspace); err != nil {
			g.diagnostics.Warn("Failed to remove workspace %s: %v", run.workspace, err)
		}
		return
	}
	g.diagnostics.Verbose("Workspace kept at %s", run.workspace)
}
