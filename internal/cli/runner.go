package cli

import (
	"context"
	"time"

	"github.com/toyz/implementor/internal/generator"
	"github.com/toyz/implementor/internal/models"
	"github.com/toyz/implementor/internal/parser"
	"github.com/toyz/implementor/internal/utils"
	"github.com/toyz/implementor/internal/utils/fileops"
)

// Mode identifies which operation a run performed
type Mode string

const (
	ModeDirect   Mode = "direct"
	ModePackaged Mode = "packaged"
)

// Summary describes a completed run
type Summary struct {
	Mode     Mode
	Type     string
	Output   string
	Methods  int
	Duration time.Duration
}

// Stats returns the summary in the shape DiagnosticSystem.Summary prints
func (s *Summary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"Mode":      string(s.Mode),
		"Interface": s.Type,
		"Output":    s.Output,
		"Methods":   s.Methods,
		"Duration":  s.Duration.Round(time.Millisecond).String(),
	}
}

// Runner coordinates resolution and generation for one configuration
type Runner struct {
	config      *Config
	resolver    parser.TypeResolver
	implementor *generator.Implementor
	diagnostics *utils.DiagnosticSystem
}

// RunnerOption customizes a Runner
type RunnerOption func(*runnerOptions)

type runnerOptions struct {
	compiler generator.Compiler
	resolver parser.TypeResolver
}

// WithCompiler replaces javac with another compiler
func WithCompiler(c generator.Compiler) RunnerOption {
	return func(o *runnerOptions) {
		o.compiler = c
	}
}

// WithResolver replaces the source path resolver
func WithResolver(r parser.TypeResolver) RunnerOption {
	return func(o *runnerOptions) {
		o.resolver = r
	}
}

// NewRunner creates a Runner for cfg
func NewRunner(cfg *Config, diagnostics *utils.DiagnosticSystem, opts ...RunnerOption) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if diagnostics == nil {
		diagnostics = utils.NewSilentDiagnostics()
	}

	var o runnerOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.compiler == nil {
		flags, err := cfg.JavacFlagList()
		if err != nil {
			return nil, err
		}
		o.compiler = generator.NewJavac(generator.JavacOptions{
			Path:        cfg.Javac,
			Release:     string(cfg.Release),
			Flags:       flags,
			Diagnostics: diagnostics,
		})
	}
	if o.resolver == nil {
		files := fileops.NewFileOps()
		for _, root := range cfg.Sourcepath {
			if !files.IsDir(root) {
				diagnostics.Warn("sourcepath entry %s is not a directory", root)
			}
		}
		o.resolver = parser.NewResolver(cfg.Sourcepath, parser.WithDiagnostics(diagnostics))
	}

	return &Runner{
		config:   cfg,
		resolver: o.resolver,
		implementor: generator.NewImplementor(generator.Options{
			Compiler:       o.compiler,
			Diagnostics:    diagnostics,
			ExtraClasspath: cfg.Classpath,
			KeepWorkspace:  cfg.KeepWorkspace,
		}),
		diagnostics: diagnostics,
	}, nil
}

// Implementor exposes the underlying generator
func (r *Runner) Implementor() *generator.Implementor {
	return r.implementor
}

// DirectRoot returns the default direct-mode destination for desc: a
// directory named after its package, or the working directory for the
// unnamed package.
func DirectRoot(desc *models.TypeDescriptor) string {
	if desc.PackageName == "" {
		return "."
	}
	return desc.PackageName
}

// Implement resolves name and writes its implementation source. The
// destination root is Config.Out when set, DirectRoot otherwise.
func (r *Runner) Implement(name string) (*Summary, error) {
	start := time.Now()

	desc, err := r.resolve(name)
	if err != nil {
		return nil, err
	}

	root := r.config.Out
	if root == "" {
		root = DirectRoot(desc)
	}
	r.diagnostics.Verbose("Destination root: %s", root)

	r.diagnostics.StartProgress("Writing " + desc.ImplName())
	if err := r.implementor.Implement(desc, root); err != nil {
		r.diagnostics.EndProgress(false, "")
		return nil, err
	}
	r.diagnostics.EndProgress(true, "")

	return &Summary{
		Mode:     ModeDirect,
		Type:     desc.QualifiedName(),
		Output:   generator.SourceFile(desc, root),
		Methods:  len(desc.Methods),
		Duration: time.Since(start),
	}, nil
}

// ImplementJar resolves name and builds archive containing its compiled implementation
func (r *Runner) ImplementJar(ctx context.Context, name, archive string) (*Summary, error) {
	start := time.Now()

	desc, err := r.resolve(name)
	if err != nil {
		return nil, err
	}

	r.diagnostics.StartProgress("Building " + archive)
	if err := r.implementor.ImplementJar(ctx, desc, archive); err != nil {
		r.diagnostics.EndProgress(false, "")
		return nil, err
	}
	r.diagnostics.EndProgress(true, "")

	return &Summary{
		Mode:     ModePackaged,
		Type:     desc.QualifiedName(),
		Output:   archive,
		Methods:  len(desc.Methods),
		Duration: time.Since(start),
	}, nil
}

func (r *Runner) resolve(name string) (*models.TypeDescriptor, error) {
	r.diagnostics.Verbose("Resolving %s on %v", name, r.resolver.Sourcepath())
	desc, err := r.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	r.diagnostics.Debug("Resolved %s (%s, %d methods)", desc.QualifiedName(), desc.Kind, len(desc.Methods))
	return desc, nil
}
