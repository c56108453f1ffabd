package generator

import (
	"context"

	"github.com/toyz/implementor/internal/models"
)

// SourceEmitter renders the implementation unit for a descriptor
type SourceEmitter interface {
	Generate(desc *models.TypeDescriptor) (*models.GeneratedArtifact, error)
}

// Compiler compiles exactly one generated source file. Implementations block
// until the toolchain finishes.
type Compiler interface {
	Compile(ctx context.Context, req CompileRequest) error
}

// CompileRequest describes a single compiler invocation
type CompileRequest struct {
	SourceFile string   // generated source file
	OutputDir  string   // root directory for compiled classes
	Classpath  []string // classpath elements, joined with the OS list separator
	Encoding   string   // source encoding passed explicitly to the compiler
}

// CompilerFunc adapts a function to the Compiler interface
type CompilerFunc func(ctx context.Context, req CompileRequest) error

// Compile calls f(ctx, req)
func (f CompilerFunc) Compile(ctx context.Context, req CompileRequest) error {
	return f(ctx, req)
}
