package parser

import "github.com/toyz/implementor/internal/models"

// TypeResolver defines the interface for turning a canonical type name into
// the descriptor the generator consumes
type TypeResolver interface {
	Resolve(name string) (*models.TypeDescriptor, error)
	Sourcepath() []string
}

var _ TypeResolver = (*Resolver)(nil)
