package models

import (
	"fmt"
	"strings"

	"github.com/toyz/implementor/internal/errors"
)

// ImplSuffix is appended to the interface simple name to name the implementation
const ImplSuffix = "Impl"

// TypeDescriptor is a read-only structural view of the interface to implement
type TypeDescriptor struct {
	PackageName string            // dot separated, empty for the unnamed package
	SimpleName  string            // unqualified type name
	Enclosing   []string          // enclosing type names for member types, outermost first
	Kind        TypeKind          // declaration kind
	Visibility  Visibility        // declared access level
	Methods     []MethodSignature // methods to implement, in emission order
	Origin      string            // location the type was loaded from, used as a classpath element
}

// QualifiedName returns the canonical name of the described type
func (d *TypeDescriptor) QualifiedName() string {
	parts := make([]string, 0, len(d.Enclosing)+2)
	if d.PackageName != "" {
		parts = append(parts, d.PackageName)
	}
	parts = append(parts, d.Enclosing...)
	parts = append(parts, d.SimpleName)
	return strings.Join(parts, ".")
}

// ImplName returns the simple name of the generated implementation
func (d *TypeDescriptor) ImplName() string {
	return d.SimpleName + ImplSuffix
}

// PackagePath returns the package name as a slash separated path
func (d *TypeDescriptor) PackagePath() string {
	return strings.ReplaceAll(d.PackageName, ".", "/")
}

// BinaryName returns the slash separated binary name of the implementation,
// without extension (e.g. "com/example/FooImpl")
func (d *TypeDescriptor) BinaryName() string {
	if d.PackageName == "" {
		return d.ImplName()
	}
	return d.PackagePath() + "/" + d.ImplName()
}

// Validate checks that the descriptor can be implemented: it must describe an
// interface and must not be private.
func (d *TypeDescriptor) Validate() error {
	if d == nil {
		return errors.New(errors.InvalidTargetCode, "type descriptor cannot be nil")
	}
	if d.SimpleName == "" {
		return errors.New(errors.InvalidTargetCode, "type descriptor has no name")
	}
	if d.Kind != TypeKindInterface {
		return errors.InvalidTarget(d.QualifiedName(), fmt.Sprintf("it is a %s, only interfaces can be implemented", d.Kind)).
			WithContext("kind", d.Kind.String()).
			WithSuggestion("Pass the name of an interface, abstract classes are not supported")
	}
	if d.Visibility == VisibilityPrivate {
		return errors.InvalidTarget(d.QualifiedName(), "the interface isn't accessible").
			WithContext("visibility", d.Visibility.String()).
			WithSuggestion("Private interfaces cannot be implemented outside their enclosing type")
	}
	return nil
}
