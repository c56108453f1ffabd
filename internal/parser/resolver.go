package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/toyz/implementor/internal/errors"
	"github.com/toyz/implementor/internal/models"
	"github.com/toyz/implementor/internal/utils"
)

const sourceExtension = ".java"

// Resolver locates interfaces on a source path and builds their descriptors
type Resolver struct {
	sourcepath  []string
	units       *utils.FileCache[*sourceUnit]
	memory      []*sourceUnit
	diagnostics *utils.DiagnosticSystem
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithDiagnostics routes resolver warnings and debug output to d
func WithDiagnostics(d *utils.DiagnosticSystem) ResolverOption {
	return func(r *Resolver) {
		if d != nil {
			r.diagnostics = d
		}
	}
}

// NewResolver creates a resolver searching the given source roots in order
func NewResolver(sourcepath []string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		sourcepath:  sourcepath,
		units:       utils.NewFileCache[*sourceUnit](),
		diagnostics: utils.NewSilentDiagnostics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sourcepath returns the source roots searched by the resolver
func (r *Resolver) Sourcepath() []string {
	return r.sourcepath
}

// Resolve builds the descriptor of the type with the given canonical or
// binary name, e.g. "com.example.Greeter" or "com.example.Outer$Inner".
func (r *Resolver) Resolve(name string) (*models.TypeDescriptor, error) {
	canonical := strings.ReplaceAll(strings.TrimSpace(name), "$", ".")
	if !validTypeName(canonical) {
		return nil, errors.WrapResolutionError(name, fmt.Errorf("%q is not a valid type name", name)).
			WithSuggestion("Pass a fully-qualified name such as com.example.Greeter")
	}

	t, err := r.find(canonical)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.WrapResolutionError(canonical,
			fmt.Errorf("no source found on source path %s", strings.Join(r.sourcepath, string(os.PathListSeparator)))).
			WithContext("sourcepath", r.sourcepath).
			WithSuggestion("Add the directory containing the package root to -sourcepath")
	}

	return r.describe(t)
}

// describe builds the descriptor of t. Methods are only collected for interfaces.
func (r *Resolver) describe(t *typeInfo) (*models.TypeDescriptor, error) {
	desc := &models.TypeDescriptor{
		PackageName: t.unit.pkg,
		SimpleName:  t.name,
		Enclosing:   t.enclosing(),
		Kind:        t.kind,
		Visibility:  t.visibility(),
		Origin:      t.unit.origin,
	}
	if t.kind != models.TypeKindInterface {
		return desc, nil
	}

	collector := newMethodCollector(r)
	if err := collector.collect(t, true); err != nil {
		return nil, err
	}
	desc.Methods = collector.methods

	r.diagnostics.Debug("Resolved %s with %d methods from %s", desc.QualifiedName(), len(desc.Methods), t.unit.file)
	return desc, nil
}

// find locates a declared type by canonical name. Longer package prefixes are
// tried first; within a package the file named after the top-level type is
// preferred over a scan of the package directory.
func (r *Resolver) find(name string) (*typeInfo, error) {
	parts := strings.Split(name, ".")

	for _, u := range r.memory {
		if t := lookupQualified(u, parts); t != nil {
			return t, nil
		}
	}

	for i := len(parts) - 1; i >= 0; i-- {
		pkgParts, top, nested := parts[:i], parts[i], parts[i+1:]
		for _, root := range r.sourcepath {
			dir := filepath.Join(append([]string{root}, pkgParts...)...)
			t, err := r.findInPackage(root, dir, top, nested)
			if err != nil || t != nil {
				return t, err
			}
		}
	}
	return nil, nil
}

func lookupQualified(u *sourceUnit, parts []string) *typeInfo {
	pkgLen := 0
	if u.pkg != "" {
		pkgLen = strings.Count(u.pkg, ".") + 1
	}
	if len(parts) <= pkgLen || strings.Join(parts[:pkgLen], ".") != u.pkg {
		return nil
	}
	return u.lookup(parts[pkgLen], parts[pkgLen+1:])
}

func (r *Resolver) findInPackage(root, dir, top string, nested []string) (*typeInfo, error) {
	primary := filepath.Join(dir, SourceName(top))
	if info, err := os.Stat(primary); err == nil && info.Mode().IsRegular() {
		u, err := r.load(primary, root)
		if err != nil {
			return nil, err
		}
		if t := u.lookup(top, nested); t != nil {
			return t, nil
		}
	}

	// package-private top-level types may live in any file of the package
	if len(nested) > 0 {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, sourceExtension) || strings.Contains(name, "-") {
			continue
		}
		if name == SourceName(top) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		u, err := r.load(filepath.Join(dir, name), root)
		if err != nil {
			r.diagnostics.Debug("Skipping %s: %v", name, err)
			continue
		}
		if t := u.lookup(top, nested); t != nil {
			return t, nil
		}
	}
	return nil, nil
}

// load parses file, reusing the cached unit while the file is unchanged
func (r *Resolver) load(file, root string) (*sourceUnit, error) {
	unit, err := r.units.Load(file, func(data []byte) (*sourceUnit, error) {
		r.diagnostics.Debug("Parsing %s", file)
		ast, err := parseUnit(file, data)
		if err != nil {
			return nil, err
		}
		return newSourceUnit(file, root, ast), nil
	})
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.Wrap(errors.ResolutionFailureCode, fmt.Sprintf("failed to read %s", file), err).
			WithContext("file", file)
	}
	return unit, nil
}

// packageHasType reports whether pkg declares a top-level type called name,
// judged by the presence of its source file
func (r *Resolver) packageHasType(pkg, name string) bool {
	for _, u := range r.memory {
		if u.pkg == pkg && u.types[name] != nil {
			return true
		}
	}

	rel := SourceName(name)
	if pkg != "" {
		rel = filepath.Join(filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")), rel)
	}
	for _, root := range r.sourcepath {
		if info, err := os.Stat(filepath.Join(root, rel)); err == nil && info.Mode().IsRegular() {
			return true
		}
	}
	return false
}

// withUnit returns a resolver that also searches u before the source path
func (r *Resolver) withUnit(u *sourceUnit) *Resolver {
	clone := *r
	clone.memory = append([]*sourceUnit{u}, r.memory...)
	return &clone
}

func validTypeName(name string) bool {
	if name == "" {
		return false
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" || !isIdentifier(part) {
			return false
		}
	}
	return true
}

var identifierPattern = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*$`)

func isIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}
