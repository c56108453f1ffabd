package parser

import (
	"strings"

	"github.com/toyz/implementor/internal/models"
)

// scope canonicalizes type names as they appear inside one declaration
type scope struct {
	resolver *Resolver
	owner    *typeInfo
	typeVars map[string]*typeRef // type variable -> first bound, nil when unbounded
}

func newScope(r *Resolver, owner *typeInfo) *scope {
	s := &scope{resolver: r, owner: owner, typeVars: make(map[string]*typeRef)}
	if owner.iface != nil {
		s.declare(owner.iface.TypeParams)
	}
	return s
}

// withTypeParams returns a scope where params shadow outer type variables
func (s *scope) withTypeParams(params *typeParams) *scope {
	if params == nil {
		return s
	}
	inner := &scope{resolver: s.resolver, owner: s.owner, typeVars: make(map[string]*typeRef, len(s.typeVars))}
	for name, bound := range s.typeVars {
		inner.typeVars[name] = bound
	}
	inner.declare(params)
	return inner
}

func (s *scope) declare(params *typeParams) {
	if params == nil {
		return
	}
	for _, p := range params.Params {
		var bound *typeRef
		if len(p.Bounds) > 0 {
			bound = p.Bounds[0]
		}
		s.typeVars[p.Name] = bound
	}
}

// typeName returns the canonical erased name of ref with extraDims more
// array dimensions, e.g. "java.util.List" for List<String> or
// "java.lang.String[][]" for String[] with one extra dimension.
func (s *scope) typeName(ref *typeRef, extraDims int) string {
	return s.erase(ref, map[string]bool{}) + strings.Repeat("[]", len(ref.Dims)+extraDims)
}

// erase returns the canonical name of ref without array dimensions
func (s *scope) erase(ref *typeRef, visiting map[string]bool) string {
	name := ref.name()
	if len(ref.Segments) == 1 {
		if bound, ok := s.typeVars[name]; ok {
			if bound == nil || visiting[name] {
				return javaObject
			}
			visiting[name] = true
			return s.erase(bound, visiting)
		}
	}
	return s.resolveName(name)
}

// resolveName qualifies a dotted name as written in source. Names that
// cannot be resolved are returned unchanged.
func (s *scope) resolveName(name string) string {
	if models.IsPrimitive(name) || name == "void" {
		return name
	}

	head, rest, _ := strings.Cut(name, ".")
	resolved := s.resolveSimple(head)
	if resolved == "" {
		return name
	}
	if rest == "" {
		return resolved
	}
	return resolved + "." + rest
}

// resolveSimple follows the Java scoping order for a simple type name:
// enclosing and member types, single-type imports, types of the same unit,
// the same package, on-demand imports, then java.lang.
func (s *scope) resolveSimple(name string) string {
	for t := s.owner; t != nil; t = t.outer {
		if member := t.members[name]; member != nil {
			return member.qualifiedName()
		}
		if t.name == name {
			return t.qualifiedName()
		}
	}

	unit := s.owner.unit
	if imported, ok := unit.singleImports[name]; ok {
		return imported
	}
	if t := unit.types[name]; t != nil {
		return t.qualifiedName()
	}
	if s.resolver.packageHasType(unit.pkg, name) {
		return qualify(unit.pkg, name)
	}

	for _, pkg := range unit.onDemand {
		if jdkType(pkg, name) || s.resolver.packageHasType(pkg, name) {
			return qualify(pkg, name)
		}
		if !looksLikeType(pkg) {
			continue
		}
		// import Outer.* brings Outer's member types into scope
		if outer, err := s.resolver.find(pkg); err == nil && outer != nil && outer.members[name] != nil {
			return qualify(pkg, name)
		}
	}

	if jdkType("java.lang", name) {
		return qualify("java.lang", name)
	}
	return ""
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
