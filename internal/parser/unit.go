package parser

import (
	"strings"

	"github.com/toyz/implementor/internal/models"
)

// sourceUnit is a parsed compilation unit with its imports indexed
type sourceUnit struct {
	file          string
	origin        string // source path root the file was found under
	pkg           string
	singleImports map[string]string // simple name -> qualified name
	onDemand      []string          // packages or types imported with .*
	types         map[string]*typeInfo
	order         []*typeInfo
}

// typeInfo is a declared type and its position in the declaration tree
type typeInfo struct {
	name      string
	kind      models.TypeKind
	modifiers map[string]bool
	outer     *typeInfo
	unit      *sourceUnit
	iface     *interfaceDecl // set for interfaces only
	members   map[string]*typeInfo
}

func newSourceUnit(file, origin string, ast *compilationUnit) *sourceUnit {
	u := &sourceUnit{
		file:          file,
		origin:        origin,
		singleImports: make(map[string]string),
		types:         make(map[string]*typeInfo),
	}
	if ast.Package != nil {
		u.pkg = strings.Join(ast.Package.Name, ".")
	}

	for _, imp := range ast.Imports {
		if imp.Static {
			continue
		}
		path := strings.Join(imp.Path, ".")
		if imp.Wildcard {
			u.onDemand = append(u.onDemand, path)
			continue
		}
		u.singleImports[imp.Path[len(imp.Path)-1]] = path
	}

	for _, decl := range ast.Types {
		t := newTypeInfo(u, nil, decl.Modifiers, decl.Body)
		u.types[t.name] = t
		u.order = append(u.order, t)
	}
	return u
}

func newTypeInfo(u *sourceUnit, outer *typeInfo, mods []*modifier, body *typeBody) *typeInfo {
	t := &typeInfo{
		unit:      u,
		outer:     outer,
		modifiers: make(map[string]bool),
		members:   make(map[string]*typeInfo),
	}
	for _, kw := range keywords(mods) {
		t.modifiers[kw] = true
	}

	switch {
	case body.Interface != nil:
		t.name = body.Interface.Name
		t.kind = models.TypeKindInterface
		t.iface = body.Interface
		for _, m := range body.Interface.Members {
			if m.Type == nil {
				continue
			}
			nested := newTypeInfo(u, t, m.Modifiers, m.Type)
			t.members[nested.name] = nested
		}
	case body.Other != nil:
		t.name = body.Other.Name
		t.kind = models.TypeKindFromKeyword(strings.Join(strings.Fields(body.Other.Keyword), ""))
		for _, item := range body.Other.Body.Items {
			if item.Type == nil {
				continue
			}
			nested := newTypeInfo(u, t, item.Type.Modifiers, item.Type.Body)
			t.members[nested.name] = nested
		}
	}
	return t
}

// lookup finds the top-level type top and descends through nested member names
func (u *sourceUnit) lookup(top string, nested []string) *typeInfo {
	t := u.types[top]
	for _, name := range nested {
		if t == nil {
			return nil
		}
		t = t.members[name]
	}
	return t
}

// enclosing returns the names of the enclosing types, outermost first
func (t *typeInfo) enclosing() []string {
	var names []string
	for o := t.outer; o != nil; o = o.outer {
		names = append([]string{o.name}, names...)
	}
	return names
}

// qualifiedName returns the canonical dotted name
func (t *typeInfo) qualifiedName() string {
	parts := make([]string, 0, 4)
	if t.unit.pkg != "" {
		parts = append(parts, t.unit.pkg)
	}
	parts = append(parts, t.enclosing()...)
	return strings.Join(append(parts, t.name), ".")
}

// visibility returns the declared access level. Members of interfaces are
// implicitly public, members of classes default to package access.
func (t *typeInfo) visibility() models.Visibility {
	switch {
	case t.modifiers["public"]:
		return models.VisibilityPublic
	case t.modifiers["protected"]:
		return models.VisibilityProtected
	case t.modifiers["private"]:
		return models.VisibilityPrivate
	case t.outer != nil && t.outer.kind == models.TypeKindInterface:
		return models.VisibilityPublic
	default:
		return models.VisibilityPackage
	}
}
