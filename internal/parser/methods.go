package parser

import (
	"fmt"

	"github.com/toyz/implementor/internal/models"
)

// methodCollector gathers the public member methods of an interface the way
// reflection reports them: declared methods first, then the inherited
// abstract and default methods of every superinterface.
type methodCollector struct {
	resolver *Resolver
	methods  []models.MethodSignature
	seen     map[string]bool
	visited  map[string]bool
}

func newMethodCollector(r *Resolver) *methodCollector {
	return &methodCollector{
		resolver: r,
		seen:     make(map[string]bool),
		visited:  make(map[string]bool),
	}
}

// collect adds the methods of t. Static methods only count for the type
// being described, they are not inherited.
func (c *methodCollector) collect(t *typeInfo, declaring bool) error {
	name := t.qualifiedName()
	if c.visited[name] {
		return nil
	}
	c.visited[name] = true

	s := newScope(c.resolver, t)
	for _, m := range t.iface.Members {
		if m.Signature == nil || m.Signature.Method == nil {
			continue
		}
		if hasKeyword(m.Modifiers, "private") {
			continue
		}
		if hasKeyword(m.Modifiers, "static") && !declaring {
			continue
		}
		c.add(s.method(m.Modifiers, m.Signature))
	}

	for _, ext := range t.iface.Extends {
		superName := s.typeName(ext, 0)
		super, err := c.resolver.find(superName)
		if err != nil {
			return err
		}
		switch {
		case super != nil && super.kind == models.TypeKindInterface:
			if err := c.collect(super, false); err != nil {
				return err
			}
		case super != nil:
			c.resolver.diagnostics.Warn("%s extends %s, which is a %s", name, superName, super.kind)
		default:
			c.addPlatform(name, superName)
		}
	}
	return nil
}

func (c *methodCollector) addPlatform(owner, superName string) {
	methods, known := jdkInterfaceMethods[superName]
	if !known {
		c.resolver.diagnostics.Warn("Superinterface %s of %s not found on the source path, its methods are skipped", superName, owner)
		return
	}
	for _, m := range methods {
		var params []models.Parameter
		for i, typ := range m.params {
			params = append(params, models.Parameter{Type: typ, Name: fmt.Sprintf("arg%d", i)})
		}
		c.add(models.MethodSignature{
			Name:       m.name,
			ReturnType: m.ret,
			Parameters: params,
			Exceptions: m.throws,
			Modifiers:  []string{"public", "abstract"},
		})
	}
}

func (c *methodCollector) add(m models.MethodSignature) {
	key := m.Key()
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.methods = append(c.methods, m)
}

// method converts a method declaration into its signature. Interface methods
// are implicitly public; those without a body are abstract.
func (s *scope) method(mods []*modifier, sig *signature) models.MethodSignature {
	ms := s.withTypeParams(sig.TypeParams)
	rest := sig.Method

	result := models.MethodSignature{Name: sig.Name, ReturnType: "void"}
	if !sig.Void {
		result.ReturnType = ms.typeName(sig.Return, len(rest.Dims))
	}

	for _, p := range rest.Params {
		if p.Name == "this" {
			continue
		}
		extra := len(p.Dims)
		if p.Varargs {
			extra++
		}
		result.Parameters = append(result.Parameters, models.Parameter{
			Type: ms.typeName(p.Type, extra),
			Name: p.Name,
		})
	}

	for _, ex := range rest.Throws {
		result.Exceptions = append(result.Exceptions, ms.typeName(ex, 0))
	}

	declared := []string{"public"}
	switch {
	case hasKeyword(mods, "static"):
		declared = append(declared, "static")
	case rest.Body == nil:
		declared = append(declared, "abstract")
	}
	if hasKeyword(mods, "strictfp") {
		declared = append(declared, "strictfp")
	}
	result.Modifiers = models.SortModifiers(declared)

	return result
}
