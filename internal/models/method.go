package models

import "strings"

// Parameter represents a single method parameter
type Parameter struct {
	Type string // canonical, erased type name
	Name string // parameter identifier
}

// MethodSignature describes one method to implement
type MethodSignature struct {
	Name       string      // method name
	ReturnType string      // canonical, erased return type ("void" for none)
	Parameters []Parameter // ordered parameters
	Exceptions []string    // declared checked exceptions
	Modifiers  []string    // declared modifiers in canonical order
}

// strippedModifiers never appear in an emitted signature
var strippedModifiers = map[string]bool{
	"abstract":  true,
	"transient": true,
}

// ReturnKind classifies the method's return type
func (m MethodSignature) ReturnKind() ReturnKind {
	return ClassifyReturn(m.ReturnType)
}

// EmittedModifiers returns the modifiers without abstract and transient
func (m MethodSignature) EmittedModifiers() []string {
	result := make([]string, 0, len(m.Modifiers))
	for _, mod := range m.Modifiers {
		if !strippedModifiers[mod] {
			result = append(result, mod)
		}
	}
	return result
}

// Key identifies the method by name and parameter types
func (m MethodSignature) Key() string {
	types := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		types[i] = p.Type
	}
	return m.Name + "(" + strings.Join(types, ",") + ")"
}

// modifierOrder is the order java.lang.reflect.Modifier.toString prints modifiers in
var modifierOrder = []string{
	"public", "protected", "private",
	"abstract", "static", "final", "transient",
	"volatile", "synchronized", "native", "strictfp",
}

// SortModifiers returns mods in canonical order, dropping unknown or repeated entries
func SortModifiers(mods []string) []string {
	present := make(map[string]bool, len(mods))
	for _, mod := range mods {
		present[mod] = true
	}
	result := make([]string, 0, len(mods))
	for _, mod := range modifierOrder {
		if present[mod] {
			result = append(result, mod)
		}
	}
	return result
}
