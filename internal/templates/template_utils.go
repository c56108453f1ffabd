package templates

import (
	"strings"

	"github.com/toyz/implementor/internal/models"
)

// Default literals returned by generated method bodies
const (
	BooleanDefault   = "false"
	NumericDefault   = "0"
	ReferenceDefault = "null"
)

// DefaultValue returns the literal a method returns: false for boolean, 0 for
// any other primitive, null for references and "" for void.
func DefaultValue(method models.MethodSignature) string {
	switch method.ReturnKind() {
	case models.ReturnKindBoolean:
		return BooleanDefault
	case models.ReturnKindNumeric:
		return NumericDefault
	case models.ReturnKindReference:
		return ReferenceDefault
	default:
		return ""
	}
}

// Signature reconstructs the declaration of method without abstract and
// transient modifiers, e.g. "public int read(byte[] b, int off) throws java.io.IOException"
func Signature(method models.MethodSignature) string {
	var sig strings.Builder

	if mods := method.EmittedModifiers(); len(mods) > 0 {
		sig.WriteString(strings.Join(mods, " "))
		sig.WriteString(" ")
	}
	sig.WriteString(method.ReturnType)
	sig.WriteString(" ")
	sig.WriteString(method.Name)
	sig.WriteString(ParameterList(method.Parameters))

	if len(method.Exceptions) > 0 {
		sig.WriteString(" throws ")
		sig.WriteString(strings.Join(method.Exceptions, ", "))
	}

	return sig.String()
}

// ParameterList renders "(T1 n1, T2 n2)"
func ParameterList(params []models.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + p.Name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
