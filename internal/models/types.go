package models

// TypeKind represents the declaration kind of a Java type
type TypeKind int

const (
	TypeKindInterface TypeKind = iota
	TypeKindClass
	TypeKindEnum
	TypeKindRecord
	TypeKindAnnotation
)

// String returns the Java keyword for the kind
func (k TypeKind) String() string {
	switch k {
	case TypeKindInterface:
		return "interface"
	case TypeKindClass:
		return "class"
	case TypeKindEnum:
		return "enum"
	case TypeKindRecord:
		return "record"
	case TypeKindAnnotation:
		return "@interface"
	default:
		return "unknown"
	}
}

// TypeKindFromKeyword maps a declaration keyword to its TypeKind
func TypeKindFromKeyword(keyword string) TypeKind {
	switch keyword {
	case "interface":
		return TypeKindInterface
	case "enum":
		return TypeKindEnum
	case "record":
		return TypeKindRecord
	case "@interface":
		return TypeKindAnnotation
	default:
		return TypeKindClass
	}
}

// Visibility represents the access level a type was declared with
type Visibility int

const (
	VisibilityPackage Visibility = iota
	VisibilityPublic
	VisibilityProtected
	VisibilityPrivate
)

// String returns the modifier spelling of the visibility (empty for package-private)
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPrivate:
		return "private"
	default:
		return ""
	}
}

// ReturnKind classifies a return type for default value selection
type ReturnKind int

const (
	ReturnKindVoid ReturnKind = iota
	ReturnKindBoolean
	ReturnKindNumeric
	ReturnKindReference
)

// numericPrimitives are the primitive types whose default is the literal zero
var numericPrimitives = map[string]bool{
	"byte":   true,
	"short":  true,
	"int":    true,
	"long":   true,
	"float":  true,
	"double": true,
	"char":   true,
}

// IsPrimitive reports whether typeName names a Java primitive type (void excluded)
func IsPrimitive(typeName string) bool {
	return typeName == "boolean" || numericPrimitives[typeName]
}

// ClassifyReturn determines the ReturnKind of a canonical type name
func ClassifyReturn(typeName string) ReturnKind {
	switch {
	case typeName == "void":
		return ReturnKindVoid
	case typeName == "boolean":
		return ReturnKindBoolean
	case numericPrimitives[typeName]:
		return ReturnKindNumeric
	default:
		return ReturnKindReference
	}
}
