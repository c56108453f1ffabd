package templates

// Template names known to the registry
const (
	ImplUnitTemplate = "impl-unit"
	MethodTemplate   = "impl-method"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerImplTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// registerImplTemplates registers the implementation unit templates.
// Line endings are always LF.
func (tr *TemplateRegistry) registerImplTemplates() {
	tr.templates[ImplUnitTemplate] = `{{if .PackageName}}package {{.PackageName}};
{{end}}public class {{.ImplName}} implements {{.QualifiedName}} {
{{range .Methods}}{{template "impl-method" .}}{{end}}}
`

	// A method block: the reconstructed signature and a body that returns the
	// default value for the return type, or nothing for void.
	tr.templates[MethodTemplate] = `	{{signature .}} {
{{with defaultValue .}}		return {{.}};
{{end}}	}
`
}
