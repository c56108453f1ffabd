// Package templates renders Java implementation units from type descriptors.
package templates

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/toyz/implementor/internal/errors"
	"github.com/toyz/implementor/internal/models"
)

// Emitter turns type descriptors into escaped source text. It holds no
// per-call state and is safe for concurrent use.
type Emitter struct {
	tmpl *template.Template
}

// NewEmitter creates an emitter from the default template registry
func NewEmitter() *Emitter {
	return NewEmitterWithRegistry(NewTemplateRegistry())
}

// NewEmitterWithRegistry creates an emitter from the templates in registry
func NewEmitterWithRegistry(registry *TemplateRegistry) *Emitter {
	funcMap := template.FuncMap{
		"signature":    Signature,
		"defaultValue": DefaultValue,
	}

	tmpl := template.Must(template.New(ImplUnitTemplate).Funcs(funcMap).Parse(registry.MustGet(ImplUnitTemplate)))
	template.Must(tmpl.New(MethodTemplate).Parse(registry.MustGet(MethodTemplate)))

	return &Emitter{tmpl: tmpl}
}

// Generate validates desc and produces the artifact for it
func (e *Emitter) Generate(desc *models.TypeDescriptor) (*models.GeneratedArtifact, error) {
	source, err := e.Emit(desc)
	if err != nil {
		return nil, err
	}
	return &models.GeneratedArtifact{
		RelativePath: models.SourcePath(desc),
		Content:      source,
	}, nil
}

// Emit validates desc and renders the complete, escaped implementation unit
func (e *Emitter) Emit(desc *models.TypeDescriptor) (string, error) {
	if err := desc.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, ImplUnitTemplate, desc); err != nil {
		return "", errors.Wrap(errors.UnknownErrorCode, fmt.Sprintf("failed to execute template %s", ImplUnitTemplate), err).
			WithContext("type", desc.QualifiedName())
	}

	return Escape(buf.String()), nil
}

// defaultEmitter backs the package level helpers
var defaultEmitter = NewEmitter()

// Emit renders desc with the default templates
func Emit(desc *models.TypeDescriptor) (string, error) {
	return defaultEmitter.Emit(desc)
}
