// Package render turns builder models into artifact text. Templates are
// looked up by artifact name: a file named <name>.tmpl in the configured
// override directory shadows the bundled template of the same name, so
// users can restyle any artifact without rebuilding the tool.
package render

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/codegenlab/schemagen/builder"
	"github.com/codegenlab/schemagen/naming"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// TemplateNotFoundError reports a template name with neither an override
// file nor a bundled default.
type TemplateNotFoundError struct {
	Name string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("no template named %q", e.Name)
}

// TemplateRenderError wraps a parse or execution failure with the template
// name that produced it.
type TemplateRenderError struct {
	Name string
	Err  error
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("rendering template %q: %v", e.Name, e.Err)
}

func (e *TemplateRenderError) Unwrap() error { return e.Err }

// Renderer renders builder models through the bundled templates, with an
// optional override directory consulted first. The zero override directory
// means bundled templates only.
type Renderer struct {
	overrideDir string
}

// New returns a Renderer. overrideDir may be empty.
func New(overrideDir string) *Renderer {
	return &Renderer{overrideDir: overrideDir}
}

var funcs = template.FuncMap{
	"lower":       strings.ToLower,
	"decap":       naming.Decapitalize,
	"capitalize":  naming.Capitalize,
	"optional":    optionalType,
	"isPtr":       isPointerOptional,
	"validateTag": validateTag,
}

// Render executes the named template against the model and returns the
// artifact text.
func (r *Renderer) Render(name string, model any) (string, error) {
	source, err := r.source(name)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(name).Funcs(funcs).Parse(source)
	if err != nil {
		return "", &TemplateRenderError{Name: name, Err: err}
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, model); err != nil {
		return "", &TemplateRenderError{Name: name, Err: err}
	}
	return b.String(), nil
}

func (r *Renderer) source(name string) (string, error) {
	filename := name + ".tmpl"
	if r.overrideDir != "" {
		data, err := os.ReadFile(filepath.Join(r.overrideDir, filename))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", &TemplateRenderError{Name: name, Err: err}
		}
	}
	data, err := builtin.ReadFile("templates/" + filename)
	if err != nil {
		return "", &TemplateNotFoundError{Name: name}
	}
	return string(data), nil
}

// optionalType wraps a value type in a pointer so an absent JSON key is
// distinguishable from a zero value. Slices and raw JSON already have a
// usable nil.
func optionalType(goType string) string {
	if !isPointerOptional(goType) {
		return goType
	}
	return "*" + goType
}

// isPointerOptional reports whether the optional rendering of a type is a
// pointer, as opposed to a type that already has a usable nil.
func isPointerOptional(goType string) bool {
	return !strings.HasPrefix(goType, "[]") && goType != "json.RawMessage"
}

// validateTag folds the declarative rules into one struct-tag value:
// "required,email,max=120".
func validateTag(rules []builder.Validation) string {
	if len(rules) == 0 {
		return ""
	}
	parts := make([]string, 0, len(rules))
	for _, rule := range rules {
		switch rule.Rule {
		case "maxlen":
			parts = append(parts, "max="+rule.Param)
		case "min":
			parts = append(parts, "min="+rule.Param)
		case "digits":
			parts = append(parts, "digits="+rule.Param)
		default:
			parts = append(parts, rule.Rule)
		}
	}
	return strings.Join(parts, ",")
}
