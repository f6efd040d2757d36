// Package generator renders project and component templates onto disk.
//
// Every generator plans its full output first and writes nothing until
// the whole plan is built, so a validation or compile failure never
// leaves a partial component behind.
package generator

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/loomworks/loom/internal/naming"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer renders the embedded component templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded template set.
func NewRenderer() (*Renderer, error) {
	t := template.New("loom").Funcs(template.FuncMap{
		"snake":  naming.Snake,
		"pascal": naming.Pascal,
		"kebab":  naming.Kebab,
		"lower":  strings.ToLower,
		"upper":  strings.ToUpper,
	})
	t, err := t.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named template.
func (r *Renderer) Render(name string, data any) (string, error) {
	var b strings.Builder
	if err := r.templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return b.String(), nil
}
