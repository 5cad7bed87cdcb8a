package grading

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/identity"
)

// Template is the active scoring template: the category point budget a
// grading run scores against. Category maxima must be positive; the
// default template's maxima sum to 100.
type Template struct {
	Version    string             `yaml:"version" json:"version"`
	Categories map[string]float64 `yaml:"categories" json:"categories"`
}

// DefaultTemplateVersion identifies the built-in template.
const DefaultTemplateVersion = "2.0.0"

// DefaultTemplate returns the built-in category budget. It mirrors the
// registry's per-category maxima so unweighted grading of a clean spec
// lands on exactly 100.
func DefaultTemplate() Template {
	return Template{
		Version: DefaultTemplateVersion,
		Categories: map[string]float64{
			"naming":     10,
			"pagination": 10,
			"http":       15,
			"caching":    10,
			"envelope":   10,
			"i18n":       10,
			"async":      10,
			"webhooks":   10,
			"extensions": 5,
			"security":   10,
		},
	}
}

// LoadTemplate reads a scoring template from a YAML file. An empty
// path returns the default template.
func LoadTemplate(path string) (Template, error) {
	if path == "" {
		return DefaultTemplate(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("grading: reading template %s: %w", path, err)
	}

	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("grading: parsing template %s: %w", path, err)
	}
	if t.Version == "" {
		return Template{}, fmt.Errorf("grading: template %s has no version", path)
	}
	if len(t.Categories) == 0 {
		return Template{}, fmt.Errorf("grading: template %s defines no categories", path)
	}
	for cat, max := range t.Categories {
		if max <= 0 {
			return Template{}, fmt.Errorf("grading: template %s: category %q has non-positive budget %v", path, cat, max)
		}
	}
	return t, nil
}

// Hash fingerprints the template via canonical serialization, so key
// order in the YAML source never changes the identity.
func (t Template) Hash() string {
	cats := make(map[string]any, len(t.Categories))
	for k, v := range t.Categories {
		cats[k] = v
	}
	return identity.HashValue(map[string]any{
		"version":    t.Version,
		"categories": cats,
	})
}

// CategoryNames returns the template's categories in sorted order.
func (t Template) CategoryNames() []string {
	names := make([]string, 0, len(t.Categories))
	for c := range t.Categories {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}
