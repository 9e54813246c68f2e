// Package template expands Go text/template placeholders in configuration
// values such as dataset paths.
package template

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/ports"
)

// templateConfig holds configuration for the GoTemplateEngine.
type templateConfig struct {
	strict bool // Fail on missing keys
}

func defaultTemplateConfig() templateConfig {
	return templateConfig{
		strict: true,
	}
}

// TemplateOption configures a GoTemplateEngine.
type TemplateOption func(*templateConfig)

// WithStrict enables/disables strict mode for missing keys.
// When enabled (default), rendering fails if a referenced key is missing.
func WithStrict(enabled bool) TemplateOption {
	return func(c *templateConfig) {
		c.strict = enabled
	}
}

// GoTemplateEngine implements ports.TemplateEngine using text/template.
type GoTemplateEngine struct {
	config templateConfig
}

var _ ports.TemplateEngine = (*GoTemplateEngine)(nil)

// NewGoTemplateEngine creates a new GoTemplateEngine.
func NewGoTemplateEngine(opts ...TemplateOption) *GoTemplateEngine {
	cfg := defaultTemplateConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GoTemplateEngine{config: cfg}
}

// Render executes raw as a template with vars as its data, so {{.split}}
// refers to vars["split"].
func (e *GoTemplateEngine) Render(raw []byte, vars map[string]any) ([]byte, error) {
	tmpl := template.New("value")

	if e.config.strict {
		tmpl = tmpl.Option("missingkey=error")
	}

	tmpl, err := tmpl.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}

// DatasetPath expands the dataset path of cfg. Templates may reference
// {{.split}} and {{.task}}.
func DatasetPath(engine ports.TemplateEngine, cfg entities.Config) (string, error) {
	out, err := engine.Render([]byte(cfg.Dataset.Path), map[string]any{
		"split": cfg.Dataset.Split,
		"task":  cfg.Task.Type,
	})
	if err != nil {
		return "", fmt.Errorf("dataset path %q: %w", cfg.Dataset.Path, err)
	}
	return string(out), nil
}
