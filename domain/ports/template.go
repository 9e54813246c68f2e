package ports

// TemplateEngine expands placeholders in raw text, such as a dataset path
// containing {{.split}}.
type TemplateEngine interface {
	Render(raw []byte, vars map[string]any) ([]byte, error)
}
