package templates

import (
	"embed"
	"html/template"
)

//go:embed html/*.html
var files embed.FS

// Load parses the embedded page templates. Embedding keeps rendering
// independent of the working directory, which the tests rely on.
func Load() *template.Template {
	return template.Must(template.ParseFS(files, "html/*.html"))
}
