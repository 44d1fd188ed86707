// Package views embeds the HTML templates for the login and panel pages.
package views

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Templates parses every embedded page. Each template is named after its file.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(files, "*.html"))
}
