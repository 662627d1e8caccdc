package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/invoice.html.tmpl
var templateFS embed.FS

var invoiceTemplate = template.Must(template.ParseFS(templateFS, "templates/invoice.html.tmpl"))

// HTMLRenderer gera um documento HTML A4 autocontido, sem recursos externos
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer cria um novo HTMLRenderer
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: invoiceTemplate}
}

// ContentType retorna o tipo MIME do documento
func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

// Extension retorna a extensão de arquivo do documento
func (r *HTMLRenderer) Extension() string { return ".html" }

// Render gera o HTML da fatura. Todos os valores são escapados.
func (r *HTMLRenderer) Render(in Input) ([]byte, error) {
	doc, err := buildDocument(in)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("erro ao renderizar fatura %s: %w", doc.Number, err)
	}
	return buf.Bytes(), nil
}
