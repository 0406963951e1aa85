package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/desertthunder/streamfront/internal/models"
)

// Page is everything the outer document needs.
type Page struct {
	Title  string
	Markup template.HTML
	State  models.PreloadedState
	Assets Assets
}

type documentData struct {
	Title     string
	Markup    template.HTML
	StateJSON template.JS
	Assets    Assets
}

// Compose produces the full HTML document for a rendered page.
//
// The state is assigned to window.__PRELOADED_STATE__ for the client to hydrate from. [json.Marshal] writes "<" as
// \u003c, so a "</script>" inside any movie field cannot close the inline script.
func Compose(p Page) ([]byte, error) {
	raw, err := json.Marshal(p.State)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}

	data := documentData{
		Title:     p.Title,
		Markup:    p.Markup,
		StateJSON: template.JS(raw),
		Assets:    p.Assets,
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "document.html", data); err != nil {
		return nil, fmt.Errorf("failed to compose document: %w", err)
	}
	return buf.Bytes(), nil
}
