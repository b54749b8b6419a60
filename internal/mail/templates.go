package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	texttemplate "text/template"
	"time"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

// Template names.
const (
	TemplateVerification = "verification"
	TemplateReset        = "reset"
	TemplateWelcome      = "welcome"
)

// TemplateData is passed to every template.
type TemplateData struct {
	AppName   string
	Name      string
	Link      string
	ExpiresIn string
}

// Templates holds the parsed HTML and text variant of every message.
type Templates struct {
	html map[string]*htmltemplate.Template
	text map[string]*texttemplate.Template
}

// ParseTemplates parses the embedded templates.
func ParseTemplates() (*Templates, error) {
	t := &Templates{
		html: make(map[string]*htmltemplate.Template),
		text: make(map[string]*texttemplate.Template),
	}

	for _, name := range []string{TemplateVerification, TemplateReset, TemplateWelcome} {
		h, err := htmltemplate.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s html template: %w", name, err)
		}
		txt, err := texttemplate.ParseFS(templateFS, "templates/"+name+".txt")
		if err != nil {
			return nil, fmt.Errorf("parsing %s text template: %w", name, err)
		}
		t.html[name] = h
		t.text[name] = txt
	}

	return t, nil
}

// Render executes both variants of the named template.
func (t *Templates) Render(name string, data TemplateData) (html, text string, err error) {
	h, ok := t.html[name]
	if !ok {
		return "", "", fmt.Errorf("%w: unknown template %q", ErrRendering, name)
	}

	var hb, tb bytes.Buffer
	if err = h.ExecuteTemplate(&hb, "layout", data); err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrRendering, name, err)
	}
	if err = t.text[name].Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrRendering, name, err)
	}

	return hb.String(), tb.String(), nil
}

// humanDuration formats whole hours or minutes for email copy.
func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
