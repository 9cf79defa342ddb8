package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// FontOption is one entry of the font picker.
type FontOption struct {
	Font     domain.Font
	Label    string
	URL      string
	Selected bool
}

// Page is the data behind the HTML page.
type Page struct {
	View  View
	Query string
	// ExplicitTheme is false when the theme came from the browser hint only;
	// the page then also honours prefers-color-scheme in CSS.
	ExplicitTheme  bool
	ToggleThemeURL string
	Fonts          []FontOption
	Version        string
}

// HTML renders pages from the embedded template.
type HTML struct {
	tmpl *template.Template
}

// NewHTML parses the embedded templates.
func NewHTML() (*HTML, error) {
	tmpl, err := template.New("page.html").ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return &HTML{tmpl: tmpl}, nil
}

// NewPage assembles page data. Links keep the query and preferences in the
// URL so that theme and font survive a reload without any server state.
func NewPage(v View, query string, explicitTheme bool, version string) Page {
	prefs := domain.Preferences{Dark: v.Dark, Font: v.Font}
	theme := prefs.ThemeName()
	prefs.ToggleTheme()

	p := Page{
		View:           v,
		Query:          query,
		ExplicitTheme:  explicitTheme,
		ToggleThemeURL: PageURL(query, prefs.ThemeName(), v.Font),
		Fonts:          make([]FontOption, 0, len(domain.Fonts)),
		Version:        version,
	}
	for _, f := range domain.Fonts {
		p.Fonts = append(p.Fonts, FontOption{
			Font:     f,
			Label:    f.Label(),
			URL:      PageURL(query, theme, f),
			Selected: f == v.Font,
		})
	}
	return p
}

// PageURL builds the page link for the given state.
func PageURL(query, theme string, font domain.Font) string {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if theme != "" {
		q.Set("theme", theme)
	}
	if font != "" {
		q.Set("font", font.String())
	}
	return "/?" + q.Encode()
}

// Render writes the page.
func (h *HTML) Render(w io.Writer, p Page) error {
	if err := h.tmpl.Execute(w, p); err != nil {
		return fmt.Errorf("render: execute page: %w", err)
	}
	return nil
}
