package rest

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/render"
)

// colorSchemeHint is the client hint carrying the browser's dark-mode setting.
const colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

// PageHandler serves the HTML widget.
type PageHandler struct {
	svc     lookupService
	html    *render.HTML
	theme   string
	font    domain.Font
	version string
	log     *slog.Logger
}

// NewPageHandler creates a PageHandler. theme is the configured default
// (auto, dark or light); auto defers to the browser.
func NewPageHandler(svc lookupService, html *render.HTML, theme string, font domain.Font, version string, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		svc:     svc,
		html:    html,
		theme:   theme,
		font:    font,
		version: version,
		log:     logger.With("handler", "page"),
	}
}

// Index renders the page. ?q= triggers a lookup; ?theme= and ?font= carry
// the preferences between requests since nothing is stored server side.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")

	theme := q.Get("theme")
	if theme != domain.ThemeDark && theme != domain.ThemeLight {
		theme = h.theme
	}
	explicit := theme == domain.ThemeDark || theme == domain.ThemeLight

	font, ok := domain.ParseFont(q.Get("font"))
	if !ok {
		font = h.font
	}
	prefs := domain.NewPreferences(theme, font, prefersDark(r))

	var res *domain.Result
	if strings.TrimSpace(query) != "" {
		out, err := h.svc.Lookup(r.Context(), query)
		switch {
		case err != nil:
			h.log.WarnContext(r.Context(), "page lookup rejected", slog.String("error", err.Error()))
		case out.Canceled:
			return
		default:
			res = &out
		}
	}

	page := render.NewPage(render.Build(res, prefs), query, explicit, h.version)

	var buf bytes.Buffer
	if err := h.html.Render(&buf, page); err != nil {
		h.log.ErrorContext(r.Context(), "render page", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if res != nil {
		status = statusFor(*res)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Accept-CH", colorSchemeHint)
	w.Header().Add("Vary", colorSchemeHint)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func prefersDark(r *http.Request) bool {
	return strings.Trim(r.Header.Get(colorSchemeHint), `" `) == domain.ThemeDark
}
