package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/render"
)

// lookupService performs one dictionary lookup.
type lookupService interface {
	Lookup(ctx context.Context, query string) (domain.Result, error)
}

// ErrorResponse is the JSON body of a rejected request.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// EntryHandler serves the JSON lookup API.
type EntryHandler struct {
	svc      lookupService
	defaults domain.Preferences
	log      *slog.Logger
}

// NewEntryHandler creates an EntryHandler. defaults apply when the request
// does not choose a theme or font.
func NewEntryHandler(svc lookupService, defaults domain.Preferences, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{svc: svc, defaults: defaults, log: logger.With("handler", "entries")}
}

// Get looks up {word} and returns the rendered view. The status follows the
// result: 200 entry, 404 lookup failed, 502 transport failed, 400 bad input.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	word, err := wordParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "malformed word"})
		return
	}

	res, err := h.svc.Lookup(r.Context(), word)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if res.Canceled {
		// The client went away; nobody reads the answer.
		return
	}

	prefs := preferencesFromQuery(r.URL.Query(), h.defaults)
	writeJSON(w, statusFor(res), render.Build(&res, prefs))
}

// wordParam returns {word} as the client typed it. chi routes on RawPath
// when the path carries escapes that Path cannot represent (such as %2F);
// only then is the captured segment still escaped.
func wordParam(r *http.Request) (string, error) {
	word := chi.URLParam(r, "word")
	if r.URL.RawPath == "" {
		return word, nil
	}
	return url.PathUnescape(word)
}

func (h *EntryHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: ve.Errors})
		return
	}
	h.log.ErrorContext(r.Context(), "lookup failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func statusFor(res domain.Result) int {
	switch {
	case res.OK():
		return http.StatusOK
	case res.Err != nil && res.Err.Kind == domain.TransportFailed:
		return http.StatusBadGateway
	default:
		return http.StatusNotFound
	}
}

// preferencesFromQuery reads ?theme= and ?font=, falling back to defaults.
func preferencesFromQuery(q url.Values, defaults domain.Preferences) domain.Preferences {
	prefs := defaults
	switch q.Get("theme") {
	case domain.ThemeDark:
		prefs.Dark = true
	case domain.ThemeLight:
		prefs.Dark = false
	}
	if f, ok := domain.ParseFont(q.Get("font")); ok {
		prefs.Font = f
	}
	return prefs
}
