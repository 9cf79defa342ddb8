package freedict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 4 << 20
	retryDelay   = 500 * time.Millisecond
)

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      bool
	userAgent  string
	log        *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL (tests, mirrors).
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Provider) {
		p.httpClient.Timeout = timeout
	}
}

// WithRetry enables a single retry on 5xx or network errors.
func WithRetry(enabled bool) Option {
	return func(p *Provider) {
		p.retry = enabled
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables it.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(p *Provider) {
		if requestsPerSecond <= 0 {
			p.limiter = nil
			return
		}
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(p *Provider) {
		p.userAgent = ua
	}
}

// NewProvider creates a Provider with the default FreeDictionary API URL.
func NewProvider(logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logger.With("adapter", "freedict"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Lookup fetches the dictionary entry for word.
//
// The first entry of the response is returned; later entries are dropped.
// A non-2xx response is returned as a *domain.LookupError of kind LookupFailed.
// Network and decoding failures wrap domain.ErrTransport.
func (p *Provider) Lookup(ctx context.Context, word string) (*domain.WordEntry, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("freedict: rate limit: %w", errors.Join(domain.ErrTransport, err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w", errors.Join(domain.ErrTransport, err))
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.do(ctx, req, word)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: request failed: %w", errors.Join(domain.ErrTransport, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w", errors.Join(domain.ErrTransport, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		lookupErr := decodeAPIError(body, resp.StatusCode)
		p.log.DebugContext(ctx, "freedict lookup failed",
			slog.String("word", word),
			slog.Int("status", resp.StatusCode),
			slog.String("title", lookupErr.Title),
		)
		return nil, lookupErr
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w", errors.Join(domain.ErrTransport, err))
	}

	if len(entries) == 0 {
		return nil, domain.NewNotFoundError(resp.StatusCode)
	}

	entry := mapEntry(entries[0])

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("entries", len(entries)),
		slog.Int("meanings", len(entry.Meanings)),
		slog.Int("phonetics", len(entry.Phonetics)),
	)

	return entry, nil
}

// Ping checks that the dictionary host answers. Any response below 500
// counts as reachable; the API itself has no health endpoint.
func (p *Provider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.baseURL, nil)
	if err != nil {
		return fmt.Errorf("freedict: create ping request: %w", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("freedict: ping: %w", errors.Join(domain.ErrTransport, err))
	}
	resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("freedict: ping: status %d: %w", resp.StatusCode, domain.ErrTransport)
	}
	return nil
}

// do executes the request, retrying once on 5xx or network errors when enabled.
func (p *Provider) do(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)
	if !p.retry {
		return resp, err
	}

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return p.httpClient.Do(req)
}

// decodeAPIError builds the LookupError for a non-2xx response. Missing
// fields fall back to the generic not-found texts.
func decodeAPIError(body []byte, status int) *domain.LookupError {
	le := domain.NewNotFoundError(status)

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil || (apiErr.Title == "" && apiErr.Message == "") {
		if status != http.StatusNotFound {
			le.Message = fmt.Sprintf("The dictionary service answered %d %s.", status, http.StatusText(status))
		}
		return le
	}

	if apiErr.Title != "" {
		le.Title = apiErr.Title
	}
	if apiErr.Message != "" {
		le.Message = apiErr.Message
	}
	le.Resolution = apiErr.Resolution
	return le
}
