package freedict

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJSONServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const helloBody = `[{"word":"hello","phonetic":"/həˈloʊ/","phonetics":[{"text":"/həˈloʊ/","audio":""}],"meanings":[{"partOfSpeech":"exclamation","definitions":[{"definition":"used as a greeting.","example":"hello there, Katie!"}],"synonyms":[],"antonyms":[]}],"sourceUrls":["https://en.wiktionary.org/wiki/hello"]}]`

func TestProvider_Lookup_Success(t *testing.T) {
	t.Parallel()

	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(helloBody))
	}))
	defer srv.Close()

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL+"/"))
	entry, err := p.Lookup(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/hello" {
		t.Errorf("path = %q, want /hello", gotPath)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if entry.Word != "hello" {
		t.Errorf("Word = %q, want %q", entry.Word, "hello")
	}
	if entry.Phonetic != "/həˈloʊ/" {
		t.Errorf("Phonetic = %q", entry.Phonetic)
	}
	if len(entry.Meanings) != 1 {
		t.Fatalf("len(Meanings) = %d, want 1", len(entry.Meanings))
	}
	m := entry.Meanings[0]
	if m.PartOfSpeech != "exclamation" {
		t.Errorf("PartOfSpeech = %q", m.PartOfSpeech)
	}
	if len(m.Definitions) != 1 || m.Definitions[0].Example != "hello there, Katie!" {
		t.Errorf("Definitions = %+v", m.Definitions)
	}
	if len(m.Synonyms) != 0 || len(m.Antonyms) != 0 {
		t.Errorf("expected no synonyms/antonyms, got %v / %v", m.Synonyms, m.Antonyms)
	}
	if len(entry.SourceURLs) != 1 || entry.SourceURLs[0] != "https://en.wiktionary.org/wiki/hello" {
		t.Errorf("SourceURLs = %v", entry.SourceURLs)
	}
	if _, ok := entry.AudioURL(); ok {
		t.Error("expected no audio URL")
	}
}

func TestProvider_Lookup_EscapesWord(t *testing.T) {
	t.Parallel()

	var gotRawPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"word":"ice cream"}]`))
	}))
	defer srv.Close()

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL))
	if _, err := p.Lookup(context.Background(), "ice cream"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRawPath != "/ice%20cream" {
		t.Errorf("escaped path = %q, want /ice%%20cream", gotRawPath)
	}
}

func TestProvider_Lookup_MultipleEntriesKeepsFirst(t *testing.T) {
	t.Parallel()

	body := `[
		{"word":"run","meanings":[{"partOfSpeech":"verb","definitions":[{"definition":"To move fast."}]}]},
		{"word":"run","meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"An act of running."}]}]}
	]`
	srv := newJSONServer(t, http.StatusOK, body)

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL))
	entry, err := p.Lookup(context.Background(), "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entry.Meanings) != 1 {
		t.Fatalf("len(Meanings) = %d, want 1 (later entries dropped)", len(entry.Meanings))
	}
	if entry.Meanings[0].PartOfSpeech != "verb" {
		t.Errorf("PartOfSpeech = %q, want verb", entry.Meanings[0].PartOfSpeech)
	}
}

func TestProvider_Lookup_NotFound(t *testing.T) {
	t.Parallel()

	srv := newJSONServer(t, http.StatusNotFound,
		`{"title":"No Definitions Found","message":"Sorry pal, we couldn't find definitions for the word you were looking for.","resolution":"You can try the search again at later time or head to the web instead."}`)

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL))
	entry, err := p.Lookup(context.Background(), "asdfxyz")
	if entry != nil {
		t.Fatalf("expected nil entry, got %+v", entry)
	}

	le, ok := domain.AsLookupError(err)
	if !ok {
		t.Fatalf("expected *domain.LookupError, got %T: %v", err, err)
	}
	if le.Kind != domain.LookupFailed {
		t.Errorf("Kind = %q, want LookupFailed", le.Kind)
	}
	if le.Title != "No Definitions Found" || le.Message == "" || le.Resolution == "" {
		t.Errorf("unexpected error payload: %+v", le)
	}
	if le.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", le.Status)
	}
	if errors.Is(err, domain.ErrTransport) {
		t.Error("not-found must not be a transport error")
	}
}

func TestProvider_Lookup_NonJSONErrorBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL))
	_, err := p.Lookup(context.Background(), "word")

	le, ok := domain.AsLookupError(err)
	if !ok {
		t.Fatalf("expected LookupError, got %v", err)
	}
	if le.Kind != domain.LookupFailed {
		t.Errorf("Kind = %q, want LookupFailed", le.Kind)
	}
	if le.Title != domain.NotFoundTitle {
		t.Errorf("Title = %q", le.Title)
	}
	if le.Message != "The dictionary service answered 502 Bad Gateway." {
		t.Errorf("Message = %q", le.Message)
	}
}

func TestProvider_Lookup_EmptyArray(t *testing.T) {
	t.Parallel()

	srv := newJSONServer(t, http.StatusOK, `[]`)

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL))
	_, err := p.Lookup(context.Background(), "empty")

	le, ok := domain.AsLookupError(err)
	if !ok || le.Kind != domain.LookupFailed {
		t.Fatalf("expected LookupFailed for empty array, got %v", err)
	}
}

func TestProvider_Lookup_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := newJSONServer(t, http.StatusOK, `not valid json`)

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL))
	_, err := p.Lookup(context.Background(), "bad")
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !errors.Is(err, domain.ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
	if _, ok := domain.AsLookupError(err); ok {
		t.Error("decode failure must not be a LookupError")
	}
}

func TestProvider_Lookup_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewProvider(newTestLogger(), WithBaseURL(url))
	_, err := p.Lookup(context.Background(), "offline")
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestProvider_Lookup_NoRetryByDefault(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL))
	_, err := p.Lookup(context.Background(), "fail")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := callCount.Load(); got != 1 {
		t.Errorf("call count = %d, want 1", got)
	}
}

func TestProvider_Lookup_ServerErrorRetrySuccess(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := callCount.Add(1)
		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"word":"test","phonetics":[],"meanings":[]}]`))
	}))
	defer srv.Close()

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL), WithRetry(true))
	entry, err := p.Lookup(context.Background(), "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Word != "test" {
		t.Errorf("Word = %q, want %q", entry.Word, "test")
	}
	if got := callCount.Load(); got != 2 {
		t.Errorf("call count = %d, want 2", got)
	}
}

func TestProvider_Lookup_ServerErrorBothAttemptsFail(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL), WithRetry(true))
	_, err := p.Lookup(context.Background(), "fail")

	le, ok := domain.AsLookupError(err)
	if !ok {
		t.Fatalf("expected LookupError after exhausted retry, got %v", err)
	}
	if le.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", le.Status)
	}
	if got := callCount.Load(); got != 2 {
		t.Errorf("call count = %d, want 2", got)
	}
}

func TestProvider_Lookup_ContextCanceled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Lookup(ctx, "slow")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded in chain, got %v", err)
	}
	if !errors.Is(err, domain.ErrTransport) {
		t.Errorf("expected ErrTransport in chain, got %v", err)
	}
}

func TestProvider_Lookup_UserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`[{"word":"ua"}]`))
	}))
	defer srv.Close()

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL), WithUserAgent("wordlookup-test"))
	if _, err := p.Lookup(context.Background(), "ua"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "wordlookup-test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestProvider_Lookup_RateLimitHonorsContext(t *testing.T) {
	t.Parallel()

	srv := newJSONServer(t, http.StatusOK, `[{"word":"a"}]`)

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL), WithRateLimit(0.001))
	if _, err := p.Lookup(context.Background(), "a"); err != nil {
		t.Fatalf("first call should use the burst token: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.Lookup(ctx, "a")
	if !errors.Is(err, domain.ErrTransport) {
		t.Errorf("expected ErrTransport when limiter wait exceeds deadline, got %v", err)
	}
}

func TestProvider_Ping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "ok", status: http.StatusOK},
		{name: "not found still reachable", status: http.StatusNotFound},
		{name: "server error", status: http.StatusBadGateway, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var method string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				method = r.Method
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			p := NewProvider(newTestLogger(), WithBaseURL(srv.URL))
			err := p.Ping(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Ping() error = %v, wantErr %v", err, tt.wantErr)
			}
			if method != http.MethodHead {
				t.Errorf("method = %q, want HEAD", method)
			}
			if tt.wantErr && !errors.Is(err, domain.ErrTransport) {
				t.Errorf("expected ErrTransport, got %v", err)
			}
		})
	}
}

func TestProvider_Ping_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewProvider(newTestLogger(), WithBaseURL(url))
	if err := p.Ping(context.Background()); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}
