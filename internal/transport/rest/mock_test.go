package rest

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

type lookupServiceMock struct {
	LookupFunc func(ctx context.Context, query string) (domain.Result, error)

	mu    sync.Mutex
	calls []string
}

func (m *lookupServiceMock) Lookup(ctx context.Context, query string) (domain.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	m.mu.Unlock()
	return m.LookupFunc(ctx, query)
}

func (m *lookupServiceMock) LookupCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func helloEntry() *domain.WordEntry {
	return &domain.WordEntry{
		Word:     "hello",
		Phonetic: "/həˈləʊ/",
		Phonetics: []domain.Phonetic{
			{Text: "/həˈləʊ/"},
			{Text: "/həˈloʊ/", AudioURL: "https://audio.example/hello-us.mp3", Region: "US"},
		},
		Meanings: []domain.Meaning{{
			PartOfSpeech: "noun",
			Definitions:  []domain.Definition{{Text: "A greeting.", Example: "She said hello."}},
			Synonyms:     []string{"greeting"},
		}},
		SourceURLs: []string{"https://en.wiktionary.org/wiki/hello"},
	}
}

// dictionaryMock answers hello, fails on "offline" with a transport error
// and reports everything else as not found.
func dictionaryMock() *lookupServiceMock {
	return &lookupServiceMock{LookupFunc: func(_ context.Context, q string) (domain.Result, error) {
		switch q {
		case "":
			return domain.Result{}, domain.NewValidationError("word", "required")
		case "hello":
			return domain.Ok(q, helloEntry()), nil
		case "offline":
			return domain.Fail(q, domain.NewTransportError()), nil
		default:
			return domain.Fail(q, domain.NewNotFoundError(404)), nil
		}
	}}
}
