package lookup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"golang.org/x/sync/singleflight"
)

type dictionaryProvider interface {
	Lookup(ctx context.Context, word string) (*domain.WordEntry, error)
}

// Service turns a submitted query into a domain.Result.
type Service struct {
	log      *slog.Logger
	provider dictionaryProvider
	group    singleflight.Group
}

// NewService creates a new lookup service.
func NewService(logger *slog.Logger, provider dictionaryProvider) *Service {
	return &Service{
		log:      logger.With("service", "lookup"),
		provider: provider,
	}
}

// Validate checks a raw query. Only emptiness is rejected; the word is
// otherwise sent to the provider as typed.
func Validate(query string) error {
	if strings.TrimSpace(query) == "" {
		return domain.NewValidationError("word", "required")
	}
	return nil
}

// Lookup resolves query against the dictionary provider. Every failure is
// folded into the returned Result; only an empty query returns an error.
//
// Identical concurrent lookups share one upstream request. Nothing is kept
// once the shared call returns.
func (s *Service) Lookup(ctx context.Context, query string) (domain.Result, error) {
	if err := Validate(query); err != nil {
		return domain.Result{}, err
	}

	ch := s.group.DoChan(query, func() (any, error) {
		// Detached from the first caller so one cancellation does not fail
		// the others sharing this call.
		return s.provider.Lookup(context.WithoutCancel(ctx), query)
	})

	select {
	case <-ctx.Done():
		s.log.DebugContext(ctx, "lookup canceled", slog.String("word", query))
		return domain.Result{Word: query, Canceled: true}, nil
	case res := <-ch:
		return s.toResult(ctx, query, res.Val, res.Err), nil
	}
}

func (s *Service) toResult(ctx context.Context, query string, val any, err error) domain.Result {
	if err == nil {
		entry, _ := val.(*domain.WordEntry)
		if entry == nil {
			return domain.Fail(query, domain.NewNotFoundError(0))
		}
		s.log.InfoContext(ctx, "lookup ok",
			slog.String("word", query),
			slog.Int("meanings", len(entry.Meanings)),
		)
		return domain.Ok(query, entry)
	}

	if le, ok := domain.AsLookupError(err); ok {
		s.log.InfoContext(ctx, "lookup failed",
			slog.String("word", query),
			slog.String("title", le.Title),
			slog.Int("status", le.Status),
		)
		return domain.Fail(query, le)
	}

	s.log.ErrorContext(ctx, "lookup transport error",
		slog.String("word", query),
		slog.String("error", err.Error()),
	)
	return domain.Fail(query, domain.NewTransportError())
}
