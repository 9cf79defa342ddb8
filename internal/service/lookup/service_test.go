package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockDictionaryProvider struct {
	LookupFunc func(ctx context.Context, word string) (*domain.WordEntry, error)
}

func (m *mockDictionaryProvider) Lookup(ctx context.Context, word string) (*domain.WordEntry, error) {
	return m.LookupFunc(ctx, word)
}

func newTestService(p *mockDictionaryProvider) *Service {
	return NewService(slog.Default(), p)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestService_Lookup_OK(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockDictionaryProvider{
		LookupFunc: func(_ context.Context, word string) (*domain.WordEntry, error) {
			return &domain.WordEntry{Word: word}, nil
		},
	})

	res, err := svc.Lookup(context.Background(), "hello")
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, "hello", res.Entry.Word)
	assert.Nil(t, res.Err)
	assert.False(t, res.Canceled)
}

func TestService_Lookup_SendsQueryLiterally(t *testing.T) {
	t.Parallel()

	var got string
	svc := newTestService(&mockDictionaryProvider{
		LookupFunc: func(_ context.Context, word string) (*domain.WordEntry, error) {
			got = word
			return &domain.WordEntry{Word: word}, nil
		},
	})

	_, err := svc.Lookup(context.Background(), " Hello ")
	require.NoError(t, err)
	assert.Equal(t, " Hello ", got)
}

func TestService_Lookup_EmptyQuery(t *testing.T) {
	t.Parallel()

	called := false
	svc := newTestService(&mockDictionaryProvider{
		LookupFunc: func(_ context.Context, _ string) (*domain.WordEntry, error) {
			called = true
			return nil, nil
		},
	})

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := svc.Lookup(context.Background(), q)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	assert.False(t, called, "provider must not be called for empty queries")
}

func TestService_Lookup_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockDictionaryProvider{
		LookupFunc: func(_ context.Context, _ string) (*domain.WordEntry, error) {
			return nil, fmt.Errorf("wrapped: %w", domain.NewNotFoundError(404))
		},
	})

	res, err := svc.Lookup(context.Background(), "asdfxyz")
	require.NoError(t, err)
	assert.False(t, res.OK())
	require.NotNil(t, res.Err)
	assert.Nil(t, res.Entry)
	assert.Equal(t, domain.LookupFailed, res.Err.Kind)
	assert.NotEmpty(t, res.Err.Title)
	assert.NotEmpty(t, res.Err.Message)
}

func TestService_Lookup_TransportErrorSurfacesAsResult(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockDictionaryProvider{
		LookupFunc: func(_ context.Context, _ string) (*domain.WordEntry, error) {
			return nil, errors.Join(domain.ErrTransport, errors.New("connection refused"))
		},
	})

	res, err := svc.Lookup(context.Background(), "hello")
	require.NoError(t, err)
	require.NotNil(t, res.Err)
	assert.Nil(t, res.Entry)
	assert.Equal(t, domain.TransportFailed, res.Err.Kind)
	assert.Equal(t, domain.TransportTitle, res.Err.Title)
	assert.NotEmpty(t, res.Err.Message)
}

func TestService_Lookup_NilEntryIsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockDictionaryProvider{
		LookupFunc: func(_ context.Context, _ string) (*domain.WordEntry, error) {
			return nil, nil
		},
	})

	res, err := svc.Lookup(context.Background(), "ghost")
	require.NoError(t, err)
	require.NotNil(t, res.Err)
	assert.Equal(t, domain.LookupFailed, res.Err.Kind)
}

func TestService_Lookup_CanceledCaller(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	svc := newTestService(&mockDictionaryProvider{
		LookupFunc: func(_ context.Context, word string) (*domain.WordEntry, error) {
			<-release
			return &domain.WordEntry{Word: word}, nil
		},
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.Lookup(ctx, "slow")
	require.NoError(t, err)
	assert.True(t, res.Canceled)
	assert.Nil(t, res.Entry)
	assert.Nil(t, res.Err)
}

func TestService_Lookup_CoalescesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	svc := newTestService(&mockDictionaryProvider{
		LookupFunc: func(_ context.Context, word string) (*domain.WordEntry, error) {
			calls.Add(1)
			<-release
			return &domain.WordEntry{Word: word}, nil
		},
	})

	const n = 5
	var wg sync.WaitGroup
	results := make([]domain.Result, n)
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = svc.Lookup(context.Background(), "hello")
		}()
	}

	// Let every goroutine join the in-flight call before releasing it.
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		require.True(t, r.OK())
		assert.Equal(t, "hello", r.Entry.Word)
	}
}

func TestService_Lookup_DistinctWordsNotCoalesced(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	svc := newTestService(&mockDictionaryProvider{
		LookupFunc: func(_ context.Context, word string) (*domain.WordEntry, error) {
			calls.Add(1)
			return &domain.WordEntry{Word: word}, nil
		},
	})

	for _, w := range []string{"a", "b", "a"} {
		_, err := svc.Lookup(context.Background(), w)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load(), "sequential lookups are never cached")
}
