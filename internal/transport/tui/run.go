package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/render"
)

// ErrLookupFailed is returned by Once when the word could not be looked up.
var ErrLookupFailed = errors.New("lookup failed")

// DetectPreferences resolves the configured theme and font against the
// terminal background.
func DetectPreferences(theme string, font domain.Font) domain.Preferences {
	return domain.NewPreferences(theme, font, lipgloss.HasDarkBackground())
}

// Run starts the interactive widget and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, logger *slog.Logger, svc lookupService, prefs domain.Preferences) error {
	m := NewModel(logger, svc, prefs, WithContext(ctx))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Once looks up a single word and writes the rendered result to w.
// The not-found panel is written too; the returned error then wraps
// ErrLookupFailed.
func Once(ctx context.Context, w io.Writer, svc lookupService, word string, prefs domain.Preferences, width int) error {
	res, err := svc.Lookup(ctx, word)
	if err != nil {
		return err
	}
	if res.Canceled {
		return ctx.Err()
	}

	out := render.Terminal{Width: width}.Render(render.Build(&res, prefs))
	if _, err := fmt.Fprintln(w, out); err != nil {
		return fmt.Errorf("tui: write result: %w", err)
	}
	if !res.OK() {
		return fmt.Errorf("%w: %s", ErrLookupFailed, res.Err.Kind)
	}
	return nil
}
