// Package session holds the transient state of one lookup widget: the query
// being typed, the current result, and the presentation preferences.
//
// State is not safe for concurrent use. It is owned by a single UI event
// loop; lookups run elsewhere and report back through Resolve.
package session

import (
	"strings"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

// Ticket identifies one submission. Only the latest ticket may resolve.
type Ticket uint64

// State is the widget state owned by the top-level view.
type State struct {
	Query string
	Prefs domain.Preferences

	result  *domain.Result
	seq     Ticket
	pending bool
	word    string
}

// New creates a State with the given preferences and nothing displayed.
func New(prefs domain.Preferences) *State {
	return &State{Prefs: prefs}
}

// SetQuery records the current input value.
func (s *State) SetQuery(q string) {
	s.Query = q
}

// Submit starts a lookup for the current query. It returns false, and changes
// nothing, when the query is blank. Any earlier pending submission becomes
// stale; its Resolve call will be ignored.
func (s *State) Submit() (Ticket, string, bool) {
	if strings.TrimSpace(s.Query) == "" {
		return 0, "", false
	}
	s.seq++
	s.pending = true
	s.word = s.Query
	return s.seq, s.word, true
}

// Resolve applies the outcome of the submission identified by t. Results for
// stale tickets and canceled lookups are dropped. An applied result replaces
// the previous one entirely, whichever kind it was.
func (s *State) Resolve(t Ticket, res domain.Result) bool {
	if t != s.seq || !s.pending {
		return false
	}
	if res.Canceled {
		return false
	}
	s.pending = false
	r := res
	s.result = &r
	return true
}

// Loading reports whether the latest submission is still in flight.
func (s *State) Loading() bool {
	return s.pending
}

// Pending returns the word of the in-flight submission, if any.
func (s *State) Pending() (string, bool) {
	return s.word, s.pending
}

// Result returns the displayed result, or nil when nothing was looked up yet.
func (s *State) Result() *domain.Result {
	return s.result
}

// Entry returns the displayed word entry, or nil.
func (s *State) Entry() *domain.WordEntry {
	if s.result == nil {
		return nil
	}
	return s.result.Entry
}

// Err returns the displayed lookup error, or nil.
func (s *State) Err() *domain.LookupError {
	if s.result == nil {
		return nil
	}
	return s.result.Err
}

// Abandon clears the state when t is the latest pending submission and
// reports whether it did. Stale tickets leave everything untouched.
func (s *State) Abandon(t Ticket) bool {
	if t != s.seq || !s.pending {
		return false
	}
	s.Clear()
	return true
}

// Clear drops the displayed result and abandons any pending submission.
func (s *State) Clear() {
	s.result = nil
	s.pending = false
	s.seq++
}
