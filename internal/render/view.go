// Package render turns the current lookup result into a display structure
// and presents it as terminal text or HTML.
package render

import (
	"github.com/heartmarshall/wordlookup/internal/domain"
)

// View is the displayable form of one widget state. At most one of Word and
// NotFound is set; both nil means nothing has been looked up yet.
type View struct {
	Dark     bool          `json:"dark"`
	Font     domain.Font   `json:"font"`
	Word     *WordView     `json:"word,omitempty"`
	NotFound *NotFoundView `json:"notFound,omitempty"`
}

// WordView is the rendered word entry.
type WordView struct {
	Headword string        `json:"headword"`
	Phonetic string        `json:"phonetic,omitempty"`
	Audio    *AudioControl `json:"audio,omitempty"`
	Meanings []MeaningView `json:"meanings"`
	Source   *Link         `json:"source,omitempty"`
	License  *Link         `json:"license,omitempty"`
}

// AudioControl is the play control, bound to a single audio clip.
type AudioControl struct {
	URL    string `json:"url"`
	Region string `json:"region,omitempty"`
}

// MeaningView is one part-of-speech section. Synonyms and Antonyms are nil
// when the section must not be shown.
type MeaningView struct {
	PartOfSpeech string           `json:"partOfSpeech"`
	Definitions  []DefinitionView `json:"definitions"`
	Synonyms     []string         `json:"synonyms,omitempty"`
	Antonyms     []string         `json:"antonyms,omitempty"`
}

// DefinitionView is a definition and its example, already quoted.
type DefinitionView struct {
	Text    string `json:"text"`
	Example string `json:"example,omitempty"`
}

// NotFoundView is the neutral panel shown for any lookup error.
type NotFoundView struct {
	Title   string `json:"title"`
	Details string `json:"details"`
}

// Link is an external reference.
type Link struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// Build is a pure function of the result and preferences. A nil or canceled
// result yields an empty view.
func Build(res *domain.Result, prefs domain.Preferences) View {
	v := View{Dark: prefs.Dark, Font: prefs.Font}
	if res == nil || res.Canceled {
		return v
	}

	switch {
	case res.Entry != nil:
		v.Word = buildWord(res.Entry)
	case res.Err != nil:
		v.NotFound = &NotFoundView{
			Title:   res.Err.Title,
			Details: res.Err.Details(),
		}
	}
	return v
}

func buildWord(e *domain.WordEntry) *WordView {
	w := &WordView{
		Headword: e.Word,
		Phonetic: e.Phonetic,
		Meanings: make([]MeaningView, 0, len(e.Meanings)),
	}

	if ph := e.AudioPhonetic(); ph != nil {
		w.Audio = &AudioControl{URL: ph.AudioURL, Region: ph.Region}
	}

	for _, m := range e.Meanings {
		mv := MeaningView{
			PartOfSpeech: m.PartOfSpeech,
			Definitions:  make([]DefinitionView, 0, len(m.Definitions)),
		}
		for _, d := range m.Definitions {
			dv := DefinitionView{Text: d.Text}
			if d.Example != "" {
				dv.Example = `"` + d.Example + `"`
			}
			mv.Definitions = append(mv.Definitions, dv)
		}
		if len(m.Synonyms) > 0 {
			mv.Synonyms = append([]string(nil), m.Synonyms...)
		}
		if len(m.Antonyms) > 0 {
			mv.Antonyms = append([]string(nil), m.Antonyms...)
		}
		w.Meanings = append(w.Meanings, mv)
	}

	if src, ok := e.SourceURL(); ok {
		w.Source = &Link{URL: src, Label: src}
	}
	if e.License != nil && e.License.URL != "" {
		w.License = &Link{URL: e.License.URL, Label: e.License.Name}
	}
	return w
}
