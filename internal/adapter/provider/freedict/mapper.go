package freedict

import (
	"strings"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

// mapEntry converts one API entry into a domain.WordEntry, keeping the
// order of meanings, definitions, synonyms and antonyms as received.
func mapEntry(e apiEntry) *domain.WordEntry {
	entry := &domain.WordEntry{
		Word:       e.Word,
		Phonetic:   e.Phonetic,
		Phonetics:  make([]domain.Phonetic, 0, len(e.Phonetics)),
		Meanings:   make([]domain.Meaning, 0, len(e.Meanings)),
		SourceURLs: nonEmpty(e.SourceURLs),
	}

	for _, ph := range e.Phonetics {
		if ph.Text == "" && ph.Audio == "" {
			continue
		}
		entry.Phonetics = append(entry.Phonetics, domain.Phonetic{
			Text:     ph.Text,
			AudioURL: ph.Audio,
			Region:   inferRegion(ph.Audio),
		})
	}

	for _, m := range e.Meanings {
		meaning := domain.Meaning{
			PartOfSpeech: m.PartOfSpeech,
			Definitions:  make([]domain.Definition, 0, len(m.Definitions)),
			Synonyms:     nonEmpty(m.Synonyms),
			Antonyms:     nonEmpty(m.Antonyms),
		}
		for _, d := range m.Definitions {
			meaning.Definitions = append(meaning.Definitions, domain.Definition{
				Text:    d.Definition,
				Example: d.Example,
			})
		}
		entry.Meanings = append(entry.Meanings, meaning)
	}

	if e.License != nil && (e.License.Name != "" || e.License.URL != "") {
		entry.License = &domain.License{Name: e.License.Name, URL: e.License.URL}
	}

	return entry
}

// nonEmpty drops empty strings and always returns a non-nil slice.
func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// inferRegion attempts to determine the pronunciation region from the audio URL.
func inferRegion(audioURL string) string {
	lower := strings.ToLower(audioURL)
	if strings.Contains(lower, "-us.") || strings.Contains(lower, "-us-") {
		return "US"
	}
	if strings.Contains(lower, "-uk.") || strings.Contains(lower, "-uk-") {
		return "UK"
	}
	if strings.Contains(lower, "-au.") || strings.Contains(lower, "-au-") {
		return "AU"
	}
	return ""
}
