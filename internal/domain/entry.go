package domain

// WordEntry is a single dictionary entry as returned by the lookup provider.
// Only the first entry of a provider response is kept.
type WordEntry struct {
	Word       string
	Phonetic   string
	Phonetics  []Phonetic
	Meanings   []Meaning
	SourceURLs []string
	License    *License
}

// Phonetic is a pronunciation spelling, optionally paired with an audio clip.
type Phonetic struct {
	Text     string
	AudioURL string

	// Region is inferred from the audio file name ("US", "UK"); empty if unknown.
	Region string
}

// Meaning is one part-of-speech sense of a word.
type Meaning struct {
	PartOfSpeech string
	Definitions  []Definition
	Synonyms     []string
	Antonyms     []string
}

// Definition is a single definition with an optional usage example.
type Definition struct {
	Text    string
	Example string
}

// License describes the licence of the entry's source data.
type License struct {
	Name string
	URL  string
}

// AudioURL returns the first non-empty audio URL among the entry's phonetics.
func (e *WordEntry) AudioURL() (string, bool) {
	for _, ph := range e.Phonetics {
		if ph.AudioURL != "" {
			return ph.AudioURL, true
		}
	}
	return "", false
}

// AudioPhonetic returns the phonetic the audio URL belongs to, or nil.
func (e *WordEntry) AudioPhonetic() *Phonetic {
	for i := range e.Phonetics {
		if e.Phonetics[i].AudioURL != "" {
			return &e.Phonetics[i]
		}
	}
	return nil
}

// SourceURL returns the attribution URL shown to the user (the first one).
func (e *WordEntry) SourceURL() (string, bool) {
	if len(e.SourceURLs) == 0 || e.SourceURLs[0] == "" {
		return "", false
	}
	return e.SourceURLs[0], true
}
