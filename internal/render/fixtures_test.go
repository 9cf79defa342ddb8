package render

import "github.com/heartmarshall/wordlookup/internal/domain"

func helloEntry() *domain.WordEntry {
	return &domain.WordEntry{
		Word:     "hello",
		Phonetic: "/həˈləʊ/",
		Phonetics: []domain.Phonetic{
			{Text: "/həˈləʊ/"},
			{Text: "/həˈloʊ/", AudioURL: "https://api.dictionaryapi.dev/media/pronunciations/en/hello-us.mp3", Region: "US"},
		},
		Meanings: []domain.Meaning{
			{
				PartOfSpeech: "noun",
				Definitions: []domain.Definition{
					{Text: `"Hello!" or an equivalent greeting.`},
				},
				Synonyms: []string{"greeting"},
			},
			{
				PartOfSpeech: "verb",
				Definitions: []domain.Definition{
					{Text: "To greet with \"hello\".", Example: "I helloed him across the street."},
				},
			},
		},
		SourceURLs: []string{"https://en.wiktionary.org/wiki/hello"},
		License:    &domain.License{Name: "CC BY-SA 3.0", URL: "https://creativecommons.org/licenses/by-sa/3.0"},
	}
}

func helloResult() *domain.Result {
	r := domain.Ok("hello", helloEntry())
	return &r
}

func notFoundResult() *domain.Result {
	r := domain.Fail("asdfxyz", domain.NewNotFoundError(404))
	return &r
}
