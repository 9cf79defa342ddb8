package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/heartmarshall/wordlookup/internal/domain"
)

type palette struct {
	text   lipgloss.Color
	muted  lipgloss.Color
	accent lipgloss.Color
	rule   lipgloss.Color
}

var (
	darkPalette = palette{
		text:   lipgloss.Color("255"),
		muted:  lipgloss.Color("246"),
		accent: lipgloss.Color("135"),
		rule:   lipgloss.Color("240"),
	}
	lightPalette = palette{
		text:   lipgloss.Color("236"),
		muted:  lipgloss.Color("243"),
		accent: lipgloss.Color("98"),
		rule:   lipgloss.Color("250"),
	}
)

// Terminal renders a View as styled text. Font choices map to style
// variants: serif italicises headings, mono frames the entry in a box.
type Terminal struct {
	Width int
}

type termStyles struct {
	headword lipgloss.Style
	phonetic lipgloss.Style
	pos      lipgloss.Style
	label    lipgloss.Style
	body     lipgloss.Style
	example  lipgloss.Style
	list     lipgloss.Style
	rule     lipgloss.Style
	frame    lipgloss.Style
}

func newTermStyles(dark bool, font domain.Font) termStyles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	serif := font == domain.FontSerif

	s := termStyles{
		headword: lipgloss.NewStyle().Bold(true).Foreground(p.text).Italic(serif),
		phonetic: lipgloss.NewStyle().Foreground(p.accent),
		pos:      lipgloss.NewStyle().Bold(true).Italic(true).Foreground(p.text).MarginTop(1),
		label:    lipgloss.NewStyle().Foreground(p.muted),
		body:     lipgloss.NewStyle().Foreground(p.text).Italic(serif),
		example:  lipgloss.NewStyle().Foreground(p.muted),
		list:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		rule:     lipgloss.NewStyle().Foreground(p.rule),
		frame:    lipgloss.NewStyle(),
	}
	if font == domain.FontMono {
		s.frame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.rule).
			Padding(0, 1)
	}
	return s
}

// Render returns the text for v. An empty view renders as "".
func (t Terminal) Render(v View) string {
	st := newTermStyles(v.Dark, v.Font)

	var out string
	switch {
	case v.Word != nil:
		out = t.renderWord(st, v.Word)
	case v.NotFound != nil:
		out = t.renderNotFound(st, v.NotFound)
	default:
		return ""
	}
	return st.frame.Render(out)
}

func (t Terminal) width() int {
	if t.Width <= 0 {
		return 80
	}
	return t.Width
}

func (t Terminal) renderWord(st termStyles, w *WordView) string {
	var b strings.Builder
	wrap := t.width() - 6

	b.WriteString(st.headword.Render(w.Headword))
	b.WriteString("\n")
	if w.Phonetic != "" {
		b.WriteString(st.phonetic.Render(w.Phonetic))
		b.WriteString("\n")
	}
	if w.Audio != nil {
		label := "♪ audio"
		if w.Audio.Region != "" {
			label += " (" + w.Audio.Region + ")"
		}
		b.WriteString(st.label.Render(label + " " + w.Audio.URL))
		b.WriteString("\n")
	}

	for _, m := range w.Meanings {
		b.WriteString(st.pos.Render(m.PartOfSpeech))
		b.WriteString("\n")
		b.WriteString(st.label.Render("Meaning"))
		b.WriteString("\n")
		for _, d := range m.Definitions {
			b.WriteString("  • ")
			b.WriteString(st.body.Width(wrap).Render(d.Text))
			b.WriteString("\n")
			if d.Example != "" {
				b.WriteString("    ")
				b.WriteString(st.example.Width(wrap).Render(d.Example))
				b.WriteString("\n")
			}
		}
		if len(m.Synonyms) > 0 {
			b.WriteString(st.label.Render("Synonyms") + " " + st.list.Render(strings.Join(m.Synonyms, ", ")))
			b.WriteString("\n")
		}
		if len(m.Antonyms) > 0 {
			b.WriteString(st.label.Render("Antonyms") + " " + st.list.Render(strings.Join(m.Antonyms, ", ")))
			b.WriteString("\n")
		}
	}

	if w.Source != nil {
		b.WriteString(st.rule.Render(strings.Repeat("─", min(t.width()-4, 40))))
		b.WriteString("\n")
		b.WriteString(st.label.Render("Source") + " " + st.body.Render(w.Source.URL))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (t Terminal) renderNotFound(st termStyles, nf *NotFoundView) string {
	var b strings.Builder
	b.WriteString("😕\n\n")
	b.WriteString(st.headword.Render(nf.Title))
	if nf.Details != "" {
		b.WriteString("\n")
		b.WriteString(st.label.Width(t.width() - 6).Render(nf.Details))
	}
	return b.String()
}
