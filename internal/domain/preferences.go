package domain

import "strings"

// Font is the typeface family the result is rendered in.
type Font string

const (
	FontSans  Font = "sans"
	FontSerif Font = "serif"
	FontMono  Font = "mono"
)

// Fonts lists the selectable fonts in picker order.
var Fonts = []Font{FontSans, FontSerif, FontMono}

func (f Font) String() string { return string(f) }

func (f Font) IsValid() bool {
	switch f {
	case FontSans, FontSerif, FontMono:
		return true
	}
	return false
}

// Label is the human-readable name shown in the font picker.
func (f Font) Label() string {
	switch f {
	case FontSerif:
		return "Serif"
	case FontMono:
		return "Mono"
	default:
		return "Sans Serif"
	}
}

// ParseFont accepts a font name or label, case-insensitively.
func ParseFont(s string) (Font, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sans", "sans serif", "sans-serif":
		return FontSans, true
	case "serif":
		return FontSerif, true
	case "mono", "monospace":
		return FontMono, true
	}
	return "", false
}

// Theme values accepted in configuration.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Preferences is the transient presentation state of one UI session.
// Nothing here is persisted.
type Preferences struct {
	Dark bool
	Font Font
}

// NewPreferences resolves the configured theme against the platform hint.
// An unknown theme value behaves like "auto".
func NewPreferences(theme string, font Font, prefersDark bool) Preferences {
	p := Preferences{Dark: prefersDark, Font: font}
	switch strings.ToLower(theme) {
	case ThemeDark:
		p.Dark = true
	case ThemeLight:
		p.Dark = false
	}
	if !p.Font.IsValid() {
		p.Font = FontSans
	}
	return p
}

// ToggleTheme flips the dark flag.
func (p *Preferences) ToggleTheme() {
	p.Dark = !p.Dark
}

// SetFont selects f; invalid values are ignored.
func (p *Preferences) SetFont(f Font) bool {
	if !f.IsValid() {
		return false
	}
	p.Font = f
	return true
}

// CycleFont moves to the next font in picker order.
func (p *Preferences) CycleFont() {
	for i, f := range Fonts {
		if f == p.Font {
			p.Font = Fonts[(i+1)%len(Fonts)]
			return
		}
	}
	p.Font = FontSans
}

// ThemeName returns "dark" or "light".
func (p Preferences) ThemeName() string {
	if p.Dark {
		return ThemeDark
	}
	return ThemeLight
}
