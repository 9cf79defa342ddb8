package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	if err := c.UI.validate(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535] (got %d)", c.Server.Port)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (d *DictionaryConfig) validate() error {
	u, err := url.Parse(d.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", d.BaseURL)
	}
	d.BaseURL = strings.TrimRight(d.BaseURL, "/")

	if d.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", d.Timeout)
	}
	if d.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be >= 0 (got %v)", d.RequestsPerSecond)
	}
	return nil
}

func (u *UIConfig) validate() error {
	u.Theme = strings.ToLower(strings.TrimSpace(u.Theme))
	switch u.Theme {
	case domain.ThemeAuto, domain.ThemeDark, domain.ThemeLight:
	default:
		return fmt.Errorf("theme must be one of auto, dark, light (got %q)", u.Theme)
	}

	if _, ok := domain.ParseFont(u.Font); !ok {
		return fmt.Errorf("font must be one of sans, serif, mono (got %q)", u.Font)
	}
	return nil
}

// DefaultFont returns the configured font, parsed.
func (u UIConfig) DefaultFont() domain.Font {
	f, ok := domain.ParseFont(u.Font)
	if !ok {
		return domain.FontSans
	}
	return f
}

// Preferences resolves the configured theme and font against the platform
// hint.
func (u UIConfig) Preferences(prefersDark bool) domain.Preferences {
	return domain.NewPreferences(u.Theme, u.DefaultFont(), prefersDark)
}
