package lettersmith

import (
	"fmt"
	"slices"
	"sort"
	"time"
)

// Brand describes one publication identity. The map key in Config.Brands is
// the brand id used in form input and export filenames.
type Brand struct {
	Name    string `mapstructure:"brand_name"` // Display name (e.g. "VAYUVEG")
	SiteURL string `mapstructure:"site_url"`   // Canonical site URL
	LogoURL string `mapstructure:"logo_url"`   // Header logo image URL
}

// Config holds all configuration for a lettersmith service. It is built
// once at startup and passed into the App; handlers never read ambient
// global state.
type Config struct {
	Addr string `mapstructure:"addr"` // Listen address (default ":3000")

	Brands       map[string]Brand `mapstructure:"brands"`
	DefaultBrand string           `mapstructure:"default_brand"` // Fallback brand id (default "vayuveg")
	Themes       []string         `mapstructure:"themes"`
	DefaultTheme string           `mapstructure:"default_theme"` // Fallback theme id (default "classic")

	CurrentYear    int    `mapstructure:"current_year"`    // Footer year (default 2026)
	UnsubscribeURL string `mapstructure:"unsubscribe_url"` // Placeholder substituted by the sending platform

	SessionSecret string `mapstructure:"session_secret"` // Editor preference cookie key; random when empty
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	ExportRateLimit  int           `mapstructure:"export_rate_limit"`  // Max exports per IP per window (default 30)
	ExportRateWindow time.Duration `mapstructure:"export_rate_window"` // Rolling window (default 1m)
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if len(c.Brands) == 0 {
		c.Brands = map[string]Brand{
			"vayuveg": {
				Name:    "VAYUVEG",
				SiteURL: "https://www.vayuveg.com",
				LogoURL: "https://www.vayuveg.com/images/WebSiteImg_email%20header.gif",
			},
			"shodhsetu": {
				Name:    "ShodhSetu",
				SiteURL: "https://www.shodhsetu.com",
				LogoURL: "https://www.shodhsetu.com/Encyc/2025/6/28/Logo-Shodhsetu.png",
			},
		}
	}
	if c.DefaultBrand == "" {
		c.DefaultBrand = "vayuveg"
	}
	if len(c.Themes) == 0 {
		c.Themes = []string{"classic", "magazine", "saffron", "shodhsetu"}
	}
	if c.DefaultTheme == "" {
		c.DefaultTheme = "classic"
	}
	if c.CurrentYear == 0 {
		c.CurrentYear = 2026
	}
	if c.UnsubscribeURL == "" {
		c.UnsubscribeURL = "[UNSUBSCRIBE_URL]"
	}
	if c.ExportRateLimit == 0 {
		c.ExportRateLimit = 30
	}
	if c.ExportRateWindow == 0 {
		c.ExportRateWindow = time.Minute
	}
}

// validate checks that the resolver defaults are members of their own
// allow-lists. Violations are configuration defects, caught at startup.
func (c *Config) validate() error {
	if _, ok := c.Brands[c.DefaultBrand]; !ok {
		return fmt.Errorf("lettersmith: default brand %q is not in the brand table", c.DefaultBrand)
	}
	if !slices.Contains(c.Themes, c.DefaultTheme) {
		return fmt.Errorf("lettersmith: default theme %q is not in the theme list", c.DefaultTheme)
	}
	return nil
}

// ResolveBrand returns v when it names a known brand, else the default
// brand id. Unresolved input never reaches the renderer.
func (c Config) ResolveBrand(v string) string {
	if _, ok := c.Brands[v]; ok {
		return v
	}
	return c.DefaultBrand
}

// ResolveTheme returns v when it is an allowed theme, else the default.
func (c Config) ResolveTheme(v string) string {
	if slices.Contains(c.Themes, v) {
		return v
	}
	return c.DefaultTheme
}

// BrandIDs returns the brand ids in stable sorted order for the selectors
// on the dashboard and editor pages.
func (c Config) BrandIDs() []string {
	ids := make([]string, 0, len(c.Brands))
	for id := range c.Brands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
