package lettersmith

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
)

// themeFS carries the newsletter template artifacts, one file per
// (theme, brand) pair at themes/<theme>/<brand>.html.
//
//go:embed themes
var themeFS embed.FS

// newsletterData is the rendering context every theme template receives.
// UnsubscribeURL is template.URL so the literal placeholder token survives
// href attribute normalization for the sending platform to substitute.
type newsletterData struct {
	BrandName      string
	SiteURL        string
	LogoURL        string
	CurrentYear    int
	UnsubscribeURL template.URL
	Articles       []Article
}

// TemplateSet holds the compiled newsletter templates, keyed by
// theme/brand. Construction verifies that every allow-listed combination
// has an artifact, so a missing file is a startup error and the render
// path needs no not-found branch.
type TemplateSet struct {
	cfg       Config
	templates map[string]*template.Template
}

// NewTemplateSet compiles one template per (theme, brand) combination in
// cfg, failing on the first combination without an embedded artifact.
func NewTemplateSet(cfg Config) (*TemplateSet, error) {
	ts := &TemplateSet{
		cfg:       cfg,
		templates: make(map[string]*template.Template, len(cfg.Themes)*len(cfg.Brands)),
	}
	for _, theme := range cfg.Themes {
		for brandID := range cfg.Brands {
			name := path.Join("themes", theme, brandID+".html")
			tmpl, err := template.ParseFS(themeFS, name)
			if err != nil {
				return nil, fmt.Errorf("lettersmith: no template artifact for theme %q brand %q: %w", theme, brandID, err)
			}
			ts.templates[templateKey(theme, brandID)] = tmpl
		}
	}
	return ts, nil
}

// Render writes the newsletter for the given brand and theme to w. Both
// ids must already be resolved; articles must already be normalized, and
// no further sanitization happens here.
func (ts *TemplateSet) Render(w io.Writer, brandID, theme string, articles []Article) error {
	brand := ts.cfg.Brands[brandID]
	tmpl, ok := ts.templates[templateKey(theme, brandID)]
	if !ok {
		// Only reachable when callers bypass the resolvers.
		return fmt.Errorf("lettersmith: no compiled template for theme %q brand %q", theme, brandID)
	}
	return tmpl.Execute(w, newsletterData{
		BrandName:      brand.Name,
		SiteURL:        brand.SiteURL,
		LogoURL:        brand.LogoURL,
		CurrentYear:    ts.cfg.CurrentYear,
		UnsubscribeURL: template.URL(ts.cfg.UnsubscribeURL),
		Articles:       articles,
	})
}

func templateKey(theme, brandID string) string {
	return theme + "/" + brandID
}
