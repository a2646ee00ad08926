package lettersmith

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/vayuveg/lettersmith/views"
)

func (a *App) handleDashboard(c echo.Context) error {
	return render(c, views.Dashboard(a.brandOptions(), a.Config.Themes))
}

func (a *App) handleEditor(c echo.Context) error {
	brand, theme := a.loadPrefs(c)
	return render(c, views.Editor(a.brandOptions(), a.Config.Themes, brand, theme))
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handlePreview renders the newsletter for whatever is currently in the
// form. An empty article list is fine here: the editor posts on every
// keystroke and a half-typed form must still produce a document.
func (a *App) handlePreview(c echo.Context) error {
	brand, theme, articles, err := a.parseSubmission(c)
	if err != nil {
		return err
	}
	return a.renderNewsletter(c, http.StatusOK, brand, theme, articles)
}

func (a *App) handleExport(c echo.Context) error {
	if !a.exportLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many export requests. Try again later.")
	}
	brand, theme, articles, err := a.parseSubmission(c)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		return c.String(http.StatusBadRequest, "No articles to export")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", brand+"-weekly-newsletter.html"))
	return a.renderNewsletter(c, http.StatusOK, brand, theme, articles)
}

func (a *App) handleGenerate(c echo.Context) error {
	brand, theme, articles, err := a.parseSubmission(c)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		return c.String(http.StatusBadRequest, "No articles provided")
	}
	return a.renderNewsletter(c, http.StatusOK, brand, theme, articles)
}

// parseSubmission resolves brand and theme, normalizes the article rows,
// and remembers the selection for the next editor visit. It never rejects
// input: unknown selectors fall back to defaults and unusable rows are
// dropped during normalization.
func (a *App) parseSubmission(c echo.Context) (brand, theme string, articles []Article, err error) {
	form, err := c.FormParams()
	if err != nil {
		return "", "", nil, echo.NewHTTPError(http.StatusBadRequest, "malformed form body")
	}
	brand = a.Config.ResolveBrand(c.FormValue("brand"))
	theme = a.Config.ResolveTheme(c.FormValue("theme"))
	articles = BuildArticles(form)
	a.savePrefs(c, brand, theme)
	return brand, theme, articles, nil
}

// renderNewsletter buffers the template output so a render failure surfaces
// as a clean 500 instead of a truncated body.
func (a *App) renderNewsletter(c echo.Context, code int, brand, theme string, articles []Article) error {
	var buf bytes.Buffer
	if err := a.Templates.Render(&buf, brand, theme, articles); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}

// render writes a templ page component as an HTTP 200 HTML response.
func render(c echo.Context, cmp templ.Component) error {
	return renderStatus(c, http.StatusOK, cmp)
}

func renderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) brandOptions() []views.BrandOption {
	opts := make([]views.BrandOption, 0, len(a.Config.Brands))
	for _, id := range a.Config.BrandIDs() {
		opts = append(opts, views.BrandOption{
			ID:      id,
			Name:    a.Config.Brands[id].Name,
			SiteURL: a.Config.Brands[id].SiteURL,
		})
	}
	return opts
}
