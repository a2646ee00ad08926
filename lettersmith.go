// Package lettersmith is a newsletter build service for the VAYUVEG and
// ShodhSetu publications, built with Go, Echo, and templ.
//
// Submitted article fields are normalized into a themed HTML newsletter:
// the editor posts repeatable title/summary/image/url fields, the service
// resolves brand and theme against fixed allow-lists, and a per
// (theme, brand) template artifact produces the final document.
package lettersmith

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// App is the central lettersmith application. It wires together the
// configuration, the compiled newsletter templates, handlers, and middleware.
type App struct {
	Config    Config
	Echo      *echo.Echo
	Templates *TemplateSet

	exportLimiter *rateLimiter
}

// New builds a ready-to-serve App. It compiles the newsletter template set
// up front, so a missing (theme, brand) artifact or an invalid default is
// reported here rather than on the first request.
func New(cfg Config) (*App, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	templates, err := NewTemplateSet(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:        cfg,
		Echo:          echo.New(),
		Templates:     templates,
		exportLimiter: newRateLimiter(cfg.ExportRateLimit, cfg.ExportRateWindow),
	}
	a.Echo.HideBanner = true

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// Start runs the HTTP server until it is shut down.
func (a *App) Start() error {
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/", a.handleDashboard)
	e.GET("/editor", a.handleEditor)
	e.GET("/health", handleHealth)

	e.POST("/preview", a.handlePreview)
	e.POST("/export", a.handleExport)
	e.POST("/generate", a.handleGenerate)
}
