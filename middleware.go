package lettersmith

import (
	"crypto/rand"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vayuveg/lettersmith/views"
)

const prefsSessionName = "editor_prefs"

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN", // the editor previews into an iframe
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(cacheControlMiddleware)
}

// httpErrorHandler renders styled 404/500 pages; other HTTP errors keep
// Echo's default shape.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = renderStatus(c, http.StatusNotFound, views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = renderStatus(c, code, views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// cacheControlMiddleware keeps rendered newsletters out of caches while
// letting the static pages be cached briefly.
func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		switch c.Request().URL.Path {
		case "/", "/editor":
			c.Response().Header().Set("Cache-Control", "public, max-age=300")
		default:
			c.Response().Header().Set("Cache-Control", "no-store")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	secret := []byte(a.Config.SessionSecret)
	if len(secret) == 0 {
		// Preference cookies only; losing them on restart is harmless.
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
	}
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 30,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// savePrefs remembers the resolved brand and theme so the editor can
// preselect them on the next visit. Best effort; a failed save never
// fails the request.
func (a *App) savePrefs(c echo.Context, brand, theme string) {
	sess, err := session.Get(prefsSessionName, c)
	if err != nil {
		return
	}
	sess.Values["brand"] = brand
	sess.Values["theme"] = theme
	_ = sess.Save(c.Request(), c.Response())
}

// loadPrefs returns the remembered brand and theme, falling back to the
// configured defaults. Stale values from an edited config are re-resolved.
func (a *App) loadPrefs(c echo.Context) (brand, theme string) {
	brand, theme = a.Config.DefaultBrand, a.Config.DefaultTheme
	sess, err := session.Get(prefsSessionName, c)
	if err != nil {
		return brand, theme
	}
	if v, ok := sess.Values["brand"].(string); ok {
		brand = a.Config.ResolveBrand(v)
	}
	if v, ok := sess.Values["theme"].(string); ok {
		theme = a.Config.ResolveTheme(v)
	}
	return brand, theme
}
