// Package web serves the theme switcher page and the applied stylesheet over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"github.com/jmylchreest/themepad/internal/model"
	"github.com/jmylchreest/themepad/internal/switcher"
)

// ContainerID is the element id of the switcher container on the page.
const ContainerID = "theme-switcher"

// ThemeLoader is the part of theme.Loader the server drives.
type ThemeLoader interface {
	switcher.ThemeLoader
	Preview(ctx context.Context, id string)
	Current() *model.Theme
}

// Stylesheet renders the current style scope.
type Stylesheet interface {
	Stylesheet() string
}

// Config holds the server dependencies.
type Config struct {
	Loader ThemeLoader
	Styles Stylesheet

	// AllowedOrigins may read responses cross-origin and POST to /apply and
	// /preview. Empty means same-origin only. "*" opens reads but not POSTs.
	AllowedOrigins []string
	Logger         *slog.Logger
	Clock          clockwork.Clock
}

// Server is the web switcher.
type Server struct {
	loader  ThemeLoader
	styles  Stylesheet
	logger  *slog.Logger
	mux     *http.ServeMux
	handler http.Handler
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>themepad</title>
<link rel="stylesheet" href="/theme.css">
</head>
<body>
{{with .Current}}<p class="current">Current theme: {{.Name}}</p>{{end}}
<form method="post" action="/apply">
{{.Switcher}}
<noscript><button type="submit">Apply</button></noscript>
<button type="submit" formaction="/preview">Preview</button>
</form>
<script>
document.querySelectorAll('.theme-switcher').forEach(function (el) {
  el.addEventListener('change', function (e) {
    if (e.target.value) { e.target.form.submit(); }
  });
});
</script>
</body>
</html>
`))

// New creates the server and installs its handlers.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Server{
		loader: cfg.Loader,
		styles: cfg.Styles,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.installHandlers()

	// Cross-origin POSTs are rejected unless the origin is listed
	cop := http.NewCrossOriginProtection()
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if err := cop.AddTrustedOrigin(origin); err != nil {
			logger.Warn("ignoring invalid allowed origin", "origin", origin, "error", err)
		}
	}

	var handler http.Handler = cop.Handler(s.mux)
	if len(cfg.AllowedOrigins) > 0 {
		corsMW := cors.New(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
		})
		handler = corsMW.Handler(handler)
	}
	s.handler = newRequestLogger(handler, clock, logger)

	return s
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// contextualizer returns ctx as the base context for every request.
func contextualizer(ctx context.Context) func(net.Listener) context.Context {
	return func(_ net.Listener) context.Context {
		return ctx
	}
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		BaseContext:       contextualizer(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web switcher listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) installHandlers() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /theme.css", s.handleStylesheet)
	s.mux.HandleFunc("POST /apply", s.handleApply)
	s.mux.HandleFunc("POST /preview", s.handlePreview)
	s.mux.HandleFunc("GET /api/themes", s.handleAPIThemes)
	s.mux.HandleFunc("GET /api/current", s.handleAPICurrent)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	container := switcher.NewHTMLContainer(ContainerID)
	if _, err := switcher.Build(r.Context(), s.loader, container); err != nil {
		s.logger.Warn("switcher built without themes", "error", err)
	}

	data := struct {
		Current  *model.Theme
		Switcher template.HTML
	}{
		Current:  s.loader.Current(),
		Switcher: container.HTML(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.logger.Error("can't render page", "error", err)
	}
}

func (s *Server) handleStylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(s.styles.Stylesheet()))
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("theme")
	if id == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, err := s.loader.Load(r.Context(), id); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if id := r.FormValue("theme"); id != "" {
		s.loader.Preview(r.Context(), id)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAPIThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.loader.ListAvailable(r.Context())
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, struct {
		Themes []model.ThemeSummary `json:"themes"`
	}{Themes: themes})
}

func (s *Server) handleAPICurrent(w http.ResponseWriter, _ *http.Request) {
	current := s.loader.Current()
	if current == nil {
		http.Error(w, "no theme applied", http.StatusNotFound)
		return
	}
	writeJSON(w, current.Summary())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrStale):
		return http.StatusConflict
	case errors.Is(err, model.ErrNetwork),
		errors.Is(err, model.ErrParse),
		errors.Is(err, model.ErrInvalidFormat):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
