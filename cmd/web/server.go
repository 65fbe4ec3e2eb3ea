package main

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"olivencia.com.ar/profile-web/internal/config"
	"olivencia.com.ar/profile-web/internal/handlers"
	"olivencia.com.ar/profile-web/internal/metrics"
	mw "olivencia.com.ar/profile-web/internal/middleware"
	"olivencia.com.ar/profile-web/internal/observability"
	"olivencia.com.ar/profile-web/internal/profile"
	"olivencia.com.ar/profile-web/internal/seo"
)

const (
	stylesheetPath = "/assets/css/site.css"
	criticalCSS    = "assets/css/critical.css"
	resumeFile     = "resume.pdf"
)

// server holds the state shared by all requests. Everything is read-only after
// newServer returns, except the template cache in dev mode.
type server struct {
	cfg       config.Config
	logger    *zap.Logger
	metrics   *metrics.Metrics
	profile   profile.Profile
	summary   *profile.Renderer
	analytics handlers.Analytics
	defaults  seo.Config
	baseLoc   *seo.Location
	critical  string
	now       func() time.Time

	mu        sync.RWMutex
	templates *template.Template
}

func newServer(cfg config.Config, logger *zap.Logger) (*server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p, err := profile.Load(cfg.Site.ProfileFile)
	if err != nil {
		return nil, err
	}
	s := &server{
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics.New(),
		profile:   p,
		summary:   profile.NewRenderer(),
		analytics: handlers.AnalyticsFromConfig(cfg),
		defaults:  handlers.SEODefaults(p),
		now:       time.Now,
	}
	critical, err := os.ReadFile(filepath.Join(cfg.Site.PublicDir, criticalCSS))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read critical css: %w", err)
	}
	s.critical = strings.TrimSpace(string(critical))
	if cfg.Site.BaseURL != "" {
		loc, err := seo.ParseLocation(cfg.Site.BaseURL)
		if err != nil {
			return nil, err
		}
		s.baseLoc = &loc
	}
	// Templates are parsed at startup in dev mode too.
	t, err := parseTemplates(cfg.Site.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.templates = t
	return s, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(s.metrics.Middleware)
	r.Use(mw.HTMX)
	r.Use(mw.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if s.cfg.Server.HandlerTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.Server.HandlerTimeout))
	}
	r.Use(mw.SecureHeaders)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(s.cfg.Site.PublicDir, "assets")))
	r.Handle("/assets/*", assets)
	r.Get("/"+resumeFile, s.resumeHandler)

	r.Get("/", s.profileHandler)
	r.Get("/ramiro", s.profileHandler)
	return r
}

func parseTemplates(dir string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", dir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// lookupTemplates returns the template set. In dev mode, templates are reparsed on each request.
func (s *server) lookupTemplates() (*template.Template, error) {
	if s.cfg.Site.DevMode {
		t, err := parseTemplates(s.cfg.Site.TemplatesDir)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.templates = t
		s.mu.Unlock()
		return t, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.templates == nil {
		return nil, fmt.Errorf("template not initialized")
	}
	return s.templates, nil
}

// location resolves the page address, preferring the configured public base URL.
func (s *server) location(r *http.Request) seo.Location {
	if s.baseLoc != nil {
		return s.baseLoc.WithPath(s.baseLoc.Path + r.URL.Path)
	}
	return seo.LocationFromRequest(r)
}

// renderFragment executes a single named template without the layout.
func (s *server) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	t, err := s.lookupTemplates()
	if err != nil {
		s.fail(w, r, "template parse error", err)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		s.fail(w, r, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// renderPage executes the base layout and synchronizes the rendered head with meta.
func (s *server) renderPage(w http.ResponseWriter, r *http.Request, data handlers.ProfilePage, meta seo.Config, loc seo.Location) {
	t, err := s.lookupTemplates()
	if err != nil {
		s.fail(w, r, "template parse error", err)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		s.fail(w, r, "template exec error", err)
		return
	}

	doc, err := seo.ParseDocument(&buf)
	if err != nil {
		s.fail(w, r, "document parse error", err)
		return
	}
	syncer := seo.NewSynchronizer(doc, loc,
		seo.WithDefaults(s.defaults),
		seo.WithLogger(observability.FromContext(r.Context())),
		seo.WithRecorder(s.metrics),
	)
	syncer.Apply(meta)
	if s.cfg.Site.SecurityMeta {
		syncer.AddSecurityHeaders()
	}
	syncer.AddCriticalCSS(s.critical)
	if data.Stylesheet != "" {
		syncer.PreloadResource(data.Stylesheet, "style", "text/css")
	}

	var out bytes.Buffer
	if err := doc.Render(&out); err != nil {
		s.fail(w, r, "document render error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = out.WriteTo(w)
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	mw.WriteError(w, r, http.StatusInternalServerError, msg)
}

// profileHandler renders the profile page, or only the tab panel for htmx swaps.
func (s *server) profileHandler(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	summary, err := s.summary.RenderSummary(s.profile, now)
	if err != nil {
		s.fail(w, r, "summary render error", err)
		return
	}
	page := handlers.BuildProfilePage(handlers.ProfilePageInput{
		Profile:    s.profile,
		Summary:    summary,
		Tab:        profile.TabType(r.URL.Query().Get("tab")),
		Path:       r.URL.Path,
		Year:       now.Year(),
		Analytics:  s.analytics,
		Stylesheet: stylesheetPath,
	})

	if mw.IsHTMX(r.Context()) {
		s.renderFragment(w, r, "tab-panel", page)
		return
	}

	loc := s.location(r)
	s.renderPage(w, r, page, handlers.ProfileSEO(s.profile, loc.BaseURL()), loc)
}

func (s *server) resumeHandler(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.cfg.Site.PublicDir, resumeFile)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Disposition", `inline; filename="`+resumeFile+`"`)
	http.ServeFile(w, r, path)
}
