package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"olivencia.com.ar/profile-web/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load(config.WithoutSystemEnv(), config.WithEnvFile(""), config.WithEnvMap(map[string]string{
		"PROFILE_WEB_TEMPLATES_DIR": "../../templates",
		"PROFILE_WEB_PUBLIC_DIR":    "../../public",
		"PROFILE_WEB_PROFILE_FILE":  "../../content/profile.yaml",
		"PROFILE_WEB_DEV":           "true",
	}))
	require.NoError(t, err)
	return cfg
}

// newTestRouter builds the router used by the serve command.
func newTestRouter(t *testing.T, cfg config.Config) (http.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	app, err := newServer(cfg, zap.New(core))
	require.NoError(t, err)
	app.now = func() time.Time { return time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC) }
	return app.routes(), logs
}

func get(t *testing.T, h http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func TestHealthzOK(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(t))
	rec := get(t, h, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestProfilePageHeadIsSynchronized(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(t))
	rec := get(t, h, "/?utm_source=test", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	doc := parse(t, rec)
	head := doc.Find("head")

	require.Equal(t, "en-US", doc.Find("html").AttrOr("lang", ""))
	require.Equal(t, 1, head.Find("title").Length())
	require.Equal(t, "Ramiro Olivencia - R&D Software Engineer", head.Find("title").Text())

	desc := head.Find(`meta[name="description"]`)
	require.Equal(t, 1, desc.Length(), "template placeholder is replaced, not duplicated")
	require.Contains(t, desc.AttrOr("content", ""), "Angular Technical Lead")

	canonical := head.Find(`link[rel="canonical"]`)
	require.Equal(t, 1, canonical.Length())
	require.Equal(t, "http://example.com/", canonical.AttrOr("href", ""))

	require.Equal(t, "profile", head.Find(`meta[property="og:type"]`).AttrOr("content", ""))
	require.Equal(t, "http://example.com/assets/img/ramiro.jpg", head.Find(`meta[property="og:image"]`).AttrOr("content", ""))
	require.Equal(t, "es_AR", head.Find(`meta[property="og:locale:alternate"]`).AttrOr("content", ""))
	require.Equal(t, "http://example.com", head.Find(`link[hreflang="x-default"]`).AttrOr("href", ""))
	require.Equal(t, 1, head.Find(`link[hreflang="en-us"]`).Length())
	require.Equal(t, "@ramiroolivencia", head.Find(`meta[name="twitter:site"]`).AttrOr("content", ""))
	require.Equal(t, 1, head.Find(`link[rel="preload"][href="/assets/css/site.css"][as="style"]`).Length())
	require.Equal(t, 0, head.Find(`meta[http-equiv="Content-Security-Policy"]`).Length())

	scripts := head.Find(`script[type="application/ld+json"]`)
	require.Equal(t, 1, scripts.Length())
	var data []map[string]any
	require.NoError(t, json.Unmarshal([]byte(scripts.Text()), &data))
	require.Len(t, data, 2)
	require.Equal(t, "Person", data[0]["@type"])
	require.Equal(t, "http://example.com", data[0]["url"])
	require.Equal(t, "WebSite", data[1]["@type"])

	body := doc.Find("body")
	require.Equal(t, "RO", strings.TrimSpace(body.Find(".avatar").Text()))
	require.Contains(t, body.Find(".summary").Text(), "12+ years")
	require.Equal(t, 6, body.Find(".social-links a").Length())
	require.Equal(t, "professional", body.Find(".tab-active").AttrOr("data-tab", ""))
	require.Equal(t, 1, body.Find(`.tab-content a[download]`).Length())
}

func TestProfileAliasUsesConfiguredBaseURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.Site.BaseURL = "https://olivencia.com.ar"
	h, _ := newTestRouter(t, cfg)

	rec := get(t, h, "/ramiro?tab=projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	require.Equal(t, "https://olivencia.com.ar/ramiro", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	require.Equal(t, "https://olivencia.com.ar/ramiro", doc.Find(`meta[property="og:url"]`).AttrOr("content", ""))
	require.Equal(t, "projects", doc.Find(".tab-active").AttrOr("data-tab", ""))
	require.Equal(t, "/ramiro?tab=professional", doc.Find(`.tab[data-tab="professional"]`).AttrOr("hx-get", ""))
}

func TestTabFragmentForHTMX(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(t))
	rec := get(t, h, "/?tab=projects", map[string]string{"HX-Request": "true"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.NotContains(t, body, "<html")
	require.NotContains(t, body, "application/ld+json")
	require.Contains(t, rec.Header().Values("Vary"), "HX-Request")

	doc := parse(t, rec)
	require.Equal(t, 1, doc.Find("#tabs").Length())
	require.Equal(t, "projects", doc.Find(".tab-active").AttrOr("data-tab", ""))
	require.Equal(t, 2, doc.Find(".tab-content a").Length())
	require.Contains(t, doc.Find(".tab-content").Text(), "La Cuentoneta")
}

func TestSecurityMetaEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Site.SecurityMeta = true
	h, _ := newTestRouter(t, cfg)

	doc := parse(t, get(t, h, "/", nil))
	head := doc.Find("head")
	for _, name := range []string{"Content-Security-Policy", "X-Content-Type-Options", "X-Frame-Options", "X-XSS-Protection"} {
		require.Equal(t, 1, head.Find(`meta[http-equiv="`+name+`"]`).Length(), name)
	}
}

func TestAnalyticsRenderedInProduction(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = config.EnvProduction
	cfg.Analytics.ClarityProjectID = "clarity-test"
	h, _ := newTestRouter(t, cfg)

	require.Contains(t, get(t, h, "/", nil).Body.String(), "clarity-test")

	h, _ = newTestRouter(t, testConfig(t))
	require.NotContains(t, get(t, h, "/", nil).Body.String(), "clarity.ms")

	cfg = testConfig(t)
	cfg.Env = config.EnvProduction
	h, _ = newTestRouter(t, cfg)
	body := get(t, h, "/", nil).Body.String()
	require.NotContains(t, body, "clarity.ms")
	require.NotContains(t, body, "googletagmanager")
}

func TestCriticalCSSInlinedWhenPresent(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(t))
	doc := parse(t, get(t, h, "/", nil))
	style := doc.Find(`head style[data-critical="true"]`)
	require.Equal(t, 1, style.Length())
	require.Contains(t, style.Text(), ".avatar")

	cfg := testConfig(t)
	cfg.Site.PublicDir = t.TempDir()
	h, _ = newTestRouter(t, cfg)
	doc = parse(t, get(t, h, "/", nil))
	require.Zero(t, doc.Find(`head style[data-critical="true"]`).Length())
}

func TestMetricsCountHeadSyncs(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(t))
	get(t, h, "/", nil)
	get(t, h, "/", map[string]string{"HX-Request": "true"})

	rec := get(t, h, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	require.Contains(t, out, "profile_web_head_syncs_total 1")
	require.Contains(t, out, `profile_web_http_requests_total{code="200",method="GET",route="/"} 2`)
}

func TestAssetsServedWithCacheHeaders(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(t))
	rec := get(t, h, "/assets/css/site.css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("ETag"))
	require.Contains(t, rec.Header().Get("Cache-Control"), "public")
}

func TestResume(t *testing.T) {
	cfg := testConfig(t)
	cfg.Site.PublicDir = t.TempDir()
	h, _ := newTestRouter(t, cfg)
	require.Equal(t, http.StatusNotFound, get(t, h, "/resume.pdf", nil).Code)

	require.NoError(t, os.WriteFile(filepath.Join(cfg.Site.PublicDir, "resume.pdf"), []byte("%PDF-1.4"), 0o600))
	rec := get(t, h, "/resume.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestRenderFailureLogsAndReturns500(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.tmpl"), []byte(`{{ define "base" }}{{ .Missing }}{{ end }}`), 0o600))
	cfg.Site.TemplatesDir = dir
	h, logs := newTestRouter(t, cfg)

	rec := get(t, h, "/", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("template exec error").Len())
}

func TestNewServerRequiresTemplates(t *testing.T) {
	cfg := testConfig(t)
	cfg.Site.TemplatesDir = t.TempDir()
	_, err := newServer(cfg, nil)
	require.Error(t, err)
}

func TestEnvInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	cmd := newRootCommand()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"env", "init", "--env-file", path})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "wrote")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "PROFILE_WEB_PORT=")
}
