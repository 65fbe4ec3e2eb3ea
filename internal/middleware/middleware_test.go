package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"olivencia.com.ar/profile-web/internal/observability"
)

func TestRequestLoggerFields(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)

	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	r.Use(HTMX)
	r.Use(RequestLogger(zap.New(core)))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		observability.FromContext(r.Context()).Debug("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 203.0.113.9")
	r.ServeHTTP(httptest.NewRecorder(), req)

	inner := logs.FilterMessage("inside handler").All()
	require.Len(t, inner, 1)
	require.NotEmpty(t, inner[0].ContextMap()["request_id"])

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	require.Equal(t, int64(http.StatusTeapot), fields["status"])
	require.Equal(t, "203.0.113.9", fields["remote_ip"])
	require.Equal(t, true, fields["htmx"])
	require.Equal(t, "/", fields["path"])
}

func TestHTMXContext(t *testing.T) {
	t.Parallel()
	var gotHTMX bool
	var gotTarget string
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHTMX = IsHTMX(r.Context())
		gotTarget = HXTarget(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/?tab=projects", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Target", "tab-panel")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, gotHTMX)
	require.Equal(t, "tab-panel", gotTarget)
	require.Equal(t, "HX-Request", rec.Header().Get("Vary"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, gotHTMX)
	require.Empty(t, gotTarget)
}

func TestAssetsWithCacheETag(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("body{}"), 0o600))

	h := http.StripPrefix("/assets", AssetsWithCache(dir))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{}", rec.Body.String())
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/missing.css", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, rec.Header().Get("ETag"))
}

func TestSecureHeaders(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	SecureHeaders(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	require.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
}

func TestResponseRecorderKeepsFirstStatus(t *testing.T) {
	t.Parallel()
	rw := NewResponseRecorder(httptest.NewRecorder())
	_, _ = rw.Write([]byte("x"))
	rw.WriteHeader(http.StatusInternalServerError)
	require.Equal(t, http.StatusOK, rw.Status())
	require.Equal(t, 1, rw.BytesWritten())
}

func TestWriteError(t *testing.T) {
	t.Parallel()
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusInternalServerError, "template exec error")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "template exec error\n", rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/?tab=projects", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	require.JSONEq(t, `{"error":"template exec error"}`, rec.Body.String())
}

func TestWriteErrorEchoesRequestID(t *testing.T) {
	t.Parallel()
	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	r.Use(HTMX)
	r.Use(RequestLogger(zap.NewNop()))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusInternalServerError, "boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-43")
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.JSONEq(t, `{"error":"boom","request_id":"req-43"}`, rec.Body.String())
}
