package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(a *Assets, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	a.Register(e, "/static")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAssets_ServesFromFs(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "css/app.css", []byte(".hidden-form{display:none}"), 0o644))
	a := NewFromFs(mem)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".hidden-form{display:none}", rec.Body.String())
	assert.Equal(t, `"v1"`, rec.Header().Get("ETag"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/static/css/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssets_NotModified(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "js/app.js", []byte("1"), 0o644))
	a := NewFromFs(mem)

	req := httptest.NewRequest(http.MethodGet, "/static/js/app.js", nil)
	req.Header.Set("If-None-Match", `"v1"`)
	assert.Equal(t, http.StatusNotModified, serve(a, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/static/js/missing.js", nil)
	req.Header.Set("If-None-Match", `"v1"`)
	rec := serve(a, req)
	assert.Equal(t, http.StatusNotFound, rec.Code, "a missing file is never revalidated")
	assert.Empty(t, rec.Header().Get("ETag"))

	a.bump()
	req = httptest.NewRequest(http.MethodGet, "/static/js/app.js", nil)
	req.Header.Set("If-None-Match", `"v1"`)
	rec = serve(a, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `"v2"`, rec.Header().Get("ETag"))
}

func TestNew_Embedded(t *testing.T) {
	a, err := New("")
	require.NoError(t, err)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/static/js/tailwind.config.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tailwind.config")

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/static/js/app.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "htmx:beforeSwap")

	assert.NoError(t, a.Watch(context.Background()), "embedded assets are never watched")
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatch_BumpsVersionOnChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.css"), []byte("a"), 0o644))

	a, err := New(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, a.Watch(ctx))

	before := a.Version()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.css"), []byte("b"), 0o644))

	assert.Eventually(t, func() bool {
		return a.Version() != before
	}, 2*time.Second, 10*time.Millisecond)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, "b", rec.Body.String())
}
