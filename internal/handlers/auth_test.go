package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/authpanel/internal/forms"
	"github.com/nfrund/authpanel/internal/handlers"
	"github.com/nfrund/authpanel/internal/middleware"
	"github.com/nfrund/authpanel/internal/pagestate"
	"github.com/nfrund/authpanel/internal/rendering"
	"github.com/nfrund/authpanel/internal/schedule"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

type authFixture struct {
	e       *echo.Echo
	clock   *schedule.Manual
	cookies map[string]*http.Cookie
}

func setupAuthTest() *authFixture {
	e := echo.New()
	v := forms.NewValidator()
	e.Validator = handlers.NewValidator(v)

	clock := schedule.NewManual()
	authHandler := handlers.NewAuthHandler(v, forms.NewOrchestrator(v, clock, nil), rendering.NewUniversalRenderer())

	cookieStore := sessions.NewCookieStore([]byte(testSessionSecret))
	e.Use(session.Middleware(cookieStore))
	e.Use(middleware.Page(pagestate.NewStore()))

	e.GET("/auth", authHandler.PageGet)
	e.POST("/auth/strength", authHandler.StrengthPost)
	e.POST("/auth/toggle", authHandler.TogglePost)
	e.POST("/auth/:form/fields/:field", authHandler.FieldPost)
	e.POST("/auth/:form/submit", authHandler.SubmitPost)

	return &authFixture{e: e, clock: clock, cookies: make(map[string]*http.Cookie)}
}

// do sends a request carrying the cookies collected so far, like a browser.
func (f *authFixture) do(t *testing.T, method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, c := range f.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		f.cookies[c.Name] = c
	}
	return rec
}

// openTag returns the opening tag of the element with the given id.
func openTag(t *testing.T, html, id string) string {
	t.Helper()
	start := strings.Index(html, `id="`+id+`"`)
	require.GreaterOrEqual(t, start, 0, "element %q not found", id)
	start = strings.LastIndex(html[:start], "<")
	end := strings.Index(html[start:], ">")
	return html[start : start+end+1]
}

func TestPageGet(t *testing.T) {
	f := setupAuthTest()

	rec := f.do(t, http.MethodGet, "/auth", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Sign in - Authpanel</title>")
	assert.Contains(t, body, `<script src="/static/js/app.js" defer>`)
	assert.NotContains(t, openTag(t, body, "loginForm"), forms.ClassHiddenForm)
	assert.Contains(t, openTag(t, body, "registerForm"), forms.ClassHiddenForm)
	assert.Contains(t, f.cookies, middleware.SessionName)
}

func TestFieldPost(t *testing.T) {
	f := setupAuthTest()

	t.Run("invalid email shows the error state", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/login/fields/email", url.Values{"email": {"nope"}}, true)
		require.Equal(t, http.StatusOK, rec.Code)
		group := openTag(t, rec.Body.String(), "login-email-group")
		assert.Contains(t, group, `data-state="error"`)
		assert.Contains(t, openTag(t, rec.Body.String(), "login-email-error"), "error-msg")
		assert.NotContains(t, openTag(t, rec.Body.String(), "login-email-error"), "hidden")
	})

	t.Run("valid email shows the success state", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/login/fields/email", url.Values{"email": {"jo@example.com"}}, true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, openTag(t, rec.Body.String(), "login-email-group"), `data-state="success"`)
	})

	t.Run("empty value is neutral", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/login/fields/password", url.Values{"password": {""}}, true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, openTag(t, rec.Body.String(), "login-password-group"), `data-state="neutral"`)
	})

	t.Run("register password repaints the meter", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/register/fields/password", url.Values{"password": {"Abcdefgh1!"}}, true)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, openTag(t, body, "strengthMeter"), `hx-swap-oob="true"`)
		assert.Contains(t, openTag(t, body, "strengthBar"), "width: 100%;")
	})

	t.Run("unknown form or field is not found", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/admin/fields/email", url.Values{"email": {"a@b.c"}}, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = f.do(t, http.MethodPost, "/auth/login/fields/fullname", url.Values{"fullname": {"Jo"}}, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStrengthPost(t *testing.T) {
	f := setupAuthTest()

	rec := f.do(t, http.MethodPost, "/auth/strength", url.Values{"password": {"abcdef1"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(2), got["level"])
	assert.Equal(t, "Weak", got["label"])
	assert.Equal(t, "30%", got["width"])
	assert.Equal(t, "bg-error", got["bar_class"])
}

func TestTogglePost(t *testing.T) {
	f := setupAuthTest()

	f.do(t, http.MethodPost, "/auth/login/fields/email", url.Values{"email": {"bad"}}, true)

	rec := f.do(t, http.MethodPost, "/auth/toggle", url.Values{}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, openTag(t, body, "loginForm"), forms.ClassHiddenForm)
	register := openTag(t, body, "registerForm")
	assert.NotContains(t, register, forms.ClassHiddenForm)
	assert.Contains(t, register, forms.ClassFadeInUp)
	assert.Contains(t, register, `data-layout="1"`)
	assert.Contains(t, openTag(t, body, "login-email-group"), `data-state="neutral"`, "toggle resets every field")

	rec = f.do(t, http.MethodPost, "/auth/toggle", url.Values{}, true)
	assert.NotContains(t, openTag(t, rec.Body.String(), "loginForm"), forms.ClassHiddenForm)
}

func TestSubmitPost_HTMX(t *testing.T) {
	f := setupAuthTest()

	t.Run("invalid submit shakes then recovers", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/login/submit", url.Values{"email": {"bad"}, "password": {"123"}}, true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, openTag(t, rec.Body.String(), "loginForm"), forms.ClassShake)

		f.clock.Advance(forms.ShakeDuration)
		rec = f.do(t, http.MethodGet, "/auth", nil, false)
		assert.NotContains(t, openTag(t, rec.Body.String(), "loginForm"), forms.ClassShake)
	})

	t.Run("valid submit is pending until the latency elapses", func(t *testing.T) {
		values := url.Values{"email": {"jo@example.com"}, "password": {"secret1"}}
		rec := f.do(t, http.MethodPost, "/auth/login/submit", values, true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, openTag(t, rec.Body.String(), "loginForm-submit"), "disabled")

		rec = f.do(t, http.MethodPost, "/auth/login/submit", url.Values{"email": {"bad"}}, true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, openTag(t, rec.Body.String(), "loginForm"), forms.ClassShake, "a pending submit ignores resubmits")

		f.clock.Advance(forms.SubmitLatency)
		rec = f.do(t, http.MethodGet, "/auth", nil, false)
		assert.NotContains(t, openTag(t, rec.Body.String(), "loginForm-submit"), "disabled")
	})

	t.Run("unknown form is not found", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/auth/admin/submit", url.Values{}, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSubmitPost_PlainFormFlashesErrors(t *testing.T) {
	f := setupAuthTest()

	rec := f.do(t, http.MethodPost, "/auth/register/submit", url.Values{
		"fullname": {" "},
		"email":    {"jo@example.com"},
		"password": {"123"},
	}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get(echo.HeaderLocation))

	rec = f.do(t, http.MethodGet, "/auth", nil, false)
	body := rec.Body.String()
	assert.Contains(t, body, `id="flashes"`)
	assert.Contains(t, body, flashError("Please enter your full name."))
	assert.Contains(t, body, flashError("Password must be at least 6 characters."))
	assert.NotContains(t, body, flashError("Please enter a valid email address."))

	rec = f.do(t, http.MethodGet, "/auth", nil, false)
	assert.NotContains(t, rec.Body.String(), `id="flashes"`, "flashes are shown once")
}

func flashError(msg string) string {
	return `text-sm">` + msg + `</div>`
}

func TestSubmitPost_PlainFormValidRedirects(t *testing.T) {
	f := setupAuthTest()

	rec := f.do(t, http.MethodPost, "/auth/login/submit", url.Values{
		"email":    {"jo@example.com"},
		"password": {"secret1"},
	}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = f.do(t, http.MethodGet, "/auth", nil, false)
	assert.NotContains(t, rec.Body.String(), `id="flashes"`)
}
