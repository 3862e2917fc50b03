package pages_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/nfrund/authpanel/internal/forms"
	"github.com/nfrund/authpanel/internal/schedule"
	"github.com/nfrund/authpanel/web/src/templates/pages"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf strings.Builder
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func TestAuth_InitialPage(t *testing.T) {
	p := forms.NewPage("page-1")
	html := render(t, pages.Auth(p))

	assert.Contains(t, html, `id="auth"`)
	assert.Contains(t, html, `hx-ext="ws"`)
	assert.Contains(t, html, `ws-connect="/auth/ws"`)
	assert.Contains(t, html, `id="toasts"`)
	assert.Contains(t, html, `id="forms"`)
	assert.Contains(t, html, `id="loginForm"`)
	assert.Contains(t, html, `id="registerForm"`)
	assert.Contains(t, html, `id="strengthMeter"`)
	assert.Contains(t, html, `hx-post="/auth/login/submit"`)
	assert.Contains(t, html, `action="/auth/register/submit"`)
	assert.Contains(t, html, `hx-post="/auth/toggle"`)
}

func TestFormPanel_HiddenAndOOB(t *testing.T) {
	p := forms.NewPage("page-1")

	register := render(t, pages.FormPanel(p, p.Register, true))
	assert.Contains(t, register, forms.ClassHiddenForm)
	assert.Contains(t, register, `hx-swap-oob="true"`)
	assert.Contains(t, register, `id="register-fullname"`)

	login := render(t, pages.FormPanel(p, p.Login, false))
	assert.NotContains(t, login, forms.ClassHiddenForm)
	assert.NotContains(t, login, "hx-swap-oob")
	assert.NotContains(t, login, `id="strengthMeter"`, "only the register form carries the meter")
}

func TestFormPanel_LayoutAfterToggle(t *testing.T) {
	p := forms.NewPage("page-1")
	p.Toggle()

	html := render(t, pages.FormPanel(p, p.Register, false))
	assert.Contains(t, html, `data-layout="1"`)
	assert.Contains(t, html, forms.ClassFadeInUp)
}

func TestInputGroup_States(t *testing.T) {
	v := forms.NewValidator()
	p := forms.NewPage("page-1")

	_, _, err := p.ValidateField(v, forms.ViewLogin, forms.Email, "bad")
	require.NoError(t, err)
	field, err := p.Login.Field(forms.Email)
	require.NoError(t, err)

	html := render(t, pages.InputGroup(forms.ViewLogin, field, false))
	assert.Contains(t, html, `id="login-email-group"`)
	assert.Contains(t, html, `data-state="error"`)
	assert.Contains(t, html, `value="bad"`)
	assert.Contains(t, html, `hx-post="/auth/login/fields/email"`)
	assert.Contains(t, html, `hx-target="#login-email-group"`)
	assert.Contains(t, html, "Please enter a valid email address.")

	_, _, err = p.ValidateField(v, forms.ViewLogin, forms.Email, "a@b.co")
	require.NoError(t, err)
	html = render(t, pages.InputGroup(forms.ViewLogin, field, true))
	assert.Contains(t, html, `data-state="success"`)
	assert.Contains(t, html, `hx-swap-oob="true"`)
}

func TestStrengthMeter(t *testing.T) {
	p := forms.NewPage("page-1")
	p.CheckStrength("Abcdefgh1!")

	html := render(t, pages.StrengthMeter(p.Meter, true))
	assert.Contains(t, html, `id="strengthBar"`)
	assert.Contains(t, html, `style="width: 100%;"`)
	assert.Contains(t, html, "bg-success")
	assert.Contains(t, html, ">Strong<")
	assert.Contains(t, html, `hx-swap-oob="true"`)
}

func TestSubmitButton_Pending(t *testing.T) {
	clock := schedule.NewManual()
	o := forms.NewOrchestrator(forms.NewValidator(), clock, nil)
	p := forms.NewPage("page-1")

	res, err := o.Submit(context.Background(), p, forms.ViewLogin, map[forms.FieldName]string{
		forms.Email:    "a@b.co",
		forms.Password: "secret1",
	})
	require.NoError(t, err)
	require.Equal(t, forms.SubmitAccepted, res)

	html := render(t, pages.SubmitButton(p.Login))
	assert.Contains(t, html, "disabled")
	assert.Contains(t, html, "animate-spin")

	clock.Advance(forms.SubmitLatency)
	html = render(t, pages.SubmitButton(p.Login))
	assert.NotContains(t, html, "disabled")
	assert.Contains(t, html, "<span>Sign In</span>")
}

func TestNotice(t *testing.T) {
	html := render(t, pages.Notice("Login Successful"))
	assert.Contains(t, html, `hx-swap-oob="beforeend:#toasts"`)
	assert.Contains(t, html, `role="alert"`)
	assert.Contains(t, html, "<span>Login Successful</span>")
	assert.Contains(t, html, `data-dismiss-after="4000"`)
	assert.Contains(t, html, `<button type="button"`)
	assert.Contains(t, html, `data-dismiss=""`)
}
