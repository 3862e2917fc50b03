package forms_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/authpanel/internal/forms"
	"github.com/nfrund/authpanel/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEvents captures events emitted by delayed callbacks.
type recordingEvents struct {
	mu      sync.Mutex
	changed []forms.FormView
	notices []string
}

func (r *recordingEvents) FormChanged(_ context.Context, _ *forms.Page, view forms.FormView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, view)
}

func (r *recordingEvents) Notify(_ context.Context, _ *forms.Page, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, message)
}

func setupSubmitTest() (*forms.Orchestrator, *schedule.Manual, *recordingEvents, *forms.Page) {
	clock := schedule.NewManual()
	events := &recordingEvents{}
	o := forms.NewOrchestrator(forms.NewValidator(), clock, events)
	return o, clock, events, forms.NewPage("page-1")
}

func TestSubmit_Invalid(t *testing.T) {
	o, clock, events, p := setupSubmitTest()
	originalButton := p.Login.Submit.Inner

	res, err := o.Submit(context.Background(), p, forms.ViewLogin, map[forms.FieldName]string{
		forms.Email:    "not-an-email",
		forms.Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, forms.SubmitInvalid, res)

	// Every field is validated, not just up to the first failure.
	email, _ := p.Login.Field(forms.Email)
	password, _ := p.Login.Field(forms.Password)
	assert.Equal(t, forms.Error, email.Presentation())
	assert.Equal(t, forms.Success, password.Presentation())

	assert.True(t, p.Login.El.Classes.Contains(forms.ClassShake))
	assert.Equal(t, originalButton, p.Login.Submit.Inner, "success path must not start")
	assert.False(t, p.Login.Submit.Disabled)
	assert.Equal(t, 1, clock.Pending(), "exactly one shake cycle")

	clock.Advance(forms.ShakeDuration - time.Millisecond)
	assert.True(t, p.Login.El.Classes.Contains(forms.ClassShake))

	clock.Advance(time.Millisecond)
	assert.False(t, p.Login.El.Classes.Contains(forms.ClassShake))
	assert.Equal(t, []forms.FormView{forms.ViewLogin}, events.changed)
	assert.Empty(t, events.notices)

	clock.Advance(time.Hour)
	assert.Empty(t, events.notices, "no success notice after a failed submit")
}

func TestSubmit_MissingValuesAreEmpty(t *testing.T) {
	o, _, _, p := setupSubmitTest()

	res, err := o.Submit(context.Background(), p, forms.ViewRegister, nil)
	require.NoError(t, err)
	assert.Equal(t, forms.SubmitInvalid, res)
	for _, f := range p.Register.Fields {
		assert.Equal(t, forms.Neutral, f.Presentation(), "empty field %s stays neutral", f.Name)
	}
	assert.True(t, p.Register.El.Classes.Contains(forms.ClassShake))
}

func TestSubmit_Valid(t *testing.T) {
	o, clock, events, p := setupSubmitTest()
	originalButton := p.Register.Submit.Inner
	values := map[forms.FieldName]string{
		forms.FullName: "Jane Doe",
		forms.Email:    "jane@example.com",
		forms.Password: "hunter22",
	}

	res, err := o.Submit(context.Background(), p, forms.ViewRegister, values)
	require.NoError(t, err)
	assert.Equal(t, forms.SubmitAccepted, res)
	assert.Equal(t, forms.IconSpinner, p.Register.Submit.Inner)
	assert.True(t, p.Register.Submit.Disabled)
	assert.True(t, p.Register.Pending())
	assert.False(t, p.Register.El.Classes.Contains(forms.ClassShake))

	t.Run("submits while pending are ignored", func(t *testing.T) {
		res, err := o.Submit(context.Background(), p, forms.ViewRegister, values)
		require.NoError(t, err)
		assert.Equal(t, forms.SubmitPending, res)
		assert.Equal(t, 1, clock.Pending())
	})

	clock.Advance(forms.SubmitLatency - time.Millisecond)
	assert.Empty(t, events.notices)
	assert.Equal(t, forms.IconSpinner, p.Register.Submit.Inner)

	clock.Advance(time.Millisecond)
	assert.Equal(t, originalButton, p.Register.Submit.Inner)
	assert.False(t, p.Register.Submit.Disabled)
	assert.False(t, p.Register.Pending())
	assert.Equal(t, []string{"Registration Successful"}, events.notices)
	assert.Equal(t, []forms.FormView{forms.ViewRegister}, events.changed)
}

func TestSubmit_LoginNotice(t *testing.T) {
	o, clock, events, p := setupSubmitTest()

	res, err := o.Submit(context.Background(), p, forms.ViewLogin, map[forms.FieldName]string{
		forms.Email:    "a@b.co",
		forms.Password: "123456",
	})
	require.NoError(t, err)
	require.Equal(t, forms.SubmitAccepted, res)

	clock.Advance(forms.SubmitLatency)
	assert.Equal(t, []string{"Login Successful"}, events.notices)
}

func TestSubmit_UnknownForm(t *testing.T) {
	o, clock, _, p := setupSubmitTest()

	_, err := o.Submit(context.Background(), p, "admin", nil)
	assert.ErrorIs(t, err, forms.ErrUnknownForm)
	assert.Equal(t, 0, clock.Pending())
}

func TestSubmit_CanceledRequestContext(t *testing.T) {
	clock := schedule.NewManual()
	o := forms.NewOrchestrator(forms.NewValidator(), clock, nil)
	p := forms.NewPage("p")

	ctx, cancel := context.WithCancel(context.Background())
	res, err := o.Submit(ctx, p, forms.ViewLogin, map[forms.FieldName]string{
		forms.Email:    "a@b.co",
		forms.Password: "123456",
	})
	cancel()
	require.NoError(t, err)
	require.Equal(t, forms.SubmitAccepted, res)

	clock.Advance(forms.SubmitLatency)
	assert.False(t, p.Login.Pending(), "the simulation finishes after the request is gone")
}
