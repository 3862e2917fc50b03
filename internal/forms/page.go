package forms

import (
	"fmt"
	"sync"

	"github.com/nfrund/authpanel/internal/dom"
)

// FormView names one of the two form panels.
type FormView string

const (
	ViewLogin    FormView = "login"
	ViewRegister FormView = "register"
)

// ParseFormView converts a route parameter into a FormView.
func ParseFormView(s string) (FormView, error) {
	switch FormView(s) {
	case ViewLogin, ViewRegister:
		return FormView(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownForm, s)
}

// Class names driven by the toggle and submit flows.
const (
	ClassHiddenForm = "hidden-form"
	ClassFadeInUp   = "animate-fade-in-up"
	ClassShake      = "animate-shake"
)

// Form is one form panel with its fields and submit button.
type Form struct {
	View           FormView
	Title          string
	SuccessMessage string
	El             *dom.Element
	Fields         []*Field
	Submit         *dom.Element

	pending bool
}

func newForm(view FormView, id, title, button, success string, names ...FieldName) *Form {
	f := &Form{
		View:           view,
		Title:          title,
		SuccessMessage: success,
		El:             dom.New(id, "auth-form space-y-5"),
		Submit:         dom.New(id+"-submit", "w-full py-3 rounded-xl bg-brand-600 hover:bg-brand-700 text-white font-semibold transition-all"),
	}
	f.Submit.Inner = "<span>" + button + "</span>"
	for _, name := range names {
		f.Fields = append(f.Fields, newField(string(view), name))
	}
	return f
}

// Field returns the named field on this form.
func (f *Form) Field(name FieldName) (*Field, error) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, nil
		}
	}
	return nil, fmt.Errorf("%w: %q on %s form", ErrUnknownField, name, f.View)
}

// Hidden reports whether the panel is hidden.
func (f *Form) Hidden() bool {
	return f.El.Classes.Contains(ClassHiddenForm)
}

// Pending reports whether a simulated submit is in flight.
func (f *Form) Pending() bool {
	return f.pending
}

// Page is the model of one browser's auth page. Exported methods lock the
// page. Code running inside WithLock must use the Form and Field values
// directly.
type Page struct {
	ID       string
	Login    *Form
	Register *Form
	Meter    Meter

	mu sync.Mutex
}

// NewPage builds the initial page: login shown, register hidden, every field
// neutral.
func NewPage(id string) *Page {
	login := newForm(ViewLogin, "loginForm", "Welcome back", "Sign In", "Login Successful", Email, Password)
	login.El.Classes.Add(ClassFadeInUp)

	register := newForm(ViewRegister, "registerForm", "Create an account", "Create Account", "Registration Successful", FullName, Email, Password)
	register.El.Classes.Add(ClassHiddenForm)

	return &Page{
		ID:       id,
		Login:    login,
		Register: register,
		Meter:    newMeter(),
	}
}

// WithLock runs fn while holding the page lock.
func (p *Page) WithLock(fn func() error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn()
}

// Form returns the panel for view. It does not lock.
func (p *Page) Form(view FormView) (*Form, error) {
	switch view {
	case ViewLogin:
		return p.Login, nil
	case ViewRegister:
		return p.Register, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownForm, view)
}

// ValidateField stores value on the named field, validates it and applies
// its presentation.
func (p *Page) ValidateField(v *Validator, view FormView, name FieldName, value string) (bool, Presentation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	form, err := p.Form(view)
	if err != nil {
		return false, Neutral, err
	}
	field, err := form.Field(name)
	if err != nil {
		return false, Neutral, err
	}
	field.Value = value
	valid := field.Validate(v)
	return valid, field.Presentation(), nil
}

// CheckStrength scores password and renders the result onto the meter.
func (p *Page) CheckStrength(password string) Strength {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Score(password)
	p.Meter.Render(s)
	return s
}

// Visible returns the view currently shown.
func (p *Page) Visible() FormView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible()
}

func (p *Page) visible() FormView {
	if p.Login.Hidden() {
		return ViewRegister
	}
	return ViewLogin
}

// Toggle resets every field on both forms to neutral, swaps the visible
// panel and restarts the entry animation on the panel now shown. It returns
// the view now shown.
func (p *Page) Toggle() FormView {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, form := range []*Form{p.Login, p.Register} {
		for _, field := range form.Fields {
			Reset(field)
		}
	}

	show, hide := p.Register, p.Login
	if p.Login.Hidden() {
		show, hide = p.Login, p.Register
	}

	hide.El.Classes.Add(ClassHiddenForm)
	show.El.Classes.Remove(ClassHiddenForm)
	show.El.Classes.Remove(ClassFadeInUp)
	show.El.Reflow()
	show.El.Classes.Add(ClassFadeInUp)

	return show.View
}
