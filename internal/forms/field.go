// Package forms holds the auth page model: field validation, the tri-state
// field presentation, the password strength meter, the login/register
// toggle and the simulated submit flow.
package forms

import (
	"fmt"

	"github.com/nfrund/authpanel/internal/dom"
)

// FieldName identifies a validated input.
type FieldName string

const (
	Email    FieldName = "email"
	Password FieldName = "password"
	FullName FieldName = "fullname"
)

// Presentation is the visual state of a field's input group.
type Presentation int

const (
	Neutral Presentation = iota
	Error
	Success
)

func (p Presentation) String() string {
	switch p {
	case Error:
		return "error"
	case Success:
		return "success"
	default:
		return "neutral"
	}
}

// Classify returns the presentation for a validity result.
func Classify(valid, hasContent bool) Presentation {
	switch {
	case !valid && hasContent:
		return Error
	case valid:
		return Success
	default:
		return Neutral
	}
}

// InputGroup holds the element handles of one input and its decorations.
// ErrorMsg may be nil.
type InputGroup struct {
	Container *dom.Element
	Input     *dom.Element
	Icon      *dom.Element
	ErrorMsg  *dom.Element
}

// Field is one named input on a form.
type Field struct {
	Name        FieldName
	Value       string
	Label       string
	InputType   string
	Placeholder string
	Group       InputGroup

	defaultIcon  *string
	presentation Presentation
}

type fieldSpec struct {
	label, inputType, placeholder, errorText, icon string
}

var fieldSpecs = map[FieldName]fieldSpec{
	Email:    {"Email address", "email", "you@example.com", "Please enter a valid email address.", iconEnvelope},
	Password: {"Password", "password", "••••••••", "Password must be at least 6 characters.", iconLock},
	FullName: {"Full name", "text", "Jane Doe", "Please enter your full name.", iconUser},
}

// ErrorText returns the message shown when the named field is invalid.
func ErrorText(name FieldName) string {
	return fieldSpecs[name].errorText
}

// newField builds a field and its element handles. ids are prefixed so the
// same field name can appear on both forms.
func newField(prefix string, name FieldName) *Field {
	spec := fieldSpecs[name]
	id := fmt.Sprintf("%s-%s", prefix, name)

	icon := dom.New(id+"-icon", "icon-container absolute inset-y-0 left-0 pl-3 flex items-center pointer-events-none text-slate-400")
	icon.Inner = spec.icon

	errMsg := dom.New(id+"-error", "error-msg text-xs text-error mt-1 hidden")
	errMsg.Text = spec.errorText

	return &Field{
		Name:        name,
		Label:       spec.label,
		InputType:   spec.inputType,
		Placeholder: spec.placeholder,
		Group: InputGroup{
			Container: dom.New(id+"-group", "input-group"),
			Input:     dom.New(id, "w-full pl-10 pr-4 py-3 rounded-xl border-2 outline-none transition-all focus:ring-4", neutralInputClasses),
			Icon:      icon,
			ErrorMsg:  errMsg,
		},
	}
}

// Presentation returns the field's current visual state.
func (f *Field) Presentation() Presentation {
	return f.presentation
}

// DefaultIcon returns the memoized default icon markup, if captured.
func (f *Field) DefaultIcon() (string, bool) {
	if f.defaultIcon == nil {
		return "", false
	}
	return *f.defaultIcon, true
}

// rememberDefaultIcon captures the icon container's markup the first time
// it is called. Later calls keep the first capture.
func (f *Field) rememberDefaultIcon() {
	if f.defaultIcon != nil || f.Group.Icon == nil {
		return
	}
	markup := f.Group.Icon.Inner
	f.defaultIcon = &markup
}

// Validate checks the field's current value and applies the matching
// presentation. It returns the validity.
func (f *Field) Validate(v *Validator) bool {
	valid := v.Validate(f.Name, f.Value)
	Present(f, valid, len(f.Value) > 0)
	return valid
}
