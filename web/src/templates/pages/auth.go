package pages

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/authpanel/internal/dom"
	"github.com/nfrund/authpanel/internal/forms"
	"github.com/nfrund/authpanel/internal/view"
)

// Element ids of the page containers.
const (
	AuthID   = "auth"
	FormsID  = "forms"
	ToastsID = "toasts"
)

// Routes posted to by the page.
const (
	ToggleRoute = "/auth/toggle"
	SocketRoute = "/auth/ws"
)

// SubmitRoute is the submit endpoint of a form.
func SubmitRoute(v forms.FormView) string {
	return fmt.Sprintf("/auth/%s/submit", v)
}

// FieldRoute is the live validation endpoint of a field.
func FieldRoute(v forms.FormView, name forms.FieldName) string {
	return fmt.Sprintf("/auth/%s/fields/%s", v, name)
}

// Auth renders the whole auth card. The caller holds the page lock.
func Auth(p *forms.Page) g.Node {
	return h.Main(
		h.ID(AuthID),
		h.Class("relative w-full max-w-md px-4"),
		hx.Ext("ws"),
		g.Attr("ws-connect", SocketRoute),
		h.Div(h.ID(ToastsID)),
		h.Div(
			h.Class("bg-white/80 backdrop-blur-xl rounded-3xl shadow-2xl p-8 border border-white"),
			h.Div(
				h.Class("text-center mb-8"),
				h.Div(h.Class("mx-auto w-12 h-12 rounded-2xl bg-brand-600 mb-4")),
				h.P(h.Class("text-sm text-slate-500"), g.Text("Secure access to your workspace")),
			),
			Forms(p),
		),
	)
}

// Forms renders both form panels inside the toggle target.
func Forms(p *forms.Page) g.Node {
	return h.Div(
		h.ID(FormsID),
		FormPanel(p, p.Login, false),
		FormPanel(p, p.Register, false),
	)
}

// FormPanel renders one form. With oob set, the panel is marked for an
// out-of-band swap.
func FormPanel(p *forms.Page, form *forms.Form, oob bool) g.Node {
	route := SubmitRoute(form.View)
	other, prompt, action := forms.ViewRegister, "Don't have an account?", "Create one"
	if form.View == forms.ViewRegister {
		other, prompt, action = forms.ViewLogin, "Already have an account?", "Sign in"
	}

	return h.Form(
		elementAttrs(form.El),
		g.If(oob, hx.SwapOOB("true")),
		h.Method("post"),
		h.Action(route),
		hx.Post(route),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		g.Attr("novalidate"),
		h.H2(h.Class("text-2xl font-bold text-slate-900 text-center"), g.Text(form.Title)),
		g.Map(form.Fields, func(f *forms.Field) g.Node {
			group := InputGroup(form.View, f, false)
			if form.View == forms.ViewRegister && f.Name == forms.Password {
				return g.Group{group, StrengthMeter(p.Meter, false)}
			}
			return group
		}),
		SubmitButton(form),
		h.P(
			h.Class("text-center text-sm text-slate-500"),
			g.Text(prompt+" "),
			h.Button(
				h.Type("button"),
				h.Class("font-semibold text-brand-600 hover:text-brand-700"),
				g.Attr("data-target", string(other)),
				hx.Post(ToggleRoute),
				hx.Target("#"+FormsID),
				hx.Swap("outerHTML"),
				g.Text(action),
			),
		),
	)
}

// SubmitButton renders a form's submit button in its current state.
func SubmitButton(form *forms.Form) g.Node {
	return h.Button(
		h.Type("submit"),
		elementAttrs(form.Submit),
		g.If(form.Submit.Disabled, h.Disabled()),
		view.RawMarkup(form.Submit.Inner),
	)
}

// InputGroup renders one field with its icon and error message. Input
// events post the value back and the response replaces the whole group;
// static/js/app.js keeps whatever was typed while the request was in flight.
func InputGroup(v forms.FormView, f *forms.Field, oob bool) g.Node {
	grp := f.Group
	return h.Div(
		elementAttrs(grp.Container),
		g.If(oob, hx.SwapOOB("true")),
		g.Attr("data-state", f.Presentation().String()),
		h.Label(
			h.For(grp.Input.ID),
			h.Class("block text-sm font-medium text-slate-600 mb-1"),
			g.Text(f.Label),
		),
		h.Div(
			h.Class("relative"),
			h.Div(elementAttrs(grp.Icon), view.RawMarkup(grp.Icon.Inner)),
			h.Input(
				elementAttrs(grp.Input),
				h.Type(f.InputType),
				h.Name(string(f.Name)),
				h.Placeholder(f.Placeholder),
				h.Value(f.Value),
				hx.Post(FieldRoute(v, f.Name)),
				hx.Trigger("input changed delay:300ms, blur"),
				hx.Target("#"+grp.Container.ID),
				hx.Swap("outerHTML"),
			),
		),
		errorMessage(grp.ErrorMsg),
	)
}

func errorMessage(e *dom.Element) g.Node {
	if e == nil {
		return nil
	}
	return h.P(elementAttrs(e), g.Text(e.Text))
}

// StrengthMeter renders the password strength bar and label.
func StrengthMeter(m forms.Meter, oob bool) g.Node {
	return h.Div(
		h.ID("strengthMeter"),
		h.Class("mt-2"),
		g.If(oob, hx.SwapOOB("true")),
		h.Div(
			h.Class("h-1.5 w-full bg-slate-100 rounded-full overflow-hidden"),
			h.Div(elementAttrs(m.Bar)),
		),
		h.P(elementAttrs(m.Label), g.Text(m.Label.Text)),
	)
}

// NoticeLifetime is how long a toast stays up unless closed first.
const NoticeLifetime = 4 * time.Second

// Notice renders a toast appended to the toast stack. It closes on its
// button or after NoticeLifetime.
func Notice(message string) g.Node {
	return h.Div(
		hx.SwapOOB("beforeend:#"+ToastsID),
		h.Div(
			h.Class("notice flex items-center gap-3 rounded-xl bg-white shadow-lg border border-slate-100 px-4 py-3 text-sm font-semibold text-slate-700 animate-fade-in-up"),
			g.Attr("role", "alert"),
			g.Attr("data-dismiss-after", strconv.FormatInt(NoticeLifetime.Milliseconds(), 10)),
			h.Span(g.Text(message)),
			h.Button(
				h.Type("button"),
				h.Class("ml-auto text-slate-400 hover:text-slate-600"),
				g.Attr("data-dismiss", ""),
				h.Aria("label", "Dismiss"),
				g.Text("×"),
			),
		),
	)
}

// elementAttrs renders an element handle's id, classes, inline style and
// data attributes.
func elementAttrs(e *dom.Element) g.Node {
	attrs := g.Group{h.ID(e.ID), h.Class(e.Classes.String())}
	if style := e.StyleString(); style != "" {
		attrs = append(attrs, g.Attr("style", style))
	}
	if n := e.Layout(); n > 0 {
		attrs = append(attrs, g.Attr("data-layout", strconv.Itoa(n)))
	}
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, g.Attr("data-"+k, e.Data[k]))
	}
	return attrs
}
