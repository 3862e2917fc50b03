package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// TemplToGomponentAdapter wraps a templ.Component to satisfy the gomponents.Node interface,
// so templ content can sit inside a gomponents tree.
type TemplToGomponentAdapter struct {
	Component templ.Component
}

// Render implements gomponents.Node. gomponents does not pass a context, so the
// templ component renders with context.Background().
func (a *TemplToGomponentAdapter) Render(w io.Writer) error {
	return a.Component.Render(context.Background(), w)
}

// AdaptTemplToGomponent converts a templ.Component into a gomponents.Node.
func AdaptTemplToGomponent(component templ.Component) gomponents.Node {
	return &TemplToGomponentAdapter{Component: component}
}

// RawMarkup embeds trusted markup, such as icon SVGs, into a gomponents tree.
func RawMarkup(markup string) gomponents.Node {
	return AdaptTemplToGomponent(templ.Raw(markup))
}
