package layouts

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/authpanel/internal/view"
)

// Script sources loaded by every page.
const (
	tailwindCDN = "https://cdn.tailwindcss.com"
	htmxCDN     = "https://unpkg.com/htmx.org@2.0.4"
	htmxWSCDN   = "https://unpkg.com/htmx-ext-ws@2.0.2/ws.js"
)

// Base wraps page content in the document shell: theme, htmx, flash banners.
func Base(title string, flashes view.FlashData, content g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				g.El("title", g.Text(CalculateTitle(title))),
				h.Script(h.Src(tailwindCDN)),
				h.Script(h.Src("/static/js/tailwind.config.js")),
				h.Script(h.Src(htmxCDN)),
				h.Script(h.Src(htmxWSCDN)),
				h.Script(h.Src("/static/js/app.js"), h.Defer()),
				h.Link(h.Rel("stylesheet"), h.Href("/static/css/app.css")),
			),
			h.Body(
				h.Class("min-h-screen bg-slate-50 font-sans text-slate-700 flex flex-col items-center justify-center"),
				Flashes(flashes),
				content,
			),
		),
	)
}

// Flashes renders one banner per flash message.
func Flashes(flashes view.FlashData) g.Node {
	if len(flashes.Success) == 0 && len(flashes.Error) == 0 {
		return nil
	}
	return h.Div(
		h.ID("flashes"),
		h.Class("w-full max-w-md space-y-2 mb-4"),
		g.Map(flashes.Success, func(msg string) g.Node {
			return h.Div(h.Class("flash flash-success rounded-xl bg-green-50 text-success px-4 py-2 text-sm"), g.Text(msg))
		}),
		g.Map(flashes.Error, func(msg string) g.Node {
			return h.Div(h.Class("flash flash-error rounded-xl bg-red-50 text-error px-4 py-2 text-sm"), g.Text(msg))
		}),
	)
}
