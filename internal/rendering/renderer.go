package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer renders templ components and gomponents nodes.
type Renderer interface {
	// RenderComponent renders components back to back into one byte slice.
	// Used for htmx fragments and websocket patches.
	RenderComponent(ctx context.Context, components ...any) ([]byte, error)

	// RenderPage writes components as a full HTML response.
	RenderPage(c echo.Context, status int, components ...any) error
}

// UniversalRenderer handles both supported component kinds.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a new UniversalRenderer instance.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

// gomponentNode matches gomponents.Node without importing it.
type gomponentNode interface {
	Render(w io.Writer) error
}

func (r *UniversalRenderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case nil:
		return nil
	case templ.Component:
		return c.Render(ctx, w)
	case gomponentNode:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type: %T", component)
	}
}

// RenderComponent implements the Renderer interface.
func (r *UniversalRenderer) RenderComponent(ctx context.Context, components ...any) ([]byte, error) {
	var buf bytes.Buffer
	for _, component := range components {
		if err := r.render(ctx, component, &buf); err != nil {
			return nil, fmt.Errorf("failed to render component to bytes: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// RenderPage implements the Renderer interface. Components are buffered
// first so a render error can still become an error response.
func (r *UniversalRenderer) RenderPage(c echo.Context, status int, components ...any) error {
	body, err := r.RenderComponent(c.Request().Context(), components...)
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "Failed to render page", "error", err)
		return err
	}
	return c.HTMLBlob(status, body)
}

// Render implements echo.Renderer for c.Render(status, name, component).
func (r *UniversalRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(c.Request().Context(), data, w)
}
