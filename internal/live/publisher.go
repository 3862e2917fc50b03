// Package live pushes page changes made outside a request to the browser.
// Fragments are rendered as htmx out-of-band swaps and published to the
// page patch topic, where the websocket bridge picks them up.
package live

import (
	"context"
	"log/slog"

	"github.com/nfrund/authpanel/internal/forms"
	"github.com/nfrund/authpanel/internal/pubsub"
	"github.com/nfrund/authpanel/internal/rendering"
	"github.com/nfrund/authpanel/web/src/templates/pages"
)

// Metadata keys set on published patches.
const (
	MetaKind = "kind"
	MetaForm = "form"
)

// Patch kinds.
const (
	KindForm   = "form"
	KindNotice = "notice"
)

// Publisher implements forms.Events on top of the pub/sub bus.
type Publisher struct {
	publisher pubsub.Publisher
	renderer  rendering.Renderer
}

var _ forms.Events = (*Publisher)(nil)

// NewPublisher creates a Publisher.
func NewPublisher(pub pubsub.Publisher, r rendering.Renderer) *Publisher {
	return &Publisher{publisher: pub, renderer: r}
}

// FormChanged repaints the form panel for view.
func (lp *Publisher) FormChanged(ctx context.Context, p *forms.Page, view forms.FormView) {
	var payload []byte
	err := p.WithLock(func() error {
		form, err := p.Form(view)
		if err != nil {
			return err
		}
		payload, err = lp.renderer.RenderComponent(ctx, pages.FormPanel(p, form, true))
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to render form patch", "page_id", p.ID, "form", view, "error", err)
		return
	}
	lp.publish(ctx, p.ID, payload, map[string]string{MetaKind: KindForm, MetaForm: string(view)})
}

// Notify appends a notice to the page's toast stack.
func (lp *Publisher) Notify(ctx context.Context, p *forms.Page, message string) {
	payload, err := lp.renderer.RenderComponent(ctx, pages.Notice(message))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to render notice", "page_id", p.ID, "error", err)
		return
	}
	lp.publish(ctx, p.ID, payload, map[string]string{MetaKind: KindNotice})
}

func (lp *Publisher) publish(ctx context.Context, pageID string, payload []byte, meta map[string]string) {
	msg := pubsub.Message{
		Topic:    pubsub.TopicPagePatch,
		UserID:   pageID,
		Payload:  payload,
		Metadata: meta,
	}
	if err := lp.publisher.Publish(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish page patch", "page_id", pageID, "kind", meta[MetaKind], "error", err)
	}
}
