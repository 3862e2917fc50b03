package forms

import (
	"context"
	"log/slog"
	"time"

	"github.com/nfrund/authpanel/internal/schedule"
)

// Fixed delays of the simulated submit flow.
const (
	ShakeDuration = 500 * time.Millisecond
	SubmitLatency = 800 * time.Millisecond
)

// SubmitResult is the immediate outcome of a submit.
type SubmitResult int

const (
	// SubmitInvalid means at least one field failed and the form shakes.
	SubmitInvalid SubmitResult = iota
	// SubmitAccepted means every field passed and the success simulation started.
	SubmitAccepted
	// SubmitPending means a success simulation was already running; nothing changed.
	SubmitPending
)

func (r SubmitResult) String() string {
	switch r {
	case SubmitAccepted:
		return "accepted"
	case SubmitPending:
		return "pending"
	default:
		return "invalid"
	}
}

// Events receives the changes made by delayed callbacks, after the page
// lock has been released.
type Events interface {
	// FormChanged reports that the form for view must be repainted.
	FormChanged(ctx context.Context, p *Page, view FormView)
	// Notify surfaces a success notice to the user.
	Notify(ctx context.Context, p *Page, message string)
}

type nopEvents struct{}

func (nopEvents) FormChanged(context.Context, *Page, FormView) {}
func (nopEvents) Notify(context.Context, *Page, string) {}

// Orchestrator runs the submit flow: validate every field, then either shake
// the form or simulate a successful request.
type Orchestrator struct {
	validator *Validator
	scheduler schedule.Scheduler
	events    Events
}

// NewOrchestrator creates an Orchestrator. A nil events sink discards events.
func NewOrchestrator(v *Validator, s schedule.Scheduler, events Events) *Orchestrator {
	if events == nil {
		events = nopEvents{}
	}
	return &Orchestrator{validator: v, scheduler: s, events: events}
}

// Submit copies values into the form's fields and validates all of them.
// Fields missing from values are treated as empty.
func (o *Orchestrator) Submit(ctx context.Context, p *Page, view FormView, values map[FieldName]string) (SubmitResult, error) {
	// Delayed callbacks outlive the request.
	ctx = context.WithoutCancel(ctx)

	p.mu.Lock()
	form, err := p.Form(view)
	if err != nil {
		p.mu.Unlock()
		return SubmitInvalid, err
	}
	if form.pending {
		p.mu.Unlock()
		return SubmitPending, nil
	}

	allValid := true
	for _, field := range form.Fields {
		field.Value = values[field.Name]
		if !field.Validate(o.validator) {
			allValid = false
		}
	}

	if !allValid {
		form.El.Classes.Add(ClassShake)
		p.mu.Unlock()

		slog.DebugContext(ctx, "Submit rejected", "page_id", p.ID, "form", view)
		o.scheduler.After(ShakeDuration, func() {
			p.mu.Lock()
			form.El.Classes.Remove(ClassShake)
			p.mu.Unlock()
			o.events.FormChanged(ctx, p, view)
		})
		return SubmitInvalid, nil
	}

	original := form.Submit.Inner
	form.Submit.Inner = IconSpinner
	form.Submit.Disabled = true
	form.pending = true
	p.mu.Unlock()

	slog.DebugContext(ctx, "Submit accepted, simulating request", "page_id", p.ID, "form", view)
	o.scheduler.After(SubmitLatency, func() {
		p.mu.Lock()
		form.Submit.Inner = original
		form.Submit.Disabled = false
		form.pending = false
		message := form.SuccessMessage
		p.mu.Unlock()

		o.events.Notify(ctx, p, message)
		o.events.FormChanged(ctx, p, view)
	})
	return SubmitAccepted, nil
}
