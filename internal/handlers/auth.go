package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/authpanel/internal/forms"
	"github.com/nfrund/authpanel/internal/middleware"
	"github.com/nfrund/authpanel/internal/rendering"
	"github.com/nfrund/authpanel/internal/view"
	"github.com/nfrund/authpanel/web/src/templates/layouts"
	"github.com/nfrund/authpanel/web/src/templates/pages"
)

// AuthHandler serves the auth page and its htmx endpoints.
type AuthHandler struct {
	validator    *forms.Validator
	orchestrator *forms.Orchestrator
	renderer     rendering.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(v *forms.Validator, o *forms.Orchestrator, r rendering.Renderer) *AuthHandler {
	return &AuthHandler{validator: v, orchestrator: o, renderer: r}
}

// PageGet renders the full auth page (GET /auth).
func (h *AuthHandler) PageGet(c echo.Context) error {
	p, err := pageFrom(c)
	if err != nil {
		return err
	}
	flashes := view.GetFlashData(c)
	return h.renderLocked(c, p, func() ([]any, error) {
		return []any{layouts.Base("Sign in", flashes, pages.Auth(p))}, nil
	})
}

// FieldPost validates one field and returns its input group
// (POST /auth/:form/fields/:field). The register password also repaints the
// strength meter out of band.
func (h *AuthHandler) FieldPost(c echo.Context) error {
	p, err := pageFrom(c)
	if err != nil {
		return err
	}
	formView, err := forms.ParseFormView(c.Param("form"))
	if err != nil {
		return notFound(err)
	}
	name := forms.FieldName(c.Param("field"))
	value := c.FormValue(string(name))

	valid, state, err := p.ValidateField(h.validator, formView, name, value)
	if err != nil {
		return notFound(err)
	}
	withMeter := formView == forms.ViewRegister && name == forms.Password
	if withMeter {
		p.CheckStrength(value)
	}
	middleware.FromContext(c.Request().Context()).Debug("Field validated",
		"form", formView, "field", name, "valid", valid, "state", state)

	return h.renderLocked(c, p, func() ([]any, error) {
		form, err := p.Form(formView)
		if err != nil {
			return nil, err
		}
		field, err := form.Field(name)
		if err != nil {
			return nil, err
		}
		out := []any{pages.InputGroup(formView, field, false)}
		if withMeter {
			out = append(out, pages.StrengthMeter(p.Meter, true))
		}
		return out, nil
	})
}

// StrengthPost scores a password and returns the descriptor as JSON
// (POST /auth/strength).
func (h *AuthHandler) StrengthPost(c echo.Context) error {
	p, err := pageFrom(c)
	if err != nil {
		return err
	}
	var req StrengthRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p.CheckStrength(req.Password))
}

// TogglePost swaps the visible form and returns both panels
// (POST /auth/toggle).
func (h *AuthHandler) TogglePost(c echo.Context) error {
	p, err := pageFrom(c)
	if err != nil {
		return err
	}
	shown := p.Toggle()
	middleware.FromContext(c.Request().Context()).Debug("Form toggled", "visible", shown)

	return h.renderLocked(c, p, func() ([]any, error) {
		return []any{pages.Forms(p)}, nil
	})
}

// SubmitPost runs the submit flow (POST /auth/:form/submit). htmx requests
// get the form back; plain posts are redirected to the page.
func (h *AuthHandler) SubmitPost(c echo.Context) error {
	p, err := pageFrom(c)
	if err != nil {
		return err
	}
	formView, err := forms.ParseFormView(c.Param("form"))
	if err != nil {
		return notFound(err)
	}
	req := newSubmitRequest(formView)
	if err := c.Bind(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	result, err := h.orchestrator.Submit(ctx, p, formView, req.Values())
	if err != nil {
		return notFound(err)
	}
	middleware.FromContext(ctx).Info("Form submitted", "form", formView, "result", result)

	if !isHTMX(c) {
		if result == forms.SubmitInvalid {
			flashInvalid(c, req)
		}
		return c.Redirect(http.StatusSeeOther, "/auth")
	}
	return h.renderLocked(c, p, func() ([]any, error) {
		form, err := p.Form(formView)
		if err != nil {
			return nil, err
		}
		return []any{pages.FormPanel(p, form, false)}, nil
	})
}

// renderLocked builds and renders components while holding the page lock,
// then writes them as the response.
func (h *AuthHandler) renderLocked(c echo.Context, p *forms.Page, build func() ([]any, error)) error {
	var body []byte
	err := p.WithLock(func() error {
		components, err := build()
		if err != nil {
			return err
		}
		body, err = h.renderer.RenderComponent(c.Request().Context(), components...)
		return err
	})
	if err != nil {
		return notFound(err)
	}
	return c.HTMLBlob(http.StatusOK, body)
}

// flashInvalid stores one error flash per failing field.
func flashInvalid(c echo.Context, req submitRequest) {
	err := c.Validate(req)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		view.SetFlashError(c, "Please check the highlighted fields.")
		return
	}
	for _, fe := range verrs {
		view.SetFlashError(c, forms.ErrorText(forms.FieldName(fe.Field())))
	}
}

func pageFrom(c echo.Context) (*forms.Page, error) {
	p, ok := middleware.PageFrom(c)
	if !ok {
		return nil, fmt.Errorf("page middleware not installed on %s", c.Path())
	}
	return p, nil
}

// notFound maps page model lookup errors to 404 and passes others through.
func notFound(err error) error {
	if errors.Is(err, forms.ErrUnknownForm) || errors.Is(err, forms.ErrUnknownField) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return err
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
