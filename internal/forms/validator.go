package forms

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailShape is the minimal "x@y.z" shape check. It is not RFC validation.
var emailShape = regexp.MustCompile(
	`^[^` + jsSpaceClass + `@]+@[^` + jsSpaceClass + `@]+\.[^` + jsSpaceClass + `@]+$`,
)

// fieldRules maps each known field to its validator tag.
var fieldRules = map[FieldName]string{
	Email:    "shape_email",
	Password: "utf16min=6",
	FullName: "not_blank",
}

// Validator checks field values against the per-field rules. It also
// validates tagged request structs, so it can back Echo's validator.
type Validator struct {
	engine *validator.Validate
}

// NewValidator creates a Validator with the field rule tags registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report struct errors under the form field name, which is the FieldName.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on empty or reserved tag names.
	_ = v.RegisterValidation("shape_email", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("utf16min", func(fl validator.FieldLevel) bool {
		want, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf16Len(fl.Field().String()) >= want
	})
	_ = v.RegisterValidation("not_blank", func(fl validator.FieldLevel) bool {
		return len(trimJS(fl.Field().String())) > 0
	})

	return &Validator{engine: v}
}

// Validate reports whether value satisfies the rule for the named field.
// Unknown field names are never valid.
func (v *Validator) Validate(name FieldName, value string) bool {
	rule, ok := fieldRules[name]
	if !ok {
		return false
	}
	return v.engine.Var(value, rule) == nil
}

// Struct validates a struct using its `validate` tags.
func (v *Validator) Struct(i any) error {
	return v.engine.Struct(i)
}
