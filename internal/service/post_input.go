package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreatePostInput is the untrusted payload of the create operation.
type CreatePostInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"\"", "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	"\\", "&#x5C;",
	"`", "&#96;",
)

// EscapeHTML replaces the characters that are unsafe in HTML text and
// attribute context with entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Sanitize trims every field and escapes name and title. Content keeps its
// markup.
func (in CreatePostInput) Sanitize() CreatePostInput {
	return CreatePostInput{
		Name:    EscapeHTML(strings.TrimSpace(in.Name)),
		Title:   EscapeHTML(strings.TrimSpace(in.Title)),
		Content: strings.TrimSpace(in.Content),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput checks already sanitized input, so length limits apply to the
// stored value.
func validateInput(v *validator.Validate, in CreatePostInput) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field must be defined", fe.Field())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid", fe.Field())
	}
}
