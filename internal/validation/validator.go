package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskhub/internal/apperr"
)

// Shared validator instance. Schemas in this package narrow loosely-typed
// input into exactly the payload a single repository mutation accepts; the
// alignment between a schema and the method it guards is structural because
// the schema's output type IS the method's parameter type.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// The builtin url tag rejects the empty string, but for clearable profile
	// fields an empty value means "clear". urlifset only validates non-empty
	// values.
	_ = v.RegisterValidation("urlifset", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		u, err := url.Parse(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	})
	return v
}

// parse validates a payload and returns it unchanged, or a Validation error
// enumerating every violated field. Validation is all-or-nothing.
func parse[T any](payload T) (T, error) {
	if err := validate.Struct(payload); err != nil {
		var zero T
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return zero, apperr.Wrap(apperr.KindValidation, "invalid input", err)
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = messageFor(fe)
		}
		return zero, apperr.Validation("invalid input", fields)
	}
	return payload, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url", "urlifset":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
