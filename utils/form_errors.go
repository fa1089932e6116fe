package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormErrors flattens a gin binding error into per-field messages for
// form re-rendering. Non-validator errors (malformed bodies and the like)
// map to a single catch-all entry.
func FormErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "invalid form submission"
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "this field is required"
		case "min":
			out[field] = "value is too short"
		case "max":
			out[field] = "value is too long"
		default:
			out[field] = "invalid value"
		}
	}
	return out
}
