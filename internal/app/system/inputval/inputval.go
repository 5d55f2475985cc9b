// Package inputval checks the few required request fields the API insists
// on. It is intentionally shallow: beyond presence, no field is validated.
package inputval

import (
	"errors"

	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Required validates v's `validate` struct tags. Any failed rule yields a
// ValidationError carrying msg, so clients see one stable message per
// request type regardless of which field was missing.
func Required(v any, msg string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		e := apierr.Validation(msg)
		fields := make([]string, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, fe.Field())
		}
		e.Details = map[string]any{"missing": fields}
		return e
	}
	return err
}
