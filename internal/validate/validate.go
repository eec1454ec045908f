// Package validate wraps go-playground/validator so facade writes surface
// a single field-naming validation fault instead of the library's combined
// error string.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"club-booking/backend/internal/fault"
	"club-booking/backend/internal/utils"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their json name so API clients can match them
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = val.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return utils.IsHHMM(fl.Field().String())
	})

	return val
}

// Struct validates s and returns a *fault.Validation for the first
// violation, nil when s is valid.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &fault.Validation{Field: fe.Field(), Message: message(fe)}
	}
	return err
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be > %s", fe.Param())
	case "hhmm":
		return "must be a 24h HH:MM time"
	case "dive":
		return "contains an invalid element"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
