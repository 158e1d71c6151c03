package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register adds the league rules to gin's validator engine and makes it
// report fields by their JSON names
func Register() error {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return RegisterOn(validate)
}

// RegisterOn adds the league rules to validate
func RegisterOn(validate *validator.Validate) error {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// In-game UIDs
	if err := validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return entity.IsDigits(fl.Field().String())
	}); err != nil {
		return err
	}

	// Mobile banking number, optional leading +
	return validate.RegisterValidation("payout_target", func(fl validator.FieldLevel) bool {
		return entity.IsDigits(strings.TrimPrefix(fl.Field().String(), "+"))
	})
}

// FieldErrors maps a binding error to messages keyed by JSON field name.
// It returns nil when err is not a validation failure.
func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			fields[field] = "This field is required"
		case "digits":
			fields[field] = "Must contain digits only"
		case "payout_target":
			fields[field] = "Must be a mobile banking number"
		case "max":
			fields[field] = fmt.Sprintf("Must be at most %s characters", fe.Param())
		case "gte":
			fields[field] = fmt.Sprintf("Must be at least %s", fe.Param())
		default:
			fields[field] = "Invalid value"
		}
	}
	return fields
}
