package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the domain enum validators to gin's binding engine.
// Calls after the first are no-ops.
func RegisterValidators() error {
	registerOnce.Do(func() {
		registerErr = registerValidators()
	})
	return registerErr
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"sex": func(fl validator.FieldLevel) bool {
			_, ok := models.ParseSex(fl.Field().String())
			return ok
		},
		"role": func(fl validator.FieldLevel) bool {
			_, ok := models.ParseRole(fl.Field().String())
			return ok
		},
		"enrollment_status": func(fl validator.FieldLevel) bool {
			_, ok := models.ParseEnrollmentStatus(fl.Field().String())
			return ok
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

// BindingError converts a gin binding failure into a validation error carrying one entry per field
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]dto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, dto.FieldError{Field: fe.Field(), Message: formatValidationError(fe)})
		}
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, fields[0].Message).
			WithDetails(map[string]interface{}{"fields": fields})
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return apperrors.NewCustomError(apperrors.ErrBadRequest, "Invalid request format")
	case errors.As(err, &typeErr):
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("%s has an invalid type", typeErr.Field))
	}
	return apperrors.NewCustomError(apperrors.ErrBadRequest, "Invalid request format")
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min", "gte":
		return e.Field() + " must be at least " + e.Param()
	case "max", "lte":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "url":
		return e.Field() + " must be a valid URL"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "sex":
		return e.Field() + " must be MALE or FEMALE"
	case "role":
		return e.Field() + " must be one of: " + strings.Join(roleNames(), ", ")
	case "enrollment_status":
		return e.Field() + " must be one of: PENDING, ACTIVE, COMPLETED, CANCELLED"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

func roleNames() []string {
	names := make([]string, 0, len(models.Roles))
	for _, r := range models.Roles {
		names = append(names, string(r))
	}
	return names
}
