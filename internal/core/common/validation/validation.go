package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/nullable"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names so messages match the payload keys
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(nullableValue[string], nullable.Nullable[string]{})
	v.RegisterCustomTypeFunc(nullableValue[int64], nullable.Nullable[int64]{})
	return v
}

// RegisterNullable makes tags on nullable.Nullable[T] fields check the carried
// value. Unset and null fields validate as absent. Call it from init.
func RegisterNullable[T any]() {
	validate.RegisterCustomTypeFunc(nullableValue[T], nullable.Nullable[T]{})
}

func nullableValue[T any](field reflect.Value) interface{} {
	n, ok := field.Interface().(nullable.Nullable[T])
	if !ok || !n.IsSpecified() || n.IsNull() {
		return nil
	}
	v, err := n.Get()
	if err != nil {
		return nil
	}
	return v
}

// Struct validates the tagged DTO and converts failures into a 400 AppError
// whose details list every offending field.
func Struct(dto interface{}) *apperrors.AppError {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	details := make([]apperrors.ValidationError, 0, len(fieldErrs))
	missing := make([]string, 0)
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
		details = append(details, apperrors.ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
			Code:    string(code(fe)),
		})
	}

	if len(missing) == len(details) {
		return apperrors.ErrMissingRequiredFields.
			WithMessage("Missing required fields: " + strings.Join(missing, ", "))
	}

	return apperrors.NewValidationError("Validation failed", apperrors.ErrCodeValidationFailed).
		WithDetails(apperrors.ValidationErrors{Errors: details})
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func code(fe validator.FieldError) apperrors.ErrorCode {
	switch fe.Tag() {
	case "required":
		return apperrors.ErrCodeMissingFields
	case "oneof":
		return apperrors.ErrCodeInvalidEnum
	default:
		return apperrors.ErrCodeValidationFailed
	}
}
