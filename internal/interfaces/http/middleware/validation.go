package middleware

import (
	"reflect"
	"strings"

	"github.com/garment/backend/internal/domain/thirdparty"
	"github.com/garment/backend/internal/domain/trade"
	"github.com/garment/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator registers the closed-enum binding tags and makes
// validation errors report JSON field names instead of Go field names.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("legalstatus", func(fl validator.FieldLevel) bool {
		_, err := thirdparty.ParseStatus(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		_, err := trade.ParseOrderStatus(fl.Field().String())
		return err == nil
	})
}

// FormatValidationErrors turns a binding error into the standard
// validation response, listing each failed field
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range verrs {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: validationMessage(e),
			})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "uuid":
		return "Invalid UUID format"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "legalstatus":
		return "Must be one of: VIGENTE, EN_REVISION, BLOQUEADO"
	case "orderstatus":
		return "Unknown order status"
	default:
		return "Invalid value"
	}
}
