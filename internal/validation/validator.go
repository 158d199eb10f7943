package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/community-news-api/internal/models"
)

// Validator checks admin form input before anything is written
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the article rules registered
func NewValidator() *Validator {
	validate := validator.New()

	// Report JSON field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// ValidateDraft returns every failing field of the draft, or nil
func (v *Validator) ValidateDraft(draft *models.ArticleDraft) models.ValidationErrors {
	err := v.validate.Struct(draft)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return models.ValidationErrors{{Field: "article", Message: err.Error()}}
	}

	errs := make(models.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, toValidationError(fe))
	}
	return errs
}

func toValidationError(fe validator.FieldError) models.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "notblank", "required":
		return models.ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	case "category":
		return models.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("invalid category, must be one of: %s", strings.Join(models.Categories, ", ")),
			Value:   fe.Value(),
		}
	case "oneof":
		return models.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("invalid %s, must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")),
			Value:   fe.Value(),
		}
	default:
		return models.ValidationError{Field: field, Message: fmt.Sprintf("%s is invalid", field), Value: fe.Value()}
	}
}
