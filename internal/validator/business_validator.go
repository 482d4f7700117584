package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// ValidationError represents a single failed rule
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("%s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates a struct and its registered business rules
func (bv *BusinessValidator) Validate(s any) ValidationErrors {
	err := bv.validate.Struct(s)
	if err == nil {
		return nil
	}
	return bv.toValidationErrors(err)
}

// ValidateRegistration checks a sign-up request. Any non-empty username is
// accepted; uniqueness is checked against the records afterwards.
func (bv *BusinessValidator) ValidateRegistration(req *models.RegisterRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateCourseCreate checks a new course. Price is coerced later and never rejected here.
func (bv *BusinessValidator) ValidateCourseCreate(req *models.CreateCourseRequest) ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, bv.Validate(req)...)

	if strings.TrimSpace(req.Title) == "" && req.Title != "" {
		errs = append(errs, ValidationError{
			Field:   "title",
			Message: "must not be blank",
			Value:   req.Title,
			Rule:    "business_logic",
		})
	}

	return errs
}

// ValidateFeedback checks a feedback submission. The message length counts
// every character as typed, padding included.
func (bv *BusinessValidator) ValidateFeedback(req *models.CreateFeedbackRequest) ValidationErrors {
	return bv.Validate(req)
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("account_role", func(fl validator.FieldLevel) bool {
		return models.AccountRole(fl.Field().String()).Valid()
	})

	bv.validate.RegisterValidation("account_status", func(fl validator.FieldLevel) bool {
		return models.AccountStatus(fl.Field().String()).Valid()
	})

	bv.validate.RegisterValidation("course_status", func(fl validator.FieldLevel) bool {
		return models.CourseStatus(fl.Field().String()).Valid()
	})
}

func (bv *BusinessValidator) toValidationErrors(err error) ValidationErrors {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "request", Message: err.Error(), Rule: "invalid"}}
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		ve := ValidationError{
			Field:   fe.Field(),
			Message: bv.getErrorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		}
		// never echo secrets back
		if fe.Field() == "password" {
			ve.Value = nil
		}
		out = append(out, ve)
	}
	return out
}

// getErrorMessage returns user-friendly error messages
func (bv *BusinessValidator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		if err.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		if err.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", err.Param())
		}
		return fmt.Sprintf("must be at most %s", err.Param())
	case "email":
		return "must be a valid email address"
	case "account_role":
		return "must be user, faculty or admin"
	case "account_status":
		return "must be active or inactive"
	case "course_status":
		return "must be Draft or Published"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
