package validator

import "errors"

// Validator is the single validation entry point shared by services and handlers
type Validator struct {
	business *BusinessValidator
}

func New() *Validator {
	return &Validator{business: NewBusinessValidator()}
}

// Validate runs struct tag validation and returns ValidationErrors or nil
func (v *Validator) Validate(s any) error {
	if errs := v.business.Validate(s); len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

// AsValidationErrors unwraps err into ValidationErrors when possible
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
