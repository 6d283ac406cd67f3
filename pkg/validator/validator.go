package validator

import (
	validators "github.com/go-playground/validator/v10"
)

// Validator interface - Struct validation used at startup to reject a
// configuration missing its required secrets before the bot serves
type Validator interface {
	ValidateStruct(inf interface{}) error
}

type validator struct {
	validator *validators.Validate
}

// New Validator func
func New() Validator {
	return &validator{
		validator: validators.New(),
	}
}

// ValidateStruct func - Validates struct fields against their validate tags
func (v *validator) ValidateStruct(inf interface{}) error {
	return v.validator.Struct(inf)
}
