package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a go-playground validator instance.
type Validator struct {
	validate *validator.Validate
}

// Validate checks the struct's validate tags.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

var (
	validatorOnce     sync.Once
	validatorInstance *Validator
)

// GetValidator returns the shared request validator.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		validatorInstance = &Validator{validate: validator.New()}
	})
	return validatorInstance
}
