package serverutils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest runs the `validate` struct tags; errors are validator.ValidationErrors
func ValidateRequest(req interface{}) error {
	return getValidator().Struct(req)
}
