package validator

import (
	"errors"
	"fmt"

	playground "github.com/go-playground/validator/v10"
)

// Validator validates request structs via their `validate` tags.
type Validator struct {
	validate *playground.Validate
}

func New() *Validator {
	return &Validator{validate: playground.New()}
}

func (v *Validator) Validate(obj interface{}) error {
	if err := v.validate.Struct(obj); err != nil {
		var errs playground.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("field %s failed on %s", first.Field(), first.Tag())
		}
		return err
	}
	return nil
}
