package mock

import "github.com/fwojciec/sangga"

var _ sangga.PropertyValidator = (*PropertyValidator)(nil)

// PropertyValidator is a mock implementation of sangga.PropertyValidator.
type PropertyValidator struct {
	ValidatePropertyFn func(raw []byte) error
}

func (v *PropertyValidator) ValidateProperty(raw []byte) error {
	return v.ValidatePropertyFn(raw)
}
