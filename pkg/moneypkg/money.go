// Package moneypkg provides money amount validation for request binding.
package moneypkg

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DecimalValue exposes decimal.Decimal fields to the validator as strings,
// so that field tags are applied to them instead of descending into the struct.
func DecimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}

	return nil
}

// ValidAmount validates whether the amount is a number greater than zero.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}

	return d.IsPositive()
}

// Register installs the decimal type func and the "amount" rule into v.
func Register(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(DecimalValue, decimal.Decimal{})
	return v.RegisterValidation("amount", ValidAmount)
}
