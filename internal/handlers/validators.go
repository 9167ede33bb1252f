package handlers

import (
	"fmt"
	"reflect"

	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs the accounting tags on gin's validator:
// pcg_account for chart numbers and vat_rate for rates in [0, 1].
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	// Decimals are validated through their string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("pcg_account", validatePCGAccount); err != nil {
		return fmt.Errorf("registering pcg_account: %w", err)
	}
	if err := v.RegisterValidation("vat_rate", validateVATRate); err != nil {
		return fmt.Errorf("registering vat_rate: %w", err)
	}
	return nil
}

func validatePCGAccount(fl validator.FieldLevel) bool {
	return accounting.ValidateAccountNumber(fl.Field().String()) == nil
}

func validateVATRate(fl validator.FieldLevel) bool {
	rate, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return accounting.ValidateVATRate(rate) == nil
}
