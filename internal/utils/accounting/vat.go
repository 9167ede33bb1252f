package accounting

import (
	"fmt"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Standard French VAT rates.
var (
	VATRateNormal       = decimal.RequireFromString("0.20")
	VATRateIntermediate = decimal.RequireFromString("0.10")
	VATRateReduced      = decimal.RequireFromString("0.055")
	VATRateSuper        = decimal.RequireFromString("0.021")
	VATRateZero         = decimal.Zero
)

// StandardVATRates lists the rates accepted without warning.
var StandardVATRates = []decimal.Decimal{VATRateZero, VATRateSuper, VATRateReduced, VATRateIntermediate, VATRateNormal}

// Accounts used by generated sales and purchase entries.
const (
	AccountCustomers        = "411000"
	AccountSuppliers        = "401000"
	AccountSales            = "707000"
	AccountPurchases        = "606000"
	AccountVATCollected     = "445710"
	AccountVATCollected20   = "445711"
	AccountVATCollected10   = "445712"
	AccountVATCollected55   = "445713"
	AccountVATDeductible    = "445660"
	AccountVATDeductible20  = "445661"
	AccountVATDeductible10  = "445662"
	DefaultCollectedPrefix  = "4457"
	DefaultDeductiblePrefix = "4456"
	VATAccountsPrefix       = "445"
)

// ValidateVATRate checks 0 <= rate <= 1.
func ValidateVATRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return apperrors.NewValidationError("VAT rate %s must be between 0 and 1", rate.String())
	}
	return nil
}

// IsStandardVATRate reports whether rate is one of the French rates.
func IsStandardVATRate(rate decimal.Decimal) bool {
	for _, r := range StandardVATRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// CollectedVATAccount returns the collected VAT account for a rate.
func CollectedVATAccount(rate decimal.Decimal) string {
	switch {
	case rate.Equal(VATRateNormal):
		return AccountVATCollected20
	case rate.Equal(VATRateIntermediate):
		return AccountVATCollected10
	case rate.Equal(VATRateReduced):
		return AccountVATCollected55
	}
	return AccountVATCollected
}

// DeductibleVATAccount returns the deductible VAT account for a rate.
func DeductibleVATAccount(rate decimal.Decimal) string {
	switch {
	case rate.Equal(VATRateNormal):
		return AccountVATDeductible20
	case rate.Equal(VATRateIntermediate):
		return AccountVATDeductible10
	}
	return AccountVATDeductible
}

// VATLabel returns the movement label of a VAT line.
func VATLabel(rate decimal.Decimal, collected bool) string {
	kind := "déductible"
	if collected {
		kind = "collectée"
	}
	return fmt.Sprintf("TVA %s %s%%", kind, rate.Mul(decimal.NewFromInt(100)).String())
}

// SplitGross computes the VAT and gross amounts of a net amount, VAT rounded to cents.
func SplitGross(net, rate decimal.Decimal) (vat, gross decimal.Decimal) {
	vat = net.Mul(rate).Round(2)
	return vat, net.Add(vat)
}
