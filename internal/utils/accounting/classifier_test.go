package accounting_test

import (
	"sync"
	"testing"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		declared domain.Nature
		valid    bool
		expected domain.Nature
		contains string
	}{
		{"fixed asset", "213000", domain.NatureActif, true, domain.NatureActif, ""},
		{"fixed asset declared liability", "213000", domain.NaturePassif, false, "", "not allowed for class 2"},
		{"supplier", "401000", domain.NaturePassif, true, domain.NaturePassif, ""},
		{"supplier declared asset", "401000", domain.NatureActif, false, domain.NaturePassif, "classification mismatch: expected passif"},
		{"customer", "411000", domain.NatureActif, true, domain.NatureActif, ""},
		{"collected vat", "445710", domain.NaturePassif, true, domain.NaturePassif, ""},
		{"collected vat declared tva", "445710", domain.NatureTVA, false, domain.NaturePassif, "expected passif"},
		{"deductible vat", "445660", domain.NatureActif, true, domain.NatureActif, ""},
		{"vat to regularise", "445800", domain.NatureTVA, true, domain.NatureTVA, ""},
		{"nested 1081", "108100", domain.NaturePassif, true, domain.NaturePassif, ""},
		{"nested 1089", "108900", domain.NatureActif, true, domain.NatureActif, ""},
		{"nested 1089 declared liability", "108900", domain.NaturePassif, false, domain.NatureActif, "expected actif"},
		{"nested 169", "169000", domain.NatureActif, true, domain.NatureActif, ""},
		{"nested 164", "164000", domain.NaturePassif, true, domain.NaturePassif, ""},
		{"nested 16 without child falls back", "161000", domain.NatureActif, true, "", "no specific rule"},
		{"nested 4441", "444100", domain.NaturePassif, true, domain.NaturePassif, ""},
		{"nested 4442", "444200", domain.NatureActif, true, domain.NatureActif, ""},
		{"longest prefix wins", "509000", domain.NaturePassif, true, domain.NaturePassif, ""},
		{"shorter prefix", "501000", domain.NatureActif, true, domain.NatureActif, ""},
		{"bank overdraft", "519000", domain.NatureActif, false, domain.NaturePassif, "expected passif"},
		{"permissive fallback", "406000", domain.NatureActif, true, "", "no specific rule"},
		{"charge", "606000", domain.NatureCharge, true, domain.NatureCharge, ""},
		{"charge declared product", "606000", domain.NatureProduit, false, "", "not allowed for class 6"},
		{"product", "707000", domain.NatureProduit, true, domain.NatureProduit, ""},
		{"tva not allowed in class 5", "512000", domain.NatureTVA, false, "", "not allowed for class 5"},
		{"unknown class", "999000", domain.NatureActif, false, "", "classe non reconnue"},
		{"class eight", "801000", domain.NatureCharge, false, "", "classe non reconnue"},
		{"empty", "", domain.NatureActif, false, "", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := accounting.Classify(tt.number, tt.declared)
			assert.Equal(t, tt.valid, res.Valid, res.Message)
			assert.Equal(t, tt.expected, res.Expected)
			if tt.contains != "" {
				assert.Contains(t, res.Message, tt.contains)
			}
		})
	}
}

func TestClassifier_ExpectedNature(t *testing.T) {
	c := accounting.NewClassifier()

	nature, ok := c.ExpectedNature("445710")
	require.True(t, ok)
	assert.Equal(t, domain.NaturePassif, nature)

	_, ok = c.ExpectedNature("406000")
	assert.False(t, ok)

	_, ok = c.ExpectedNature("")
	assert.False(t, ok)
}

func TestClassify_ConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, accounting.Classify("411000", domain.NatureActif).Valid)
		}()
	}
	wg.Wait()
}

func TestValidateAccountNumber(t *testing.T) {
	assert.NoError(t, accounting.ValidateAccountNumber("411000"))

	for _, number := range []string{"", "41100", "4110000", "811000", "01A000", "41100x"} {
		err := accounting.ValidateAccountNumber(number)
		assert.ErrorIs(t, err, apperrors.ErrValidation, number)
	}
}
