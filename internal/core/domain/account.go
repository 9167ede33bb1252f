package domain

// Nature is the PCG nature of an account.
type Nature string

const (
	NatureActif   Nature = "actif"
	NaturePassif  Nature = "passif"
	NatureCharge  Nature = "charge"
	NatureProduit Nature = "produit"
	NatureTVA     Nature = "tva"
)

// IsValid reports whether n is one of the known natures.
func (n Nature) IsValid() bool {
	switch n {
	case NatureActif, NaturePassif, NatureCharge, NatureProduit, NatureTVA:
		return true
	}
	return false
}

// Account is a general ledger account (compte) of a company's chart.
// Accounts are created at chart setup and treated as immutable afterwards.
type Account struct {
	AccountID    int64  `json:"accountID"`
	CompanyID    int64  `json:"companyID"`
	Number       string `json:"number"` // 6 digits, first digit is the PCG class
	Label        string `json:"label"`
	Nature       Nature `json:"nature"`
	Reconcilable bool   `json:"reconcilable"` // lettrage allowed
	AuditFields
}

// Class returns the PCG class digit of the account, or "" for an empty number.
func (a Account) Class() string {
	if a.Number == "" {
		return ""
	}
	return a.Number[:1]
}

// ClassificationResult is the outcome of checking a declared nature against
// the chart rules.
type ClassificationResult struct {
	Valid    bool   `json:"valid"`
	Message  string `json:"message"`
	Expected Nature `json:"expected,omitempty"` // set when a prefix rule pinned the nature
}

// ClassificationIssue is an account that fails classification.
type ClassificationIssue struct {
	AccountID int64  `json:"accountID"`
	Number    string `json:"number"`
	Label     string `json:"label"`
	Declared  Nature `json:"declared"`
	Expected  Nature `json:"expected,omitempty"`
	Message   string `json:"message"`
}

// AccountSearch filters a chart listing. Empty fields mean no filter.
type AccountSearch struct {
	Class string `json:"class,omitempty"` // PCG class digit
	Query string `json:"query,omitempty"` // number prefix or label fragment
}
