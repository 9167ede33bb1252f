package accounting

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
)

// Rule pins the nature of the accounts starting with Prefix. A rule with
// Children refines the match: the search continues among them.
type Rule struct {
	Prefix   string
	Nature   domain.Nature
	Children []Rule
}

// ClassRules holds the natures allowed for a PCG class and its prefix rules.
type ClassRules struct {
	Allowed []domain.Nature
	Rules   []Rule
}

func pin(nature domain.Nature, prefixes ...string) []Rule {
	rules := make([]Rule, 0, len(prefixes))
	for _, p := range prefixes {
		rules = append(rules, Rule{Prefix: p, Nature: nature})
	}
	return rules
}

func nest(prefix string, children ...[]Rule) Rule {
	return Rule{Prefix: prefix, Children: slices.Concat(children...)}
}

// pcgRules is the classification table of the Plan Comptable Général.
// Classes with a single nature use one rule with an empty prefix.
var pcgRules = map[string]ClassRules{
	"1": {
		Allowed: []domain.Nature{domain.NatureActif, domain.NaturePassif},
		Rules: slices.Concat(
			pin(domain.NaturePassif, "101", "103", "106"),
			[]Rule{nest("108", pin(domain.NaturePassif, "1081"), pin(domain.NatureActif, "1089"))},
			pin(domain.NaturePassif, "110", "120", "13", "14", "15"),
			pin(domain.NatureActif, "119", "129"),
			[]Rule{nest("16",
				pin(domain.NaturePassif, "164", "165", "166", "167", "168"),
				pin(domain.NatureActif, "169"),
			)},
		),
	},
	"2": {
		Allowed: []domain.Nature{domain.NatureActif},
		Rules:   pin(domain.NatureActif, ""),
	},
	"3": {
		Allowed: []domain.Nature{domain.NatureActif},
		Rules:   pin(domain.NatureActif, ""),
	},
	"4": {
		Allowed: []domain.Nature{domain.NatureActif, domain.NaturePassif, domain.NatureTVA},
		Rules: slices.Concat(
			pin(domain.NaturePassif, "401", "403", "404", "405", "408", "419"),
			pin(domain.NatureActif, "409", "411", "413", "416", "417", "418"),
			pin(domain.NaturePassif, "421", "422", "424", "426", "427", "428"),
			pin(domain.NatureActif, "425", "429"),
			pin(domain.NaturePassif, "43"),
			pin(domain.NatureActif, "441", "442", "443"),
			[]Rule{nest("444", pin(domain.NaturePassif, "4441"), pin(domain.NatureActif, "4442"))},
			pin(domain.NatureActif, "4451", "4456"),
			pin(domain.NaturePassif, "4452", "4455", "4457"),
			pin(domain.NatureTVA, "4458"),
			pin(domain.NaturePassif, "447", "448", "451", "455", "456", "457", "458"),
			pin(domain.NatureActif, "462", "465", "467"),
			pin(domain.NaturePassif, "464", "468"),
			pin(domain.NatureActif, "471", "476"),
			pin(domain.NaturePassif, "472", "477"),
			pin(domain.NatureActif, "481", "486", "489", "491", "496"),
			pin(domain.NaturePassif, "487", "488"),
		),
	},
	"5": {
		Allowed: []domain.Nature{domain.NatureActif, domain.NaturePassif},
		Rules: slices.Concat(
			pin(domain.NatureActif, "50", "51", "53", "54", "58", "59"),
			pin(domain.NaturePassif, "509", "519"),
		),
	},
	"6": {
		Allowed: []domain.Nature{domain.NatureCharge},
		Rules:   pin(domain.NatureCharge, ""),
	},
	"7": {
		Allowed: []domain.Nature{domain.NatureProduit},
		Rules:   pin(domain.NatureProduit, ""),
	},
}

var accountNumberPattern = regexp.MustCompile(`^[1-7]\d{5}$`)

// Classifier checks declared account natures against a rule table.
// It is read-only after construction and safe for concurrent use.
type Classifier struct {
	classes map[string]ClassRules
}

// NewClassifier returns a classifier over the PCG table.
func NewClassifier() *Classifier {
	return newClassifier(pcgRules)
}

func newClassifier(table map[string]ClassRules) *Classifier {
	classes := make(map[string]ClassRules, len(table))
	for class, cr := range table {
		classes[class] = ClassRules{Allowed: cr.Allowed, Rules: longestFirst(cr.Rules)}
	}
	return &Classifier{classes: classes}
}

// longestFirst returns a copy of rules with longer prefixes first, recursively.
func longestFirst(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	for i, r := range rules {
		if len(r.Children) > 0 {
			r.Children = longestFirst(r.Children)
		}
		sorted[i] = r
	}
	slices.SortStableFunc(sorted, func(a, b Rule) int {
		return len(b.Prefix) - len(a.Prefix)
	})
	return sorted
}

var defaultClassifier = NewClassifier()

// Classify checks declared against the PCG table.
func Classify(accountNumber string, declared domain.Nature) domain.ClassificationResult {
	return defaultClassifier.Classify(accountNumber, declared)
}

// Classify checks that the declared nature fits the account number.
func (c *Classifier) Classify(accountNumber string, declared domain.Nature) domain.ClassificationResult {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return domain.ClassificationResult{Valid: false, Message: "account number is required"}
	}

	class := accountNumber[:1]
	cr, ok := c.classes[class]
	if !ok {
		return domain.ClassificationResult{
			Valid:   false,
			Message: fmt.Sprintf("classe non reconnue: class %s of account %s is not in 1-7", class, accountNumber),
		}
	}

	if !slices.Contains(cr.Allowed, declared) {
		return domain.ClassificationResult{
			Valid:   false,
			Message: fmt.Sprintf("nature %q is not allowed for class %s (allowed: %s)", declared, class, joinNatures(cr.Allowed)),
		}
	}

	expected, matched := match(cr.Rules, accountNumber)
	if !matched {
		return domain.ClassificationResult{
			Valid:   true,
			Message: fmt.Sprintf("no specific rule for account %s, nature %s accepted for class %s", accountNumber, declared, class),
		}
	}
	if expected != declared {
		return domain.ClassificationResult{
			Valid:    false,
			Expected: expected,
			Message:  fmt.Sprintf("classification mismatch: expected %s for account %s, declared %s", expected, accountNumber, declared),
		}
	}
	return domain.ClassificationResult{
		Valid:    true,
		Expected: expected,
		Message:  fmt.Sprintf("account %s classified as %s", accountNumber, expected),
	}
}

// ExpectedNature returns the nature pinned by the table for accountNumber.
func (c *Classifier) ExpectedNature(accountNumber string) (domain.Nature, bool) {
	if accountNumber == "" {
		return "", false
	}
	cr, ok := c.classes[accountNumber[:1]]
	if !ok {
		return "", false
	}
	return match(cr.Rules, accountNumber)
}

// match walks rules (sorted longest prefix first) and descends into nested
// rules. It reports false when nothing matches at some level.
func match(rules []Rule, accountNumber string) (domain.Nature, bool) {
	for _, r := range rules {
		if !strings.HasPrefix(accountNumber, r.Prefix) {
			continue
		}
		if len(r.Children) == 0 {
			return r.Nature, true
		}
		return match(r.Children, accountNumber)
	}
	return "", false
}

func joinNatures(natures []domain.Nature) string {
	parts := make([]string, len(natures))
	for i, n := range natures {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}

// ValidateAccountNumber checks the chart format: six digits, class 1 to 7.
func ValidateAccountNumber(accountNumber string) error {
	if accountNumber == "" {
		return apperrors.NewValidationError("account number is required")
	}
	if !accountNumberPattern.MatchString(accountNumber) {
		return apperrors.NewValidationError("account number %q must be 6 digits starting with a class from 1 to 7", accountNumber)
	}
	return nil
}
