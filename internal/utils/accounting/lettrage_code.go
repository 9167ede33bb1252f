package accounting

import (
	"errors"
	"fmt"
	"regexp"
)

// FirstReconciliationCode is allocated when no code exists yet.
const FirstReconciliationCode = "AA"

// ErrCodeSpaceExhausted is returned once "ZZ" has been allocated.
var ErrCodeSpaceExhausted = errors.New("reconciliation code space exhausted after ZZ")

var reconciliationCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// IsReconciliationCode reports whether code is two uppercase letters.
func IsReconciliationCode(code string) bool {
	return reconciliationCodePattern.MatchString(code)
}

// NextReconciliationCode returns the code following last: the second letter
// is incremented and carries into the first. An empty last yields "AA".
func NextReconciliationCode(last string) (string, error) {
	if last == "" {
		return FirstReconciliationCode, nil
	}
	if !IsReconciliationCode(last) {
		return "", fmt.Errorf("invalid reconciliation code %q", last)
	}
	first, second := last[0], last[1]
	if second < 'Z' {
		return string([]byte{first, second + 1}), nil
	}
	if first < 'Z' {
		return string([]byte{first + 1, 'A'}), nil
	}
	return "", ErrCodeSpaceExhausted
}

// AllocateReconciliationCode returns the first code after highWater that
// taken does not report. highWater is the last code ever allocated, so a
// code freed by an unreconcile is never handed out again.
func AllocateReconciliationCode(highWater string, taken func(code string) bool) (string, error) {
	code := highWater
	for {
		next, err := NextReconciliationCode(code)
		if err != nil {
			return "", err
		}
		if !taken(next) {
			return next, nil
		}
		code = next
	}
}

// LaterReconciliationCode returns the greater of two codes, ignoring anything
// that is not a two-letter code.
func LaterReconciliationCode(a, b string) string {
	if !IsReconciliationCode(b) {
		return a
	}
	if !IsReconciliationCode(a) || b > a {
		return b
	}
	return a
}
