// Package models defines the record types shared across the sync engine.
package models

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D+`)

// Subscriber is one active record from the remote directory, normalized.
// Instances are built by the source client and never mutated afterwards;
// they live only for the duration of a single sync run.
type Subscriber struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
}

// NormalizePhone strips every non-digit character from raw.
// The digits-only form is the identity used for de-duplication.
func NormalizePhone(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// SplitLastName splits a last name into paternal and maternal surnames.
// The first whitespace-separated token is the paternal surname, the second
// the maternal one. Tokens beyond the second are dropped; missing slots are
// empty strings.
func SplitLastName(last string) (paternal, maternal string) {
	parts := strings.Fields(last)
	if len(parts) >= 1 {
		paternal = parts[0]
	}
	if len(parts) >= 2 {
		maternal = parts[1]
	}
	return paternal, maternal
}
