// Package validation holds the pure predicate functions every engine runs
// before touching storage. The charsets are deliberately narrow: quotes,
// semicolons, angle brackets, control bytes and non-ASCII characters are all
// rejected so user input can never become structure in a generated query.
package validation

import (
	"regexp"
	"strings"

	"addrbook/internal/domain/entity"
)

var (
	userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

	// Canonical UUID layout with the version nibble restricted to 1-5 and
	// the variant nibble to 8, 9, a or b.
	addressIDPattern = regexp.MustCompile(
		`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

	streetAddressPattern = regexp.MustCompile(`^[A-Za-z0-9 \-'.,#]+$`)
	suburbPattern        = regexp.MustCompile(`^[A-Za-z0-9 \-'.]+$`)
	countryPattern       = regexp.MustCompile(`^[A-Za-z0-9 \-']+$`)
	postcodePattern      = regexp.MustCompile(`^[0-9]{4}$`)
)

// UserID reports whether s is a well-formed user identifier.
func UserID(s string) bool {
	return userIDPattern.MatchString(s)
}

// AddressID reports whether s is a well-formed address identifier.
func AddressID(s string) bool {
	return addressIDPattern.MatchString(s)
}

// StreetAddress reports whether s is a usable street address value.
func StreetAddress(s string) bool {
	return nonEmptyMatch(s, streetAddressPattern)
}

// Suburb reports whether s is a usable suburb value.
func Suburb(s string) bool {
	return nonEmptyMatch(s, suburbPattern)
}

// State reports case-insensitive membership in the region code set.
func State(s string) bool {
	return entity.IsState(strings.TrimSpace(s))
}

// Country reports whether s is a usable country value.
func Country(s string) bool {
	return nonEmptyMatch(s, countryPattern)
}

// Postcode reports whether s is exactly four decimal digits.
func Postcode(s string) bool {
	return postcodePattern.MatchString(strings.TrimSpace(s))
}

// AddressType reports case-insensitive membership in the address type set.
func AddressType(s string) bool {
	return entity.IsAddressType(strings.TrimSpace(s))
}

func stateList() []string {
	return entity.States
}

func addressTypeList() []string {
	return entity.AddressTypes
}

func nonEmptyMatch(s string, pattern *regexp.Regexp) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}

	return pattern.MatchString(trimmed)
}
