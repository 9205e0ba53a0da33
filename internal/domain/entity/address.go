// Package entity contains the core business objects of the project.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCountry is applied when a creation payload omits the country field.
const DefaultCountry = "Australia"

// Address is a postal address owned by a single user. The identity of a
// record is the (UserID, AddressID) pair; AddressID is a randomly generated
// UUID and never reused.
type Address struct {
	UserID        string    `json:"userId"`
	AddressID     uuid.UUID `json:"addressId"`
	StreetAddress string    `json:"streetAddress"`
	Suburb        string    `json:"suburb"`
	State         string    `json:"state"`
	Postcode      string    `json:"postcode"`
	Country       string    `json:"country"`
	AddressType   *string   `json:"addressType,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SameLocation reports whether two records describe the same physical
// address. The six comparable fields are matched case-insensitively on
// trimmed values; a missing addressType only matches a missing addressType.
func (a *Address) SameLocation(other *Address) bool {
	if !equalFoldTrimmed(a.StreetAddress, other.StreetAddress) ||
		!equalFoldTrimmed(a.Suburb, other.Suburb) ||
		!equalFoldTrimmed(a.State, other.State) ||
		!equalFoldTrimmed(a.Postcode, other.Postcode) ||
		!equalFoldTrimmed(a.Country, other.Country) {
		return false
	}

	if (a.AddressType == nil) != (other.AddressType == nil) {
		return false
	}
	if a.AddressType == nil {
		return true
	}

	return equalFoldTrimmed(*a.AddressType, *other.AddressType)
}

func equalFoldTrimmed(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
