package entity

import "strings"

// AddressType classifies what a user uses an address for. The set is closed;
// payloads carrying anything else are rejected during validation.
const (
	AddressTypeHome   = "HOME"
	AddressTypeWork   = "WORK"
	AddressTypePostal = "POSTAL"
	AddressTypeOther  = "OTHER"
)

// AddressTypes lists every accepted address type.
var AddressTypes = []string{
	AddressTypeHome,
	AddressTypeWork,
	AddressTypePostal,
	AddressTypeOther,
}

// States lists the accepted region codes for the state field.
var States = []string{"NSW", "VIC", "QLD", "WA", "SA", "TAS", "ACT", "NT"}

// IsAddressType reports case-insensitive membership in the address type set.
func IsAddressType(s string) bool {
	return containsFold(AddressTypes, s)
}

// IsState reports case-insensitive membership in the region code set.
func IsState(s string) bool {
	return containsFold(States, s)
}

func containsFold(set []string, s string) bool {
	for _, member := range set {
		if strings.EqualFold(member, s) {
			return true
		}
	}

	return false
}
