package entities

import (
	"crypto/sha1" //nolint:gosec // identifiers, not a security boundary
	"encoding/hex"
)

// IDLength is the number of hex characters kept from the identity digest.
const IDLength = 10

// MemberID derives the identifier of a member from its immutable identity
// fields. The digest is truncated, so distinct members sharing first name,
// last name and province get the same identifier. Duplicates are rejected by
// the registry, not here.
func MemberID(firstName, lastName, province string) string {
	h := sha1.New() //nolint:gosec
	h.Write([]byte(firstName))
	h.Write([]byte(lastName))
	h.Write([]byte(province))
	return hex.EncodeToString(h.Sum(nil))[:IDLength]
}
