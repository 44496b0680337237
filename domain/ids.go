package domain

import (
	"strings"

	"github.com/google/uuid"
)

type (
	ProductID  string
	VendorID   string
	ContractID string
)

// purchasingNamespace seeds name-based ids so that repeated runs over the same
// snapshot produce the same alert and opportunity ids.
var purchasingNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("purchasing-engine"))

// DeterministicID returns a UUIDv5 derived from the given parts.
func DeterministicID(parts ...string) uuid.UUID {
	return uuid.NewSHA1(purchasingNamespace, []byte(strings.Join(parts, "|")))
}
