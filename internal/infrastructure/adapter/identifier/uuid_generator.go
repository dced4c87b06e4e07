package identifier

import (
	"strings"

	"github.com/google/uuid"

	"github.com/propstake/token-ledger/internal/domain/port/core"
)

// referencePrefix marks generated payment references so they are
// distinguishable from gateway-supplied ones
const referencePrefix = "TKN-"

// UUIDGenerator implements ReferenceGenerator with random UUIDs
type UUIDGenerator struct{}

// NewUUIDGenerator creates a UUID-backed reference generator
func NewUUIDGenerator() core.ReferenceGenerator {
	return &UUIDGenerator{}
}

// NewReference returns a unique uppercase payment reference
func (g *UUIDGenerator) NewReference() string {
	return referencePrefix + strings.ToUpper(uuid.NewString())
}
