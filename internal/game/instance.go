package game

import (
	"github.com/google/uuid"

	"github.com/spellclash/spellclash-go/internal/catalog"
)

// InstanceStatus tracks a played instance through its lifecycle.
type InstanceStatus string

const (
	// StatusPrepared means the card is committed face down and not yet
	// visible to opponents.
	StatusPrepared InstanceStatus = "PREPARED"
	// StatusActive means the card flipped at Cast and participates in
	// resolution, scans and queries.
	StatusActive InstanceStatus = "ACTIVE"
	// StatusCancelled means the card remains visible on the board but is
	// excluded from all further resolution.
	StatusCancelled InstanceStatus = "CANCELLED"
	// StatusResolved means the card's resolve effects have run.
	StatusResolved InstanceStatus = "RESOLVED"
)

// PlayedInstance is a card placed into a clash slot. Exactly one board
// collection owns it at a time; an advance transfers that ownership to the
// next clash's slot, never duplicating it.
type PlayedInstance struct {
	ID           string
	Card         *catalog.CardDefinition
	Owner        string
	Status       InstanceStatus
	Clash        int
	AdvanceCount int
	// SubOrder is the owner-declared position among the owner's
	// same-priority instances in one clash, fixed before the drain.
	SubOrder int
}

// NewPlayedInstance creates a prepared instance of card for owner in the
// given clash slot.
func NewPlayedInstance(card *catalog.CardDefinition, owner string, clash int) *PlayedInstance {
	return &PlayedInstance{
		ID:     uuid.NewString(),
		Card:   card,
		Owner:  owner,
		Status: StatusPrepared,
		Clash:  clash,
	}
}

// IsActive reports whether the instance participates in resolution, scans
// and queries.
func (pi *PlayedInstance) IsActive() bool {
	return pi.Status == StatusActive
}
