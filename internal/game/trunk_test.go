package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellclash/spellclash-go/internal/catalog"
	"github.com/spellclash/spellclash-go/internal/game/rules"
)

func TestRescaleMaxHealth(t *testing.T) {
	cases := []struct {
		max, want int
	}{
		{1, 4},
		{3, 4},
		{4, 4},
		{5, 5},
		{6, 6},
		{7, 6},
		{10, 6},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, rescaleMaxHealth(tc.max), "max %d", tc.max)
	}
}

func TestLoseTrunkClearsBoardAndRefills(t *testing.T) {
	ward := conjuryCard("ward", 3)
	s := newTestState(t, []*catalog.CardDefinition{ward}, "Aria", "Brand")
	brand := s.Players[1]
	brand.Health = 0
	brand.MaxHealth = 3
	inst := playActive(s, brand, ward, 1)
	e := newTestExecutor(s)

	e.loseTrunk(brand)

	assert.Equal(t, 2, brand.Trunks)
	assert.True(t, brand.Invulnerable)
	assert.Equal(t, 4, brand.MaxHealth)
	assert.Equal(t, 4, brand.Health)
	// The boarded conjury is cancelled before it clears, so a stale queue
	// entry for it would be skipped.
	assert.Equal(t, StatusCancelled, inst.Status)
	assert.Empty(t, brand.Board[1])
	assert.Contains(t, brand.Discard, ward)
	assert.Len(t, s.Events.EventsOfType(rules.EventTrunkLost), 1)
}

func TestLoseLastTrunkEliminates(t *testing.T) {
	s := newTestState(t, []*catalog.CardDefinition{}, "Aria", "Brand")
	brand := s.Players[1]
	brand.Trunks = 1
	e := newTestExecutor(s)

	e.loseTrunk(brand)

	assert.Equal(t, 0, brand.Trunks)
	assert.True(t, brand.Eliminated)
	assert.False(t, brand.HasTrunks())
	assert.Len(t, s.Events.EventsOfType(rules.EventPlayerEliminated), 1)

	// An already-eliminated player cannot lose further trunks.
	e.loseTrunk(brand)
	assert.Equal(t, 0, brand.Trunks)
	assert.Len(t, s.Events.EventsOfType(rules.EventTrunkLost), 1)
}

func TestTrunkLossRoundTripThroughDamage(t *testing.T) {
	s := newTestState(t, []*catalog.CardDefinition{}, "Aria", "Brand")
	aria, brand := s.Players[0], s.Players[1]
	e := newTestExecutor(s)

	// Three lethal hits across three rounds run a player out of trunks.
	for i := 0; i < 3; i++ {
		require.True(t, brand.HasTrunks())
		brand.Invulnerable = false
		e.damageTarget(PlayerTarget(brand), brand.Health, aria)
		assert.True(t, brand.Invulnerable)
	}

	assert.True(t, brand.Eliminated)
	assert.Equal(t, 1, s.ContendingCount())
	assert.Len(t, s.Events.EventsOfType(rules.EventTrunkLost), 3)
}
