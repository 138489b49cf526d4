package game

import (
	"github.com/spellclash/spellclash-go/internal/game/rules"
)

// rescaleMaxHealth applies the fixed post-trunk-loss table: small pools
// grow to 4, large pools shrink to 6, everything in between is unchanged.
func rescaleMaxHealth(max int) int {
	switch {
	case max <= 3:
		return 4
	case max >= 7:
		return 6
	default:
		return max
	}
}

// loseTrunk converts a health depletion into the loss of one life segment.
// The player becomes invulnerable for the rest of the round, their board
// is cleared to discard, maximum health is re-derived by the fixed table
// and health refills to the new maximum. Losing the last trunk removes the
// player from contention.
func (e *Executor) loseTrunk(p *Player) {
	if p.Trunks <= 0 {
		return
	}
	p.Trunks--
	p.Invulnerable = true

	// Boarded instances leave play with the trunk; cancelling them first
	// keeps any of them still sitting in the live queue from resolving.
	for _, slot := range p.Board {
		for _, inst := range slot {
			if inst.Status == StatusPrepared || inst.Status == StatusActive {
				e.CancelInstance(inst, "trunk lost")
			}
		}
	}
	p.ClearBoard()

	p.MaxHealth = rescaleMaxHealth(p.MaxHealth)
	p.Health = p.MaxHealth

	e.state.Logf("%s loses a trunk (%d remaining)", p.Name, p.Trunks)
	e.state.Emit(rules.Event{
		Type:   rules.EventTrunkLost,
		Player: p.Name,
		Amount: p.Trunks,
	})

	if p.Trunks == 0 {
		p.Eliminated = true
		e.state.Logf("%s is out of the match", p.Name)
		e.state.Emit(rules.Event{
			Type:   rules.EventPlayerEliminated,
			Player: p.Name,
		})
	}
}
