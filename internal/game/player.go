package game

import (
	"math/rand"

	"github.com/spellclash/spellclash-go/internal/catalog"
)

// StartingTrunks is the number of life segments each player begins with.
const StartingTrunks = 3

// Player is one seat's mutable match state.
type Player struct {
	Name      string
	Health    int
	MaxHealth int
	Trunks    int
	// Invulnerable is set for the remainder of a round once the player's
	// health hits zero. Invulnerable players are never legal
	// damage/weaken targets and cannot prepare cards.
	Invulnerable bool
	Eliminated   bool

	Hand    []*catalog.CardDefinition
	Deck    []*catalog.CardDefinition
	Discard []*catalog.CardDefinition

	// Board holds one slot per clash in the round. A played instance
	// lives in exactly one slot at a time.
	Board [][]*PlayedInstance
}

// NewPlayer creates a player with full health and trunks and an empty
// board of clashCount slots.
func NewPlayer(name string, maxHealth, clashCount int) *Player {
	board := make([][]*PlayedInstance, clashCount)
	for i := range board {
		board[i] = make([]*PlayedInstance, 0, 2)
	}
	return &Player{
		Name:      name,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Trunks:    StartingTrunks,
		Board:     board,
	}
}

// HasTrunks reports whether the player is still in contention.
func (p *Player) HasTrunks() bool {
	return p.Trunks > 0
}

// Draw moves up to n cards from deck to hand. An exhausted deck is rebuilt
// deterministically from the discard pile using the provided RNG before
// drawing continues; the rebuild is reported so the caller can log it.
func (p *Player) Draw(n int, rng *rand.Rand) (drawn int, rebuilt bool) {
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 {
			if len(p.Discard) == 0 {
				break
			}
			p.Deck = p.Discard
			p.Discard = nil
			rng.Shuffle(len(p.Deck), func(a, b int) {
				p.Deck[a], p.Deck[b] = p.Deck[b], p.Deck[a]
			})
			rebuilt = true
		}
		p.Hand = append(p.Hand, p.Deck[0])
		p.Deck = p.Deck[1:]
		drawn++
	}
	return drawn, rebuilt
}

// RemoveFromHand removes and returns the card at index i.
func (p *Player) RemoveFromHand(i int) *catalog.CardDefinition {
	card := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return card
}

// RemoveFromBoard detaches an instance from whichever clash slot holds it.
func (p *Player) RemoveFromBoard(inst *PlayedInstance) bool {
	for clash, slot := range p.Board {
		for i, candidate := range slot {
			if candidate == inst {
				p.Board[clash] = append(slot[:i], slot[i+1:]...)
				return true
			}
		}
	}
	return false
}

// ClearBoard moves every boarded instance's card to the discard pile and
// empties all clash slots.
func (p *Player) ClearBoard() {
	for clash, slot := range p.Board {
		for _, inst := range slot {
			p.Discard = append(p.Discard, inst.Card)
		}
		p.Board[clash] = p.Board[clash][:0]
	}
}

// ActiveInstances returns the player's active instances in the given clash
// slot, in placement order.
func (p *Player) ActiveInstances(clash int) []*PlayedInstance {
	if clash < 0 || clash >= len(p.Board) {
		return nil
	}
	var out []*PlayedInstance
	for _, inst := range p.Board[clash] {
		if inst.IsActive() {
			out = append(out, inst)
		}
	}
	return out
}
