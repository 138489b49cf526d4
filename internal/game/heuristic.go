package game

import (
	"github.com/spellclash/spellclash-go/internal/catalog"
)

// HeuristicDecider is a synchronous decision source with fixed
// preferences. It backs AI seats and serves as the engine's fallback when
// a seat has no decision source configured.
type HeuristicDecider struct{}

// NewHeuristicDecider creates a heuristic decision source.
func NewHeuristicDecider() *HeuristicDecider {
	return &HeuristicDecider{}
}

// ChooseCardToPlay plays the first legal card.
func (h *HeuristicDecider) ChooseCardToPlay(p *Player, s *GameState, legal []int) int {
	if len(legal) == 0 {
		return -1
	}
	return legal[0]
}

// MakeChoice takes the first presented option.
func (h *HeuristicDecider) MakeChoice(options []catalog.Action, caster *Player, s *GameState, card *catalog.CardDefinition) int {
	return 0
}

// ChooseTarget takes the slowest enemy conjury first (highest rank, the
// one that would linger across the most clashes), then the lowest-health
// player, then any player.
func (h *HeuristicDecider) ChooseTarget(candidates []Target, caster *Player, s *GameState) int {
	best := -1
	bestRank := -1
	for i, t := range candidates {
		if t.Kind != TargetInstance || !t.Instance.Card.Conjury {
			continue
		}
		if rank := t.Instance.Card.Priority.Rank(); rank > bestRank {
			best, bestRank = i, rank
		}
	}
	if best >= 0 {
		return best
	}
	lowest := -1
	for i, t := range candidates {
		if t.Kind != TargetPlayer {
			continue
		}
		if lowest < 0 || t.Player.Health < candidates[lowest].Player.Health {
			lowest = i
		}
	}
	if lowest >= 0 {
		return lowest
	}
	return 0
}

// OrderInstances keeps the owner's placement order.
func (h *HeuristicDecider) OrderInstances(instances []*PlayedInstance, owner *Player, s *GameState) []int {
	order := make([]int, len(instances))
	for i := range order {
		order[i] = i
	}
	return order
}

// ChooseDraftSet takes the first offered set.
func (h *HeuristicDecider) ChooseDraftSet(sets [][]*catalog.CardDefinition, p *Player, s *GameState) int {
	return 0
}

// ChooseCardsToKeep keeps from the front of the hand.
func (h *HeuristicDecider) ChooseCardsToKeep(hand []*catalog.CardDefinition, keep int, p *Player, s *GameState) []int {
	if keep > len(hand) {
		keep = len(hand)
	}
	kept := make([]int, 0, keep)
	for i := 0; i < keep; i++ {
		kept = append(kept, i)
	}
	return kept
}

// ChooseCancellationTarget gives up the last hand card.
func (h *HeuristicDecider) ChooseCancellationTarget(hand []*catalog.CardDefinition, p *Player, s *GameState) int {
	return len(hand) - 1
}

// firstChoiceDecider answers every decision with the first candidate. The
// executor uses it to probe option legality without suspending the match
// on a real decision source.
type firstChoiceDecider struct{}

func (firstChoiceDecider) ChooseCardToPlay(p *Player, s *GameState, legal []int) int {
	if len(legal) == 0 {
		return -1
	}
	return legal[0]
}

func (firstChoiceDecider) MakeChoice(options []catalog.Action, caster *Player, s *GameState, card *catalog.CardDefinition) int {
	return 0
}

func (firstChoiceDecider) ChooseTarget(candidates []Target, caster *Player, s *GameState) int {
	return 0
}

func (firstChoiceDecider) OrderInstances(instances []*PlayedInstance, owner *Player, s *GameState) []int {
	order := make([]int, len(instances))
	for i := range order {
		order[i] = i
	}
	return order
}

func (firstChoiceDecider) ChooseDraftSet(sets [][]*catalog.CardDefinition, p *Player, s *GameState) int {
	return 0
}

func (firstChoiceDecider) ChooseCardsToKeep(hand []*catalog.CardDefinition, keep int, p *Player, s *GameState) []int {
	kept := make([]int, 0, keep)
	for i := 0; i < keep && i < len(hand); i++ {
		kept = append(kept, i)
	}
	return kept
}

func (firstChoiceDecider) ChooseCancellationTarget(hand []*catalog.CardDefinition, p *Player, s *GameState) int {
	return 0
}
