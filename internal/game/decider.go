package game

import (
	"github.com/spellclash/spellclash-go/internal/catalog"
)

// TargetRefKind discriminates the two legs of a resolved target.
type TargetRefKind string

const (
	// TargetPlayer is a reference to a seated player.
	TargetPlayer TargetRefKind = "PLAYER"
	// TargetInstance is a reference to a played instance on a board.
	TargetInstance TargetRefKind = "INSTANCE"
)

// Target is a resolved, concrete target: exactly one of Player or
// Instance is set, discriminated by Kind. Executor branches switch on the
// kind rather than inspecting which pointer happens to be non-nil.
type Target struct {
	Kind     TargetRefKind
	Player   *Player
	Instance *PlayedInstance
}

// PlayerTarget wraps a player reference.
func PlayerTarget(p *Player) Target {
	return Target{Kind: TargetPlayer, Player: p}
}

// InstanceTarget wraps an instance reference.
func InstanceTarget(inst *PlayedInstance) Target {
	return Target{Kind: TargetInstance, Instance: inst}
}

// Describe returns a short human-readable name for log lines.
func (t Target) Describe() string {
	switch t.Kind {
	case TargetPlayer:
		return t.Player.Name
	case TargetInstance:
		return t.Instance.Owner + "'s " + t.Instance.Card.Name
	default:
		return "nothing"
	}
}

// Decider is the engine's contract with any decision source: a blocking
// call that returns one member of a bounded candidate set. The engine
// validates candidate-set membership only, never semantic quality; an
// out-of-range answer is rejected at the boundary and defaulted. Callers
// wrapping slow or unreliable sources own their own timeouts and must hand
// the engine a concrete choice.
type Decider interface {
	// ChooseCardToPlay picks a hand index from legal, or -1 to pass.
	ChooseCardToPlay(p *Player, s *GameState, legal []int) int

	// MakeChoice picks one of the presented action options by index.
	MakeChoice(options []catalog.Action, caster *Player, s *GameState, card *catalog.CardDefinition) int

	// ChooseTarget picks one of the candidate targets by index.
	ChooseTarget(candidates []Target, caster *Player, s *GameState) int

	// OrderInstances fixes the owner's sub-order for same-priority
	// instances before a drain starts. It returns a permutation of the
	// indices of instances.
	OrderInstances(instances []*PlayedInstance, owner *Player, s *GameState) []int

	// ChooseDraftSet picks one of the offered draft sets by index.
	ChooseDraftSet(sets [][]*catalog.CardDefinition, p *Player, s *GameState) int

	// ChooseCardsToKeep returns the indices of hand cards to keep, at
	// most keep of them.
	ChooseCardsToKeep(hand []*catalog.CardDefinition, keep int, p *Player, s *GameState) []int

	// ChooseCancellationTarget picks which hand card to give up when the
	// hand must shrink by one.
	ChooseCancellationTarget(hand []*catalog.CardDefinition, p *Player, s *GameState) int
}

// clampChoice validates a candidate-set index from a decision source,
// falling back to the first candidate when the answer is out of range.
func clampChoice(choice, size int) int {
	if choice < 0 || choice >= size {
		return 0
	}
	return choice
}

// validPermutation reports whether perm is a permutation of [0, n).
func validPermutation(perm []int, n int) bool {
	if len(perm) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range perm {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
