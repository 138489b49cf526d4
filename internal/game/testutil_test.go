package game

import (
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/spellclash/spellclash-go/internal/catalog"
)

// attackCard builds a minimal attack definition dealing dmg to one enemy.
func attackCard(id string, prio catalog.Priority, dmg int) *catalog.CardDefinition {
	return &catalog.CardDefinition{
		ID:       id,
		Name:     id,
		Element:  catalog.ElementFire,
		Priority: prio,
		Types:    []catalog.SpellType{catalog.SpellTypeAttack},
		Resolve: []catalog.EffectEntry{
			{Do: catalog.Action{Kind: catalog.ActionDamage, Amount: dmg}},
		},
	}
}

func conjuryCard(id string, prio catalog.Priority) *catalog.CardDefinition {
	return &catalog.CardDefinition{
		ID:       id,
		Name:     id,
		Element:  catalog.ElementShadow,
		Priority: prio,
		Types:    []catalog.SpellType{catalog.SpellTypeResponse},
		Conjury:  true,
	}
}

// newTestState seats the named players at 5/5 health over a catalog of
// the given cards.
func newTestState(t *testing.T, cards []*catalog.CardDefinition, names ...string) *GameState {
	t.Helper()
	cat, err := catalog.NewCatalog(cards)
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	players := make([]*Player, 0, len(names))
	for _, name := range names {
		players = append(players, NewPlayer(name, 5, DefaultClashCount))
	}
	rng := rand.New(rand.NewSource(1))
	return NewGameState(players, cat, rng, zap.NewNop())
}

// newTestMatch wraps a state in a match shell so phase functions can be
// driven directly.
func newTestMatch(s *GameState, deciders map[string]Decider) *Match {
	return &Match{
		State:    s,
		exec:     NewExecutor(s, deciders),
		deciders: deciders,
		cfg:      DefaultMatchConfig(),
		logger:   zap.NewNop(),
	}
}

// playActive places an already-cast instance of card for p in the given
// clash slot.
func playActive(s *GameState, p *Player, card *catalog.CardDefinition, clash int) *PlayedInstance {
	inst := NewPlayedInstance(card, p.Name, clash)
	inst.Status = StatusActive
	p.Board[clash] = append(p.Board[clash], inst)
	s.TrackInstance(inst)
	return inst
}

// scriptedDecider overrides individual decisions and falls back to the
// heuristic for the rest.
type scriptedDecider struct {
	HeuristicDecider
	playChoices  []int
	targetChoice func(candidates []Target) int
	choiceIdx    int
	order        []int
}

func (d *scriptedDecider) ChooseCardToPlay(p *Player, s *GameState, legal []int) int {
	if len(d.playChoices) == 0 {
		return d.HeuristicDecider.ChooseCardToPlay(p, s, legal)
	}
	choice := d.playChoices[0]
	d.playChoices = d.playChoices[1:]
	return choice
}

func (d *scriptedDecider) ChooseTarget(candidates []Target, caster *Player, s *GameState) int {
	if d.targetChoice != nil {
		return d.targetChoice(candidates)
	}
	return d.HeuristicDecider.ChooseTarget(candidates, caster, s)
}

func (d *scriptedDecider) MakeChoice(options []catalog.Action, caster *Player, s *GameState, card *catalog.CardDefinition) int {
	return d.choiceIdx
}

func (d *scriptedDecider) OrderInstances(instances []*PlayedInstance, owner *Player, s *GameState) []int {
	if d.order != nil {
		return d.order
	}
	return d.HeuristicDecider.OrderInstances(instances, owner, s)
}
