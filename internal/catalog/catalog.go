package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Element is the elemental affinity printed on a card.
type Element string

const (
	ElementFire    Element = "FIRE"
	ElementWater   Element = "WATER"
	ElementEarth   Element = "EARTH"
	ElementWind    Element = "WIND"
	ElementShadow  Element = "SHADOW"
	ElementNeutral Element = "NEUTRAL"
)

// SpellType categorizes a card for condition and scaling queries.
type SpellType string

const (
	SpellTypeAttack   SpellType = "ATTACK"
	SpellTypeRemedy   SpellType = "REMEDY"
	SpellTypeResponse SpellType = "RESPONSE"
	SpellTypeBoost    SpellType = "BOOST"
)

// Priority governs resolution order within a clash. Numeric priorities run
// 1 (fastest) through 5; PrioritySlowest is the sentinel for cards that
// resolve after every numeric priority and relocate to the next clash
// during the Advance step.
type Priority int

const (
	PriorityFastest Priority = 1
	PrioritySlowest Priority = -1
)

// IsSlowest reports whether p is the "slowest, also relocates" sentinel.
func (p Priority) IsSlowest() bool {
	return p == PrioritySlowest
}

// Rank maps a priority onto a totally ordered integer key: numeric
// priorities sort by value, the slowest sentinel sorts after all of them.
func (p Priority) Rank() int {
	if p.IsSlowest() {
		return 100
	}
	return int(p)
}

// Valid reports whether p is a printable priority.
func (p Priority) Valid() bool {
	return p.IsSlowest() || (p >= 1 && p <= 5)
}

func (p Priority) String() string {
	if p.IsSlowest() {
		return "S"
	}
	return fmt.Sprintf("%d", int(p))
}

// UnmarshalYAML accepts either a numeric priority (1-5) or the string
// "slowest" for the sentinel.
func (p *Priority) UnmarshalYAML(value *yaml.Node) error {
	var n int
	if err := value.Decode(&n); err == nil {
		*p = Priority(n)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("priority must be a number or %q: %w", "slowest", err)
	}
	if s != "slowest" && s != "S" {
		return fmt.Errorf("unknown priority %q", s)
	}
	*p = PrioritySlowest
	return nil
}

// ConditionKind identifies a condition variant. The vocabulary is closed;
// the evaluator fails closed (false) on kinds it does not recognize.
type ConditionKind string

const (
	ConditionAlways ConditionKind = "always"
	// ConditionCasterHasType is satisfied when the caster controls at
	// least Count active spells of the given type in the current clash.
	ConditionCasterHasType ConditionKind = "caster_has_spell_of_type"
	// ConditionEnemyHasType is the same count over non-casters only.
	ConditionEnemyHasType ConditionKind = "enemy_has_spell_of_type"
	// ConditionBoardHasType is the same count over every active spell in
	// the current clash regardless of owner.
	ConditionBoardHasType ConditionKind = "board_has_spell_of_type"
	// ConditionResolvedEarlier is satisfied when this exact card, cast by
	// this caster, already resolved in a strictly earlier clash this
	// round. Answered from the structured event log, not the board.
	ConditionResolvedEarlier ConditionKind = "resolved_in_earlier_clash"
	// ConditionNot negates its inner condition.
	ConditionNot ConditionKind = "not"
)

// Condition is one node of a declarative condition tree. It is data, not
// code: unknown kinds are representable and simply evaluate to false.
type Condition struct {
	Kind        ConditionKind `yaml:"kind"`
	SpellType   SpellType     `yaml:"spell_type,omitempty"`
	Count       int           `yaml:"count,omitempty"`
	ExcludeSelf bool          `yaml:"exclude_self,omitempty"`
	Inner       *Condition    `yaml:"inner,omitempty"`
}

// Always reports whether the condition is the unconditional marker.
func (c Condition) Always() bool {
	return c.Kind == "" || c.Kind == ConditionAlways
}

// ActionKind identifies an action variant. The vocabulary is closed; the
// executor treats unknown kinds as logged no-ops.
type ActionKind string

const (
	ActionDamage            ActionKind = "damage"
	ActionDamageMultiTarget ActionKind = "damage_multi_target"
	ActionDamagePerSpell    ActionKind = "damage_per_spell"
	ActionHealPerSpell      ActionKind = "heal_per_spell"
	ActionWeakenPerSpell    ActionKind = "weaken_per_spell"
	ActionHeal              ActionKind = "heal"
	ActionWeaken            ActionKind = "weaken"
	ActionBolster           ActionKind = "bolster"
	ActionAdvance           ActionKind = "advance"
	ActionCancel            ActionKind = "cancel"
	ActionDiscardFromHand   ActionKind = "discard_from_hand"
	ActionCastExtraSpell    ActionKind = "cast_extra_spell"
	ActionPlayerChoice      ActionKind = "player_choice"
	ActionSequence          ActionKind = "sequence"
)

// TargetKind identifies a declarative target specifier.
type TargetKind string

const (
	// TargetSelf resolves to the casting player.
	TargetSelf TargetKind = "self"
	// TargetThis resolves to the instance currently resolving.
	TargetThis TargetKind = "this"
	// TargetEnemy resolves to one enemy player or enemy conjury, chosen
	// by the caster's decision source.
	TargetEnemy TargetKind = "enemy"
	// TargetAllEnemies resolves to every legal enemy player plus their
	// active conjuries in the current clash.
	TargetAllEnemies TargetKind = "all_enemies"
	// TargetOwnActive resolves to another of the caster's active
	// instances in the current clash.
	TargetOwnActive TargetKind = "own_active"
	// TargetOwnPast resolves to one of the caster's active instances in
	// an earlier clash this round.
	TargetOwnPast TargetKind = "own_past"
	// TargetEnemiesWhere resolves to every enemy player that
	// independently satisfies the specifier's side-condition.
	TargetEnemiesWhere TargetKind = "enemies_where"
)

// TargetSpec is a declarative target specifier attached to an action.
type TargetSpec struct {
	Kind      TargetKind `yaml:"kind"`
	Condition *Condition `yaml:"condition,omitempty"`
}

// Action is one node of an action tree.
type Action struct {
	Kind        ActionKind `yaml:"kind"`
	Target      TargetSpec `yaml:"target,omitempty"`
	Amount      int        `yaml:"amount,omitempty"`
	SpellType   SpellType  `yaml:"spell_type,omitempty"`
	ExcludeSelf bool       `yaml:"exclude_self,omitempty"`
	Count       int        `yaml:"count,omitempty"`
	Limit       int        `yaml:"limit,omitempty"`
	CardID      string     `yaml:"card_id,omitempty"`
	Options     []Action   `yaml:"options,omitempty"`
	Steps       []Action   `yaml:"steps,omitempty"`
}

// EffectEntry pairs a condition with the action it gates. A card's effect
// list is first-match-wins over its entries unless every condition is
// "always", in which case all actions run in order.
type EffectEntry struct {
	When Condition `yaml:"when,omitempty"`
	Do   Action    `yaml:"do"`
}

// CardDefinition is an immutable spell definition, shared by reference
// between the catalog and every instance played from it.
type CardDefinition struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	Element        Element       `yaml:"element"`
	Priority       Priority      `yaml:"priority"`
	Types          []SpellType   `yaml:"types,omitempty"`
	Conjury        bool          `yaml:"conjury,omitempty"`
	FirstClashOnly bool          `yaml:"first_clash_only,omitempty"`
	LastClashOnly  bool          `yaml:"last_clash_only,omitempty"`
	Resolve        []EffectEntry `yaml:"resolve,omitempty"`
	Advance        []EffectEntry `yaml:"advance,omitempty"`
}

// HasType reports whether the card carries the given spell type tag.
func (c *CardDefinition) HasType(t SpellType) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// Unconditional reports whether every entry's condition is "always". Such
// lists execute every action in order instead of first-match-wins.
func Unconditional(entries []EffectEntry) bool {
	for _, e := range entries {
		if !e.When.Always() {
			return false
		}
	}
	return true
}

// Catalog is the immutable set of card definitions for a match.
type Catalog struct {
	cards []*CardDefinition
	byID  map[string]*CardDefinition
}

// NewCatalog builds a catalog from definitions, rejecting duplicate IDs.
func NewCatalog(cards []*CardDefinition) (*Catalog, error) {
	byID := make(map[string]*CardDefinition, len(cards))
	for _, c := range cards {
		if c.ID == "" {
			return nil, fmt.Errorf("card %q has no id", c.Name)
		}
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", c.ID)
		}
		byID[c.ID] = c
	}
	return &Catalog{cards: cards, byID: byID}, nil
}

// Lookup returns the definition for id, if present.
func (cat *Catalog) Lookup(id string) (*CardDefinition, bool) {
	c, ok := cat.byID[id]
	return c, ok
}

// Cards returns all definitions in load order. Callers must not mutate
// the returned definitions.
func (cat *Catalog) Cards() []*CardDefinition {
	return cat.cards
}

// Size returns the number of definitions in the catalog.
func (cat *Catalog) Size() int {
	return len(cat.cards)
}
