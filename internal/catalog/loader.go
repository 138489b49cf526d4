package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// cardFile is the on-disk shape of a catalog document.
type cardFile struct {
	Cards []*CardDefinition `yaml:"cards"`
}

// Load reads a catalog document from path and validates it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var file cardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("catalog contains no cards")
	}
	for _, c := range file.Cards {
		if err := validateCard(c); err != nil {
			return nil, fmt.Errorf("card %q: %w", c.ID, err)
		}
	}
	return NewCatalog(file.Cards)
}

func validateCard(c *CardDefinition) error {
	if c.Name == "" {
		return fmt.Errorf("missing name")
	}
	if !c.Priority.Valid() {
		return fmt.Errorf("invalid priority %d", int(c.Priority))
	}
	if c.FirstClashOnly && c.LastClashOnly {
		return fmt.Errorf("restricted to both first and last clash")
	}
	for i, e := range c.Resolve {
		if err := validateAction(e.Do); err != nil {
			return fmt.Errorf("resolve[%d]: %w", i, err)
		}
	}
	for i, e := range c.Advance {
		if err := validateAction(e.Do); err != nil {
			return fmt.Errorf("advance[%d]: %w", i, err)
		}
	}
	return nil
}

// validateAction checks structural requirements only. Unknown kinds pass:
// the engine fails closed on them at runtime rather than rejecting the
// whole catalog (Lint reports them separately).
func validateAction(a Action) error {
	if a.Amount < 0 {
		return fmt.Errorf("%s: negative amount", a.Kind)
	}
	switch a.Kind {
	case ActionCastExtraSpell:
		if a.CardID == "" {
			return fmt.Errorf("cast_extra_spell: missing card_id")
		}
	case ActionPlayerChoice:
		if len(a.Options) == 0 {
			return fmt.Errorf("player_choice: no options")
		}
		for i, opt := range a.Options {
			if err := validateAction(opt); err != nil {
				return fmt.Errorf("option[%d]: %w", i, err)
			}
		}
	case ActionSequence:
		if len(a.Steps) == 0 {
			return fmt.Errorf("sequence: no steps")
		}
		for i, step := range a.Steps {
			if err := validateAction(step); err != nil {
				return fmt.Errorf("step[%d]: %w", i, err)
			}
		}
	case ActionDiscardFromHand:
		if a.Count <= 0 {
			return fmt.Errorf("discard_from_hand: count must be positive")
		}
	}
	return nil
}

// Lint reports non-fatal authoring issues: kinds outside the closed
// vocabulary and extra-spell references to cards missing from the catalog.
// The engine tolerates all of these at runtime by failing closed.
func Lint(cat *Catalog) []string {
	var issues []string
	for _, c := range cat.Cards() {
		for i, e := range c.Resolve {
			issues = append(issues, lintEntry(cat, c, "resolve", i, e)...)
		}
		for i, e := range c.Advance {
			issues = append(issues, lintEntry(cat, c, "advance", i, e)...)
		}
	}
	return issues
}

func lintEntry(cat *Catalog, c *CardDefinition, list string, idx int, e EffectEntry) []string {
	var issues []string
	issues = append(issues, lintCondition(c, list, idx, e.When)...)
	issues = append(issues, lintAction(cat, c, list, idx, e.Do)...)
	return issues
}

func lintCondition(c *CardDefinition, list string, idx int, cond Condition) []string {
	var issues []string
	switch cond.Kind {
	case "", ConditionAlways, ConditionCasterHasType, ConditionEnemyHasType,
		ConditionBoardHasType, ConditionResolvedEarlier:
	case ConditionNot:
		if cond.Inner == nil {
			issues = append(issues, fmt.Sprintf("%s %s[%d]: not-condition has no inner condition", c.ID, list, idx))
		} else {
			issues = append(issues, lintCondition(c, list, idx, *cond.Inner)...)
		}
	default:
		issues = append(issues, fmt.Sprintf("%s %s[%d]: unknown condition kind %q (evaluates to false)", c.ID, list, idx, cond.Kind))
	}
	return issues
}

func lintAction(cat *Catalog, c *CardDefinition, list string, idx int, a Action) []string {
	var issues []string
	switch a.Kind {
	case ActionDamage, ActionDamageMultiTarget, ActionDamagePerSpell,
		ActionHealPerSpell, ActionWeakenPerSpell, ActionHeal, ActionWeaken,
		ActionBolster, ActionAdvance, ActionCancel, ActionDiscardFromHand:
	case ActionCastExtraSpell:
		if _, ok := cat.Lookup(a.CardID); !ok {
			issues = append(issues, fmt.Sprintf("%s %s[%d]: cast_extra_spell references unknown card %q", c.ID, list, idx, a.CardID))
		}
	case ActionPlayerChoice:
		for _, opt := range a.Options {
			issues = append(issues, lintAction(cat, c, list, idx, opt)...)
		}
	case ActionSequence:
		for _, step := range a.Steps {
			issues = append(issues, lintAction(cat, c, list, idx, step)...)
		}
	default:
		issues = append(issues, fmt.Sprintf("%s %s[%d]: unknown action kind %q (runs as no-op)", c.ID, list, idx, a.Kind))
	}
	return issues
}
