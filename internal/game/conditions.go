package game

import (
	"github.com/spellclash/spellclash-go/internal/catalog"
)

// EvaluateCondition interprets a condition descriptor against the current
// state. It is pure: no state is mutated and no events are emitted. The
// vocabulary is closed; unknown kinds evaluate to false, never true.
//
// self is the instance whose card carries the condition. Board-scoped
// kinds count active instances in the current clash; the temporal kind
// scans the structured event log instead.
func EvaluateCondition(cond catalog.Condition, s *GameState, caster *Player, self *PlayedInstance) bool {
	switch cond.Kind {
	case "", catalog.ConditionAlways:
		return true
	case catalog.ConditionCasterHasType:
		return countTyped(caster.ActiveInstances(s.Clash), cond, self) >= minCount(cond)
	case catalog.ConditionEnemyHasType:
		var pool []*PlayedInstance
		for _, enemy := range s.Enemies(caster) {
			pool = append(pool, enemy.ActiveInstances(s.Clash)...)
		}
		return countTyped(pool, cond, self) >= minCount(cond)
	case catalog.ConditionBoardHasType:
		return countTyped(s.ActiveInstances(s.Clash), cond, self) >= minCount(cond)
	case catalog.ConditionResolvedEarlier:
		if self == nil {
			return false
		}
		return s.Events.ResolvedInEarlierClash(caster.Name, self.Card.ID, s.Clash)
	case catalog.ConditionNot:
		if cond.Inner == nil {
			return false
		}
		return !EvaluateCondition(*cond.Inner, s, caster, self)
	default:
		return false
	}
}

func minCount(cond catalog.Condition) int {
	if cond.Count <= 0 {
		return 1
	}
	return cond.Count
}

func countTyped(pool []*PlayedInstance, cond catalog.Condition, self *PlayedInstance) int {
	n := 0
	for _, inst := range pool {
		if cond.ExcludeSelf && inst == self {
			continue
		}
		if inst.Card.HasType(cond.SpellType) {
			n++
		}
	}
	return n
}
