package game

import (
	"github.com/spellclash/spellclash-go/internal/catalog"
)

// ResolveTargets converts a declarative target specifier into concrete
// targets. An empty result is a legal no-target state; callers treat it as
// a no-op. Invulnerable players are filtered out of every enemy-facing
// kind here, so the executor never sees them as damage or weaken targets.
//
// When a specifier admits more than one candidate, the caster's decision
// source picks one; a single candidate is taken without asking.
func (s *GameState) ResolveTargets(spec catalog.TargetSpec, caster *Player, self *PlayedInstance, d Decider) []Target {
	switch spec.Kind {
	case catalog.TargetSelf:
		return []Target{PlayerTarget(caster)}

	case catalog.TargetThis:
		if self == nil {
			return nil
		}
		return []Target{InstanceTarget(self)}

	case catalog.TargetEnemy:
		candidates := s.enemyCandidates(caster)
		return chooseOne(candidates, caster, s, d)

	case catalog.TargetAllEnemies:
		return s.enemyCandidates(caster)

	case catalog.TargetOwnActive:
		var candidates []Target
		for _, inst := range caster.ActiveInstances(s.Clash) {
			if inst != self {
				candidates = append(candidates, InstanceTarget(inst))
			}
		}
		return chooseOne(candidates, caster, s, d)

	case catalog.TargetOwnPast:
		var candidates []Target
		for clash := 0; clash < s.Clash; clash++ {
			for _, inst := range caster.ActiveInstances(clash) {
				candidates = append(candidates, InstanceTarget(inst))
			}
		}
		return chooseOne(candidates, caster, s, d)

	case catalog.TargetEnemiesWhere:
		if spec.Condition == nil {
			return nil
		}
		var out []Target
		for _, enemy := range s.Enemies(caster) {
			if enemy.Invulnerable {
				continue
			}
			// Reflect-style: each enemy is tested independently, in
			// their own seat.
			if EvaluateCondition(*spec.Condition, s, enemy, self) {
				out = append(out, PlayerTarget(enemy))
			}
		}
		return out

	default:
		return nil
	}
}

// enemyCandidates lists legal enemy-side targets: non-invulnerable enemy
// players plus their active conjuries. Conjuries persist in the clash slot
// they were cast into, so every slot up to the current clash is scanned.
func (s *GameState) enemyCandidates(caster *Player) []Target {
	var out []Target
	for _, enemy := range s.Enemies(caster) {
		if !enemy.Invulnerable {
			out = append(out, PlayerTarget(enemy))
		}
		for clash := 0; clash <= s.Clash && clash < len(enemy.Board); clash++ {
			for _, inst := range enemy.ActiveInstances(clash) {
				if inst.Card.Conjury {
					out = append(out, InstanceTarget(inst))
				}
			}
		}
	}
	return out
}

// chooseOne narrows a candidate list to a single target via the decision
// source. Zero candidates stays a legal empty result; one candidate is
// taken without a decision.
func chooseOne(candidates []Target, caster *Player, s *GameState, d Decider) []Target {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates
	}
	choice := clampChoice(d.ChooseTarget(candidates, caster, s), len(candidates))
	return []Target{candidates[choice]}
}
