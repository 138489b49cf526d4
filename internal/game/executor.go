package game

import (
	"github.com/spellclash/spellclash-go/internal/catalog"
	"github.com/spellclash/spellclash-go/internal/game/rules"
)

// Executor interprets action trees against the game state. It is the only
// component that mutates player or instance state, so every change is
// paired with a match-log line and a structured event.
type Executor struct {
	state    *GameState
	deciders map[string]Decider
	fallback Decider
	// draining is true while the scheduler drains a clash queue. Extra
	// spells cast in that window merge into the live queue.
	draining bool
}

// NewExecutor creates an executor over state. deciders maps player names
// to their decision sources; players without an entry use the heuristic
// fallback.
func NewExecutor(state *GameState, deciders map[string]Decider) *Executor {
	return &Executor{
		state:    state,
		deciders: deciders,
		fallback: NewHeuristicDecider(),
	}
}

func (e *Executor) deciderFor(p *Player) Decider {
	if d, ok := e.deciders[p.Name]; ok && d != nil {
		return d
	}
	return e.fallback
}

// ResolveInstance runs an instance's resolve-effect list. The list is
// first-match-wins over its condition/action pairs unless every condition
// is "always", in which case all actions run in order. A resolved event is
// always emitted so temporal conditions can see it in later clashes.
func (e *Executor) ResolveInstance(inst *PlayedInstance) {
	caster, ok := e.state.PlayerByName(inst.Owner)
	if !ok {
		e.state.Logf("no seat for %s; %s fizzles", inst.Owner, inst.Card.Name)
		return
	}

	e.state.Logf("%s's %s resolves", caster.Name, inst.Card.Name)
	e.runEffectList(inst.Card.Resolve, caster, inst)

	// Conjuries persist on the board until cancelled; everything else is
	// spent once its effects have run. An instance that relocated itself
	// mid-resolve has left this clash and stays active for the next one.
	if inst.Status == StatusActive && !inst.Card.Conjury && inst.Clash == e.state.Clash {
		inst.Status = StatusResolved
	}
	e.state.Emit(rules.Event{
		Type:       rules.EventSpellResolved,
		Player:     caster.Name,
		CardID:     inst.Card.ID,
		InstanceID: inst.ID,
	})
}

// RunAdvanceEffects runs an instance's advance-effect list against
// current-clash state, then applies the slowest sentinel's implicit
// relocation. Resolved instances take part: an advance effect is what
// carries a spent spell into the next clash.
func (e *Executor) RunAdvanceEffects(inst *PlayedInstance) {
	caster, ok := e.state.PlayerByName(inst.Owner)
	if !ok {
		return
	}
	if len(inst.Card.Advance) > 0 {
		e.runEffectList(inst.Card.Advance, caster, inst)
	}
	if inst.Card.Priority.IsSlowest() && inst.Status != StatusCancelled && inst.Clash == e.state.Clash {
		e.advanceInstance(inst, 0)
	}
}

func (e *Executor) runEffectList(entries []catalog.EffectEntry, caster *Player, self *PlayedInstance) {
	if len(entries) == 0 {
		return
	}
	if catalog.Unconditional(entries) {
		for _, entry := range entries {
			e.Execute(entry.Do, caster, self)
		}
		return
	}
	for _, entry := range entries {
		if EvaluateCondition(entry.When, e.state, caster, self) {
			e.Execute(entry.Do, caster, self)
			return
		}
	}
	e.state.Logf("%s: no condition met, no effect", self.Card.Name)
}

// Execute applies a single action descriptor. Unknown kinds are logged
// no-ops: effect trees are data, and one bad record must not abort the
// match.
func (e *Executor) Execute(a catalog.Action, caster *Player, self *PlayedInstance) {
	switch a.Kind {
	case catalog.ActionDamage, catalog.ActionDamageMultiTarget:
		targets := e.resolveActionTargets(a, caster, self)
		if len(targets) == 0 {
			e.state.Logf("%s: no legal target for damage", cardName(self))
			return
		}
		for _, t := range targets {
			e.damageTarget(t, a.Amount, caster)
		}

	case catalog.ActionDamagePerSpell:
		e.perSpell(a, caster, self, e.damageTarget)

	case catalog.ActionHealPerSpell:
		e.perSpell(a, caster, self, func(t Target, v int, c *Player) { e.healTarget(t, v) })

	case catalog.ActionWeakenPerSpell:
		e.perSpell(a, caster, self, func(t Target, v int, c *Player) { e.weakenTarget(t, v) })

	case catalog.ActionHeal:
		for _, t := range e.resolveActionTargets(a, caster, self) {
			e.healTarget(t, a.Amount)
		}

	case catalog.ActionWeaken:
		targets := e.resolveActionTargets(a, caster, self)
		if len(targets) == 0 {
			e.state.Logf("%s: no legal target for weaken", cardName(self))
			return
		}
		for _, t := range targets {
			e.weakenTarget(t, a.Amount)
		}

	case catalog.ActionBolster:
		for _, t := range e.resolveActionTargets(a, caster, self) {
			e.bolsterTarget(t, a.Amount)
		}

	case catalog.ActionAdvance:
		for _, t := range e.resolveActionTargets(a, caster, self) {
			if t.Kind == TargetInstance {
				e.advanceInstance(t.Instance, a.Limit)
			}
		}

	case catalog.ActionCancel:
		targets := e.resolveActionTargets(a, caster, self)
		if len(targets) == 0 {
			e.state.Logf("%s: no legal target to cancel", cardName(self))
			return
		}
		for _, t := range targets {
			if t.Kind == TargetInstance {
				e.CancelInstance(t.Instance, "cancelled by "+cardName(self))
			}
		}

	case catalog.ActionDiscardFromHand:
		for _, t := range e.resolveActionTargets(a, caster, self) {
			if t.Kind == TargetPlayer {
				e.discardFromHand(t.Player, a.Count)
			}
		}

	case catalog.ActionCastExtraSpell:
		e.castExtraSpell(a.CardID, caster)

	case catalog.ActionPlayerChoice:
		e.playerChoice(a, caster, self)

	case catalog.ActionSequence:
		for _, step := range a.Steps {
			e.Execute(step, caster, self)
		}

	default:
		e.state.Logf("%s: unknown action %q ignored", cardName(self), string(a.Kind))
	}
}

// resolveActionTargets applies the action's target spec, falling back to
// the conventional default spec for its kind when none is authored.
func (e *Executor) resolveActionTargets(a catalog.Action, caster *Player, self *PlayedInstance) []Target {
	return e.state.ResolveTargets(effectiveTargetSpec(a), caster, self, e.deciderFor(caster))
}

func effectiveTargetSpec(a catalog.Action) catalog.TargetSpec {
	if a.Target.Kind != "" {
		return a.Target
	}
	switch a.Kind {
	case catalog.ActionDamageMultiTarget:
		return catalog.TargetSpec{Kind: catalog.TargetAllEnemies}
	case catalog.ActionHeal, catalog.ActionHealPerSpell, catalog.ActionBolster:
		return catalog.TargetSpec{Kind: catalog.TargetSelf}
	case catalog.ActionAdvance:
		return catalog.TargetSpec{Kind: catalog.TargetThis}
	default:
		return catalog.TargetSpec{Kind: catalog.TargetEnemy}
	}
}

// perSpell recomputes the qualifying live count at execution time and
// applies fn with that value. Zero qualifying instances is a logged no-op,
// never a fallback value.
func (e *Executor) perSpell(a catalog.Action, caster *Player, self *PlayedInstance, fn func(Target, int, *Player)) {
	value := 0
	for _, inst := range caster.ActiveInstances(e.state.Clash) {
		if a.ExcludeSelf && inst == self {
			continue
		}
		if inst.Card.HasType(a.SpellType) {
			value++
		}
	}
	if a.Amount > 0 {
		value *= a.Amount
	}
	if value == 0 {
		e.state.Logf("%s: no qualifying %s spells, no effect", cardName(self), a.SpellType)
		return
	}
	targets := e.resolveActionTargets(a, caster, self)
	if len(targets) == 0 {
		e.state.Logf("%s: no legal target", cardName(self))
		return
	}
	for _, t := range targets {
		fn(t, value, caster)
	}
}

// damageTarget applies the damage rule: players lose health (floor zero,
// invulnerable players are never hit), conjuries have no health pool and
// are cancelled instead.
func (e *Executor) damageTarget(t Target, v int, caster *Player) {
	switch t.Kind {
	case TargetPlayer:
		p := t.Player
		if p.Invulnerable {
			e.state.Logf("%s is invulnerable, damage ignored", p.Name)
			return
		}
		prev := p.Health
		p.Health -= v
		if p.Health < 0 {
			p.Health = 0
		}
		e.state.Logf("%s takes %d damage (%d/%d)", p.Name, v, p.Health, p.MaxHealth)
		e.state.Emit(rules.Event{
			Type:   rules.EventDamage,
			Player: caster.Name,
			Target: p.Name,
			Amount: v,
		})
		if prev > 0 && p.Health == 0 {
			e.loseTrunk(p)
		}
	case TargetInstance:
		if t.Instance.Card.Conjury {
			e.CancelInstance(t.Instance, "destroyed by damage")
		} else {
			e.state.Logf("%s's %s cannot take damage", t.Instance.Owner, t.Instance.Card.Name)
		}
	}
}

func (e *Executor) healTarget(t Target, v int) {
	if t.Kind != TargetPlayer {
		return
	}
	p := t.Player
	p.Health += v
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
	e.state.Logf("%s heals %d (%d/%d)", p.Name, v, p.Health, p.MaxHealth)
	e.state.Emit(rules.Event{
		Type:   rules.EventHeal,
		Player: p.Name,
		Target: p.Name,
		Amount: v,
	})
}

// weakenTarget lowers a player's maximum health and re-clamps current
// health downward. Against a conjury the weaken rule cancels it, same as
// damage. Maximum health never drops below one.
func (e *Executor) weakenTarget(t Target, v int) {
	switch t.Kind {
	case TargetPlayer:
		p := t.Player
		if p.Invulnerable {
			e.state.Logf("%s is invulnerable, weaken ignored", p.Name)
			return
		}
		p.MaxHealth -= v
		if p.MaxHealth < 1 {
			p.MaxHealth = 1
		}
		if p.Health > p.MaxHealth {
			p.Health = p.MaxHealth
		}
		e.state.Logf("%s weakened by %d (%d/%d)", p.Name, v, p.Health, p.MaxHealth)
		e.state.Emit(rules.Event{
			Type:   rules.EventWeaken,
			Player: p.Name,
			Target: p.Name,
			Amount: v,
		})
	case TargetInstance:
		if t.Instance.Card.Conjury {
			e.CancelInstance(t.Instance, "destroyed by weaken")
		}
	}
}

// bolsterTarget raises maximum health without retroactive healing.
func (e *Executor) bolsterTarget(t Target, v int) {
	if t.Kind != TargetPlayer {
		return
	}
	p := t.Player
	p.MaxHealth += v
	e.state.Logf("%s bolstered by %d (%d/%d)", p.Name, v, p.Health, p.MaxHealth)
	e.state.Emit(rules.Event{
		Type:   rules.EventBolster,
		Player: p.Name,
		Target: p.Name,
		Amount: v,
	})
}

// advanceInstance relocates an instance to the next clash's board slot,
// transferring ownership of the instance between slots. A resolved
// instance comes back active so the next clash schedules it again.
// Advancing past the last clash or beyond a declared limit is a logged
// refusal, not an error.
func (e *Executor) advanceInstance(inst *PlayedInstance, limit int) {
	if inst.Status == StatusCancelled {
		return
	}
	if inst.Clash >= e.state.ClashCount-1 {
		e.state.Logf("%s's %s cannot advance past the last clash", inst.Owner, inst.Card.Name)
		return
	}
	if limit > 0 && inst.AdvanceCount >= limit {
		e.state.Logf("%s's %s has reached its advance limit", inst.Owner, inst.Card.Name)
		return
	}
	owner, ok := e.state.PlayerByName(inst.Owner)
	if !ok || !owner.RemoveFromBoard(inst) {
		e.state.Logf("%s's %s is not on a board, cannot advance", inst.Owner, inst.Card.Name)
		return
	}
	inst.Clash++
	inst.AdvanceCount++
	if inst.Status == StatusResolved {
		inst.Status = StatusActive
	}
	owner.Board[inst.Clash] = append(owner.Board[inst.Clash], inst)
	e.state.Logf("%s's %s advances to clash %d", inst.Owner, inst.Card.Name, inst.Clash+1)
	e.state.Emit(rules.Event{
		Type:       rules.EventSpellAdvanced,
		Player:     inst.Owner,
		CardID:     inst.Card.ID,
		InstanceID: inst.ID,
	})
}

// CancelInstance sets an instance's status to cancelled. Cancelling an
// already-cancelled instance is idempotent and emits no duplicate event.
func (e *Executor) CancelInstance(inst *PlayedInstance, reason string) {
	if inst.Status == StatusCancelled {
		return
	}
	inst.Status = StatusCancelled
	e.state.Logf("%s's %s is cancelled (%s)", inst.Owner, inst.Card.Name, reason)
	e.state.Emit(rules.Event{
		Type:       rules.EventSpellCancelled,
		Player:     inst.Owner,
		CardID:     inst.Card.ID,
		InstanceID: inst.ID,
		Detail:     reason,
	})
}

// discardFromHand moves up to n of the player's hand cards to discard. The
// affected player chooses which cards survive.
func (e *Executor) discardFromHand(p *Player, n int) {
	if n > len(p.Hand) {
		n = len(p.Hand)
	}
	if n <= 0 {
		e.state.Logf("%s has nothing to discard", p.Name)
		return
	}
	keep := len(p.Hand) - n
	kept := e.deciderFor(p).ChooseCardsToKeep(p.Hand, keep, p, e.state)
	keptSet := make(map[int]bool, len(kept))
	for _, idx := range kept {
		if idx >= 0 && idx < len(p.Hand) && !keptSet[idx] && len(keptSet) < keep {
			keptSet[idx] = true
		}
	}
	var newHand []*catalog.CardDefinition
	for i, card := range p.Hand {
		if keptSet[i] {
			newHand = append(newHand, card)
			continue
		}
		if len(keptSet) < keep && len(newHand) < keep {
			// Under-specified keeps fall back to keeping from the front.
			newHand = append(newHand, card)
			keptSet[i] = true
			continue
		}
		p.Discard = append(p.Discard, card)
		e.state.Emit(rules.Event{
			Type:   rules.EventDiscard,
			Player: p.Name,
			CardID: card.ID,
		})
	}
	p.Hand = newHand
	e.state.Logf("%s discards %d cards", p.Name, n)
}

// castExtraSpell instantiates a new active instance directly in the
// current clash. During a drain it merges into the live queue in priority
// order; this is the sole path by which the queue mutates mid-drain.
func (e *Executor) castExtraSpell(cardID string, caster *Player) {
	def, ok := e.state.Catalog.Lookup(cardID)
	if !ok {
		e.state.Logf("unknown card %q, extra cast ignored", cardID)
		return
	}
	inst := NewPlayedInstance(def, caster.Name, e.state.Clash)
	inst.Status = StatusActive
	caster.Board[e.state.Clash] = append(caster.Board[e.state.Clash], inst)
	e.state.TrackInstance(inst)
	e.state.Logf("%s casts an extra spell: %s", caster.Name, def.Name)
	e.state.Emit(rules.Event{
		Type:       rules.EventExtraSpellCast,
		Player:     caster.Name,
		CardID:     def.ID,
		InstanceID: inst.ID,
	})
	if e.draining {
		e.state.Queue.Push(rules.QueueItem{
			InstanceID: inst.ID,
			Key: rules.QueueKey{
				Rank:     def.Priority.Rank(),
				Distance: e.state.AnchorDistance(caster),
			},
		})
	}
}

// playerChoice filters options down to those whose target set is
// non-empty, auto-executes a sole legal option, and otherwise asks the
// caster's decision source.
func (e *Executor) playerChoice(a catalog.Action, caster *Player, self *PlayedInstance) {
	var legal []catalog.Action
	for _, opt := range a.Options {
		if e.optionLegal(opt, caster, self) {
			legal = append(legal, opt)
		}
	}
	switch len(legal) {
	case 0:
		e.state.Logf("%s: no legal choice, no effect", cardName(self))
	case 1:
		e.Execute(legal[0], caster, self)
	default:
		choice := clampChoice(e.deciderFor(caster).MakeChoice(legal, caster, e.state, self.Card), len(legal))
		e.Execute(legal[choice], caster, self)
	}
}

// optionLegal reports whether an option could act, judged by candidate
// availability without consuming a decision.
func (e *Executor) optionLegal(a catalog.Action, caster *Player, self *PlayedInstance) bool {
	spec := effectiveTargetSpec(a)
	switch spec.Kind {
	case catalog.TargetSelf, catalog.TargetThis:
		return true
	case catalog.TargetEnemy, catalog.TargetAllEnemies:
		return len(e.state.enemyCandidates(caster)) > 0
	default:
		// Peek with a decider that always takes the first candidate so a
		// legality probe never suspends the match.
		return len(e.state.ResolveTargets(spec, caster, self, firstChoiceDecider{})) > 0
	}
}

func cardName(inst *PlayedInstance) string {
	if inst == nil {
		return "effect"
	}
	return inst.Card.Name
}
