package game

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/spellclash/spellclash-go/internal/catalog"
	"github.com/spellclash/spellclash-go/internal/game/rules"
)

// MatchConfig carries the tunable match parameters.
type MatchConfig struct {
	StartingHealth int
	HandSize       int
	ClashCount     int
	MaxRounds      int
	DraftSets      int
	DraftSetSize   int
}

// DefaultMatchConfig returns the standard two-player setup.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		StartingHealth: 5,
		HandSize:       4,
		ClashCount:     DefaultClashCount,
		MaxRounds:      30,
		DraftSets:      2,
		DraftSetSize:   3,
	}
}

// MatchResult summarizes a finished match.
type MatchResult struct {
	Winner string
	Rounds int
	Drawn  bool
}

// Match drives one game to completion: four clashes per round, each run
// Prepare -> Cast -> Resolve -> Advance, with end-of-round bookkeeping in
// between, until fewer than two players retain trunks.
type Match struct {
	State    *GameState
	exec     *Executor
	deciders map[string]Decider
	cfg      MatchConfig
	logger   *zap.Logger
}

// NewMatch seats the named players with decks drawn from the catalog and
// deals opening hands. deciders maps player names to decision sources;
// missing entries fall back to the heuristic.
func NewMatch(names []string, cat *catalog.Catalog, deciders map[string]Decider, cfg MatchConfig, rng *rand.Rand, logger *zap.Logger) (*Match, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("a match needs at least two players, got %d", len(names))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ClashCount <= 0 {
		cfg.ClashCount = DefaultClashCount
	}

	players := make([]*Player, 0, len(names))
	for _, name := range names {
		p := NewPlayer(name, cfg.StartingHealth, cfg.ClashCount)
		p.Deck = append(p.Deck, cat.Cards()...)
		rng.Shuffle(len(p.Deck), func(a, b int) {
			p.Deck[a], p.Deck[b] = p.Deck[b], p.Deck[a]
		})
		p.Draw(cfg.HandSize, rng)
		players = append(players, p)
	}

	state := NewGameState(players, cat, rng, logger)
	state.ClashCount = cfg.ClashCount
	return &Match{
		State:    state,
		exec:     NewExecutor(state, deciders),
		deciders: deciders,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Executor exposes the match's effect executor, mainly for tests that
// drive resolution directly.
func (m *Match) Executor() *Executor {
	return m.exec
}

// Run plays rounds until the match ends or the round cap is reached.
func (m *Match) Run() (MatchResult, error) {
	for !m.State.Over {
		if m.cfg.MaxRounds > 0 && m.State.Round > m.cfg.MaxRounds {
			m.State.Logf("round cap reached, calling the match")
			break
		}
		if err := m.runRound(); err != nil {
			return MatchResult{}, err
		}
	}

	result := MatchResult{Rounds: m.State.Round}
	var standing []*Player
	for _, p := range m.State.Players {
		if p.HasTrunks() {
			standing = append(standing, p)
		}
	}
	if len(standing) == 1 {
		result.Winner = standing[0].Name
	} else {
		// Simultaneous final eliminations (or a round cap) leave no
		// single player standing; the match is recorded as drawn.
		result.Drawn = true
	}
	m.logger.Info("match finished",
		zap.String("winner", result.Winner),
		zap.Bool("drawn", result.Drawn),
		zap.Int("rounds", result.Rounds),
	)
	return result, nil
}

func (m *Match) runRound() error {
	// Temporal conditions are scoped to the round: history restarts here.
	m.State.Events.ResetRound()
	for _, p := range m.State.Players {
		if p.HasTrunks() {
			p.Invulnerable = false
		}
	}
	m.State.Logf("--- round %d ---", m.State.Round)
	m.State.Emit(rules.Event{Type: rules.EventRoundStarted})

	earlyEnd := false
	for clash := 0; clash < m.State.ClashCount; clash++ {
		m.State.Clash = clash
		m.State.Logf("- clash %d -", clash+1)
		m.State.Emit(rules.Event{Type: rules.EventClashStarted})

		m.preparePhase()
		m.castPhase()

		early, err := m.resolveClash()
		if err != nil {
			return err
		}
		if early {
			m.State.Logf("round ends early: fewer than two players remain vulnerable")
			earlyEnd = true
			break
		}
		if !m.State.LastClash() {
			m.advancePhase()
			// Advance effects can deal damage too; a trunk loss here ends
			// the round just as one during the drain would.
			if m.State.NonInvulnerableCount() < 2 {
				m.State.Logf("round ends early: fewer than two players remain vulnerable")
				earlyEnd = true
				break
			}
		}
	}

	m.endRound(earlyEnd)
	return nil
}

// preparePhase lets each player, in turn order from the anchor, commit one
// face-down card into the current clash. Invulnerable and empty-handed
// players are skipped.
func (m *Match) preparePhase() {
	n := len(m.State.Players)
	for i := 0; i < n; i++ {
		p := m.State.Players[(m.State.Anchor+i)%n]
		if !p.HasTrunks() || p.Invulnerable || len(p.Hand) == 0 {
			continue
		}
		legal := m.legalHandIndices(p)
		if len(legal) == 0 {
			continue
		}
		choice := m.deciderFor(p).ChooseCardToPlay(p, m.State, legal)
		if choice < 0 {
			m.State.Logf("%s passes", p.Name)
			continue
		}
		if !containsInt(legal, choice) {
			m.State.Logf("%s gave an illegal card index, defaulting", p.Name)
			choice = legal[0]
		}
		card := p.RemoveFromHand(choice)
		inst := NewPlayedInstance(card, p.Name, m.State.Clash)
		p.Board[m.State.Clash] = append(p.Board[m.State.Clash], inst)
		m.State.TrackInstance(inst)
		m.State.Logf("%s prepares a card", p.Name)
		m.State.Emit(rules.Event{
			Type:       rules.EventSpellPrepared,
			Player:     p.Name,
			CardID:     card.ID,
			InstanceID: inst.ID,
		})
	}
}

func (m *Match) legalHandIndices(p *Player) []int {
	var legal []int
	for i, card := range p.Hand {
		if card.FirstClashOnly && m.State.Clash != 0 {
			continue
		}
		if card.LastClashOnly && !m.State.LastClash() {
			continue
		}
		legal = append(legal, i)
	}
	return legal
}

// castPhase flips every prepared instance in the current clash to active
// simultaneously. This is the single point where hidden information
// becomes public.
func (m *Match) castPhase() {
	for _, p := range m.State.Players {
		for _, inst := range p.Board[m.State.Clash] {
			if inst.Status != StatusPrepared {
				continue
			}
			inst.Status = StatusActive
			m.State.Logf("%s casts %s", p.Name, inst.Card.Name)
			m.State.Emit(rules.Event{
				Type:       rules.EventSpellCast,
				Player:     p.Name,
				CardID:     inst.Card.ID,
				InstanceID: inst.ID,
			})
		}
	}
}

// resolveClash builds the clash queue and drains it head-first. Instances
// cast mid-drain merge into the remaining queue by the same ordering rule.
// It reports early=true when a trunk loss leaves fewer than two players
// vulnerable, which skips the rest of the round.
func (m *Match) resolveClash() (early bool, err error) {
	if m.State.NonInvulnerableCount() < 2 {
		return true, nil
	}
	m.scheduleClash()

	m.exec.draining = true
	defer func() { m.exec.draining = false }()

	for {
		item, ok := m.State.Queue.Pop()
		if !ok {
			return false, nil
		}
		inst, err := m.State.Instance(item.InstanceID)
		if err != nil {
			// A queued instance missing from every board is a corrupted
			// match; halt rather than resolve over bad state.
			return false, fmt.Errorf("resolution queue: %w", err)
		}
		if !inst.IsActive() || inst.Clash != m.State.Clash {
			continue
		}
		m.exec.ResolveInstance(inst)

		if m.State.NonInvulnerableCount() < 2 {
			dropped := m.State.Queue.Clear()
			if len(dropped) > 0 {
				m.State.Logf("%d unresolved spells are dropped", len(dropped))
			}
			return true, nil
		}
	}
}

// scheduleClash orders the clash's active instances into the queue by
// (priority, anchor distance, owner sub-order). A player with several
// same-priority instances fixes their sub-order now, before the drain
// starts, never per-instance during it.
func (m *Match) scheduleClash() {
	for _, p := range m.State.Players {
		instances := p.ActiveInstances(m.State.Clash)
		byRank := make(map[int][]*PlayedInstance)
		for _, inst := range instances {
			rank := inst.Card.Priority.Rank()
			byRank[rank] = append(byRank[rank], inst)
		}
		for _, group := range byRank {
			if len(group) < 2 {
				continue
			}
			order := m.deciderFor(p).OrderInstances(group, p, m.State)
			if !validPermutation(order, len(group)) {
				m.State.Logf("%s gave an invalid sub-order, keeping placement order", p.Name)
				order = make([]int, len(group))
				for i := range order {
					order[i] = i
				}
			}
			for pos, idx := range order {
				group[idx].SubOrder = pos
			}
		}
		distance := m.State.AnchorDistance(p)
		for _, inst := range instances {
			m.State.Queue.Push(rules.QueueItem{
				InstanceID: inst.ID,
				Key: rules.QueueKey{
					Rank:     inst.Card.Priority.Rank(),
					Distance: distance,
					SubOrder: inst.SubOrder,
				},
			})
		}
	}
}

// advancePhase runs advance effects for every non-cancelled instance
// still sitting in the current clash, resolved ones included: this is the
// step that carries spells forward into the next clash. Skipped after the
// final clash.
func (m *Match) advancePhase() {
	var snapshot []*PlayedInstance
	for _, p := range m.State.Players {
		snapshot = append(snapshot, p.Board[m.State.Clash]...)
	}
	for _, inst := range snapshot {
		if inst.Status == StatusCancelled || inst.Clash != m.State.Clash {
			continue
		}
		if len(inst.Card.Advance) > 0 || inst.Card.Priority.IsSlowest() {
			m.exec.RunAdvanceEffects(inst)
		}
	}
}

// endRound is the boundary to out-of-round bookkeeping: boards clear to
// discard, players manage their hands, the turn anchor rotates and the
// match ends once fewer than two players retain trunks.
func (m *Match) endRound(early bool) {
	m.State.Emit(rules.Event{Type: rules.EventRoundEnded})

	for _, p := range m.State.Players {
		p.ClearBoard()
	}

	if m.State.ContendingCount() < 2 {
		m.State.Over = true
		m.State.Logf("match over")
		m.State.Emit(rules.Event{Type: rules.EventMatchEnded})
		return
	}

	for _, p := range m.State.Players {
		if !p.HasTrunks() {
			continue
		}
		m.manageHand(p)
	}

	m.rotateAnchor()
	m.State.Round++
	m.State.Clash = 0
}

// manageHand runs the keep/discard/redraft sequence for one player: keep
// any subset of the current hand, pick one draft set from the deck, then
// refill and trim to the hand size.
func (m *Match) manageHand(p *Player) {
	d := m.deciderFor(p)

	if len(p.Hand) > 0 {
		kept := d.ChooseCardsToKeep(p.Hand, len(p.Hand), p, m.State)
		keptSet := make(map[int]bool, len(kept))
		for _, idx := range kept {
			if idx >= 0 && idx < len(p.Hand) {
				keptSet[idx] = true
			}
		}
		var newHand []*catalog.CardDefinition
		for i, card := range p.Hand {
			if keptSet[i] {
				newHand = append(newHand, card)
			} else {
				p.Discard = append(p.Discard, card)
			}
		}
		p.Hand = newHand
	}

	m.offerDraft(p, d)

	if missing := m.cfg.HandSize - len(p.Hand); missing > 0 {
		if _, rebuilt := p.Draw(missing, m.State.RNG()); rebuilt {
			m.State.Logf("%s rebuilds their deck from discards", p.Name)
			m.State.Emit(rules.Event{Type: rules.EventDeckRebuilt, Player: p.Name})
		}
	}
	for len(p.Hand) > m.cfg.HandSize {
		idx := clampChoice(d.ChooseCancellationTarget(p.Hand, p, m.State), len(p.Hand))
		card := p.RemoveFromHand(idx)
		p.Discard = append(p.Discard, card)
		m.State.Emit(rules.Event{Type: rules.EventDiscard, Player: p.Name, CardID: card.ID})
	}
}

// offerDraft deals draft sets off the top of the deck; the chosen set
// joins the hand, the rest go to discard (and return via a deck rebuild).
func (m *Match) offerDraft(p *Player, d Decider) {
	if m.cfg.DraftSets <= 0 || m.cfg.DraftSetSize <= 0 {
		return
	}
	need := m.cfg.DraftSets * m.cfg.DraftSetSize
	if len(p.Deck) < need {
		return
	}
	sets := make([][]*catalog.CardDefinition, m.cfg.DraftSets)
	for i := range sets {
		sets[i] = p.Deck[i*m.cfg.DraftSetSize : (i+1)*m.cfg.DraftSetSize]
	}
	choice := clampChoice(d.ChooseDraftSet(sets, p, m.State), len(sets))
	for i, set := range sets {
		if i == choice {
			p.Hand = append(p.Hand, set...)
		} else {
			p.Discard = append(p.Discard, set...)
		}
	}
	p.Deck = p.Deck[need:]
	m.State.Logf("%s drafts %d cards", p.Name, m.cfg.DraftSetSize)
}

// rotateAnchor moves the turn anchor to the next seat still in contention.
func (m *Match) rotateAnchor() {
	n := len(m.State.Players)
	for i := 1; i <= n; i++ {
		seat := (m.State.Anchor + i) % n
		if m.State.Players[seat].HasTrunks() {
			m.State.Anchor = seat
			return
		}
	}
}

func (m *Match) deciderFor(p *Player) Decider {
	return m.exec.deciderFor(p)
}

func containsInt(list []int, v int) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
