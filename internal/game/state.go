package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spellclash/spellclash-go/internal/catalog"
	"github.com/spellclash/spellclash-go/internal/game/rules"
)

// DefaultClashCount is the number of clashes in a round.
const DefaultClashCount = 4

// GameState is the mutable per-match state. It is exclusively owned by the
// engine's single control flow; all mutation goes through the effect
// executor so every change is paired with a log line and an event.
type GameState struct {
	Players []*Player
	Catalog *catalog.Catalog

	Round int
	Clash int
	// Anchor is the seat index used for Prepare order and resolution
	// tie-breaking. It rotates at the end of each round.
	Anchor int

	ClashCount int

	// MatchLog is the human-readable record, one line per state change.
	MatchLog []string
	// Events is the structured stream consumed by temporal conditions
	// and external analytics.
	Events *rules.EventLog

	Queue *rules.ResolutionQueue
	Over  bool

	instances map[string]*PlayedInstance
	rng       *rand.Rand
	logger    *zap.Logger
}

// NewGameState creates a match state for the given players.
func NewGameState(players []*Player, cat *catalog.Catalog, rng *rand.Rand, logger *zap.Logger) *GameState {
	if logger == nil {
		logger = zap.NewNop()
	}
	clashCount := DefaultClashCount
	if len(players) > 0 {
		clashCount = len(players[0].Board)
	}
	return &GameState{
		Players:    players,
		Catalog:    cat,
		Round:      1,
		ClashCount: clashCount,
		Events:     rules.NewEventLog(),
		Queue:      rules.NewResolutionQueue(),
		instances:  make(map[string]*PlayedInstance),
		rng:        rng,
		logger:     logger,
	}
}

// Logf appends a human-readable log line and mirrors it to the structured
// logger at debug level.
func (s *GameState) Logf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	s.MatchLog = append(s.MatchLog, line)
	s.logger.Debug("match log",
		zap.Int("round", s.Round),
		zap.Int("clash", s.Clash),
		zap.String("line", line),
	)
}

// Emit stamps an event with match position and a fresh ID, then records it.
func (s *GameState) Emit(event rules.Event) {
	event.ID = uuid.NewString()
	event.Round = s.Round
	event.Clash = s.Clash
	s.Events.Append(event)
}

// PlayerByName returns the named player, if seated.
func (s *GameState) PlayerByName(name string) (*Player, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// SeatOf returns the seat index of the given player, or -1.
func (s *GameState) SeatOf(p *Player) int {
	for i, seated := range s.Players {
		if seated == p {
			return i
		}
	}
	return -1
}

// AnchorDistance returns how many seats past the turn anchor the player
// sits, in turn order. The anchor itself is distance zero.
func (s *GameState) AnchorDistance(p *Player) int {
	seat := s.SeatOf(p)
	if seat < 0 {
		return len(s.Players)
	}
	return (seat - s.Anchor + len(s.Players)) % len(s.Players)
}

// Enemies returns every seated player other than p that still holds
// trunks, regardless of invulnerability. Target legality is applied by the
// target resolver, not here.
func (s *GameState) Enemies(p *Player) []*Player {
	var out []*Player
	for _, other := range s.Players {
		if other != p && other.HasTrunks() {
			out = append(out, other)
		}
	}
	return out
}

// ActiveInstances returns all players' active instances in the given
// clash, seat order then placement order.
func (s *GameState) ActiveInstances(clash int) []*PlayedInstance {
	var out []*PlayedInstance
	for _, p := range s.Players {
		out = append(out, p.ActiveInstances(clash)...)
	}
	return out
}

// TrackInstance registers an instance so queue entries can be resolved
// back to it.
func (s *GameState) TrackInstance(inst *PlayedInstance) {
	s.instances[inst.ID] = inst
}

// Instance resolves a tracked instance by ID. A queue entry referencing an
// untracked instance is an internal invariant violation and is reported as
// a fatal error by the caller rather than silently skipped.
func (s *GameState) Instance(id string) (*PlayedInstance, error) {
	inst, ok := s.instances[id]
	if !ok {
		return nil, fmt.Errorf("instance %s referenced but not tracked on any board", id)
	}
	return inst, nil
}

// RNG returns the match's seeded random source.
func (s *GameState) RNG() *rand.Rand {
	return s.rng
}

// NonInvulnerableCount returns how many in-contention players can still be
// affected this round.
func (s *GameState) NonInvulnerableCount() int {
	n := 0
	for _, p := range s.Players {
		if p.HasTrunks() && !p.Invulnerable {
			n++
		}
	}
	return n
}

// ContendingCount returns how many players retain at least one trunk.
func (s *GameState) ContendingCount() int {
	n := 0
	for _, p := range s.Players {
		if p.HasTrunks() {
			n++
		}
	}
	return n
}

// LastClash reports whether the current clash is the final one this round.
func (s *GameState) LastClash() bool {
	return s.Clash >= s.ClashCount-1
}
