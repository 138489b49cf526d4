package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a structured match event.
type EventType string

const (
	// Flow events
	EventRoundStarted EventType = "ROUND_STARTED"
	EventClashStarted EventType = "CLASH_STARTED"
	EventRoundEnded   EventType = "ROUND_ENDED"
	EventMatchEnded   EventType = "MATCH_ENDED"

	// Spell lifecycle events
	EventSpellPrepared  EventType = "SPELL_PREPARED"
	EventSpellCast      EventType = "SPELL_CAST"
	EventSpellResolved  EventType = "SPELL_RESOLVED"
	EventSpellCancelled EventType = "SPELL_CANCELLED"
	EventSpellAdvanced  EventType = "SPELL_ADVANCED"
	EventExtraSpellCast EventType = "EXTRA_SPELL_CAST"

	// State mutation events
	EventDamage      EventType = "DAMAGE"
	EventHeal        EventType = "HEAL"
	EventWeaken      EventType = "WEAKEN"
	EventBolster     EventType = "BOLSTER"
	EventDiscard     EventType = "DISCARD"
	EventDeckRebuilt EventType = "DECK_REBUILT"

	// Elimination events
	EventTrunkLost        EventType = "TRUNK_LOST"
	EventPlayerEliminated EventType = "PLAYER_ELIMINATED"
)

// Event is one entry in the structured event stream. Temporal conditions
// and external analytics both consume this shape.
type Event struct {
	ID         string
	Type       EventType
	Round      int
	Clash      int
	Player     string
	CardID     string
	InstanceID string
	Target     string
	Amount     int
	Detail     string
	Timestamp  time.Time
}

// Listener is a callback that reacts to published events.
type Listener func(Event)

// EventLog is the append-only structured record of a match. The log is
// cleared at round start, so history queries are scoped to the current
// round by construction. A bus of listeners receives every appended event
// for external consumption.
type EventLog struct {
	mu         sync.RWMutex
	events     []Event
	listeners  map[int]Listener
	nextHandle int
}

// NewEventLog constructs an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{
		events:    make([]Event, 0, 64),
		listeners: make(map[int]Listener),
	}
}

// Append records an event and delivers it to all listeners synchronously.
func (l *EventLog) Append(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	l.mu.Lock()
	l.events = append(l.events, event)
	listeners := make([]Listener, 0, len(l.listeners))
	for _, listener := range l.listeners {
		listeners = append(listeners, listener)
	}
	l.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Subscribe registers a listener for all future events and returns a
// handle for Unsubscribe.
func (l *EventLog) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	handle := l.nextHandle
	l.nextHandle++
	l.listeners[handle] = listener
	return handle
}

// Unsubscribe removes the listener identified by handle.
func (l *EventLog) Unsubscribe(handle int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.listeners, handle)
}

// Events returns a copy of the recorded events in order.
func (l *EventLog) Events() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cpy := make([]Event, len(l.events))
	copy(cpy, l.events)
	return cpy
}

// EventsOfType returns recorded events matching the given type.
func (l *EventLog) EventsOfType(t EventType) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Event
	for _, e := range l.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// ResolvedInEarlierClash reports whether the given card, cast by the given
// player, has a resolved entry at a strictly lower clash index. This is a
// pure scan of the recorded history, not a board query.
func (l *EventLog) ResolvedInEarlierClash(player, cardID string, beforeClash int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.events {
		if e.Type == EventSpellResolved && e.Player == player && e.CardID == cardID && e.Clash < beforeClash {
			return true
		}
	}
	return false
}

// ResetRound clears the recorded history. Listeners stay subscribed.
func (l *EventLog) ResetRound() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = l.events[:0]
}
