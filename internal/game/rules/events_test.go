package rules

import "testing"

func TestEventLogResolvedInEarlierClash(t *testing.T) {
	log := NewEventLog()

	if log.ResolvedInEarlierClash("Alice", "bolt", 1) {
		t.Fatalf("empty log should answer false")
	}

	log.Append(Event{Type: EventSpellResolved, Player: "Alice", CardID: "bolt", Clash: 0})

	if log.ResolvedInEarlierClash("Alice", "bolt", 0) {
		t.Fatalf("same clash is not an earlier clash")
	}
	if !log.ResolvedInEarlierClash("Alice", "bolt", 1) {
		t.Fatalf("expected resolution at clash 0 to count before clash 1")
	}
	if log.ResolvedInEarlierClash("Bob", "bolt", 1) {
		t.Fatalf("history is per caster")
	}
	if log.ResolvedInEarlierClash("Alice", "wave", 1) {
		t.Fatalf("history is per card")
	}
}

func TestEventLogResetRound(t *testing.T) {
	log := NewEventLog()
	log.Append(Event{Type: EventSpellResolved, Player: "Alice", CardID: "bolt", Clash: 0})

	log.ResetRound()

	if log.ResolvedInEarlierClash("Alice", "bolt", 3) {
		t.Fatalf("temporal history must clear at round start")
	}
	if len(log.Events()) != 0 {
		t.Fatalf("expected no events after reset")
	}
}

func TestEventLogListeners(t *testing.T) {
	log := NewEventLog()

	var seen []EventType
	handle := log.Subscribe(func(e Event) {
		seen = append(seen, e.Type)
	})

	log.Append(Event{Type: EventDamage})
	log.Unsubscribe(handle)
	log.Append(Event{Type: EventHeal})

	if len(seen) != 1 || seen[0] != EventDamage {
		t.Fatalf("expected exactly the damage event, got %v", seen)
	}
}

func TestEventLogEventsOfType(t *testing.T) {
	log := NewEventLog()
	log.Append(Event{Type: EventDamage, Amount: 2})
	log.Append(Event{Type: EventHeal, Amount: 1})
	log.Append(Event{Type: EventDamage, Amount: 3})

	damage := log.EventsOfType(EventDamage)
	if len(damage) != 2 {
		t.Fatalf("expected 2 damage events, got %d", len(damage))
	}
	if damage[0].Amount != 2 || damage[1].Amount != 3 {
		t.Fatalf("expected events in append order")
	}
}
