package store

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/bus"
	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

func newTestStore(t *testing.T) *ConnectionStore {
	t.Helper()
	return New(bus.New(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func daysAgo(n int) time.Time {
	// One hour past the day boundary so whole-day math stays stable.
	return time.Now().Add(-time.Duration(n)*24*time.Hour - time.Hour)
}

func TestAddDefaultsAndInitialStrength(t *testing.T) {
	s := newTestStore(t)

	c, err := s.Add(ConnectionDraft{Name: "Sarah Chen"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.ID == "" {
		t.Error("expected non-empty id")
	}
	if c.Priority != model.P3 || c.Relationship != model.RelFriend {
		t.Errorf("expected P3/friend defaults, got %s/%s", c.Priority, c.Relationship)
	}
	if c.ContactFrequency != 30 {
		t.Errorf("expected frequency 30 from P3, got %d", c.ContactFrequency)
	}
	// Zero days since contact: a new connection starts neutral.
	if c.Strength != 3 {
		t.Errorf("expected strength 3 for new connection, got %d", c.Strength)
	}
}

func TestAddEmptyNameFails(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(ConnectionDraft{Name: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("store should stay empty, has %d", s.Len())
	}
}

func TestAddEmitsEventBeforeReturn(t *testing.T) {
	s := newTestStore(t)

	var observedLen int
	var gotEvent bool
	s.Bus().Subscribe(func(e model.Event) {
		if e.Type == model.EventConnectionAdded {
			gotEvent = true
			// The store must be fully updated when subscribers run.
			observedLen = s.Len()
		}
	})

	s.Add(ConnectionDraft{Name: "Marcus Johnson"})
	if !gotEvent {
		t.Fatal("no connection_added event published")
	}
	if observedLen != 1 {
		t.Errorf("subscriber saw %d connections, want 1", observedLen)
	}
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	s := newTestStore(t)
	name := "X"
	_, err := s.Update("nope", ConnectionPatch{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePriorityRecomputesStrength(t *testing.T) {
	s := newTestStore(t)
	c, _ := s.Add(ConnectionDraft{Name: "Sarah Chen", Priority: model.P3, LastContact: daysAgo(10)})
	if c.Strength != 5 {
		t.Fatalf("P3 at 10 days should be grade 5, got %d", c.Strength)
	}

	var events []model.EventType
	s.Bus().Subscribe(func(e model.Event) { events = append(events, e.Type) })

	p1 := model.P1
	updated, err := s.Update(c.ID, ConnectionPatch{Priority: &p1})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Strength != 3 {
		t.Errorf("P1 at 10 days should be grade 3, got %d", updated.Strength)
	}
	if updated.ContactFrequency != 7 {
		t.Errorf("frequency should follow tier to 7, got %d", updated.ContactFrequency)
	}
	if len(events) != 2 || events[0] != model.EventConnectionUpdated || events[1] != model.EventStrengthUpdated {
		t.Errorf("expected [connection_updated strength_updated], got %v", events)
	}
}

func TestUpdateKeepsOverriddenFrequency(t *testing.T) {
	s := newTestStore(t)
	c, _ := s.Add(ConnectionDraft{Name: "Emily", Priority: model.P2, ContactFrequency: 10})

	p1 := model.P1
	updated, _ := s.Update(c.ID, ConnectionPatch{Priority: &p1})
	if updated.ContactFrequency != 10 {
		t.Errorf("overridden frequency should survive a tier change, got %d", updated.ContactFrequency)
	}
}

func TestLogInteractionAdvancesLastContact(t *testing.T) {
	s := newTestStore(t)
	c, _ := s.Add(ConnectionDraft{Name: "David Kim", Priority: model.P1, LastContact: daysAgo(20)})

	newest := daysAgo(1)
	middle := daysAgo(5)
	oldest := daysAgo(12)

	// Log out of order; last contact must end at the max date.
	for _, d := range []time.Time{middle, newest, oldest} {
		if _, err := s.LogInteraction(c.ID, InteractionDraft{Type: model.TypeCall, Date: d}); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	got, _ := s.Get(c.ID)
	if !got.LastContact.Equal(newest) {
		t.Errorf("last contact = %v, want newest %v", got.LastContact, newest)
	}
	if len(got.Interactions) != 3 {
		t.Errorf("expected 3 interactions, got %d", len(got.Interactions))
	}

	sorted := got.SortedInteractions()
	if !sorted[0].Date.Equal(newest) || !sorted[2].Date.Equal(oldest) {
		t.Error("sorted interactions not date-descending")
	}
}

func TestLogInteractionNeverMovesLastContactBackward(t *testing.T) {
	s := newTestStore(t)
	c, _ := s.Add(ConnectionDraft{Name: "Jess", LastContact: daysAgo(2)})

	before, _ := s.Get(c.ID)
	s.LogInteraction(c.ID, InteractionDraft{Type: model.TypeText, Date: daysAgo(40)})
	after, _ := s.Get(c.ID)

	if !after.LastContact.Equal(before.LastContact) {
		t.Errorf("backdated interaction moved last contact from %v to %v", before.LastContact, after.LastContact)
	}
}

func TestLogInteractionEventOrder(t *testing.T) {
	s := newTestStore(t)
	c, _ := s.Add(ConnectionDraft{Name: "Alex"})

	var events []model.EventType
	s.Bus().Subscribe(func(e model.Event) { events = append(events, e.Type) })

	s.LogInteraction(c.ID, InteractionDraft{Type: model.TypeMeeting})
	if len(events) != 2 || events[0] != model.EventInteractionAdded || events[1] != model.EventStrengthUpdated {
		t.Errorf("expected [interaction_added strength_updated], got %v", events)
	}
}

func TestRemoveDeletesInteractionsAndIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	keep, _ := s.Add(ConnectionDraft{Name: "Keep"})
	gone, _ := s.Add(ConnectionDraft{Name: "Gone"})
	s.LogInteraction(keep.ID, InteractionDraft{Type: model.TypeCall})
	s.LogInteraction(gone.ID, InteractionDraft{Type: model.TypeCall})
	s.LogInteraction(gone.ID, InteractionDraft{Type: model.TypeText})

	s.Remove(gone.ID)
	s.Remove(gone.ID) // no-op, no panic

	for _, in := range s.AllInteractions() {
		if in.ConnectionID == gone.ID {
			t.Errorf("interaction %s still references deleted connection", in.ID)
		}
	}
	if len(s.AllInteractions()) != 1 {
		t.Errorf("expected 1 surviving interaction, got %d", len(s.AllInteractions()))
	}
}

func TestRefreshStrengthsEmitsOnlyOnChange(t *testing.T) {
	s := newTestStore(t)
	s.Add(ConnectionDraft{Name: "Quiet", Priority: model.P1, LastContact: daysAgo(2)})

	var events int
	s.Bus().Subscribe(func(e model.Event) {
		if e.Type == model.EventStrengthUpdated {
			events++
		}
	})

	s.RefreshStrengths()
	if events != 0 {
		t.Fatalf("no time passed, got %d strength events", events)
	}

	// Move the clock ten days ahead; the stored grade is now stale.
	s.now = func() time.Time { return time.Now().Add(10 * 24 * time.Hour) }
	s.RefreshStrengths()
	if events != 1 {
		t.Fatalf("expected 1 strength event after drift, got %d", events)
	}
	s.RefreshStrengths()
	if events != 1 {
		t.Errorf("repeated refresh without drift should stay quiet, got %d", events)
	}
}

func TestFindByNameBidirectional(t *testing.T) {
	s := newTestStore(t)
	s.Add(ConnectionDraft{Name: "Sarah Chen"})
	s.Add(ConnectionDraft{Name: "Marcus Johnson"})

	if got := s.FindByName("sar"); len(got) != 1 || got[0].Name != "Sarah Chen" {
		t.Errorf("fragment 'sar' should match Sarah Chen, got %v", got)
	}
	if got := s.FindByName("Sarah Chen"); len(got) != 1 {
		t.Errorf("exact name should match, got %d", len(got))
	}
	if got := s.FindByName("sarah chen smith"); len(got) != 1 {
		t.Errorf("query containing the stored name should match, got %d", len(got))
	}
	if got := s.FindByName(""); got != nil {
		t.Errorf("empty fragment should match nothing, got %v", got)
	}
}

func TestQueryFilters(t *testing.T) {
	s := newTestStore(t)
	s.Add(ConnectionDraft{Name: "A", Relationship: model.RelWork, Priority: model.P1})
	s.Add(ConnectionDraft{Name: "B", Relationship: model.RelWork, Priority: model.P2})
	s.Add(ConnectionDraft{Name: "C", Relationship: model.RelFamily, Priority: model.P1})

	if got := s.ByRelationship(model.RelWork); len(got) != 2 {
		t.Errorf("expected 2 work connections, got %d", len(got))
	}
	if got := s.ByPriority(model.P1); len(got) != 2 {
		t.Errorf("expected 2 P1 connections, got %d", len(got))
	}
	if got := s.ByStrength(3); len(got) != 3 {
		t.Errorf("all fresh connections are grade 3, got %d", len(got))
	}
}

func TestOverdueUsesPerConnectionFrequency(t *testing.T) {
	s := newTestStore(t)
	s.Add(ConnectionDraft{Name: "Overdue P1", Priority: model.P1, LastContact: daysAgo(10)})
	s.Add(ConnectionDraft{Name: "Fine P3", Priority: model.P3, LastContact: daysAgo(10)})

	overdue := s.Overdue()
	if len(overdue) != 1 || overdue[0].Name != "Overdue P1" {
		t.Errorf("expected only the P1 connection overdue, got %v", overdue)
	}
}

func TestMemoryCaptureOnInteractionNotes(t *testing.T) {
	s := newTestStore(t)
	defer s.EnableMemoryCapture()()

	c, _ := s.Add(ConnectionDraft{Name: "Lauren"})
	s.LogInteraction(c.ID, InteractionDraft{Type: model.TypeMeeting, Notes: "mentioned they're moving to Seattle"})
	s.LogInteraction(c.ID, InteractionDraft{Type: model.TypeText}) // no notes, no memory

	mems := s.MemoriesFor(c.ID)
	if len(mems) != 1 {
		t.Fatalf("expected 1 captured memory, got %d", len(mems))
	}
	m := mems[0]
	if m.Type != model.MemConversation || m.Content != "mentioned they're moving to Seattle" {
		t.Errorf("unexpected memory %+v", m)
	}
	if m.Importance != 7 || len(m.Tags) != 2 || m.Tags[0] != "meeting" || m.Tags[1] != "auto-logged" {
		t.Errorf("unexpected memory metadata %+v", m)
	}
}

func TestSeedDefaultsAndHints(t *testing.T) {
	s := newTestStore(t)
	n := s.Seed([]SeedPerson{
		{Name: "Plain"},
		{Name: "Recent", Priority: model.P1, Relationship: model.RelFriend, RecentInteractionHint: "this-week"},
		{Name: ""},
	})
	if n != 2 {
		t.Fatalf("expected 2 seeded, got %d", n)
	}

	plain := s.FindByName("Plain")[0]
	if plain.Priority != model.P3 || plain.Relationship != model.RelOther {
		t.Errorf("expected P3/other defaults, got %s/%s", plain.Priority, plain.Relationship)
	}
	if plain.Strength != 4 {
		t.Errorf("P3 at the 30-day default should grade 4, got %d", plain.Strength)
	}

	recent := s.FindByName("Recent")[0]
	if len(recent.Interactions) != 1 {
		t.Errorf("hinted person should carry one seeded interaction, got %d", len(recent.Interactions))
	}
	if d := model.DaysSince(recent.LastContact, time.Now()); d > 6 {
		t.Errorf("this-week hint put last contact %d days back", d)
	}
}
