package command

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/bus"
	"github.com/calebnewtonusc/webcalhacks25/internal/intent"
	"github.com/calebnewtonusc/webcalhacks25/internal/model"
	"github.com/calebnewtonusc/webcalhacks25/internal/store"
)

func newTestExecutor(t *testing.T) (*Executor, *store.ConnectionStore) {
	t.Helper()
	s := store.New(bus.New(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewExecutor(s), s
}

func daysAgo(n int) time.Time {
	return time.Now().Add(-time.Duration(n)*24*time.Hour - time.Hour)
}

func TestExecuteAddConnection(t *testing.T) {
	e, s := newTestExecutor(t)

	out := e.Execute(intent.Intent{
		Kind:         intent.KindAddConnection,
		Name:         "Sarah",
		Relationship: model.RelFriend,
		Priority:     model.P1,
	})
	if out.Status != StatusOK {
		t.Fatalf("status = %s: %s", out.Status, out.Message)
	}
	if s.Len() != 1 {
		t.Fatalf("store has %d connections, want 1", s.Len())
	}
	c := out.Connections[0]
	if c.Priority != model.P1 || c.ContactFrequency != 7 {
		t.Errorf("got %s/%d, want P1/7", c.Priority, c.ContactFrequency)
	}
}

func TestExecuteAddWithImpliedInteraction(t *testing.T) {
	e, s := newTestExecutor(t)

	out := e.Execute(intent.Intent{
		Kind:            intent.KindAddConnection,
		Name:            "Dana",
		Relationship:    model.RelWork,
		Priority:        model.P3,
		HadInteraction:  true,
		Date:            daysAgo(1),
		InteractionType: model.TypeSocial,
	})
	if out.Status != StatusOK {
		t.Fatalf("status = %s: %s", out.Status, out.Message)
	}
	c := s.FindByName("Dana")[0]
	if len(c.Interactions) != 1 {
		t.Fatalf("expected the follow-up interaction, got %d", len(c.Interactions))
	}
	if !strings.Contains(out.Message, "logged") {
		t.Errorf("message should mention the logged interaction: %q", out.Message)
	}
}

func TestExecuteUpdatePriorityByFragment(t *testing.T) {
	e, s := newTestExecutor(t)
	s.Add(store.ConnectionDraft{Name: "Sarah Chen", Priority: model.P3, LastContact: daysAgo(10)})

	var sawStrength bool
	s.Bus().Subscribe(func(ev model.Event) {
		if ev.Type == model.EventStrengthUpdated {
			sawStrength = true
		}
	})

	out := e.Execute(intent.Intent{Kind: intent.KindUpdatePriority, Name: "sar", Priority: model.P1})
	if out.Status != StatusOK {
		t.Fatalf("status = %s: %s", out.Status, out.Message)
	}
	c := out.Connections[0]
	if c.Name != "Sarah Chen" || c.Priority != model.P1 {
		t.Errorf("fragment resolution failed: %+v", c)
	}
	if !sawStrength {
		t.Error("priority change should publish a strength update")
	}
}

func TestExecuteFirstMatchWinsAndCandidatesExposed(t *testing.T) {
	e, s := newTestExecutor(t)
	s.Add(store.ConnectionDraft{Name: "Sarah Chen"})
	s.Add(store.ConnectionDraft{Name: "Sarah Miller"})

	out := e.Execute(intent.Intent{Kind: intent.KindUpdatePriority, Name: "sarah", Priority: model.P2})
	if out.Status != StatusOK {
		t.Fatalf("status = %s: %s", out.Status, out.Message)
	}
	if out.Connections[0].Name != "Sarah Chen" {
		t.Errorf("first match in insertion order should win, got %s", out.Connections[0].Name)
	}
	if len(out.Candidates) != 2 {
		t.Errorf("expected both candidates exposed, got %d", len(out.Candidates))
	}
}

func TestExecuteUnknownNameIsNotFound(t *testing.T) {
	e, _ := newTestExecutor(t)
	out := e.Execute(intent.Intent{Kind: intent.KindLogInteraction, Name: "Nobody"})
	if out.Status != StatusNotFound {
		t.Fatalf("status = %s, want not_found", out.Status)
	}
	if !strings.Contains(out.Message, "Nobody") {
		t.Errorf("message should name the fragment: %q", out.Message)
	}
}

func TestExecuteLogInteraction(t *testing.T) {
	e, s := newTestExecutor(t)
	c, _ := s.Add(store.ConnectionDraft{Name: "Marcus", Priority: model.P1, LastContact: daysAgo(20)})

	out := e.Execute(intent.Intent{
		Kind:            intent.KindLogInteraction,
		Name:            "Marcus",
		Date:            daysAgo(1),
		InteractionType: model.TypeCall,
	})
	if out.Status != StatusOK {
		t.Fatalf("status = %s: %s", out.Status, out.Message)
	}
	got, _ := s.Get(c.ID)
	if got.Strength != 5 {
		t.Errorf("contact a day ago should restore grade 5, got %d", got.Strength)
	}
}

func TestExecuteMoveCategory(t *testing.T) {
	e, s := newTestExecutor(t)
	s.Add(store.ConnectionDraft{Name: "Alex", Relationship: model.RelFriend})

	out := e.Execute(intent.Intent{Kind: intent.KindMoveCategory, Name: "Alex", Category: model.RelWork})
	if out.Status != StatusOK {
		t.Fatalf("status = %s: %s", out.Status, out.Message)
	}
	if out.Connections[0].Relationship != model.RelWork {
		t.Errorf("relationship = %s, want work", out.Connections[0].Relationship)
	}
}

func TestExecuteQueryOverdue(t *testing.T) {
	e, s := newTestExecutor(t)
	s.Add(store.ConnectionDraft{Name: "Overdue", Priority: model.P1, LastContact: daysAgo(10)})
	s.Add(store.ConnectionDraft{Name: "Fine", Priority: model.P3, LastContact: daysAgo(10)})

	out := e.Execute(intent.Intent{Kind: intent.KindQueryOverdue})
	if out.Status != StatusOK {
		t.Fatalf("status = %s", out.Status)
	}
	if len(out.Connections) != 1 || out.Connections[0].Name != "Overdue" {
		t.Errorf("expected only the overdue P1, got %v", out.Connections)
	}
}

func TestExecuteQueryByFilterCombines(t *testing.T) {
	e, s := newTestExecutor(t)
	s.Add(store.ConnectionDraft{Name: "A", Relationship: model.RelWork, Priority: model.P1})
	s.Add(store.ConnectionDraft{Name: "B", Relationship: model.RelWork, Priority: model.P2})
	s.Add(store.ConnectionDraft{Name: "C", Relationship: model.RelFamily, Priority: model.P1})

	out := e.Execute(intent.Intent{Kind: intent.KindQueryByFilter, Filter: intent.Filter{
		Relationship: model.RelWork,
		Priority:     model.P1,
	}})
	if len(out.Connections) != 1 || out.Connections[0].Name != "A" {
		t.Errorf("combined filter should leave only A, got %v", out.Connections)
	}
}

func TestExecuteDescribe(t *testing.T) {
	e, s := newTestExecutor(t)
	c, _ := s.Add(store.ConnectionDraft{Name: "Jeremy", LastContact: daysAgo(3)})
	s.LogInteraction(c.ID, store.InteractionDraft{Type: model.TypeCall, Date: daysAgo(3)})

	out := e.Execute(intent.Intent{Kind: intent.KindDescribeConnection, Name: "Jeremy"})
	if out.Status != StatusOK {
		t.Fatalf("status = %s", out.Status)
	}
	if !strings.Contains(out.Message, "Jeremy") || !strings.Contains(out.Message, "interaction") {
		t.Errorf("description too thin: %q", out.Message)
	}
}

func TestExecuteStats(t *testing.T) {
	e, s := newTestExecutor(t)
	s.Add(store.ConnectionDraft{Name: "A"})
	s.Add(store.ConnectionDraft{Name: "B"})

	out := e.Execute(intent.Intent{Kind: intent.KindQueryStats})
	if out.Stats == nil || out.Stats.Total != 2 {
		t.Fatalf("expected stats for 2 connections, got %+v", out.Stats)
	}
}

func TestExecuteUnrecognizedGetsHelp(t *testing.T) {
	e, _ := newTestExecutor(t)
	out := e.Execute(intent.Intent{Kind: intent.KindUnrecognized, Text: "asdkfj qwoeiru"})
	if out.Status != StatusUnrecognized {
		t.Fatalf("status = %s, want unrecognized", out.Status)
	}
	if !strings.Contains(out.Message, "asdkfj qwoeiru") || !strings.Contains(out.Message, "Try things like") {
		t.Errorf("help text should echo the input and show examples: %q", out.Message)
	}
}

func TestExecuteQueriesDoNotMutate(t *testing.T) {
	e, s := newTestExecutor(t)
	s.Add(store.ConnectionDraft{Name: "A", LastContact: daysAgo(5)})

	var events int
	s.Bus().Subscribe(func(model.Event) { events++ })

	e.Execute(intent.Intent{Kind: intent.KindQueryOverdue})
	e.Execute(intent.Intent{Kind: intent.KindQueryStats})
	e.Execute(intent.Intent{Kind: intent.KindDescribeConnection, Name: "A"})

	if events != 0 {
		t.Errorf("read intents published %d events", events)
	}
}
