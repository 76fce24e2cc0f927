package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tanno-Finn/pockethero-3/internal/eventbus"
)

func TestJournal_SaveLoadRoundTrip(t *testing.T) {
	svc := NewJournalService(t.TempDir())

	at := time.Unix(0, 1724900000000000000)
	events := []eventbus.Event{
		{Seq: 1, Type: "player_move", At: at, Data: map[string]any{"toX": float64(3), "direction": "east"}},
		{Seq: 2, Type: "zone_change", At: at.Add(time.Second), Data: map[string]any{"toZone": "cavern"}},
		{Seq: 3, Type: "dialog_start", At: at.Add(2 * time.Second)}, // без данных
	}

	path, err := svc.Save(42, events)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	j, err := svc.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if j.Seed != 42 {
		t.Errorf("seed = %d, want 42", j.Seed)
	}
	if len(j.Events) != 3 {
		t.Fatalf("events = %d, want 3", len(j.Events))
	}

	for i, want := range events {
		got := j.Events[i]
		if got.Seq != want.Seq || got.Type != want.Type {
			t.Errorf("event %d = %d/%s, want %d/%s", i, got.Seq, got.Type, want.Seq, want.Type)
		}
		if !got.At.Equal(want.At) {
			t.Errorf("event %d at = %v, want %v", i, got.At, want.At)
		}
	}

	if j.Events[0].Data["toX"] != float64(3) || j.Events[0].Data["direction"] != "east" {
		t.Errorf("event 0 data = %v", j.Events[0].Data)
	}
	if j.Events[2].Data != nil {
		t.Errorf("dataless event must load with nil data, got %v", j.Events[2].Data)
	}
}

func TestJournal_EmptySession(t *testing.T) {
	svc := NewJournalService(t.TempDir())

	path, err := svc.Save(7, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	j, err := svc.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if j.Seed != 7 || len(j.Events) != 0 {
		t.Errorf("journal = %+v", j)
	}
}

func TestJournal_RejectsForeignFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not_a_journal.phej")
	if err := os.WriteFile(path, []byte("XXXX garbage that is long enough for a header"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewJournalService(dir)
	if _, err := svc.Load(path); err == nil {
		t.Error("foreign file must be rejected by magic check")
	}
}
