package history

import (
	"testing"

	"blossom/internal/emotion"
	"blossom/internal/testsupport"
)

func TestStoreRecordAndRecent(t *testing.T) {
	store, err := Open(testsupport.NewConfig(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := t.Context()
	vector := emotion.Default()
	if _, err := store.RecordVector(ctx, "image", "portrait.jpg", "low_risk", 0.82, "full", vector); err != nil {
		t.Fatalf("record: %v", err)
	}
	entry, err := store.Record(ctx, Entry{Kind: "text", Source: "diagnose", Diagnosis: "moderate_risk", Confidence: 0.61})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected assigned id")
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Kind != "text" {
		t.Fatalf("expected newest entry first, got %s", entries[0].Kind)
	}
	if entries[1].Emotions["neutral"] != vector.Weight("neutral") {
		t.Fatalf("expected stored emotions to round-trip, got %v", entries[1].Emotions)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Fatal("expected created_at to parse")
	}
}

func TestStoreCounts(t *testing.T) {
	store, err := Open(testsupport.NewConfig(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := t.Context()
	for _, diagnosis := range []string{"low_risk", "low_risk", "high_risk"} {
		if _, err := store.Record(ctx, Entry{Kind: "text", Source: "diagnose", Diagnosis: diagnosis}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts["low_risk"] != 2 || counts["high_risk"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestStoreRejectsEmptyKind(t *testing.T) {
	store, err := Open(testsupport.NewConfig(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if _, err := store.Record(t.Context(), Entry{Source: "diagnose"}); err == nil {
		t.Fatal("expected error for empty kind")
	}
}
