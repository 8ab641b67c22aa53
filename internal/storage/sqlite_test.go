//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"agon/internal/model"
)

func TestSQLiteStoreTournamentRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "agon.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	record := testTournamentRecord("run-1", "2026-01-02T03:04:05Z")
	if err := store.SaveTournament(ctx, record); err != nil {
		t.Fatalf("save tournament: %v", err)
	}

	loaded, ok, err := store.GetTournament(ctx, record.ID)
	if err != nil {
		t.Fatalf("get tournament: %v", err)
	}
	if !ok {
		t.Fatalf("expected tournament %s", record.ID)
	}
	if loaded.ID != record.ID || loaded.Turns != record.Turns || len(loaded.PlayerNames) != 2 {
		t.Fatalf("unexpected tournament loaded: %+v", loaded)
	}

	summary := model.ResultSummaryRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           record.ID,
		Results: []model.PlayerResult{
			{Name: "defector", Rank: 1, MedianScore: 3.2, Wins: 2},
		},
	}
	if err := store.SaveResultSummary(ctx, summary); err != nil {
		t.Fatalf("save result summary: %v", err)
	}

	loadedSummary, ok, err := store.GetResultSummary(ctx, record.ID)
	if err != nil {
		t.Fatalf("get result summary: %v", err)
	}
	if !ok {
		t.Fatalf("expected result summary for %s", record.ID)
	}
	if len(loadedSummary.Results) != 1 || loadedSummary.Results[0].Name != "defector" {
		t.Fatalf("unexpected result summary loaded: %+v", loadedSummary)
	}
}

func TestSQLiteStoreListOrdering(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "agon.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	for _, record := range []model.TournamentRecord{
		testTournamentRecord("run-a", "2026-01-01T00:00:00Z"),
		testTournamentRecord("run-b", "2026-01-03T00:00:00Z"),
	} {
		if err := store.SaveTournament(ctx, record); err != nil {
			t.Fatalf("save tournament: %v", err)
		}
	}

	records, err := store.ListTournaments(ctx, 0)
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	if len(records) != 2 || records[0].ID != "run-b" {
		t.Fatalf("expected newest-first ordering, got=%+v", records)
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "agon.db"))
	if _, _, err := store.GetTournament(context.Background(), "run-1"); err == nil {
		t.Fatal("expected uninitialized store to fail")
	}
}
