package storage

import (
	"errors"
	"testing"

	"agon/internal/model"
)

func TestTournamentCodecRoundTrip(t *testing.T) {
	record := testTournamentRecord("run-1", "2026-01-02T03:04:05Z")
	payload, err := EncodeTournament(record)
	if err != nil {
		t.Fatalf("encode tournament: %v", err)
	}
	decoded, err := DecodeTournament(payload)
	if err != nil {
		t.Fatalf("decode tournament: %v", err)
	}
	if decoded.ID != record.ID || decoded.Repetitions != record.Repetitions {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	record := testTournamentRecord("run-1", "2026-01-02T03:04:05Z")
	record.SchemaVersion = CurrentSchemaVersion + 1
	payload, err := EncodeTournament(record)
	if err != nil {
		t.Fatalf("encode tournament: %v", err)
	}
	if _, err := DecodeTournament(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch error, got=%v", err)
	}

	summary := model.ResultSummaryRecord{RunID: "run-1"}
	payload, err = EncodeResultSummary(summary)
	if err != nil {
		t.Fatalf("encode result summary: %v", err)
	}
	if _, err := DecodeResultSummary(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch error, got=%v", err)
	}
}

func TestNewStoreMemory(t *testing.T) {
	store, err := NewStore("memory", "")
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	if store == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestNewStoreUnsupported(t *testing.T) {
	if _, err := NewStore("unknown", ""); err == nil {
		t.Fatal("expected unsupported store error")
	}
}
