package storage

import (
	"context"
	"sort"
	"sync"

	"agon/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	tournaments map[string]model.TournamentRecord
	summaries   map[string]model.ResultSummaryRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.tournaments = make(map[string]model.TournamentRecord)
	s.summaries = make(map[string]model.ResultSummaryRecord)
	return nil
}

func (s *MemoryStore) SaveTournament(_ context.Context, record model.TournamentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.PlayerNames = append([]string(nil), record.PlayerNames...)
	s.tournaments[record.ID] = record
	return nil
}

func (s *MemoryStore) GetTournament(_ context.Context, id string) (model.TournamentRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.tournaments[id]
	if !ok {
		return model.TournamentRecord{}, false, nil
	}
	record.PlayerNames = append([]string(nil), record.PlayerNames...)
	return record, true, nil
}

func (s *MemoryStore) ListTournaments(_ context.Context, limit int) ([]model.TournamentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.TournamentRecord, 0, len(s.tournaments))
	for _, record := range s.tournaments {
		record.PlayerNames = append([]string(nil), record.PlayerNames...)
		records = append(records, record)
	}
	// Newest first; record IDs embed no ordering, so sort on timestamp
	// with ID as tiebreaker.
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAtUTC != records[j].CreatedAtUTC {
			return records[i].CreatedAtUTC > records[j].CreatedAtUTC
		}
		return records[i].ID < records[j].ID
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *MemoryStore) SaveResultSummary(_ context.Context, summary model.ResultSummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary.Results = append([]model.PlayerResult(nil), summary.Results...)
	s.summaries[summary.RunID] = summary
	return nil
}

func (s *MemoryStore) GetResultSummary(_ context.Context, runID string) (model.ResultSummaryRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.summaries[runID]
	if !ok {
		return model.ResultSummaryRecord{}, false, nil
	}
	summary.Results = append([]model.PlayerResult(nil), summary.Results...)
	return summary, true, nil
}
