package storage

import (
	"context"

	"agon/internal/model"
)

// Store defines persistence operations for tournament runs and their
// result summaries.
type Store interface {
	Init(ctx context.Context) error
	SaveTournament(ctx context.Context, record model.TournamentRecord) error
	GetTournament(ctx context.Context, id string) (model.TournamentRecord, bool, error)
	ListTournaments(ctx context.Context, limit int) ([]model.TournamentRecord, error)
	SaveResultSummary(ctx context.Context, summary model.ResultSummaryRecord) error
	GetResultSummary(ctx context.Context, runID string) (model.ResultSummaryRecord, bool, error)
}
