// Package agon exposes the tournament engine behind a small client facade:
// build players from the strategy registry, run a tournament, persist the
// outcome and write ranking artifacts.
package agon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"agon/internal/model"
	"agon/internal/results"
	"agon/internal/stats"
	"agon/internal/storage"
	"agon/internal/strategy"
	"agon/internal/tournament"
)

const (
	defaultArtifactsDir = "artifacts"
	defaultDBPath       = "agon.db"
	defaultTurns        = 200
	defaultRepetitions  = 10
)

type Options struct {
	StoreKind    string
	DBPath       string
	ArtifactsDir string
}

type Client struct {
	store        storage.Store
	artifactsDir string

	mu          sync.Mutex
	initialized bool
}

// RunRequest configures one tournament run. Zero values fall back to the
// defaults of the original Axelrod tournament: 200 turns, 10 repetitions,
// the full strategy roster, serial execution.
type RunRequest struct {
	Name         string
	Players      []string
	Turns        int
	Repetitions  int
	Noise        float64
	Workers      int
	Seed         int64
	WithMorality bool
}

type RunSummary struct {
	RunID        string
	ArtifactsDir string
	RankedNames  []string
	Results      []model.PlayerResult
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	artifactsDir := opts.ArtifactsDir
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:        store,
		artifactsDir: artifactsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// RunTournament plays one full tournament, persists the run and its ranking,
// and writes report artifacts under the artifacts directory.
func (c *Client) RunTournament(ctx context.Context, req RunRequest) (RunSummary, error) {
	if err := c.Init(ctx); err != nil {
		return RunSummary{}, err
	}

	if req.Name == "" {
		req.Name = "agon"
	}
	if len(req.Players) == 0 {
		req.Players = strategy.Names()
	}
	if req.Turns <= 0 {
		req.Turns = defaultTurns
	}
	if req.Repetitions <= 0 {
		req.Repetitions = defaultRepetitions
	}

	players := make([]strategy.Player, 0, len(req.Players))
	for i, name := range req.Players {
		player, err := strategy.New(name, req.Seed+int64(i))
		if err != nil {
			return RunSummary{}, err
		}
		players = append(players, player)
	}

	tour, err := tournament.New(tournament.Config{
		Players:     players,
		Turns:       req.Turns,
		Repetitions: req.Repetitions,
		Noise:       req.Noise,
		Workers:     req.Workers,
		Seed:        req.Seed,
	})
	if err != nil {
		return RunSummary{}, err
	}

	outcome, err := tour.Play(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	rs, err := results.New(outcome, req.WithMorality)
	if err != nil {
		return RunSummary{}, err
	}

	now := time.Now().UTC()
	runID := fmt.Sprintf("%s-%d-%d", req.Name, req.Seed, now.Unix())

	record := model.TournamentRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:           runID,
		Name:         req.Name,
		CreatedAtUTC: now.Format(time.RFC3339),
		PlayerNames:  req.Players,
		Turns:        req.Turns,
		Repetitions:  req.Repetitions,
		Noise:        req.Noise,
		Workers:      req.Workers,
		Seed:         req.Seed,
		WithMorality: req.WithMorality,
	}
	if err := c.store.SaveTournament(ctx, record); err != nil {
		return RunSummary{}, err
	}

	summary := model.ResultSummaryRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		RunID:   runID,
		Results: stats.PlayerResults(rs),
	}
	if rs.Morality != nil {
		summary.Morality = &model.MoralityMetrics{
			CooperationRatings: rs.Morality.CooperationRatings,
			GoodPartnerRatings: rs.Morality.GoodPartnerRatings,
		}
	}
	if err := c.store.SaveResultSummary(ctx, summary); err != nil {
		return RunSummary{}, err
	}

	report := stats.BuildRunReport(record, rs, now.Format(time.RFC3339))
	runDir, err := stats.WriteRunArtifacts(c.artifactsDir, report)
	if err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:        runID,
		ArtifactsDir: runDir,
		RankedNames:  rs.RankedNames,
		Results:      summary.Results,
	}, nil
}

// ListRuns returns persisted tournaments, newest first.
func (c *Client) ListRuns(ctx context.Context, limit int) ([]model.TournamentRecord, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	return c.store.ListTournaments(ctx, limit)
}

// Ranking returns the persisted result summary for a run.
func (c *Client) Ranking(ctx context.Context, runID string) (model.ResultSummaryRecord, error) {
	if err := c.Init(ctx); err != nil {
		return model.ResultSummaryRecord{}, err
	}
	summary, ok, err := c.store.GetResultSummary(ctx, runID)
	if err != nil {
		return model.ResultSummaryRecord{}, err
	}
	if !ok {
		return model.ResultSummaryRecord{}, fmt.Errorf("result summary not found: %s", runID)
	}
	return summary, nil
}

// Strategies lists the registered strategy names.
func (c *Client) Strategies() []string {
	return strategy.Names()
}

// ExportReport reads a run's report back from the artifacts directory.
func (c *Client) ExportReport(runID string) (stats.RunReport, error) {
	report, ok, err := stats.ReadRunReport(c.artifactsDir, runID)
	if err != nil {
		return stats.RunReport{}, err
	}
	if !ok {
		return stats.RunReport{}, errors.New("run report not found: " + runID)
	}
	return report, nil
}
