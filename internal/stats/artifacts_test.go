package stats

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"agon/internal/model"
	"agon/internal/results"
	"agon/internal/tournament"
)

func testResultSet(t *testing.T) *results.ResultSet {
	t.Helper()
	payoff := [][]float64{
		{15, 5},
		{25, 5},
	}
	cooperation := [][]float64{
		{5, 5},
		{0, 0},
	}
	outcome := tournament.Outcome{
		PlayerNames:  []string{"cooperator", "defector"},
		Turns:        5,
		Repetitions:  1,
		Payoffs:      [][][]float64{payoff},
		Cooperations: [][][]float64{cooperation},
	}
	rs, err := results.New(outcome, true)
	if err != nil {
		t.Fatalf("new result set: %v", err)
	}
	return rs
}

func TestWriteAndReadRunArtifacts(t *testing.T) {
	baseDir := t.TempDir()
	record := model.TournamentRecord{
		ID:          "run-1",
		Name:        "agon",
		PlayerNames: []string{"cooperator", "defector"},
		Turns:       5,
		Repetitions: 1,
	}
	report := BuildRunReport(record, testResultSet(t), "2026-01-02T03:04:05Z")

	runDir, err := WriteRunArtifacts(baseDir, report)
	if err != nil {
		t.Fatalf("write run artifacts: %v", err)
	}
	if runDir != filepath.Join(baseDir, "run-1") {
		t.Fatalf("unexpected run dir: %s", runDir)
	}

	loaded, ok, err := ReadRunReport(baseDir, "run-1")
	if err != nil {
		t.Fatalf("read run report: %v", err)
	}
	if !ok {
		t.Fatal("expected run report to exist")
	}
	if len(loaded.Results) != 2 || loaded.Results[0].Name != "defector" {
		t.Fatalf("unexpected report results: %+v", loaded.Results)
	}
	if loaded.Morality == nil {
		t.Fatal("expected morality metrics in report")
	}

	file, err := os.Open(filepath.Join(runDir, "ranking.csv"))
	if err != nil {
		t.Fatalf("open ranking csv: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read ranking csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("unexpected csv row count: got=%d want=3", len(rows))
	}
	if rows[1][1] != "defector" || rows[2][1] != "cooperator" {
		t.Fatalf("unexpected csv ranking order: %v", rows)
	}
}

func TestReadRunReportMissing(t *testing.T) {
	_, ok, err := ReadRunReport(t.TempDir(), "missing")
	if err != nil {
		t.Fatalf("read missing report: %v", err)
	}
	if ok {
		t.Fatal("expected missing report to be absent")
	}
}

func TestWriteRunArtifactsRequiresRunID(t *testing.T) {
	if _, err := WriteRunArtifacts(t.TempDir(), RunReport{}); err == nil {
		t.Fatal("expected missing run id to fail")
	}
}
