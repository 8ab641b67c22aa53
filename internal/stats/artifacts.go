package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"agon/internal/model"
	"agon/internal/results"
)

// RunReport is the on-disk summary of one tournament run.
type RunReport struct {
	RunID            string                 `json:"run_id"`
	GeneratedAtUTC   string                 `json:"generated_at_utc"`
	Tournament       model.TournamentRecord `json:"tournament"`
	Results          []model.PlayerResult   `json:"results"`
	Morality         *model.MoralityMetrics `json:"morality,omitempty"`
	NormalizedScores [][]float64            `json:"normalized_scores"`
}

// BuildRunReport assembles the report from a computed result set.
func BuildRunReport(record model.TournamentRecord, rs *results.ResultSet, generatedAt string) RunReport {
	report := RunReport{
		RunID:            record.ID,
		GeneratedAtUTC:   generatedAt,
		Tournament:       record,
		Results:          PlayerResults(rs),
		NormalizedScores: rs.NormalizedScores,
	}
	if rs.Morality != nil {
		report.Morality = &model.MoralityMetrics{
			CooperationRatings: rs.Morality.CooperationRatings,
			GoodPartnerRatings: rs.Morality.GoodPartnerRatings,
		}
	}
	return report
}

// PlayerResults flattens a result set into ranked rows.
func PlayerResults(rs *results.ResultSet) []model.PlayerResult {
	rows := make([]model.PlayerResult, 0, len(rs.Ranking))
	for rank, idx := range rs.Ranking {
		rows = append(rows, model.PlayerResult{
			Name:            rs.Names[idx],
			Rank:            rank + 1,
			MedianScore:     rs.MedianScores[idx],
			Wins:            rs.Wins[idx],
			CooperationRate: rs.CooperationRates[idx],
		})
	}
	return rows
}

// WriteRunArtifacts writes report.json and ranking.csv under
// baseDir/<runID> and returns the run directory.
func WriteRunArtifacts(baseDir string, report RunReport) (string, error) {
	if report.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, report.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "report.json"), report); err != nil {
		return "", err
	}
	if err := writeRankingCSV(filepath.Join(runDir, "ranking.csv"), report.Results); err != nil {
		return "", err
	}
	return runDir, nil
}

// ReadRunReport loads a previously written report, reporting absence
// without error.
func ReadRunReport(baseDir, runID string) (RunReport, bool, error) {
	path := filepath.Join(baseDir, runID, "report.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunReport{}, false, nil
		}
		return RunReport{}, false, err
	}
	var report RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return RunReport{}, false, fmt.Errorf("decode run report %s: %w", runID, err)
	}
	return report, true, nil
}

func writeRankingCSV(path string, rows []model.PlayerResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"rank", "name", "median_score", "wins", "cooperation_rate"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			strconv.Itoa(row.Rank),
			row.Name,
			strconv.FormatFloat(row.MedianScore, 'f', -1, 64),
			strconv.Itoa(row.Wins),
			strconv.FormatFloat(row.CooperationRate, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
