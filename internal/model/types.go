package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// TournamentRecord is the persisted configuration of one tournament run.
type TournamentRecord struct {
	VersionedRecord
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CreatedAtUTC string   `json:"created_at_utc"`
	PlayerNames  []string `json:"player_names"`
	Turns        int      `json:"turns"`
	Repetitions  int      `json:"repetitions"`
	Noise        float64  `json:"noise"`
	Workers      int      `json:"workers"`
	Seed         int64    `json:"seed"`
	WithMorality bool     `json:"with_morality"`
}

// PlayerResult is one player's row in a result summary, in ranking order.
type PlayerResult struct {
	Name            string  `json:"name"`
	Rank            int     `json:"rank"`
	MedianScore     float64 `json:"median_score"`
	Wins            int     `json:"wins"`
	CooperationRate float64 `json:"cooperation_rate"`
}

// MoralityMetrics are the optional cooperation-derived ratings, indexed by
// player position in the tournament roster.
type MoralityMetrics struct {
	CooperationRatings []float64 `json:"cooperation_ratings"`
	GoodPartnerRatings []float64 `json:"good_partner_ratings"`
}

// ResultSummaryRecord is the persisted ranking for one tournament run.
type ResultSummaryRecord struct {
	VersionedRecord
	RunID    string           `json:"run_id"`
	Results  []PlayerResult   `json:"results"`
	Morality *MoralityMetrics `json:"morality,omitempty"`
}
