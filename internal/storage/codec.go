package storage

import (
	"encoding/json"
	"errors"

	"agon/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeTournament(record model.TournamentRecord) ([]byte, error) {
	return json.Marshal(record)
}

func DecodeTournament(data []byte) (model.TournamentRecord, error) {
	var record model.TournamentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.TournamentRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.TournamentRecord{}, err
	}
	return record, nil
}

func EncodeResultSummary(summary model.ResultSummaryRecord) ([]byte, error) {
	return json.Marshal(summary)
}

func DecodeResultSummary(data []byte) (model.ResultSummaryRecord, error) {
	var summary model.ResultSummaryRecord
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.ResultSummaryRecord{}, err
	}
	if err := checkVersion(summary.VersionedRecord); err != nil {
		return model.ResultSummaryRecord{}, err
	}
	return summary, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
