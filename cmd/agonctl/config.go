package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	agonapi "agon/pkg/agon"
)

// runConfig is the JSON shape accepted by `agonctl run -config`.
type runConfig struct {
	Name         string   `json:"name"`
	Players      []string `json:"players"`
	Turns        int      `json:"turns"`
	Repetitions  int      `json:"repetitions"`
	Noise        float64  `json:"noise"`
	Workers      int      `json:"workers"`
	Seed         int64    `json:"seed"`
	WithMorality *bool    `json:"with_morality"`
}

func loadRunRequestFromConfig(path string) (agonapi.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return agonapi.RunRequest{}, fmt.Errorf("read run config: %w", err)
	}
	var cfg runConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return agonapi.RunRequest{}, fmt.Errorf("decode run config %s: %w", path, err)
	}
	if cfg.Noise < 0 || cfg.Noise > 1 {
		return agonapi.RunRequest{}, fmt.Errorf("run config %s: noise must be in [0,1]", path)
	}

	req := agonapi.RunRequest{
		Name:        cfg.Name,
		Players:     cfg.Players,
		Turns:       cfg.Turns,
		Repetitions: cfg.Repetitions,
		Noise:       cfg.Noise,
		Workers:     cfg.Workers,
		Seed:        cfg.Seed,
		// Morality metrics default on, matching the run flag.
		WithMorality: true,
	}
	if cfg.WithMorality != nil {
		req.WithMorality = *cfg.WithMorality
	}
	return req, nil
}

// mergeRunRequests layers flag values over a config file: flags the user
// actually set on the command line win, everything else comes from the file.
func mergeRunRequests(fromFile, fromFlags agonapi.RunRequest, fs *flag.FlagSet) agonapi.RunRequest {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	merged := fromFile
	if set["name"] || merged.Name == "" {
		merged.Name = fromFlags.Name
	}
	if set["players"] {
		merged.Players = fromFlags.Players
	}
	if set["turns"] || merged.Turns == 0 {
		merged.Turns = fromFlags.Turns
	}
	if set["repetitions"] || merged.Repetitions == 0 {
		merged.Repetitions = fromFlags.Repetitions
	}
	if set["noise"] {
		merged.Noise = fromFlags.Noise
	}
	if set["workers"] {
		merged.Workers = fromFlags.Workers
	}
	if set["seed"] {
		merged.Seed = fromFlags.Seed
	}
	if set["morality"] {
		merged.WithMorality = fromFlags.WithMorality
	}
	return merged
}
