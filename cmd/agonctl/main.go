package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"agon/internal/storage"
	agonapi "agon/pkg/agon"
)

const defaultArtifactsDir = "artifacts"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "strategies":
		return runStrategies(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "ranking":
		return runRanking(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	name := fs.String("name", "agon", "tournament name")
	players := fs.String("players", "", "comma-separated strategy names (default: all registered)")
	turns := fs.Int("turns", 200, "turns per match")
	repetitions := fs.Int("repetitions", 10, "round-robin repetitions")
	noise := fs.Float64("noise", 0, "probability of flipping an intended action")
	workers := fs.Int("workers", 0, "parallel workers (0 = serial)")
	seed := fs.Int64("seed", 0, "random seed")
	morality := fs.Bool("morality", true, "compute morality metrics")
	configPath := fs.String("config", "", "JSON run config path (flags override)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "agon.db", "sqlite database path")
	artifactsDir := fs.String("artifacts", defaultArtifactsDir, "artifacts directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := agonapi.RunRequest{
		Name:         *name,
		Turns:        *turns,
		Repetitions:  *repetitions,
		Noise:        *noise,
		Workers:      *workers,
		Seed:         *seed,
		WithMorality: *morality,
	}
	if *players != "" {
		req.Players = splitPlayers(*players)
	}
	if *configPath != "" {
		fromFile, err := loadRunRequestFromConfig(*configPath)
		if err != nil {
			return err
		}
		req = mergeRunRequests(fromFile, req, fs)
	}

	client, err := agonapi.New(agonapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: *artifactsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.RunTournament(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run %s complete, artifacts in %s\n", summary.RunID, summary.ArtifactsDir)
	for _, result := range summary.Results {
		fmt.Printf("%2d. %-16s median=%.4f wins=%d cooperation=%.4f\n",
			result.Rank, result.Name, result.MedianScore, result.Wins, result.CooperationRate)
	}
	return nil
}

func runStrategies(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("strategies", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := agonapi.New(agonapi.Options{StoreKind: "memory"})
	if err != nil {
		return err
	}
	for _, name := range client.Strategies() {
		fmt.Println(name)
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum runs to list")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "agon.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := agonapi.New(agonapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.ListRuns(ctx, *limit)
	if err != nil {
		return err
	}
	for _, record := range runs {
		fmt.Printf("%s  created=%s players=%d turns=%d repetitions=%d noise=%.2f\n",
			record.ID, record.CreatedAtUTC, len(record.PlayerNames), record.Turns, record.Repetitions, record.Noise)
	}
	return nil
}

func runRanking(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ranking", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "agon.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("ranking requires --run-id")
	}

	client, err := agonapi.New(agonapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Ranking(ctx, *runID)
	if err != nil {
		return err
	}
	for _, result := range summary.Results {
		fmt.Printf("%2d. %-16s median=%.4f wins=%d cooperation=%.4f\n",
			result.Rank, result.Name, result.MedianScore, result.Wins, result.CooperationRate)
	}
	return nil
}

func runExport(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	artifactsDir := fs.String("artifacts", defaultArtifactsDir, "artifacts directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("export requires --run-id")
	}

	client, err := agonapi.New(agonapi.Options{StoreKind: "memory", ArtifactsDir: *artifactsDir})
	if err != nil {
		return err
	}
	report, err := client.ExportReport(*runID)
	if err != nil {
		return err
	}
	fmt.Printf("run %s generated at %s\n", report.RunID, report.GeneratedAtUTC)
	for _, result := range report.Results {
		fmt.Printf("%2d. %-16s median=%.4f\n", result.Rank, result.Name, result.MedianScore)
	}
	return nil
}

func splitPlayers(value string) []string {
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: agonctl <run|strategies|runs|ranking|export> [flags]", msg)
}
