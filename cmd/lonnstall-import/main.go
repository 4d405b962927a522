// Command lonnstall-import writes the survey into the SQLite snapshot read
// by the sqlite backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"

	"lonnstall/internal/cli"
	"lonnstall/internal/config"
	"lonnstall/internal/log"
	"lonnstall/internal/source"
	"lonnstall/internal/source/memory"
	"lonnstall/internal/source/remote"
	"lonnstall/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	// the snapshot may not exist yet
	cfg := cli.MustConfig(func(c *config.Config) { c.DataBackend = "remote" })

	url := flag.String("url", cfg.UpstreamURL, "Survey file URL")
	file := flag.String("file", "", "Read the survey from a local JSON file instead of -url")
	dbPath := flag.String("db", cfg.SQLiteDBPath, "SQLite database path")
	quiet := flag.Bool("q", false, "Hide the progress bar")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\nImports the salary survey into a SQLite snapshot.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := cli.SetupLogger(cfg, os.Stderr).WithComponent(log.ComponentImport)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	var reader source.DatasetReader
	if *file != "" {
		store, err := memory.NewFromFile(*file)
		if err != nil {
			logger.Error("Failed to read dataset file", log.FieldError, err.Error())
			os.Exit(1)
		}
		reader = store
	} else {
		reader = remote.New(*url, cfg.FetchTimeout)
	}

	if err := run(ctx, reader, *dbPath, !*quiet, logger); err != nil {
		logger.Error("Import failed", log.FieldError, err.Error(), log.FieldOperation, log.OpImport)
		os.Exit(1)
	}
}

func run(ctx context.Context, reader source.DatasetReader, dbPath string, showProgress bool, logger *log.Logger) error {
	res, err := reader.ReadDataset(ctx)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	records := res.Dataset.Records()
	if len(records) == 0 {
		return source.ErrEmptyDataset
	}

	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	var progress func()
	if showProgress {
		bar := pb.Full.New(len(records)).SetWriter(os.Stderr).Start()
		defer bar.Finish()
		progress = func() { bar.Increment() }
	}
	if err := repo.ReplaceSnapshot(ctx, res.Source, records, res.Skipped, progress); err != nil {
		return err
	}

	logger.Info("Snapshot imported",
		log.FieldSource, res.Source,
		log.FieldRecords, humanize.Comma(int64(len(records))),
		log.FieldSkipped, res.Skipped,
		"db_path", dbPath)
	return nil
}
