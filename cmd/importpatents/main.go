// Command importpatents loads a patent spreadsheet into the configured store
// using the same pipeline as the upload endpoint.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"patentq/internal/config"
	"patentq/internal/database"
	"patentq/internal/importer"
	"patentq/internal/logger"
	"patentq/internal/store"
)

func main() {
	file := flag.String("file", "", "spreadsheet (.xlsx) to import")
	configPath := flag.String("config", "", "path to config file")
	dryRun := flag.Bool("dry-run", false, "parse and report without writing to the store")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(*file)
	if err != nil {
		lg.Fatalw("open spreadsheet", "file", *file, "error", err)
	}
	defer f.Close()

	rows, err := importer.ReadRows(f)
	if err != nil {
		lg.Fatalw("read spreadsheet", "file", *file, "error", err)
	}
	lg.Infow("read spreadsheet", "file", *file, "rows", len(rows))

	var result *importer.Result
	if *dryRun {
		grouped, warnings := importer.Group(rows)
		if warnings == nil {
			warnings = []importer.Warning{}
		}
		result = &importer.Result{Processed: len(grouped), Warnings: warnings}
	} else {
		patents, closeFn, err := openPatentStore(ctx, cfg)
		if err != nil {
			lg.Fatalw("open store", "error", err)
		}
		defer closeFn()

		result, err = importer.New(patents, lg.Named("import")).Import(ctx, rows)
		if err != nil {
			lg.Errorw("import aborted", "error", err)
			printSummary(result)
			os.Exit(1)
		}
	}
	printSummary(result)
}

func openPatentStore(ctx context.Context, cfg *config.Config) (store.PatentStore, func(), error) {
	if cfg.Mongo.Driver == config.DriverMemory {
		return store.NewMemoryPatentStore(), func() {}, nil
	}
	lg := logger.Nop()
	client, err := database.ConnectMongoDB(ctx, cfg.Mongo.URI, lg)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return store.NewMongoPatentStore(db), func() { _ = client.Disconnect(context.Background()) }, nil
}

func printSummary(res *importer.Result) {
	if res == nil {
		return
	}
	fmt.Printf("%d patents processed successfully\n", res.Processed)
	if len(res.Warnings) == 0 {
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(res.Warnings)
}
