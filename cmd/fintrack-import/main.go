// Command fintrack-import bulk-loads a transaction CSV straight into the
// configured database, bypassing the HTTP API. Useful for first-time
// migration from exported spreadsheets.
package main

import (
	"context"
	"flag"
	"os"

	"fintrack/internal/cli"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	var (
		file  = flag.String("file", "", "path to the CSV file to import")
		owner = flag.String("owner", "", "principal to import the rows under")
	)
	flag.Parse()

	if *file == "" || *owner == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := cli.LoadAndValidateConfig(logger)

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("Failed to read CSV file", "error", err, "file", *file)
		os.Exit(1)
	}

	st, cleanup := cli.OpenStore(logger, cfg)
	defer func() { _ = cleanup() }()

	balances := services.NewBalanceService(st)
	ledger := services.NewLedgerService(st, nil, balances)
	importer := services.NewImportService(ledger, st)

	result, err := importer.Import(context.Background(), store.Principal(*owner), string(data))
	if err != nil {
		logger.Error("Import failed", "error", err, "file", *file)
		os.Exit(1)
	}

	for _, rowErr := range result.Errors {
		logger.Warn("Dropped row", "line", rowErr.Line, "error", rowErr.Err)
	}
	logger.Info("Import finished",
		"file", *file,
		"owner", *owner,
		"imported", result.Imported,
		"failed", result.Failed)
	if result.Imported == 0 && result.Failed > 0 {
		os.Exit(1)
	}
}
