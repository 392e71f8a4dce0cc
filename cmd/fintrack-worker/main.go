package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"fintrack/internal/amqp"
	"fintrack/internal/cli"
	"fintrack/internal/mirror"
	"fintrack/internal/services"
	"fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting fintrack-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	st, cleanup := cli.OpenStore(logger, cfg)
	defer func() { _ = cleanup() }()

	// The Sheets mirror is optional; events are journaled only when enabled.
	var m mirror.Mirror
	if cfg.MirrorEnabled {
		sheetsMirror, err := mirror.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Sheets mirror", "error", err)
			os.Exit(1)
		}
		m = sheetsMirror
		logger.Info("Sheets mirror enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Sheets mirror disabled")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	balanceWorker := worker.NewBalanceWorker(st, services.NewBalanceService(st), m)

	go func() {
		handler := func(msg *amqp.LedgerEventMessage) error {
			return balanceWorker.HandleLedgerEvent(ctx, msg)
		}
		if err := amqpClient.ConsumeLedgerEvents(ctx, handler); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("Event consumption failed", "error", err)
			}
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	case <-ctx.Done():
	}

	logger.Info("Worker stopped gracefully")
}
