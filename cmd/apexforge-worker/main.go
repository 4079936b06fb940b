// Apexforge-worker runs the pipeline activities.
//
// It registers the pipeline workflow and its activities on the Temporal
// task queue and publishes progress events to NATS as phases run. Scale
// out by running more worker processes against the same queue.
//
// Usage:
//
//	# Start with defaults
//	apexforge-worker
//
//	# Start with a config file
//	apexforge-worker -config /etc/apexforge/config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"github.com/apexforge/apexforge/internal/config"
	"github.com/apexforge/apexforge/internal/events"
	"github.com/apexforge/apexforge/internal/llm"
	"github.com/apexforge/apexforge/internal/logging"
	"github.com/apexforge/apexforge/internal/telemetry"
	"github.com/apexforge/apexforge/internal/workflows"
)

var (
	version   = "dev"
	gitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("apexforge-worker %s (%s)\n", version, gitCommit)
		os.Exit(0)
	}

	if err := run(*configPath); err != nil {
		log.Fatalf("Worker error: %v", err)
	}
}

func run(configPath string) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLogger(logging.NewDefaultConfig())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info(ctx, "starting apexforge-worker",
		zap.String("version", version),
		zap.String("task_queue", cfg.Temporal.TaskQueue),
		zap.String("model", cfg.LLM.Model))

	tel, err := telemetry.New(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Warn(ctx, "telemetry shutdown", zap.Error(err))
		}
	}()

	llmService, err := llm.NewService(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey.Value(),
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("creating llm service: %w", err)
	}

	nc, err := events.Connect(cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("connecting to NATS at %s: %w", cfg.NATS.URL, err)
	}
	defer nc.Close()
	logger.Info(ctx, "connected to NATS", zap.String("url", cfg.NATS.URL))

	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		return fmt.Errorf("connecting to Temporal at %s: %w", cfg.Temporal.HostPort, err)
	}
	defer temporalClient.Close()
	logger.Info(ctx, "connected to Temporal", zap.String("host_port", cfg.Temporal.HostPort))

	w := worker.New(temporalClient, cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.PipelineWorkflow)
	w.RegisterActivity(workflows.NewActivities(llmService, events.NewPublisher(nc), logger))

	logger.Info(ctx, "worker registered, polling for tasks")
	return w.Run(worker.InterruptCh())
}
