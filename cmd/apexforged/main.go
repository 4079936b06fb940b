// Apexforged is the apexforge daemon.
//
// It serves the project API and web UI, starts pipeline workflows on
// Temporal, and folds progress events from NATS into the in-memory
// project store.
//
// Configuration is loaded from a YAML file with environment variable
// overrides (SERVER_PORT, LLM_API_KEY, ...). See internal/config for
// the schema.
//
// Usage:
//
//	# Start with defaults
//	apexforged
//
//	# Start with a config file
//	apexforged -config /etc/apexforge/config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/apexforge/apexforge/internal/artifacts"
	"github.com/apexforge/apexforge/internal/config"
	"github.com/apexforge/apexforge/internal/events"
	apexhttp "github.com/apexforge/apexforge/internal/http"
	"github.com/apexforge/apexforge/internal/logging"
	"github.com/apexforge/apexforge/internal/telemetry"
	"github.com/apexforge/apexforge/internal/workflows"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("apexforged %s (%s)\n", version, gitCommit)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Daemon error: %v", err)
	}

	log.Println("Shutdown complete")
}

// run starts the daemon and blocks until the context is cancelled.
//
// Initialization order:
//  1. Load and validate configuration
//  2. Initialize logger and telemetry
//  3. Connect to NATS and subscribe the event consumer
//  4. Connect the Temporal client for starting pipelines
//  5. Start the HTTP server (blocks)
func run(ctx context.Context, configPath string) error {
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

	logger.Info(ctx, "starting apexforged",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("temporal", cfg.Temporal.HostPort),
		zap.String("nats", cfg.NATS.URL))

	tel, err := telemetry.New(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Warn(ctx, "telemetry shutdown", zap.Error(err))
		}
	}()

	store := artifacts.NewStore()

	nc, err := events.Connect(cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("connecting to NATS at %s: %w", cfg.NATS.URL, err)
	}
	defer nc.Close()
	logger.Info(ctx, "connected to NATS", zap.String("url", cfg.NATS.URL))

	consumer := events.NewConsumer(store, logger)
	if cfg.Output.Dir != "" {
		consumer.OnCompleted(artifactWriter(store, cfg.Output, logger))
		logger.Info(ctx, "artifact persistence enabled",
			zap.String("dir", cfg.Output.Dir),
			zap.Bool("save_all", cfg.Output.SaveArtifacts))
	}
	sub, err := consumer.Subscribe(nc)
	if err != nil {
		return fmt.Errorf("subscribing to project events: %w", err)
	}
	defer func() {
		_ = sub.Unsubscribe()
	}()

	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		return fmt.Errorf("connecting to Temporal at %s: %w", cfg.Temporal.HostPort, err)
	}
	defer temporalClient.Close()
	logger.Info(ctx, "connected to Temporal", zap.String("host_port", cfg.Temporal.HostPort))

	starter := &temporalStarter{
		client:    temporalClient,
		taskQueue: cfg.Temporal.TaskQueue,
	}

	srv, err := apexhttp.NewServer(store, starter, logger, &apexhttp.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration(),
	})
	if err != nil {
		return fmt.Errorf("creating http server: %w", err)
	}

	logger.Info(ctx, "server configured",
		zap.String("health_endpoint", fmt.Sprintf("http://%s:%d/health", cfg.Server.Host, cfg.Server.Port)),
		zap.String("metrics_endpoint", "/metrics"))

	return srv.Start(ctx)
}

// temporalStarter starts pipeline workflows on Temporal.
type temporalStarter struct {
	client    client.Client
	taskQueue string
}

func (s *temporalStarter) StartPipeline(ctx context.Context, projectID, projectName, requirements string) error {
	opts := client.StartWorkflowOptions{
		ID:        "pipeline-" + projectID,
		TaskQueue: s.taskQueue,
	}
	_, err := s.client.ExecuteWorkflow(ctx, opts, workflows.PipelineWorkflow, workflows.PipelineInput{
		ProjectID:    projectID,
		ProjectName:  projectName,
		Requirements: requirements,
	})
	if err != nil {
		return fmt.Errorf("starting pipeline workflow: %w", err)
	}
	return nil
}

// artifactWriter returns a completion hook that writes a project's
// artifacts to disk. It runs on the event consumer, after every
// artifact published before the completion has been folded in.
func artifactWriter(store *artifacts.Store, out config.OutputConfig, logger *logging.Logger) func(ctx context.Context, projectID string) {
	return func(ctx context.Context, projectID string) {
		p, err := store.Get(projectID)
		if err != nil {
			logger.Warn(ctx, "completed project not in store")
			return
		}
		dir := filepath.Join(out.Dir, projectID)
		if err := artifacts.Write(dir, p.Artifacts, out.SaveArtifacts); err != nil {
			logger.Error(ctx, "writing artifacts", zap.Error(err))
			return
		}
		logger.Info(ctx, "artifacts written",
			zap.String("dir", dir), zap.Int("count", len(p.Artifacts)))
	}
}
