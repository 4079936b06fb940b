package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/apexforge/apexforge/internal/artifacts"
	"github.com/apexforge/apexforge/internal/logging"
)

// Consumer folds pipeline events into the project store.
type Consumer struct {
	store       *artifacts.Store
	logger      *logging.Logger
	onCompleted func(ctx context.Context, projectID string)
}

// NewConsumer creates a Consumer writing into store.
func NewConsumer(store *artifacts.Store, logger *logging.Logger) *Consumer {
	return &Consumer{store: store, logger: logger}
}

// OnCompleted registers a hook invoked after a completed event has been
// folded into the store. Because the consumer handles one event at a
// time, the hook observes every artifact published before completion.
// Must be called before Subscribe.
func (c *Consumer) OnCompleted(fn func(ctx context.Context, projectID string)) {
	c.onCompleted = fn
}

// Subscribe starts consuming all project events. The caller owns the
// returned subscription and should unsubscribe on shutdown.
func (c *Consumer) Subscribe(nc *nats.Conn) (*nats.Subscription, error) {
	return nc.Subscribe(WildcardSubject, c.handle)
}

func (c *Consumer) handle(msg *nats.Msg) {
	ctx := context.Background()

	var e Event
	if err := json.Unmarshal(msg.Data, &e); err != nil {
		c.logger.Warn(ctx, "dropping malformed event",
			zap.String("subject", msg.Subject), zap.Error(err))
		return
	}
	ctx = logging.WithProjectID(ctx, e.ProjectID)

	if err := c.Apply(ctx, e); err != nil {
		// Events for unknown projects can arrive after a daemon
		// restart; there is nothing to fold them into.
		if errors.Is(err, artifacts.ErrNotFound) {
			c.logger.Warn(ctx, "event for unknown project", zap.String("type", e.Type))
			return
		}
		c.logger.Error(ctx, "applying event", zap.String("type", e.Type), zap.Error(err))
	}
}

// Apply folds a single event into the store.
func (c *Consumer) Apply(ctx context.Context, e Event) error {
	switch e.Type {
	case TypePhase:
		if err := c.store.SetStatus(e.ProjectID, artifacts.StatusRunning); err != nil {
			return err
		}
		if err := c.store.SetPhase(e.ProjectID, e.Phase, e.Agent); err != nil {
			return err
		}
		c.logger.Info(ctx, "phase started",
			zap.String("phase", e.Phase), zap.String("agent", e.Agent))
		return nil

	case TypeMessage:
		return c.store.AddMessage(e.ProjectID, e.Sender, e.Content)

	case TypeArtifact:
		if e.Artifact == nil {
			return nil
		}
		c.logger.Info(ctx, "artifact created", zap.String("name", e.Artifact.Name))
		return c.store.AddArtifact(e.ProjectID, *e.Artifact)

	case TypeCompleted:
		c.logger.Info(ctx, "project completed")
		if err := c.store.SetStatus(e.ProjectID, artifacts.StatusCompleted); err != nil {
			return err
		}
		if c.onCompleted != nil {
			c.onCompleted(ctx, e.ProjectID)
		}
		return nil

	case TypeFailed:
		c.logger.Error(ctx, "project failed", zap.String("error", e.Error))
		if e.Error != "" {
			if err := c.store.AddMessage(e.ProjectID, "System", "Pipeline failed: "+e.Error); err != nil {
				return err
			}
		}
		return c.store.SetStatus(e.ProjectID, artifacts.StatusError)

	default:
		c.logger.Warn(ctx, "unknown event type", zap.String("type", e.Type))
		return nil
	}
}
