// Package events carries pipeline progress over NATS.
//
// Worker activities publish progress as they run; the daemon
// subscribes and folds the events into its project store so the API
// can serve status and messages without talking to the workflow
// engine.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/apexforge/apexforge/internal/artifacts"
)

// Event types, used as the last token of the NATS subject.
const (
	TypePhase     = "phase"
	TypeMessage   = "message"
	TypeArtifact  = "artifact"
	TypeCompleted = "completed"
	TypeFailed    = "failed"
)

// Event is the wire format for one pipeline progress event.
type Event struct {
	ProjectID string              `json:"project_id"`
	Type      string              `json:"type"`
	Phase     string              `json:"phase,omitempty"`
	Agent     string              `json:"agent,omitempty"`
	Sender    string              `json:"sender,omitempty"`
	Content   string              `json:"content,omitempty"`
	Artifact  *artifacts.Artifact `json:"artifact,omitempty"`
	Error     string              `json:"error,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// Subject returns the NATS subject for a project event type.
func Subject(projectID, eventType string) string {
	return fmt.Sprintf("apexforge.project.%s.events.%s", projectID, eventType)
}

// WildcardSubject matches every event of every project.
const WildcardSubject = "apexforge.project.*.events.*"

// Connect establishes a NATS connection with retry defaults suitable
// for both the daemon and the worker.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(1*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}

// Publisher publishes pipeline events for worker activities.
type Publisher struct {
	nc  *nats.Conn
	now func() time.Time
}

// NewPublisher creates a Publisher on an established connection.
func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc, now: time.Now}
}

func (p *Publisher) publish(e Event) error {
	e.Timestamp = p.now()
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	if err := p.nc.Publish(Subject(e.ProjectID, e.Type), data); err != nil {
		return fmt.Errorf("publishing %s event: %w", e.Type, err)
	}
	return nil
}

// PhaseStarted records that an agent began a pipeline phase.
func (p *Publisher) PhaseStarted(projectID, phase, agent string) error {
	return p.publish(Event{ProjectID: projectID, Type: TypePhase, Phase: phase, Agent: agent})
}

// Message records a progress message from an agent.
func (p *Publisher) Message(projectID, sender, content string) error {
	return p.publish(Event{ProjectID: projectID, Type: TypeMessage, Sender: sender, Content: content})
}

// ArtifactCreated records a produced artifact.
func (p *Publisher) ArtifactCreated(projectID string, artifact artifacts.Artifact) error {
	return p.publish(Event{ProjectID: projectID, Type: TypeArtifact, Artifact: &artifact})
}

// Completed records successful pipeline completion.
func (p *Publisher) Completed(projectID string) error {
	return p.publish(Event{ProjectID: projectID, Type: TypeCompleted})
}

// Failed records pipeline failure.
func (p *Publisher) Failed(projectID, errMsg string) error {
	return p.publish(Event{ProjectID: projectID, Type: TypeFailed, Error: errMsg})
}
