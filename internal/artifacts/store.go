package artifacts

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound indicates an unknown project or artifact.
var ErrNotFound = errors.New("not found")

// Status is the lifecycle state of a project.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Message is a single progress or chat entry in a project's history.
type Message struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Project tracks the full state of one pipeline run.
type Project struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Requirements string     `json:"requirements"`
	Status       Status     `json:"status"`
	CurrentPhase string     `json:"current_phase"`
	CurrentAgent string     `json:"current_agent"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Messages     []Message  `json:"messages"`
	Artifacts    []Artifact `json:"artifacts"`
}

// MessageCount and ArtifactCount support the status endpoint without
// shipping full content.
func (p *Project) MessageCount() int  { return len(p.Messages) }
func (p *Project) ArtifactCount() int { return len(p.Artifacts) }

// Store is an in-memory registry of active projects.
// All methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	projects map[string]*Project
	now      func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		projects: make(map[string]*Project),
		now:      time.Now,
	}
}

// Create registers a new project in pending state.
func (s *Store) Create(id, name, requirements string) *Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &Project{
		ID:           id,
		Name:         name,
		Requirements: requirements,
		Status:       StatusPending,
		StartedAt:    s.now(),
	}
	s.projects[id] = p
	return snapshot(p)
}

// Get returns a snapshot of a project.
func (s *Store) Get(id string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot(p), nil
}

// AddMessage appends a message to the project history.
func (s *Store) AddMessage(id, sender, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return ErrNotFound
	}
	p.Messages = append(p.Messages, Message{
		Sender:    sender,
		Content:   content,
		Timestamp: s.now(),
	})
	return nil
}

// MessagesAfter returns messages with index >= after, plus the new
// high-water mark for incremental polling.
func (s *Store) MessagesAfter(id string, after int) ([]Message, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, 0, ErrNotFound
	}
	if after < 0 {
		after = 0
	}
	if after > len(p.Messages) {
		after = len(p.Messages)
	}
	msgs := make([]Message, len(p.Messages)-after)
	copy(msgs, p.Messages[after:])
	return msgs, after + len(msgs), nil
}

// AddArtifact registers an artifact. The first artifact with a given
// name wins; later duplicates are ignored, matching how the pipeline
// reports the same artifact across progress updates.
func (s *Store) AddArtifact(id string, a Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return ErrNotFound
	}
	for _, existing := range p.Artifacts {
		if existing.Name == a.Name {
			return nil
		}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	p.Artifacts = append(p.Artifacts, a)
	return nil
}

// Artifact returns a single artifact by name.
func (s *Store) Artifact(id, name string) (Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return Artifact{}, ErrNotFound
	}
	for _, a := range p.Artifacts {
		if a.Name == name {
			return a, nil
		}
	}
	return Artifact{}, ErrNotFound
}

// SetPhase records the current pipeline phase and acting agent.
func (s *Store) SetPhase(id, phase, agent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return ErrNotFound
	}
	p.CurrentPhase = phase
	p.CurrentAgent = agent
	return nil
}

// SetStatus updates project status. Completed and error states record
// the completion timestamp.
func (s *Store) SetStatus(id string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	if status == StatusCompleted || status == StatusError {
		t := s.now()
		p.CompletedAt = &t
	}
	return nil
}

// snapshot deep-copies a project so callers never share slices with
// the store.
func snapshot(p *Project) *Project {
	cp := *p
	cp.Messages = make([]Message, len(p.Messages))
	copy(cp.Messages, p.Messages)
	cp.Artifacts = make([]Artifact, len(p.Artifacts))
	copy(cp.Artifacts, p.Artifacts)
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}
