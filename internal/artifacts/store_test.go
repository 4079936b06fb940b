package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndGet(t *testing.T) {
	s := NewStore()
	created := s.Create("p1", "Tracker", "track some projects")

	assert.Equal(t, "p1", created.ID)
	assert.Equal(t, StatusPending, created.Status)
	assert.False(t, created.StartedAt.IsZero())

	got, err := s.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, "Tracker", got.Name)
	assert.Equal(t, "track some projects", got.Requirements)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreMessages(t *testing.T) {
	s := NewStore()
	s.Create("p1", "Tracker", "reqs")

	require.NoError(t, s.AddMessage("p1", "System", "Project initialized"))
	require.NoError(t, s.AddMessage("p1", "Business Analyst", "Analyzing requirements"))

	msgs, next, err := s.MessagesAfter("p1", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, 2, next)
	assert.Equal(t, "System", msgs[0].Sender)

	// Incremental fetch only returns the tail.
	require.NoError(t, s.AddMessage("p1", "Business Analyst", "Done"))
	msgs, next, err = s.MessagesAfter("p1", next)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, 3, next)
	assert.Equal(t, "Done", msgs[0].Content)

	// Out-of-range cursor is clamped.
	msgs, next, err = s.MessagesAfter("p1", 100)
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.Equal(t, 3, next)

	assert.ErrorIs(t, s.AddMessage("missing", "x", "y"), ErrNotFound)
}

func TestStoreArtifacts(t *testing.T) {
	s := NewStore()
	s.Create("p1", "Tracker", "reqs")

	a := Artifact{Name: "business_requirements_doc", Type: TypeDocument, Content: "# BRD", CreatedBy: "Business Analyst"}
	require.NoError(t, s.AddArtifact("p1", a))

	// Duplicate names are ignored; first write wins.
	dup := a
	dup.Content = "overwritten"
	require.NoError(t, s.AddArtifact("p1", dup))

	got, err := s.Artifact("p1", "business_requirements_doc")
	require.NoError(t, err)
	assert.Equal(t, "# BRD", got.Content)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = s.Artifact("p1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := s.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.ArtifactCount())
}

func TestStoreStatusTransitions(t *testing.T) {
	s := NewStore()
	s.Create("p1", "Tracker", "reqs")

	require.NoError(t, s.SetStatus("p1", StatusRunning))
	p, err := s.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, p.Status)
	assert.Nil(t, p.CompletedAt)

	require.NoError(t, s.SetPhase("p1", "database_design", "Database Designer"))
	p, _ = s.Get("p1")
	assert.Equal(t, "database_design", p.CurrentPhase)
	assert.Equal(t, "Database Designer", p.CurrentAgent)

	require.NoError(t, s.SetStatus("p1", StatusCompleted))
	p, _ = s.Get("p1")
	assert.Equal(t, StatusCompleted, p.Status)
	require.NotNil(t, p.CompletedAt)
}

func TestStoreSnapshotIsolation(t *testing.T) {
	s := NewStore()
	s.Create("p1", "Tracker", "reqs")
	require.NoError(t, s.AddMessage("p1", "System", "first"))

	p, err := s.Get("p1")
	require.NoError(t, err)
	p.Messages[0].Content = "mutated"

	fresh, err := s.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, "first", fresh.Messages[0].Content)
}
