package service

import (
	"context"
	"testing"

	"Civic_Tracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment_RejectsEmptyText(t *testing.T) {
	setupTestDB(t)
	svc := NewCommentService()
	u := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")
	c := mustCreateComplaint(t, u.ID, "Pothole")

	_, err := svc.Add(context.Background(), u.ID, c.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(context.Background(), u.ID, c.ID, "   \t ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddComment_NotFoundComplaint(t *testing.T) {
	setupTestDB(t)
	svc := NewCommentService()
	u := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")

	_, err := svc.Add(context.Background(), u.ID, 999, "nice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddComment_AppendsInOrder(t *testing.T) {
	setupTestDB(t)
	svc := NewCommentService()
	u := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")
	c := mustCreateComplaint(t, u.ID, "Pothole")

	first, err := svc.Add(context.Background(), u.ID, c.ID, "nice")
	require.NoError(t, err)
	assert.Equal(t, "nice", first.Content)

	_, err = svc.Add(context.Background(), u.ID, c.ID, "  trimmed  ")
	require.NoError(t, err)

	list, err := svc.ListByComplaint(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "nice", list[0].Content)
	assert.Equal(t, "trimmed", list[1].Content)
}
