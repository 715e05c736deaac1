package service

import (
	"context"
	"testing"
	"time"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildView_JoinsVotesCommentsOwner(t *testing.T) {
	setupTestDB(t)
	setupTestRedis(t)
	viewSvc := NewComplaintViewService()
	voteSvc := NewVoteService()
	commentSvc := NewCommentService()

	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "Elm District")
	u2 := mustCreateUser(t, "bob", "bob@example.com", model.RoleUser, "")
	u3 := mustCreateUser(t, "carol", "carol@example.com", model.RoleUser, "")
	c := mustCreateComplaint(t, owner.ID, "Pothole")

	_, err := voteSvc.Cast(context.Background(), u2.ID, c.ID, model.VoteUp)
	require.NoError(t, err)
	_, err = voteSvc.Cast(context.Background(), u3.ID, c.ID, model.VoteDown)
	require.NoError(t, err)
	_, err = commentSvc.Add(context.Background(), u2.ID, c.ID, "me too")
	require.NoError(t, err)
	_, err = commentSvc.Add(context.Background(), u3.ID, c.ID, "fixed yet?")
	require.NoError(t, err)

	view, err := viewSvc.Get(context.Background(), c.ID)
	require.NoError(t, err)

	assert.Equal(t, []uint64{u2.ID}, view.Upvotes)
	assert.Equal(t, []uint64{u3.ID}, view.Downvotes)

	require.Len(t, view.Comments, 2)
	assert.Equal(t, "me too", view.Comments[0].Text)
	assert.Equal(t, "bob", view.Comments[0].Author)
	assert.Equal(t, "fixed yet?", view.Comments[1].Text)
	assert.Equal(t, "carol", view.Comments[1].Author)

	require.NotNil(t, view.Owner)
	assert.Equal(t, owner.ID, view.Owner.ID)
	assert.Equal(t, "alice", view.Owner.Name)
}

func TestBuildView_VoterMovesBetweenSets(t *testing.T) {
	setupTestDB(t)
	setupTestRedis(t)
	viewSvc := NewComplaintViewService()
	voteSvc := NewVoteService()

	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")
	u := mustCreateUser(t, "bob", "bob@example.com", model.RoleUser, "")
	c := mustCreateComplaint(t, owner.ID, "Pothole")

	_, err := voteSvc.Cast(context.Background(), u.ID, c.ID, model.VoteUp)
	require.NoError(t, err)
	_, err = voteSvc.Cast(context.Background(), u.ID, c.ID, model.VoteDown)
	require.NoError(t, err)

	view, err := viewSvc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.NotContains(t, view.Upvotes, u.ID)
	assert.Contains(t, view.Downvotes, u.ID)
}

func TestBuildView_ToleratesOrphanedOwner(t *testing.T) {
	setupTestDB(t)
	viewSvc := NewComplaintViewService()

	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")
	c := mustCreateComplaint(t, owner.ID, "Pothole")

	// owner 被硬删除后引用悬空，视图不报错，owner 为空
	require.NoError(t, mysql.DB.Delete(&model.User{}, owner.ID).Error)

	view, err := viewSvc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Owner)
	assert.Equal(t, "Pothole", view.Title)
}

func TestBuildView_ListNewestFirst(t *testing.T) {
	setupTestDB(t)
	viewSvc := NewComplaintViewService()
	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"old", "mid", "new"} {
		c := &model.Complaint{
			UserID:      owner.ID,
			Title:       title,
			Description: "desc",
			Status:      model.StatusReceived,
			Assignee:    model.AssigneeNone,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, mysql.DB.Create(c).Error)
	}

	views, err := viewSvc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "new", views[0].Title)
	assert.Equal(t, "mid", views[1].Title)
	assert.Equal(t, "old", views[2].Title)
}

func TestBuildView_NormalizesLegacyStatus(t *testing.T) {
	setupTestDB(t)
	viewSvc := NewComplaintViewService()
	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")
	c := mustCreateComplaint(t, owner.ID, "Pothole")
	require.NoError(t, mysql.DB.Model(&model.Complaint{}).Where("id = ?", c.ID).Update("status", model.StatusLegacyPending).Error)

	view, err := viewSvc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReceived, view.Status)
}

func TestBuildView_NotFound(t *testing.T) {
	setupTestDB(t)
	viewSvc := NewComplaintViewService()
	_, err := viewSvc.Get(context.Background(), 41)
	assert.ErrorIs(t, err, ErrNotFound)
}
