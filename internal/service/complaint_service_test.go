package service

import (
	"context"
	"testing"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComplaint_RequiresTitleAndDescription(t *testing.T) {
	setupTestDB(t)
	svc := NewComplaintService()
	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")

	_, err := svc.CreateComplaint(context.Background(), owner.ID, CreateComplaintInput{
		Description: "big hole",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateComplaint(context.Background(), owner.ID, CreateComplaintInput{
		Title: "Pothole",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateComplaint(context.Background(), owner.ID, CreateComplaintInput{
		Title:       "   ",
		Description: "big hole",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateComplaint_AssignsVolunteerBySubstring(t *testing.T) {
	setupTestDB(t)
	svc := NewComplaintService()
	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")
	vol := mustCreateUser(t, "bob", "bob@example.com", model.RoleVolunteer, "Elm District")

	c, err := svc.CreateComplaint(context.Background(), owner.ID, CreateComplaintInput{
		Title:       "Pothole",
		Description: "big hole",
		Address:     "Elm Street 12",
	})
	require.NoError(t, err)
	assert.Equal(t, vol.Name, c.Assignee)
	assert.Equal(t, model.StatusReceived, c.Status)
	assert.Equal(t, owner.ID, c.UserID)
}

func TestCreateComplaint_NoMatchUnassigned(t *testing.T) {
	setupTestDB(t)
	svc := NewComplaintService()
	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")
	// 同地段的普通用户不算志愿者
	mustCreateUser(t, "carol", "carol@example.com", model.RoleUser, "Elm District")

	c, err := svc.CreateComplaint(context.Background(), owner.ID, CreateComplaintInput{
		Title:       "Pothole",
		Description: "big hole",
		Address:     "Elm Street 12",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AssigneeNone, c.Assignee)

	// 空地址同样落到 Unassigned
	c2, err := svc.CreateComplaint(context.Background(), owner.ID, CreateComplaintInput{
		Title:       "Garbage",
		Description: "pile",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AssigneeNone, c2.Assignee)
}

func TestResolveAssignee_CaseInsensitive(t *testing.T) {
	setupTestDB(t)
	svc := NewComplaintService()
	mustCreateUser(t, "bob", "bob@example.com", model.RoleVolunteer, "ELM district")

	assert.Equal(t, "bob", svc.ResolveAssignee("elm street"))
	assert.Equal(t, "bob", svc.ResolveAssignee("Elm"))
	assert.Equal(t, model.AssigneeNone, svc.ResolveAssignee("Oak avenue"))
}

func TestUpdateComplaint_Authorization(t *testing.T) {
	setupTestDB(t)
	svc := NewComplaintService()
	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")
	stranger := mustCreateUser(t, "eve", "eve@example.com", model.RoleUser, "")
	admin := mustCreateUser(t, "root", "root@example.com", model.RoleAdmin, "")
	c := mustCreateComplaint(t, owner.ID, "Pothole")

	st := model.StatusInReview

	// 既不是 owner、管理员，也不是被指派人
	_, err := svc.UpdateComplaint(context.Background(), Actor{ID: stranger.ID, Role: stranger.Role, Name: stranger.Name}, c.ID, UpdateComplaintInput{Status: &st})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// owner 可以
	updated, err := svc.UpdateComplaint(context.Background(), Actor{ID: owner.ID, Role: owner.Role, Name: owner.Name}, c.ID, UpdateComplaintInput{Status: &st})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInReview, updated.Status)

	// 管理员可以
	st2 := model.StatusResolved
	updated, err = svc.UpdateComplaint(context.Background(), Actor{ID: admin.ID, Role: admin.Role, Name: admin.Name}, c.ID, UpdateComplaintInput{Status: &st2})
	require.NoError(t, err)
	assert.Equal(t, model.StatusResolved, updated.Status)

	// owner 始终不变
	assert.Equal(t, owner.ID, updated.UserID)
}

func TestUpdateComplaint_AssigneeByName(t *testing.T) {
	setupTestDB(t)
	svc := NewComplaintService()
	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")
	vol := mustCreateUser(t, "bob", "bob@example.com", model.RoleVolunteer, "Elm District")

	c, err := svc.CreateComplaint(context.Background(), owner.ID, CreateComplaintInput{
		Title:       "Pothole",
		Description: "big hole",
		Address:     "Elm Street 12",
	})
	require.NoError(t, err)
	require.Equal(t, vol.Name, c.Assignee)

	st := model.StatusInReview
	updated, err := svc.UpdateComplaint(context.Background(), Actor{ID: vol.ID, Role: vol.Role, Name: vol.Name}, c.ID, UpdateComplaintInput{Status: &st})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInReview, updated.Status)
}

func TestUpdateComplaint_LegacyStatusNormalized(t *testing.T) {
	setupTestDB(t)
	svc := NewComplaintService()
	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")
	c := mustCreateComplaint(t, owner.ID, "Pothole")

	legacy := model.StatusLegacyInProgress
	updated, err := svc.UpdateComplaint(context.Background(), Actor{ID: owner.ID}, c.ID, UpdateComplaintInput{Status: &legacy})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInReview, updated.Status)

	bogus := "closed"
	_, err = svc.UpdateComplaint(context.Background(), Actor{ID: owner.ID}, c.ID, UpdateComplaintInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateComplaint_NotFound(t *testing.T) {
	setupTestDB(t)
	svc := NewComplaintService()
	st := model.StatusResolved
	_, err := svc.UpdateComplaint(context.Background(), Actor{ID: 1}, 999, UpdateComplaintInput{Status: &st})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteComplaint_Authorization(t *testing.T) {
	setupTestDB(t)
	svc := NewComplaintService()
	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")
	vol := mustCreateUser(t, "bob", "bob@example.com", model.RoleVolunteer, "Elm District")

	c, err := svc.CreateComplaint(context.Background(), owner.ID, CreateComplaintInput{
		Title:       "Pothole",
		Description: "big hole",
		Address:     "Elm Street 12",
	})
	require.NoError(t, err)
	require.Equal(t, vol.Name, c.Assignee)

	// 被指派人不能删
	err = svc.DeleteComplaint(context.Background(), Actor{ID: vol.ID, Role: vol.Role, Name: vol.Name}, c.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// owner 可以删，删完列表里不再出现
	err = svc.DeleteComplaint(context.Background(), Actor{ID: owner.ID, Role: owner.Role, Name: owner.Name}, c.ID)
	require.NoError(t, err)

	repo := &mysql.ComplaintRepository{}
	list, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	err = svc.DeleteComplaint(context.Background(), Actor{ID: owner.ID}, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats_LegacyPendingCountedAsReceived(t *testing.T) {
	setupTestDB(t)
	svc := NewComplaintService()
	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")

	for _, st := range []string{
		model.StatusReceived,
		model.StatusLegacyPending,
		model.StatusLegacyInProgress,
		model.StatusInReview,
		model.StatusResolved,
	} {
		c := mustCreateComplaint(t, owner.ID, "c-"+st)
		require.NoError(t, mysql.DB.Model(&model.Complaint{}).Where("id = ?", c.ID).Update("status", st).Error)
	}

	stats, err := svc.Stats(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalIssues)
	assert.Equal(t, int64(2), stats.Received)
	assert.Equal(t, int64(2), stats.InReview)
	assert.Equal(t, int64(1), stats.Resolved)
}

func TestCreateComplaint_AppendsOutboxEvent(t *testing.T) {
	setupTestDB(t)
	svc := NewComplaintService()
	owner := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")

	c, err := svc.CreateComplaint(context.Background(), owner.ID, CreateComplaintInput{
		Title:       "Pothole",
		Description: "big hole",
	})
	require.NoError(t, err)

	var rows []model.ComplaintOutbox
	require.NoError(t, mysql.DB.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "created", rows[0].EventType)
	assert.Equal(t, c.ID, rows[0].ComplaintID)
	assert.Equal(t, owner.ID, rows[0].ActorID)
}
