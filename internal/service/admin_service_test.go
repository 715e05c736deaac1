package service

import (
	"testing"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminDeleteUser_LogsAction(t *testing.T) {
	setupTestDB(t)
	svc := NewAdminService()
	admin := mustCreateUser(t, "root", "root@example.com", model.RoleAdmin, "")
	victim := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")

	require.NoError(t, svc.DeleteUser(admin.ID, victim.ID))

	users, err := svc.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, admin.ID, users[0].ID)

	logs, err := svc.Logs(0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, admin.ID, logs[0].UserID)
	assert.Contains(t, logs[0].Action, "alice@example.com")

	err = svc.DeleteUser(admin.ID, victim.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminStats_LegacyStatusCounted(t *testing.T) {
	setupTestDB(t)
	svc := NewAdminService()
	u := mustCreateUser(t, "alice", "alice@example.com", model.RoleUser, "")

	for _, st := range []string{
		model.StatusReceived,
		model.StatusLegacyPending,
		model.StatusResolved,
		model.StatusRejected,
	} {
		c := mustCreateComplaint(t, u.ID, "c-"+st)
		require.NoError(t, mysql.DB.Model(&model.Complaint{}).Where("id = ?", c.ID).Update("status", st).Error)
	}

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(4), stats.TotalComplaints)
	assert.Equal(t, int64(1), stats.ResolvedComplaints)
	assert.Equal(t, int64(2), stats.ReceivedComplaints) // pending 并入 received
}
