package service

import (
	"context"
	"errors"
	"testing"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRelayer_DrainOnce(t *testing.T) {
	setupTestDB(t)

	rows := []model.ComplaintOutbox{
		{EventType: "created", ComplaintID: 1, ActorID: 1, Payload: `{"status":"received"}`},
		{EventType: "status_changed", ComplaintID: 2, ActorID: 1, Payload: `{"from":"received","to":"resolved"}`},
	}
	for i := range rows {
		require.NoError(t, mysql.DB.Create(&rows[i]).Error)
	}

	// 第二条投递失败，标记重试；第一条成功
	sent := 0
	relayer := NewOutboxRelayer(func(ctx context.Context, ob *model.ComplaintOutbox) error {
		if ob.ComplaintID == 2 {
			return errors.New("broker down")
		}
		sent++
		return nil
	})
	relayer.drainOnce(context.Background())

	assert.Equal(t, 1, sent)

	var got []model.ComplaintOutbox
	require.NoError(t, mysql.DB.Order("id").Find(&got).Error)
	require.Len(t, got, 2)
	assert.Equal(t, int8(1), got[0].Status)
	assert.Equal(t, int8(0), got[1].Status)
	assert.Equal(t, 1, got[1].Retry)

	// 失败条目留在队列里，下一轮还会被取到
	pending, err := (&mysql.OutboxRepository{}).List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint64(2), pending[0].ComplaintID)
}

func TestOutboxRelayer_FailedAfterMaxRetry(t *testing.T) {
	setupTestDB(t)

	ob := model.ComplaintOutbox{EventType: "deleted", ComplaintID: 3, ActorID: 1, Payload: `{}`}
	require.NoError(t, mysql.DB.Create(&ob).Error)

	relayer := NewOutboxRelayer(func(ctx context.Context, ob *model.ComplaintOutbox) error {
		return errors.New("broker down")
	})
	relayer.maxRetry = 2
	for i := 0; i < 2; i++ {
		relayer.drainOnce(context.Background())
	}

	var got model.ComplaintOutbox
	require.NoError(t, mysql.DB.First(&got, ob.ID).Error)
	assert.Equal(t, int8(2), got.Status) // 超过上限置为 failed
	assert.Equal(t, 2, got.Retry)
}
