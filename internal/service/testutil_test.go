package service

import (
	"testing"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/repository/mysql"
	"Civic_Tracker/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB 用内存 sqlite 顶替全局 mysql.DB，单连接避免多个 :memory: 实例
func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Complaint{},
		&model.Vote{},
		&model.Comment{},
		&model.AdminLog{},
		&model.ComplaintOutbox{},
	))
	mysql.DB = db
	t.Cleanup(func() { _ = sqlDB.Close() })
}

func setupTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.Client = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redis.Client.Close() })
}

func mustCreateUser(t *testing.T, name, email string, role int, location string) *model.User {
	t.Helper()
	u := &model.User{
		Name:     name,
		Email:    email,
		Password: "x",
		Role:     role,
		Location: location,
	}
	require.NoError(t, mysql.DB.Create(u).Error)
	return u
}

func mustCreateComplaint(t *testing.T, ownerID uint64, title string) *model.Complaint {
	t.Helper()
	c := &model.Complaint{
		UserID:      ownerID,
		Title:       title,
		Description: "desc",
		Status:      model.StatusReceived,
		Assignee:    model.AssigneeNone,
	}
	require.NoError(t, mysql.DB.Create(c).Error)
	return c
}
