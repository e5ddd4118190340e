package service

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"Group_Hub/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库，单连接避免 sqlite 锁冲突
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Application{},
		&model.ApplicationOutbox{},
		&model.Comment{},
		&model.CommentLike{},
	))
	return db
}

var groupSeq atomic.Uint64

func mustCreateGroup(t *testing.T, db *gorm.DB, leaderID uint64, capacity *int) *model.Group {
	t.Helper()
	svc := NewGroupService(db)
	g, err := svc.CreateGroup(leaderID, fmt.Sprintf("group-%d", groupSeq.Add(1)), "test group", capacity)
	require.NoError(t, err)
	return g
}

func capOf(n int) *int {
	return &n
}
