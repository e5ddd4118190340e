package mysql

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Group{},
		&model.Application{},
		&model.ApplicationOutbox{},
		&model.Comment{},
	))
	return db
}

func seedGroup(t *testing.T, db *gorm.DB, capacity *int) *model.Group {
	t.Helper()
	g := &model.Group{Name: fmt.Sprintf("g-%s", t.Name()), LeaderID: 1, Capacity: capacity}
	require.NoError(t, db.Create(g).Error)
	return g
}

// 唯一键冲突要翻译成业务错误，而不是裸的驱动错误
func TestCreateDuplicateTranslated(t *testing.T) {
	db := newTestDB(t)
	repo := &ApplicationRepository{DB: db}
	g := seedGroup(t, db, nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Application{GroupID: g.ID, UserID: 2}))
	err := repo.Create(ctx, &model.Application{GroupID: g.ID, UserID: 2})
	assert.ErrorIs(t, err, pkg.ErrDuplicateApplication)

	// 同一用户申请其他小组不冲突
	g2 := &model.Group{Name: "another", LeaderID: 1}
	require.NoError(t, db.Create(g2).Error)
	require.NoError(t, repo.Create(ctx, &model.Application{GroupID: g2.ID, UserID: 2}))
}

func TestCountApproved(t *testing.T) {
	db := newTestDB(t)
	repo := &ApplicationRepository{DB: db}
	g := seedGroup(t, db, nil)
	ctx := context.Background()

	for i := uint64(2); i <= 5; i++ {
		app := &model.Application{GroupID: g.ID, UserID: i}
		require.NoError(t, repo.Create(ctx, app))
		if i <= 3 {
			require.NoError(t, repo.Approve(ctx, app.ID, nil))
		}
	}

	n, err := repo.CountApproved(ctx, g.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestApproveAtCapacity(t *testing.T) {
	db := newTestDB(t)
	repo := &ApplicationRepository{DB: db}
	cap1 := 1
	g := seedGroup(t, db, &cap1)
	ctx := context.Background()

	a1 := &model.Application{GroupID: g.ID, UserID: 2}
	a2 := &model.Application{GroupID: g.ID, UserID: 3}
	require.NoError(t, repo.Create(ctx, a1))
	require.NoError(t, repo.Create(ctx, a2))

	require.NoError(t, repo.Approve(ctx, a1.ID, g.Capacity))
	assert.ErrorIs(t, repo.Approve(ctx, a2.ID, g.Capacity), pkg.ErrCapacityExceeded)

	// 满员拒绝不会改状态，后续释放名额后仍可通过
	got, err := repo.FindByID(ctx, a2.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationPending, got.Status)
}

func TestApproveNonPending(t *testing.T) {
	db := newTestDB(t)
	repo := &ApplicationRepository{DB: db}
	g := seedGroup(t, db, nil)
	ctx := context.Background()

	app := &model.Application{GroupID: g.ID, UserID: 2}
	require.NoError(t, repo.Create(ctx, app))
	require.NoError(t, repo.Reject(ctx, app.ID))

	assert.ErrorIs(t, repo.Approve(ctx, app.ID, nil), pkg.ErrInvalidState)
	assert.ErrorIs(t, repo.Reject(ctx, app.ID), pkg.ErrInvalidState)
	assert.ErrorIs(t, repo.Approve(ctx, 999, nil), pkg.ErrApplicationNotFound)
}

// 撤销已通过的申请要回退冗余计数，pending 的撤销不动计数
func TestDeleteAdjustsApprovedCount(t *testing.T) {
	db := newTestDB(t)
	repo := &ApplicationRepository{DB: db}
	g := seedGroup(t, db, nil)
	ctx := context.Background()

	app := &model.Application{GroupID: g.ID, UserID: 2}
	require.NoError(t, repo.Create(ctx, app))
	require.NoError(t, repo.Approve(ctx, app.ID, nil))

	var gotGroup model.Group
	require.NoError(t, db.First(&gotGroup, g.ID).Error)
	assert.EqualValues(t, 1, gotGroup.ApprovedCount)

	approved, err := repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, approved))

	require.NoError(t, db.First(&gotGroup, g.ID).Error)
	assert.EqualValues(t, 0, gotGroup.ApprovedCount)

	_, err = repo.FindByID(ctx, app.ID)
	assert.ErrorIs(t, err, pkg.ErrApplicationNotFound)
}

func TestListByGroupStatusFilter(t *testing.T) {
	db := newTestDB(t)
	repo := &ApplicationRepository{DB: db}
	g := seedGroup(t, db, nil)
	ctx := context.Background()

	ids := make([]uint64, 0, 3)
	for i := uint64(2); i <= 4; i++ {
		app := &model.Application{GroupID: g.ID, UserID: i}
		require.NoError(t, repo.Create(ctx, app))
		ids = append(ids, app.ID)
	}
	require.NoError(t, repo.Approve(ctx, ids[0], nil))
	require.NoError(t, repo.Reject(ctx, ids[1]))

	all, err := repo.ListByGroup(ctx, g.ID, -1, 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending, err := repo.ListByGroup(ctx, g.ID, model.ApplicationPending, 0, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ids[2], pending[0].ID)
}

func TestOutboxEventsWritten(t *testing.T) {
	db := newTestDB(t)
	repo := &ApplicationRepository{DB: db}
	g := seedGroup(t, db, nil)
	ctx := context.Background()

	app := &model.Application{GroupID: g.ID, UserID: 2}
	require.NoError(t, repo.Create(ctx, app))
	require.NoError(t, repo.Approve(ctx, app.ID, nil))

	var events []model.ApplicationOutbox
	require.NoError(t, db.Order("id ASC").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, "applied", events[0].EventType)
	assert.Equal(t, "approved", events[1].EventType)
	assert.Contains(t, events[1].Payload, "group_id")
}
