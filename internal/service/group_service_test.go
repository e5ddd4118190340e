package service

import (
	"context"
	"testing"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)

	g, err := groups.CreateGroup(leaderID, "go 学习小组", "每周一次", capOf(10))
	require.NoError(t, err)
	assert.NotZero(t, g.ID)
	assert.Equal(t, leaderID, g.LeaderID)
	require.NotNil(t, g.Capacity)
	assert.Equal(t, 10, *g.Capacity)

	// 不限人数
	g2, err := groups.CreateGroup(leaderID, "open group", "", nil)
	require.NoError(t, err)
	assert.Nil(t, g2.Capacity)
}

func TestCreateGroupInvalidCapacity(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)

	_, err := groups.CreateGroup(leaderID, "bad", "", capOf(0))
	assert.ErrorIs(t, err, pkg.ErrInvalidCapacity)

	_, err = groups.CreateGroup(leaderID, "bad", "", capOf(-3))
	assert.ErrorIs(t, err, pkg.ErrInvalidCapacity)

	_, err = groups.CreateGroup(leaderID, "", "no name", nil)
	assert.Error(t, err)
}

func TestGetGroupNotFound(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)

	_, err := groups.GetGroup(context.Background(), 12345)
	assert.ErrorIs(t, err, pkg.ErrGroupNotFound)
}

func TestDeleteGroupPermission(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)
	g := mustCreateGroup(t, db, leaderID, nil)
	ctx := context.Background()

	assert.ErrorIs(t, groups.DeleteGroup(ctx, 99, g.ID), pkg.ErrNotLeader)
	assert.ErrorIs(t, groups.DeleteGroup(ctx, leaderID, 999), pkg.ErrGroupNotFound)
}

// 解散小组要把本组的申请和评论一并清掉，别的组不受影响
func TestDeleteGroupCascade(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)
	apps := NewApplicationService(db)
	comments := NewCommentService(db)
	ctx := context.Background()

	g1 := mustCreateGroup(t, db, leaderID, nil)
	g2 := mustCreateGroup(t, db, leaderID, nil)

	app1, err := apps.Apply(ctx, 2, g1.ID)
	require.NoError(t, err)
	require.NoError(t, apps.Approve(ctx, leaderID, app1.ID))
	_, err = comments.CreateComment(ctx, 2, g1.ID, "g1 comment")
	require.NoError(t, err)

	app2, err := apps.Apply(ctx, 2, g2.ID)
	require.NoError(t, err)
	_, err = comments.CreateComment(ctx, leaderID, g2.ID, "g2 comment")
	require.NoError(t, err)

	require.NoError(t, groups.DeleteGroup(ctx, leaderID, g1.ID))

	_, err = groups.GetGroup(ctx, g1.ID)
	assert.ErrorIs(t, err, pkg.ErrGroupNotFound)

	var appCount, cmCount int64
	require.NoError(t, db.Model(&model.Application{}).Where("group_id = ?", g1.ID).Count(&appCount).Error)
	require.NoError(t, db.Model(&model.Comment{}).Where("group_id = ?", g1.ID).Count(&cmCount).Error)
	assert.Zero(t, appCount)
	assert.Zero(t, cmCount)

	// g2 原封不动
	_, err = groups.GetGroup(ctx, g2.ID)
	require.NoError(t, err)
	got, err := NewApplicationService(db).repo.FindByID(ctx, app2.ID)
	require.NoError(t, err)
	assert.Equal(t, g2.ID, got.GroupID)
}

func TestListGroups(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)

	for i := 0; i < 5; i++ {
		mustCreateGroup(t, db, leaderID, nil)
	}

	page1, err := groups.ListGroups(1, 3)
	require.NoError(t, err)
	assert.Len(t, page1, 3)

	page2, err := groups.ListGroups(2, 3)
	require.NoError(t, err)
	assert.Len(t, page2, 2)
}
