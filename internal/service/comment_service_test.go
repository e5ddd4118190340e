package service

import (
	"context"
	"testing"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentEmptyBody(t *testing.T) {
	db := newTestDB(t)
	comments := NewCommentService(db)
	g := mustCreateGroup(t, db, leaderID, nil)
	ctx := context.Background()

	_, err := comments.CreateComment(ctx, leaderID, g.ID, "")
	assert.ErrorIs(t, err, pkg.ErrEmptyBody)

	_, err = comments.CreateComment(ctx, leaderID, g.ID, "   \t\n")
	assert.ErrorIs(t, err, pkg.ErrEmptyBody)
}

// 发言权限矩阵：没申请/待审/被拒都不行，组长和已通过成员可以
func TestCreateCommentGating(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db)
	comments := NewCommentService(db)
	g := mustCreateGroup(t, db, leaderID, nil)
	ctx := context.Background()

	// 没有申请记录
	_, err := comments.CreateComment(ctx, 2, g.ID, "hello")
	assert.ErrorIs(t, err, pkg.ErrNotMember)

	// pending
	app2, err := apps.Apply(ctx, 2, g.ID)
	require.NoError(t, err)
	_, err = comments.CreateComment(ctx, 2, g.ID, "hello")
	assert.ErrorIs(t, err, pkg.ErrNotMember)

	// rejected
	app3, err := apps.Apply(ctx, 3, g.ID)
	require.NoError(t, err)
	require.NoError(t, apps.Reject(ctx, leaderID, app3.ID))
	_, err = comments.CreateComment(ctx, 3, g.ID, "hello")
	assert.ErrorIs(t, err, pkg.ErrNotMember)

	// 组长
	cm, err := comments.CreateComment(ctx, leaderID, g.ID, "welcome")
	require.NoError(t, err)
	assert.NotZero(t, cm.ID)
	assert.False(t, cm.CreatedAt.IsZero())

	// approved 成员
	require.NoError(t, apps.Approve(ctx, leaderID, app2.ID))
	_, err = comments.CreateComment(ctx, 2, g.ID, "thanks")
	require.NoError(t, err)
}

func TestUpdateComment(t *testing.T) {
	db := newTestDB(t)
	comments := NewCommentService(db)
	g := mustCreateGroup(t, db, leaderID, nil)
	ctx := context.Background()

	cm, err := comments.CreateComment(ctx, leaderID, g.ID, "v1")
	require.NoError(t, err)

	assert.ErrorIs(t, comments.UpdateComment(ctx, leaderID, cm.ID, " "), pkg.ErrEmptyBody)
	assert.ErrorIs(t, comments.UpdateComment(ctx, 99, cm.ID, "v2"), pkg.ErrNotAuthor)
	assert.ErrorIs(t, comments.UpdateComment(ctx, leaderID, 999, "v2"), pkg.ErrCommentNotFound)

	require.NoError(t, comments.UpdateComment(ctx, leaderID, cm.ID, "v2"))
	var got model.Comment
	require.NoError(t, db.First(&got, cm.ID).Error)
	assert.Equal(t, "v2", got.Body)
}

// 作者退组后仍可编辑/删除自己的评论：权限只看评论的作者字段
func TestCommentRightsSurviveMembershipLoss(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db)
	comments := NewCommentService(db)
	g := mustCreateGroup(t, db, leaderID, nil)
	ctx := context.Background()

	app, err := apps.Apply(ctx, 2, g.ID)
	require.NoError(t, err)
	require.NoError(t, apps.Approve(ctx, leaderID, app.ID))

	cm, err := comments.CreateComment(ctx, 2, g.ID, "bye")
	require.NoError(t, err)

	require.NoError(t, apps.Cancel(ctx, 2, app.ID))

	require.NoError(t, comments.UpdateComment(ctx, 2, cm.ID, "edited"))
	require.NoError(t, comments.DeleteComment(ctx, 2, cm.ID))
}

func TestDeleteComment(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db)
	comments := NewCommentService(db)
	g := mustCreateGroup(t, db, leaderID, nil)
	ctx := context.Background()

	app, err := apps.Apply(ctx, 2, g.ID)
	require.NoError(t, err)
	require.NoError(t, apps.Approve(ctx, leaderID, app.ID))

	cm, err := comments.CreateComment(ctx, 2, g.ID, "spam")
	require.NoError(t, err)

	// 无关成员不能删别人的评论
	app3, err := apps.Apply(ctx, 3, g.ID)
	require.NoError(t, err)
	require.NoError(t, apps.Approve(ctx, leaderID, app3.ID))
	assert.ErrorIs(t, comments.DeleteComment(ctx, 3, cm.ID), pkg.ErrNotAuthor)

	// 组长可以删任何人的评论
	require.NoError(t, comments.DeleteComment(ctx, leaderID, cm.ID))

	// 软删后查不到
	assert.ErrorIs(t, comments.DeleteComment(ctx, leaderID, cm.ID), pkg.ErrCommentNotFound)
}

func TestListComments(t *testing.T) {
	db := newTestDB(t)
	comments := NewCommentService(db)
	g := mustCreateGroup(t, db, leaderID, nil)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := comments.CreateComment(ctx, leaderID, g.ID, "msg")
		require.NoError(t, err)
	}

	page1, next, err := comments.ListComments(ctx, g.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, page1, 10)
	require.NotZero(t, next)

	page2, next2, err := comments.ListComments(ctx, g.ID, next, 10)
	require.NoError(t, err)
	assert.Len(t, page2, 10)
	// id 递减且两页不重叠
	assert.Less(t, page2[0].ID, page1[len(page1)-1].ID)

	page3, next3, err := comments.ListComments(ctx, g.ID, next2, 10)
	require.NoError(t, err)
	assert.Len(t, page3, 5)
	assert.Zero(t, next3)

	_, _, err = comments.ListComments(ctx, 999, 0, 10)
	assert.ErrorIs(t, err, pkg.ErrGroupNotFound)
}
