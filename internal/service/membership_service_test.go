package service

import (
	"context"
	"testing"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLeader(t *testing.T) {
	db := newTestDB(t)
	members := NewMembershipService(db)
	g := mustCreateGroup(t, db, leaderID, nil)

	// 组长身份不依赖任何申请记录
	var n int64
	db.Model(&model.Application{}).Count(&n)
	require.Zero(t, n)

	m, err := members.Classify(context.Background(), leaderID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Leader, m)
}

func TestClassifyApplicationStates(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db)
	members := NewMembershipService(db)
	g := mustCreateGroup(t, db, leaderID, nil)
	ctx := context.Background()

	// 没申请过
	m, err := members.Classify(ctx, 2, g.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NonMember, m)

	// pending
	app, err := apps.Apply(ctx, 2, g.ID)
	require.NoError(t, err)
	m, err = members.Classify(ctx, 2, g.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NonMember, m)

	// approved 的写入对后续判定立即可见
	require.NoError(t, apps.Approve(ctx, leaderID, app.ID))
	m, err = members.Classify(ctx, 2, g.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovedMember, m)

	// rejected
	app3, err := apps.Apply(ctx, 3, g.ID)
	require.NoError(t, err)
	require.NoError(t, apps.Reject(ctx, leaderID, app3.ID))
	m, err = members.Classify(ctx, 3, g.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NonMember, m)
}

func TestClassifyGroupNotFound(t *testing.T) {
	db := newTestDB(t)
	members := NewMembershipService(db)

	_, err := members.Classify(context.Background(), 2, 999)
	assert.ErrorIs(t, err, pkg.ErrGroupNotFound)
}

func TestHasApplied(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db)
	members := NewMembershipService(db)
	g := mustCreateGroup(t, db, leaderID, nil)
	ctx := context.Background()

	ok, err := members.HasApplied(ctx, 2, g.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	app, err := apps.Apply(ctx, 2, g.ID)
	require.NoError(t, err)

	ok, err = members.HasApplied(ctx, 2, g.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// 被拒后记录还在，仍算"已申请"
	require.NoError(t, apps.Reject(ctx, leaderID, app.ID))
	ok, err = members.HasApplied(ctx, 2, g.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// 撤销后记录删除
	require.NoError(t, apps.Cancel(ctx, 2, app.ID))
	ok, err = members.HasApplied(ctx, 2, g.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetStatus(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db)
	members := NewMembershipService(db)
	g := mustCreateGroup(t, db, leaderID, nil)
	ctx := context.Background()

	st, err := members.GetStatus(ctx, leaderID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusLeader, st)

	st, err = members.GetStatus(ctx, 2, g.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNone, st)

	app, err := apps.Apply(ctx, 2, g.ID)
	require.NoError(t, err)
	st, err = members.GetStatus(ctx, 2, g.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, st)

	require.NoError(t, apps.Approve(ctx, leaderID, app.ID))
	st, err = members.GetStatus(ctx, 2, g.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, st)

	app3, err := apps.Apply(ctx, 3, g.ID)
	require.NoError(t, err)
	require.NoError(t, apps.Reject(ctx, leaderID, app3.ID))
	st, err = members.GetStatus(ctx, 3, g.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, st)
}
