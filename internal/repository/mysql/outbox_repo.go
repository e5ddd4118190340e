package mysql

import (
	"context"

	"Group_Hub/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// GroupCountReconcilerRepo 小组通过人数对账
type GroupCountReconcilerRepo struct {
	DB *gorm.DB
}

// GroupCount 对账用的快照结构体
type GroupCount struct {
	ID            uint64
	ApprovedCount int64
}

// List 查询待投递的事件
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.ApplicationOutbox, error) {
	var list []model.ApplicationOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败记录重试
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ApplicationOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate 投递成功更新状态
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ApplicationOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}

// ReconcileList 按 id 游标批量取小组的冗余计数
func (r *GroupCountReconcilerRepo) ReconcileList(ctx context.Context, batchSize int, lastID uint64) ([]GroupCount, uint64, error) {
	var list []GroupCount
	if err := r.DB.WithContext(ctx).Model(&model.Group{}).
		Select("id", "approved_count").
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, lastID, err
	}
	if len(list) == 0 {
		return nil, lastID, nil
	}
	return list, list[len(list)-1].ID, nil
}

// RealApproved 从申请表统计真实通过人数
func (r *GroupCountReconcilerRepo) RealApproved(ctx context.Context, groupID uint64) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&model.Application{}).
		Where("group_id = ? AND status = ?", groupID, model.ApplicationApproved).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ReconcileApproved 修正漂移的冗余计数
func (r *GroupCountReconcilerRepo) ReconcileApproved(ctx context.Context, groupID uint64, real int64) error {
	return r.DB.WithContext(ctx).Model(&model.Group{}).Where("id = ?", groupID).
		UpdateColumn("approved_count", real).Error
}
