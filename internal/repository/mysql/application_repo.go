package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

// Create 创建 pending 申请并写入 outbox 事件。
// (group_id, user_id) 唯一键兜底并发重复申请，冲突翻译为业务错误。
func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "applied", app.UserID, app.GroupID)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkg.ErrDuplicateApplication
	}
	return err
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uint64) (*model.Application, error) {
	var app model.Application
	err := r.DB.WithContext(ctx).First(&app, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrApplicationNotFound
	}
	return &app, err
}

func (r *ApplicationRepository) FindByUserGroup(ctx context.Context, userID, groupID uint64) (*model.Application, error) {
	var app model.Application
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrApplicationNotFound
	}
	return &app, err
}

// Exists 判断是否已有申请记录，与状态无关
func (r *ApplicationRepository) Exists(ctx context.Context, userID, groupID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Application{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Count(&n).Error
	return n > 0, err
}

// CountApproved 实时统计某小组已通过的人数
func (r *ApplicationRepository) CountApproved(ctx context.Context, groupID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Application{}).
		Where("group_id = ? AND status = ?", groupID, model.ApplicationApproved).
		Count(&n).Error
	return n, err
}

// Approve 在一个事务里完成"查人数+改状态"。
// 调用方必须已持有该小组的互斥锁，否则容量校验会出现超卖。
func (r *ApplicationRepository) Approve(ctx context.Context, id uint64, capacity *int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app model.Application
		if err := tx.First(&app, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkg.ErrApplicationNotFound
			}
			return err
		}
		if app.Status != model.ApplicationPending {
			return pkg.ErrInvalidState
		}

		if capacity != nil {
			var approved int64
			if err := tx.Model(&model.Application{}).
				Where("group_id = ? AND status = ?", app.GroupID, model.ApplicationApproved).
				Count(&approved).Error; err != nil {
				return err
			}
			if approved >= int64(*capacity) {
				return pkg.ErrCapacityExceeded
			}
		}

		// 带状态条件更新，防止事务外的状态漂移
		res := tx.Model(&model.Application{}).
			Where("id = ? AND status = ?", id, model.ApplicationPending).
			Update("status", model.ApplicationApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkg.ErrInvalidState
		}

		if err := adjustApprovedCount(tx, app.GroupID, +1); err != nil {
			return err
		}
		return insertOutbox(tx, "approved", app.UserID, app.GroupID)
	})
}

// Reject 只做 pending -> rejected，与容量无关
func (r *ApplicationRepository) Reject(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app model.Application
		if err := tx.First(&app, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkg.ErrApplicationNotFound
			}
			return err
		}
		if app.Status != model.ApplicationPending {
			return pkg.ErrInvalidState
		}

		res := tx.Model(&model.Application{}).
			Where("id = ? AND status = ?", id, model.ApplicationPending).
			Update("status", model.ApplicationRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkg.ErrInvalidState
		}
		return insertOutbox(tx, "rejected", app.UserID, app.GroupID)
	})
}

// Delete 撤销申请，整行删除。已通过的申请被撤销时释放一个名额。
func (r *ApplicationRepository) Delete(ctx context.Context, app *model.Application) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Application{}, app.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkg.ErrApplicationNotFound
		}
		if app.Status == model.ApplicationApproved {
			if err := adjustApprovedCount(tx, app.GroupID, -1); err != nil {
				return err
			}
		}
		return insertOutbox(tx, "cancelled", app.UserID, app.GroupID)
	})
}

// ListByGroup 组长查看申请列表，按状态过滤（-1 表示全部）
func (r *ApplicationRepository) ListByGroup(ctx context.Context, groupID uint64, status int8, offset, limit int) ([]model.Application, error) {
	q := r.DB.WithContext(ctx).Where("group_id = ?", groupID)
	if status >= 0 {
		q = q.Where("status = ?", status)
	}
	var list []model.Application
	err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

// adjustApprovedCount 冗余计数随状态写在同一个事务里更新，展示用，校验以实时 count 为准
func adjustApprovedCount(tx *gorm.DB, groupID uint64, delta int64) error {
	return tx.Model(&model.Group{}).
		Where("id = ?", groupID).
		UpdateColumn("approved_count", gorm.Expr("CASE WHEN approved_count + ? > 0 THEN approved_count + ? ELSE 0 END", delta, delta)).Error
}

// insertOutbox 申请生命周期事件落表，由 relayer 异步投递到 kafka
func insertOutbox(tx *gorm.DB, event string, userID, groupID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"user_id":    userID,
		"group_id":   groupID,
	})
	ob := &model.ApplicationOutbox{
		EventType: event,
		UserID:    userID,
		GroupID:   groupID,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}
