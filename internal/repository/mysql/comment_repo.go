package mysql

import (
	"context"
	"errors"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(ctx context.Context, cm *model.Comment) error {
	return r.DB.WithContext(ctx).Create(cm).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var cm model.Comment
	err := r.DB.WithContext(ctx).First(&cm, "id = ? AND status = 0", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrCommentNotFound
	}
	return &cm, err
}

// ListByGroupCursor 游标分页，id 递减，limit+1 探测下一页
func (r *CommentRepository) ListByGroupCursor(ctx context.Context, groupID uint64, cursor uint64, limit int) ([]model.Comment, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("group_id = ? AND status = 0", groupID)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var rows []model.Comment
	if err := q.Order("id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(rows) > limit {
		next = rows[limit-1].ID
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (r *CommentRepository) UpdateBody(ctx context.Context, id uint64, body string) error {
	return r.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND status = 0", id).
		Update("body", body).Error
}

// Delete 软删除，幂等
func (r *CommentRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Update("status", 1).Error
}
