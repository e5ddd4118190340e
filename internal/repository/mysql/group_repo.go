package mysql

import (
	"context"
	"errors"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

func (r *GroupRepository) Create(g *model.Group) (*model.Group, error) {
	err := r.DB.Create(g).Error
	return g, err
}

func (r *GroupRepository) FindByID(ctx context.Context, id uint64) (*model.Group, error) {
	var group model.Group
	err := r.DB.WithContext(ctx).First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrGroupNotFound
	}
	return &group, err
}

func (r *GroupRepository) FindByName(ctx context.Context, name string) (*model.Group, error) {
	var group model.Group
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrGroupNotFound
	}
	return &group, err
}

func (r *GroupRepository) List(offset, limit int) ([]model.Group, error) {
	var list []model.Group
	err := r.DB.Order("id desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

// DeleteCascade 小组删除时级联清掉它的申请和评论，放在同一个事务里
func (r *GroupRepository) DeleteCascade(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&model.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		// 小组本身的删除做幂等，已不存在也算成功
		return tx.Delete(&model.Group{}, id).Error
	})
}
