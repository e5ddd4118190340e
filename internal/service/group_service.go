package service

import (
	"context"
	"errors"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"
	"Group_Hub/internal/repository/mysql"

	"gorm.io/gorm"
)

type GroupService struct {
	repo *mysql.GroupRepository
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{
		repo: &mysql.GroupRepository{DB: db},
	}
}

// CreateGroup 创建者自动成为组长。capacity 传 nil 表示不限人数。
func (s *GroupService) CreateGroup(userID uint64, name, desc string, capacity *int) (*model.Group, error) {
	if name == "" {
		return nil, errors.New("group name required")
	}
	if capacity != nil && *capacity <= 0 {
		return nil, pkg.ErrInvalidCapacity
	}

	group := &model.Group{
		Name:        name,
		Description: desc,
		LeaderID:    userID,
		Capacity:    capacity,
	}

	if _, err := s.repo.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) GetGroup(ctx context.Context, id uint64) (*model.Group, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *GroupService) ListGroups(page, size int) ([]model.Group, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}

	offset := (page - 1) * size
	return s.repo.List(offset, size)
}

// DeleteGroup 组长解散小组，申请和评论一并级联删除
func (s *GroupService) DeleteGroup(ctx context.Context, requesterID, groupID uint64) error {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !CanManageGroup(group, requesterID) {
		return pkg.ErrNotLeader
	}
	return s.repo.DeleteCascade(ctx, groupID)
}
