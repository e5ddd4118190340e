package service

import (
	"context"
	"errors"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"
	"Group_Hub/internal/repository/mysql"

	"gorm.io/gorm"
)

// 申请状态的对外展示值，GetStatus 返回
const (
	StatusLeader   = "leader"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusNone     = "none"
)

// MembershipService 成员身份的唯一判定入口。
// 所有需要"是不是成员"的地方都走 Classify，不允许各处自己拼条件。
// 直接读库不走缓存：这个判定是权限闸门，必须看到最新一次提交。
type MembershipService struct {
	appRepo   *mysql.ApplicationRepository
	groupRepo *mysql.GroupRepository
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{
		appRepo:   &mysql.ApplicationRepository{DB: db},
		groupRepo: &mysql.GroupRepository{DB: db},
	}
}

// Classify 把 (user, group) 归入 Leader / ApprovedMember / NonMember 三类之一。
// 先短路判断组长，再查已通过的申请。
func (s *MembershipService) Classify(ctx context.Context, userID, groupID uint64) (model.Membership, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return model.NonMember, err
	}
	if group.LeaderID == userID {
		return model.Leader, nil
	}

	app, err := s.appRepo.FindByUserGroup(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, pkg.ErrApplicationNotFound) {
			return model.NonMember, nil
		}
		return model.NonMember, err
	}
	if app.Status == model.ApplicationApproved {
		return model.ApprovedMember, nil
	}
	return model.NonMember, nil
}

// HasApplied 是否已有申请记录，与状态无关（防重复申请、前端展示"已申请"）
func (s *MembershipService) HasApplied(ctx context.Context, userID, groupID uint64) (bool, error) {
	return s.appRepo.Exists(ctx, userID, groupID)
}

// GetStatus 返回申请状态；组长返回专门的 leader 标记，没申请过返回 none
func (s *MembershipService) GetStatus(ctx context.Context, userID, groupID uint64) (string, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return "", err
	}
	if group.LeaderID == userID {
		return StatusLeader, nil
	}

	app, err := s.appRepo.FindByUserGroup(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, pkg.ErrApplicationNotFound) {
			return StatusNone, nil
		}
		return "", err
	}
	switch app.Status {
	case model.ApplicationApproved:
		return StatusApproved, nil
	case model.ApplicationRejected:
		return StatusRejected, nil
	default:
		return StatusPending, nil
	}
}
