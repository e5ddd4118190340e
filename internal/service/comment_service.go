package service

import (
	"context"
	"strings"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"
	"Group_Hub/internal/repository/mysql"

	"gorm.io/gorm"
)

// CommentService 评论只对小组成员开放，发言前走 MembershipService 判定
type CommentService struct {
	repo      *mysql.CommentRepository
	groupRepo *mysql.GroupRepository
	members   *MembershipService
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		repo:      &mysql.CommentRepository{DB: db},
		groupRepo: &mysql.GroupRepository{DB: db},
		members:   NewMembershipService(db),
	}
}

// CreateComment 非成员（没申请过、pending、被拒）一律不许发言，
// 组长和已通过的成员可以发
func (s *CommentService) CreateComment(ctx context.Context, authorID, groupID uint64, body string) (*model.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, pkg.ErrEmptyBody
	}

	membership, err := s.members.Classify(ctx, authorID, groupID)
	if err != nil {
		return nil, err
	}
	if !membership.IsMember() {
		return nil, pkg.ErrNotMember
	}

	cm := &model.Comment{
		GroupID:  groupID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.repo.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

// UpdateComment 只有作者本人能改，身份丢失不影响既有评论的编辑权
func (s *CommentService) UpdateComment(ctx context.Context, editorID, commentID uint64, body string) error {
	if strings.TrimSpace(body) == "" {
		return pkg.ErrEmptyBody
	}
	cm, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !CanEditComment(cm, editorID) {
		return pkg.ErrNotAuthor
	}
	return s.repo.UpdateBody(ctx, commentID, body)
}

// DeleteComment 作者或组长可删
func (s *CommentService) DeleteComment(ctx context.Context, requesterID, commentID uint64) error {
	cm, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	group, err := s.groupRepo.FindByID(ctx, cm.GroupID)
	if err != nil {
		return err
	}
	if !CanDeleteComment(cm, group, requesterID) {
		return pkg.ErrNotAuthor
	}
	return s.repo.Delete(ctx, commentID)
}

// ListComments 小组评论列表，游标分页
func (s *CommentService) ListComments(ctx context.Context, groupID uint64, cursor uint64, limit int) ([]model.Comment, uint64, error) {
	if _, err := s.groupRepo.FindByID(ctx, groupID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByGroupCursor(ctx, groupID, cursor, limit)
}
