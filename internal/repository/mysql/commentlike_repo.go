package mysql

import (
	"context"
	"errors"

	"Group_Hub/internal/model"

	"gorm.io/gorm"
)

type CommentLikeRepository struct {
	DB *gorm.DB
}

// Like 幂等插入点赞记录并维护评论计数。重复点赞返回 changed=false。
func (r *CommentLikeRepository) Like(ctx context.Context, userID, commentID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cl model.CommentLike
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&cl).Error
		if err == nil {
			// 已点过，幂等
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err = tx.Create(&model.CommentLike{UserID: userID, CommentID: commentID}).Error; err != nil {
			return err
		}
		changed = true
		return tx.Model(&model.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	return changed, err
}

func (r *CommentLikeRepository) Unlike(ctx context.Context, userID, commentID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).
			Delete(&model.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		// 计数防负数，误差由对账兜底
		return tx.Model(&model.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error
	})
	return changed, err
}

func (r *CommentLikeRepository) IsLiked(ctx context.Context, userID, commentID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count > 0, err
}

func (r *CommentLikeRepository) GetLikeCount(ctx context.Context, commentID uint64) (int64, error) {
	var cm model.Comment
	err := r.DB.WithContext(ctx).Select("id", "like_count").First(&cm, commentID).Error
	if err != nil {
		return 0, err
	}
	return cm.LikeCount, nil
}
