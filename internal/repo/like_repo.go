package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"maeul-forum/internal/domain"
)

type LikeRepo struct{ db *gorm.DB }

func NewLikeRepo(db *gorm.DB) *LikeRepo { return &LikeRepo{db: db} }

// Toggle flips like presence for (post, user) inside one transaction and
// reports the resulting state. The unique index on the pair rejects the
// duplicate insert if two toggles race past the presence check.
func (r *LikeRepo) Toggle(ctx context.Context, postID, userID uint) (liked bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.PostLike
		findErr := tx.First(&existing, "post_id = ? AND user_id = ?", postID, userID).Error
		switch {
		case findErr == nil:
			liked = false
			return tx.Where("post_id = ? AND user_id = ?", postID, userID).
				Delete(&domain.PostLike{}).Error
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			liked = true
			return tx.Create(&domain.PostLike{PostID: postID, UserID: userID}).Error
		default:
			return findErr
		}
	})
	return liked, err
}

func (r *LikeRepo) Count(ctx context.Context, postID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.PostLike{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}

func (r *LikeRepo) Liked(ctx context.Context, postID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).Count(&n).Error
	return n > 0, err
}
