package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"maeul-forum/internal/domain"
)

type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepo) FindActive(ctx context.Context, id uint) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.WithContext(ctx).First(&c, "id = ? AND status = ?", id, domain.ContentActive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

// ListByPost returns the active comments of a post in posting order,
// joined with author display fields.
func (r *CommentRepo) ListByPost(ctx context.Context, postID uint) ([]domain.CommentDetail, error) {
	var rows []domain.CommentDetail
	err := r.db.WithContext(ctx).Table("comments").
		Select("comments.*, users.nickname AS author_nickname, users.dong AS author_dong, users.ho AS author_ho").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ? AND comments.status = ?", postID, domain.ContentActive).
		Order("comments.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *CommentRepo) UpdateContent(ctx context.Context, id uint, content string) error {
	return r.db.WithContext(ctx).Model(&domain.Comment{}).Where("id = ?", id).
		Update("content", content).Error
}

func (r *CommentRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&domain.Comment{}).Where("id = ?", id).
		Update("status", domain.ContentDeleted).Error
}

// CountByPost counts all comment rows for a post, deleted ones included;
// soft-deleting a post must not purge them.
func (r *CommentRepo) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Comment{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}
