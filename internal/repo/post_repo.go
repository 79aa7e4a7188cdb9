package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"maeul-forum/internal/domain"
)

const selectPostDetail = "posts.*, users.nickname AS author_nickname, users.dong AS author_dong, users.ho AS author_ho"

type PostFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindActive returns an active post or nil; soft-deleted posts read as
// missing everywhere.
func (r *PostRepo) FindActive(ctx context.Context, id uint) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).First(&p, "id = ? AND status = ?", id, domain.ContentActive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

// FindAny looks the post up regardless of status; used where ownership has
// to be resolved even through a soft delete (vote close).
func (r *PostRepo) FindAny(ctx context.Context, id uint) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

// List returns one page of active posts joined with author display fields
// plus the unpaged total.
func (r *PostRepo) List(ctx context.Context, f PostFilter) ([]domain.PostDetail, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}

	q := r.db.WithContext(ctx).Table("posts").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.status = ?", domain.ContentActive)
	if f.Category != "" {
		q = q.Where("posts.category = ?", f.Category)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.PostDetail
	err := q.Select(selectPostDetail).
		Order("posts.created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Scan(&rows).Error
	return rows, total, err
}

func (r *PostRepo) Detail(ctx context.Context, id uint) (*domain.PostDetail, error) {
	var d domain.PostDetail
	err := r.db.WithContext(ctx).Table("posts").
		Select(selectPostDetail).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.id = ? AND posts.status = ?", id, domain.ContentActive).
		Take(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostRepo) Update(ctx context.Context, id uint, category, title, content string) error {
	return r.db.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).
		Updates(map[string]any{"category": category, "title": title, "content": content}).Error
}

func (r *PostRepo) UpdateCategory(ctx context.Context, id uint, category string) error {
	return r.db.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).
		Update("category", category).Error
}

// SoftDelete flips the status flag; the row and its comments/files stay.
func (r *PostRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).
		Update("status", domain.ContentDeleted).Error
}
