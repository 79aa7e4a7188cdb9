package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"maeul-forum/internal/domain"
)

type FileRepo struct{ db *gorm.DB }

func NewFileRepo(db *gorm.DB) *FileRepo { return &FileRepo{db: db} }

func (r *FileRepo) Create(ctx context.Context, f *domain.FileRecord) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FileRepo) FindByID(ctx context.Context, id uint) (*domain.FileRecord, error) {
	var f domain.FileRecord
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &f, err
}

// FindByURL resolves a download path back to its metadata row.
func (r *FileRepo) FindByURL(ctx context.Context, url string) (*domain.FileRecord, error) {
	var f domain.FileRecord
	err := r.db.WithContext(ctx).First(&f, "url = ?", url).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &f, err
}

func (r *FileRepo) ListByPost(ctx context.Context, postID uint) ([]domain.FileRecord, error) {
	var rows []domain.FileRecord
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// Delete removes the metadata row. The blob is removed by the caller after
// the row is gone; the row is the source of truth.
func (r *FileRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.FileRecord{}).Error
}
