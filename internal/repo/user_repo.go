package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"maeul-forum/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

// FindApproved returns the user only when the account is approved; pending
// and rejected accounts resolve to nil even with a valid token.
func (r *UserRepo) FindApproved(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ? AND status = ?", id, domain.UserApproved).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) List(ctx context.Context, status string) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var users []domain.User
	err := q.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepo) ListPending(ctx context.Context) ([]domain.User, error) {
	return r.List(ctx, domain.UserPending)
}

// Approve flips a pending account to approved. Returns false when no
// pending row with that id exists.
func (r *UserRepo) Approve(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND status = ?", id, domain.UserPending).
		Updates(map[string]any{"status": domain.UserApproved, "approved_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}

func (r *UserRepo) Reject(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND status = ?", id, domain.UserPending).
		Updates(map[string]any{"status": domain.UserRejected, "rejected_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}

// Delete removes the account row for good. Explicit admin action only.
func (r *UserRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	return res.RowsAffected > 0, res.Error
}
