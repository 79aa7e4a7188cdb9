package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"maeul-forum/internal/domain"
)

const selectHelpDetail = "help_requests.*, users.nickname AS author_nickname, users.dong AS author_dong, users.ho AS author_ho, " +
	"(SELECT COUNT(*) FROM help_applications WHERE help_applications.help_request_id = help_requests.id) AS application_count"

type HelpFilter struct {
	Status   string
	Category string
}

type HelpRepo struct{ db *gorm.DB }

func NewHelpRepo(db *gorm.DB) *HelpRepo { return &HelpRepo{db: db} }

func (r *HelpRepo) Create(ctx context.Context, h *domain.HelpRequest) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HelpRepo) FindByID(ctx context.Context, id uint) (*domain.HelpRequest, error) {
	var h domain.HelpRequest
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &h, err
}

func (r *HelpRepo) List(ctx context.Context, f HelpFilter) ([]domain.HelpRequestDetail, error) {
	q := r.db.WithContext(ctx).Table("help_requests").
		Select(selectHelpDetail).
		Joins("JOIN users ON users.id = help_requests.user_id")
	if f.Status != "" {
		q = q.Where("help_requests.status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("help_requests.category = ?", f.Category)
	}
	var rows []domain.HelpRequestDetail
	err := q.Order("help_requests.created_at DESC").Scan(&rows).Error
	return rows, err
}

// Detail includes the author's phone number: neighbors need a way to reach
// each other once a request is visible.
func (r *HelpRepo) Detail(ctx context.Context, id uint) (*domain.HelpRequestDetail, error) {
	var d domain.HelpRequestDetail
	err := r.db.WithContext(ctx).Table("help_requests").
		Select(selectHelpDetail+", users.phone AS author_phone").
		Joins("JOIN users ON users.id = help_requests.user_id").
		Where("help_requests.id = ?", id).
		Take(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *HelpRepo) Update(ctx context.Context, h *domain.HelpRequest) error {
	return r.db.WithContext(ctx).Save(h).Error
}

// Delete removes the request row physically, unlike posts and comments.
func (r *HelpRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.HelpRequest{}).Error
}

func (r *HelpRepo) Apply(ctx context.Context, a *domain.HelpApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *HelpRepo) HasApplied(ctx context.Context, requestID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.HelpApplication{}).
		Where("help_request_id = ? AND user_id = ?", requestID, userID).Count(&n).Error
	return n > 0, err
}

// CancelApplication is idempotent: cancelling a non-existent application
// is not an error.
func (r *HelpRepo) CancelApplication(ctx context.Context, requestID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("help_request_id = ? AND user_id = ?", requestID, userID).
		Delete(&domain.HelpApplication{}).Error
}

func (r *HelpRepo) FindApplication(ctx context.Context, id uint) (*domain.HelpApplication, error) {
	var a domain.HelpApplication
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

// Applications lists a request's applications newest-first with applicant
// contact fields. Callers gate this behind owner-or-admin.
func (r *HelpRepo) Applications(ctx context.Context, requestID uint) ([]domain.HelpApplicationDetail, error) {
	var rows []domain.HelpApplicationDetail
	err := r.db.WithContext(ctx).Table("help_applications").
		Select("help_applications.*, users.nickname, users.dong, users.ho, users.phone").
		Joins("JOIN users ON users.id = help_applications.user_id").
		Where("help_applications.help_request_id = ?", requestID).
		Order("help_applications.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// Decide sets the application status; accepting also moves the parent
// request to in_progress in the same transaction. Other pending
// applications stay untouched for manual follow-up.
func (r *HelpRepo) Decide(ctx context.Context, a *domain.HelpApplication, status string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.HelpApplication{}).Where("id = ?", a.ID).
			Update("status", status).Error; err != nil {
			return err
		}
		if status == domain.ApplicationAccepted {
			return tx.Model(&domain.HelpRequest{}).Where("id = ?", a.HelpRequestID).
				Update("status", domain.HelpInProgress).Error
		}
		return nil
	})
}
