package repo

import (
	"context"

	"gorm.io/gorm"

	"maeul-forum/internal/domain"
)

type StatsRepo struct{ db *gorm.DB }

func NewStatsRepo(db *gorm.DB) *StatsRepo { return &StatsRepo{db: db} }

// Overview aggregates the admin dashboard counters in three queries.
func (r *StatsRepo) Overview(ctx context.Context) (*domain.StatsOverview, error) {
	var out domain.StatsOverview

	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0) AS approved,
		       COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
		       COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0) AS rejected
		FROM users`).Scan(&out.Users).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN category = 'suggestion' THEN 1 ELSE 0 END), 0) AS suggestions,
		       COALESCE(SUM(CASE WHEN category = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress,
		       COALESCE(SUM(CASE WHEN category = 'resolved' THEN 1 ELSE 0 END), 0) AS resolved
		FROM posts
		WHERE status = 'active'`).Scan(&out.Posts).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("status = ?", domain.ContentActive).
		Count(&out.Comments.Total).Error
	if err != nil {
		return nil, err
	}

	return &out, nil
}
