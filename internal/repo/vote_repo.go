package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"maeul-forum/internal/domain"
)

type VoteRepo struct{ db *gorm.DB }

func NewVoteRepo(db *gorm.DB) *VoteRepo { return &VoteRepo{db: db} }

// CreateWithOptions persists the vote and its ordered options as one unit.
func (r *VoteRepo) CreateWithOptions(ctx context.Context, v *domain.PostVote, options []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return err
		}
		for i, text := range options {
			opt := domain.VoteOption{VoteID: v.ID, OptionText: text, OptionOrder: i}
			if err := tx.Create(&opt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *VoteRepo) FindByID(ctx context.Context, id uint) (*domain.PostVote, error) {
	var v domain.PostVote
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *VoteRepo) FindActiveByID(ctx context.Context, id uint) (*domain.PostVote, error) {
	var v domain.PostVote
	err := r.db.WithContext(ctx).First(&v, "id = ? AND status = ?", id, domain.VoteActive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

// FindActiveByPost returns the post's active vote, if any. A closed vote
// reads as absent here, matching the public read path.
func (r *VoteRepo) FindActiveByPost(ctx context.Context, postID uint) (*domain.PostVote, error) {
	var v domain.PostVote
	err := r.db.WithContext(ctx).First(&v, "post_id = ? AND status = ?", postID, domain.VoteActive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

// Results returns the options in display order, each with its live ballot
// tally.
func (r *VoteRepo) Results(ctx context.Context, voteID uint) ([]domain.VoteOptionResult, error) {
	var rows []domain.VoteOptionResult
	err := r.db.WithContext(ctx).Table("vote_options").
		Select("vote_options.*, COUNT(user_votes.id) AS vote_count").
		Joins("LEFT JOIN user_votes ON user_votes.option_id = vote_options.id").
		Where("vote_options.vote_id = ?", voteID).
		Group("vote_options.id, vote_options.vote_id, vote_options.option_text, vote_options.option_order").
		Order("vote_options.option_order").
		Scan(&rows).Error
	return rows, err
}

// UserSelections lists the option ids the user currently has ballots for.
func (r *VoteRepo) UserSelections(ctx context.Context, voteID, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.UserVote{}).
		Where("vote_id = ? AND user_id = ?", voteID, userID).
		Order("option_id").
		Pluck("option_id", &ids).Error
	return ids, err
}

// ReplaceBallots swaps the caller's entire selection for the vote in one
// transaction: prior rows out, submitted set in.
func (r *VoteRepo) ReplaceBallots(ctx context.Context, voteID, userID uint, optionIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vote_id = ? AND user_id = ?", voteID, userID).
			Delete(&domain.UserVote{}).Error; err != nil {
			return err
		}
		for _, optID := range optionIDs {
			ballot := domain.UserVote{VoteID: voteID, OptionID: optID, UserID: userID}
			if err := tx.Create(&ballot).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Close marks the vote closed. Already-cast ballots are untouched.
func (r *VoteRepo) Close(ctx context.Context, voteID uint) error {
	return r.db.WithContext(ctx).Model(&domain.PostVote{}).Where("id = ?", voteID).
		Update("status", domain.VoteClosed).Error
}
