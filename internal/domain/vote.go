package domain

import "time"

const (
	VoteTypeSingle   = "single"
	VoteTypeMultiple = "multiple"

	VoteActive = "active"
	VoteClosed = "closed"
)

func ValidVoteType(t string) bool {
	return t == VoteTypeSingle || t == VoteTypeMultiple
}

// PostVote is a poll attached to a post. Only the post's owner or an admin
// may create or close it.
type PostVote struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PostID      uint       `gorm:"index;not null" json:"post_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	VoteType    string     `gorm:"size:16;not null;default:single" json:"vote_type"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (PostVote) TableName() string { return "post_votes" }

// Ended reports whether the poll's end date has passed. A nil end date
// never ends by itself.
func (v *PostVote) Ended(now time.Time) bool {
	return v.EndDate != nil && v.EndDate.Before(now)
}

type VoteOption struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	VoteID      uint   `gorm:"index;not null" json:"vote_id"`
	OptionText  string `gorm:"size:255;not null" json:"option_text"`
	OptionOrder int    `gorm:"not null" json:"option_order"`
}

func (VoteOption) TableName() string { return "vote_options" }

// UserVote is one ballot. Re-casting replaces all of a user's ballots for
// the vote in one transaction.
type UserVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VoteID    uint      `gorm:"index;not null" json:"vote_id"`
	OptionID  uint      `gorm:"not null;uniqueIndex:idx_user_votes_option_user" json:"option_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_votes_option_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserVote) TableName() string { return "user_votes" }

// VoteOptionResult is an option annotated with its live tally.
type VoteOptionResult struct {
	ID          uint   `json:"id"`
	VoteID      uint   `json:"vote_id"`
	OptionText  string `json:"option_text"`
	OptionOrder int    `json:"option_order"`
	VoteCount   int64  `json:"vote_count"`
}
