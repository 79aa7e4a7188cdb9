package domain

import "time"

const (
	HelpOpen       = "open"
	HelpInProgress = "in_progress"
	HelpClosed     = "closed"

	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// HelpCategories are the six fixed marketplace categories: dog walking,
// cat sitting, recycling duty, housework, hospital escort, other.
var HelpCategories = []string{"강아지산책", "고양이돌봄", "재활용버리기", "집안일", "병원동행", "기타"}

func ValidHelpCategory(c string) bool {
	for _, v := range HelpCategories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidHelpStatus(s string) bool {
	switch s {
	case HelpOpen, HelpInProgress, HelpClosed:
		return true
	}
	return false
}

type HelpRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Location  string    `gorm:"size:255" json:"location"`
	Category  string    `gorm:"size:32;not null" json:"category"`
	Pay       int       `json:"pay"`
	Status    string    `gorm:"size:16;not null;default:open" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HelpRequest) TableName() string { return "help_requests" }

// HelpApplication is unique per (request, applicant).
type HelpApplication struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	HelpRequestID uint      `gorm:"not null;uniqueIndex:idx_help_apps_request_user" json:"help_request_id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_help_apps_request_user" json:"user_id"`
	Message       string    `gorm:"type:text" json:"message"`
	Status        string    `gorm:"size:16;not null;default:pending" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (HelpApplication) TableName() string { return "help_applications" }

type HelpRequestDetail struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Location         string    `json:"location"`
	Category         string    `json:"category"`
	Pay              int       `json:"pay"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	AuthorNickname   string    `json:"author_nickname"`
	AuthorDong       string    `json:"author_dong"`
	AuthorHo         string    `json:"author_ho"`
	AuthorPhone      string    `json:"author_phone,omitempty"`
	ApplicationCount int64     `json:"application_count"`
}

// HelpApplicationDetail includes the applicant's contact identity; it is
// only ever shown to the request owner or an admin.
type HelpApplicationDetail struct {
	ID            uint      `json:"id"`
	HelpRequestID uint      `json:"help_request_id"`
	UserID        uint      `json:"user_id"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	Nickname      string    `json:"nickname"`
	Dong          string    `json:"dong"`
	Ho            string    `json:"ho"`
	Phone         string    `json:"phone"`
}
