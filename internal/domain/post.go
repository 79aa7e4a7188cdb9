package domain

import "time"

const (
	CategorySuggestion = "suggestion"
	CategoryInProgress = "in_progress"
	CategoryResolved   = "resolved"

	// Soft-delete markers shared by posts and comments.
	ContentActive  = "active"
	ContentDeleted = "deleted"
)

func ValidPostCategory(c string) bool {
	switch c {
	case CategorySuggestion, CategoryInProgress, CategoryResolved:
		return true
	}
	return false
}

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Category  string    `gorm:"size:20;not null" json:"category"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Status    string    `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Status    string    `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }

// FileRecord is upload metadata. The backing blob lives in the blob store
// under the key derived from URL; rows are hard-deleted together with it.
type FileRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    *uint     `gorm:"index" json:"post_id"`
	CommentID *uint     `gorm:"index" json:"comment_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	Filesize  int64     `gorm:"not null" json:"filesize"`
	Filetype  string    `gorm:"size:100;not null" json:"filetype"`
	URL       string    `gorm:"size:255;not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (FileRecord) TableName() string { return "files" }

// PostLike presence means "liked". The unique index backstops concurrent
// toggles from the same user.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_likes_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_likes_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string { return "post_likes" }

// PostDetail is a post row joined with the author's display identity.
type PostDetail struct {
	ID             uint            `json:"id"`
	UserID         uint            `json:"user_id"`
	Category       string          `json:"category"`
	Title          string          `json:"title"`
	Content        string          `json:"content"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	AuthorNickname string          `json:"author_nickname"`
	AuthorDong     string          `json:"author_dong"`
	AuthorHo       string          `json:"author_ho"`
	Comments       []CommentDetail `json:"comments,omitempty"`
	Files          []FileRecord    `json:"files,omitempty"`
}

type CommentDetail struct {
	ID             uint      `json:"id"`
	PostID         uint      `json:"post_id"`
	UserID         uint      `json:"user_id"`
	Content        string    `json:"content"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorNickname string    `json:"author_nickname"`
	AuthorDong     string    `json:"author_dong"`
	AuthorHo       string    `json:"author_ho"`
}
