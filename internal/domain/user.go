package domain

import "time"

// Flat role/status enums. There is no hierarchy beyond user/admin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserPending  = "pending"
	UserApproved = "approved"
	UserRejected = "rejected"
)

// User is a resident account. Registration creates a pending row; only an
// admin transition makes it approved and therefore able to authenticate.
type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Phone      string     `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Password   string     `gorm:"size:191;not null" json:"-"`
	Nickname   string     `gorm:"size:64;not null" json:"nickname"`
	Dong       string     `gorm:"size:16;not null" json:"dong"`
	Ho         string     `gorm:"size:16;not null" json:"ho"`
	Status     string     `gorm:"size:16;not null;default:pending" json:"status"`
	Role       string     `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt  time.Time  `json:"created_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// CanMutate is the single owner-or-admin arbiter, applied before every
// update/delete across posts, comments, votes, files and help requests.
func (u *User) CanMutate(ownerID uint) bool {
	return u.ID == ownerID || u.IsAdmin()
}
