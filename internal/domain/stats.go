package domain

type UserStats struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
	Rejected int64 `json:"rejected"`
}

type PostStats struct {
	Total       int64 `json:"total"`
	Suggestions int64 `json:"suggestions"`
	InProgress  int64 `json:"in_progress"`
	Resolved    int64 `json:"resolved"`
}

type CommentStats struct {
	Total int64 `json:"total"`
}

// StatsOverview is the admin dashboard aggregate.
type StatsOverview struct {
	Users    UserStats    `json:"users"`
	Posts    PostStats    `json:"posts"`
	Comments CommentStats `json:"comments"`
}
