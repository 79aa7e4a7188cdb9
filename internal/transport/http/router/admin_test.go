package router

import (
	"encoding/json"
	"net/http"
	"testing"

	"maeul-forum/internal/domain"
)

func TestAdminRoutesRequireAdmin(t *testing.T) {
	e := newEnv(t)
	_, userTok := e.approved("01050000001")

	w := e.do(http.MethodGet, "/api/admin/pending-users", userTok, nil)
	wantStatus(t, w, http.StatusForbidden)

	w = e.do(http.MethodGet, "/api/admin/pending-users", "", nil)
	wantStatus(t, w, http.StatusUnauthorized)
}

func TestAdminApprovalFlow(t *testing.T) {
	e := newEnv(t)
	_, adminTok := e.admin("01050000002")
	pending, _ := e.user("01050000003", domain.UserPending, domain.RoleUser)

	w := e.do(http.MethodGet, "/api/admin/pending-users", adminTok, nil)
	wantStatus(t, w, http.StatusOK)
	var rows []domain.User
	if err := json.Unmarshal(e.decode(w).Data, &rows); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != pending.ID {
		t.Fatalf("pending list = %+v, want the one pending user", rows)
	}

	w = e.do(http.MethodPost, "/api/admin/approve-user/"+itoa(pending.ID), adminTok, nil)
	wantStatus(t, w, http.StatusOK)

	// Approving twice is a 404: the account is no longer pending.
	w = e.do(http.MethodPost, "/api/admin/approve-user/"+itoa(pending.ID), adminTok, nil)
	wantStatus(t, w, http.StatusNotFound)

	var u domain.User
	if err := e.db.First(&u, "id = ?", pending.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if u.Status != domain.UserApproved || u.ApprovedAt == nil {
		t.Errorf("user = %+v, want approved with timestamp", u)
	}
}

func TestAdminRejectFlow(t *testing.T) {
	e := newEnv(t)
	_, adminTok := e.admin("01050000004")
	pending, _ := e.user("01050000005", domain.UserPending, domain.RoleUser)

	w := e.do(http.MethodPost, "/api/admin/reject-user/"+itoa(pending.ID), adminTok, nil)
	wantStatus(t, w, http.StatusOK)

	var u domain.User
	if err := e.db.First(&u, "id = ?", pending.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if u.Status != domain.UserRejected || u.RejectedAt == nil {
		t.Errorf("user = %+v, want rejected with timestamp", u)
	}

	// Rejecting an approved account is also a 404.
	approved, _ := e.approved("01050000006")
	w = e.do(http.MethodPost, "/api/admin/reject-user/"+itoa(approved.ID), adminTok, nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestAdminListUsersByStatus(t *testing.T) {
	e := newEnv(t)
	_, adminTok := e.admin("01050000007")
	e.user("01050000008", domain.UserPending, domain.RoleUser)
	e.approved("01050000009")

	w := e.do(http.MethodGet, "/api/admin/users?status=pending", adminTok, nil)
	wantStatus(t, w, http.StatusOK)
	var rows []domain.User
	if err := json.Unmarshal(e.decode(w).Data, &rows); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("pending users = %d, want 1", len(rows))
	}

	w = e.do(http.MethodGet, "/api/admin/users?status=bogus", adminTok, nil)
	wantStatus(t, w, http.StatusBadRequest)

	w = e.do(http.MethodGet, "/api/admin/users", adminTok, nil)
	if err := json.Unmarshal(e.decode(w).Data, &rows); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("all users = %d, want 3", len(rows))
	}
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	e := newEnv(t)
	admin, adminTok := e.admin("01050000010")
	victim, _ := e.approved("01050000011")

	w := e.do(http.MethodDelete, "/api/admin/users/"+itoa(admin.ID), adminTok, nil)
	wantStatus(t, w, http.StatusBadRequest)

	w = e.do(http.MethodDelete, "/api/admin/users/"+itoa(victim.ID), adminTok, nil)
	wantStatus(t, w, http.StatusOK)

	w = e.do(http.MethodDelete, "/api/admin/users/"+itoa(victim.ID), adminTok, nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestAdminStats(t *testing.T) {
	e := newEnv(t)
	u, _ := e.approved("01050000012")
	_, adminTok := e.admin("01050000013")
	e.user("01050000014", domain.UserPending, domain.RoleUser)
	e.post(u.ID, domain.CategorySuggestion, "s1")
	e.post(u.ID, domain.CategoryResolved, "r1")

	w := e.do(http.MethodGet, "/api/admin/stats", adminTok, nil)
	wantStatus(t, w, http.StatusOK)

	var stats domain.StatsOverview
	if err := json.Unmarshal(e.decode(w).Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Users.Total != 3 {
		t.Errorf("users.total = %d, want 3", stats.Users.Total)
	}
	if stats.Users.Pending != 1 {
		t.Errorf("users.pending = %d, want 1", stats.Users.Pending)
	}
	if stats.Posts.Total != 2 || stats.Posts.Suggestions != 1 || stats.Posts.Resolved != 1 {
		t.Errorf("posts = %+v, want total 2 with one suggestion and one resolved", stats.Posts)
	}
}
