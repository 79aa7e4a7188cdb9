package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"maeul-forum/internal/core/cache"
	"maeul-forum/internal/domain"
	"maeul-forum/internal/repo"
	"maeul-forum/internal/transport/http/middleware"
	resp "maeul-forum/internal/transport/http/response"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 30 * time.Second
)

type AdminHandler struct {
	users *repo.UserRepo
	stats *repo.StatsRepo
	cache *cache.Cache
	log   *zap.Logger
}

func NewAdminHandler(users *repo.UserRepo, stats *repo.StatsRepo, c *cache.Cache, log *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, stats: stats, cache: c, log: log}
}

func (h *AdminHandler) PendingUsers(c *gin.Context) {
	users, err := h.users.ListPending(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "list pending users", err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, resp.OK(users))
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != domain.UserPending && status != domain.UserApproved && status != domain.UserRejected {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid status filter"))
		return
	}
	users, err := h.users.List(c.Request.Context(), status)
	if err != nil {
		internalError(c, h.log, "list users", err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, resp.OK(users))
}

// Approve only acts on pending accounts; approving an already-approved or
// rejected account is a 404 rather than a silent success.
func (h *AdminHandler) Approve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	done, err := h.users.Approve(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "approve user", err)
		return
	}
	if !done {
		c.JSON(http.StatusNotFound, resp.Fail("no pending user with that id"))
		return
	}
	h.invalidateStats(c)
	c.JSON(http.StatusOK, resp.Message("user approved", nil))
}

func (h *AdminHandler) Reject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	done, err := h.users.Reject(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "reject user", err)
		return
	}
	if !done {
		c.JSON(http.StatusNotFound, resp.Fail("no pending user with that id"))
		return
	}
	h.invalidateStats(c)
	c.JSON(http.StatusOK, resp.Message("user rejected", nil))
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if id == admin.ID {
		c.JSON(http.StatusBadRequest, resp.Fail("cannot delete your own account"))
		return
	}
	done, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "delete user", err)
		return
	}
	if !done {
		c.JSON(http.StatusNotFound, resp.Fail("user not found"))
		return
	}
	h.invalidateStats(c)
	c.JSON(http.StatusOK, resp.Message("user deleted", nil))
}

// Stats serves the dashboard overview through a short read-through cache.
// Without Redis configured it degrades to direct queries.
func (h *AdminHandler) Stats(c *gin.Context) {
	out, err := cache.GetOrLoadJSON(h.cache, c.Request.Context(), statsCacheKey, statsCacheTTL,
		func(ctx context.Context) (*domain.StatsOverview, error) {
			return h.stats.Overview(ctx)
		})
	if err != nil {
		internalError(c, h.log, "stats overview", err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(out))
}

func (h *AdminHandler) invalidateStats(c *gin.Context) {
	if h.cache == nil {
		return
	}
	h.cache.Invalidate(c.Request.Context(), statsCacheKey)
}
