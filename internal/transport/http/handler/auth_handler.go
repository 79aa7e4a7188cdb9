package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"maeul-forum/internal/core/auth"
	"maeul-forum/internal/domain"
	"maeul-forum/internal/repo"
	"maeul-forum/internal/transport/http/middleware"
	resp "maeul-forum/internal/transport/http/response"
)

type AuthHandler struct {
	users  *repo.UserRepo
	tokens *auth.Tokens
	log    *zap.Logger
}

func NewAuthHandler(users *repo.UserRepo, tokens *auth.Tokens, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, log: log}
}

type registerReq struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Dong     string `json:"dong"`
	Ho       string `json:"ho"`
}

// Register creates a pending account; an admin has to approve it before
// the resident can log in.
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid request body"))
		return
	}
	if in.Phone == "" || in.Password == "" || in.Nickname == "" || in.Dong == "" || in.Ho == "" {
		c.JSON(http.StatusBadRequest, resp.Fail("all fields are required"))
		return
	}

	existing, err := h.users.FindByPhone(c.Request.Context(), in.Phone)
	if err != nil {
		h.fail(c, "register lookup", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("phone number already registered"))
		return
	}

	digest, err := auth.HashPassword(in.Password)
	if err != nil {
		h.fail(c, "hash password", err)
		return
	}
	u := domain.User{
		Phone:    in.Phone,
		Password: digest,
		Nickname: in.Nickname,
		Dong:     in.Dong,
		Ho:       in.Ho,
		Status:   domain.UserPending,
		Role:     domain.RoleUser,
	}
	if err := h.users.Create(c.Request.Context(), &u); err != nil {
		h.fail(c, "create user", err)
		return
	}

	c.JSON(http.StatusOK, resp.Message(
		"registration submitted; an admin has to approve the account before login",
		gin.H{"id": u.ID},
	))
}

type loginReq struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Phone == "" || in.Password == "" {
		c.JSON(http.StatusBadRequest, resp.Fail("phone and password are required"))
		return
	}

	u, err := h.users.FindByPhone(c.Request.Context(), in.Phone)
	if err != nil {
		h.fail(c, "login lookup", err)
		return
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, resp.Fail("invalid phone number or password"))
		return
	}

	// Approval state is reported before the password check: the account
	// holder already knows their own status.
	switch u.Status {
	case domain.UserPending:
		c.JSON(http.StatusForbidden, resp.Fail("account is pending admin approval"))
		return
	case domain.UserRejected:
		c.JSON(http.StatusForbidden, resp.Fail("registration was rejected; contact the admin"))
		return
	}

	if !auth.VerifyPassword(in.Password, u.Password) {
		c.JSON(http.StatusUnauthorized, resp.Fail("invalid phone number or password"))
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.fail(c, "issue token", err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"token": token, "user": u}))
}

// Me returns the token holder's own account row, whatever its status;
// pending residents can still see where their application stands.
func (h *AuthHandler) Me(c *gin.Context) {
	tok := middleware.BearerToken(c)
	if tok == "" {
		c.JSON(http.StatusUnauthorized, resp.Fail("authentication required"))
		return
	}
	claims, err := h.tokens.Parse(tok)
	if err != nil {
		c.JSON(http.StatusUnauthorized, resp.Fail("invalid token"))
		return
	}
	u, err := h.users.FindByID(c.Request.Context(), claims.UID)
	if err != nil {
		h.fail(c, "me lookup", err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, resp.Fail("user not found"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(u))
}

func (h *AuthHandler) fail(c *gin.Context, op string, err error) {
	h.log.Error(op, zap.Error(err))
	c.JSON(http.StatusInternalServerError, resp.Fail("internal server error"))
}
