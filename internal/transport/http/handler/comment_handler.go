package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"maeul-forum/internal/domain"
	"maeul-forum/internal/repo"
	"maeul-forum/internal/transport/http/middleware"
	resp "maeul-forum/internal/transport/http/response"
)

type CommentHandler struct {
	comments *repo.CommentRepo
	posts    *repo.PostRepo
	log      *zap.Logger
}

func NewCommentHandler(comments *repo.CommentRepo, posts *repo.PostRepo, log *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, posts: posts, log: log}
}

func (h *CommentHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	var in struct {
		PostID  uint   `json:"post_id"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.PostID == 0 || in.Content == "" {
		c.JSON(http.StatusBadRequest, resp.Fail("post_id and content are required"))
		return
	}

	// Comments only attach to live posts.
	p, err := h.posts.FindActive(c.Request.Context(), in.PostID)
	if err != nil {
		internalError(c, h.log, "create comment lookup", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, resp.Fail("post not found"))
		return
	}

	cm := domain.Comment{
		PostID:  in.PostID,
		UserID:  user.ID,
		Content: in.Content,
		Status:  domain.ContentActive,
	}
	if err := h.comments.Create(c.Request.Context(), &cm); err != nil {
		internalError(c, h.log, "create comment", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("comment created", gin.H{"id": cm.ID}))
}

func (h *CommentHandler) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Content == "" {
		c.JSON(http.StatusBadRequest, resp.Fail("content is required"))
		return
	}

	cm, err := h.comments.FindActive(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "update comment lookup", err)
		return
	}
	if cm == nil {
		c.JSON(http.StatusNotFound, resp.Fail("comment not found"))
		return
	}
	if !user.CanMutate(cm.UserID) {
		c.JSON(http.StatusForbidden, resp.Fail("no permission to edit this comment"))
		return
	}

	if err := h.comments.UpdateContent(c.Request.Context(), id, in.Content); err != nil {
		internalError(c, h.log, "update comment", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("comment updated", nil))
}

// Delete soft-deletes the comment independently of its parent post.
func (h *CommentHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cm, err := h.comments.FindActive(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "delete comment lookup", err)
		return
	}
	if cm == nil {
		c.JSON(http.StatusNotFound, resp.Fail("comment not found"))
		return
	}
	if !user.CanMutate(cm.UserID) {
		c.JSON(http.StatusForbidden, resp.Fail("no permission to delete this comment"))
		return
	}

	if err := h.comments.SoftDelete(c.Request.Context(), id); err != nil {
		internalError(c, h.log, "delete comment", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("comment deleted", nil))
}
