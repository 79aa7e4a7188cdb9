package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"maeul-forum/internal/repo"
	"maeul-forum/internal/transport/http/middleware"
	resp "maeul-forum/internal/transport/http/response"
)

type LikeHandler struct {
	likes *repo.LikeRepo
	posts *repo.PostRepo
	log   *zap.Logger
}

func NewLikeHandler(likes *repo.LikeRepo, posts *repo.PostRepo, log *zap.Logger) *LikeHandler {
	return &LikeHandler{likes: likes, posts: posts, log: log}
}

// Toggle flips the caller's like on a post and reports the new state.
func (h *LikeHandler) Toggle(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	postID, ok := paramID(c, "post_id")
	if !ok {
		return
	}

	p, err := h.posts.FindActive(c.Request.Context(), postID)
	if err != nil {
		internalError(c, h.log, "like toggle lookup", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, resp.Fail("post not found"))
		return
	}

	liked, err := h.likes.Toggle(c.Request.Context(), postID, user.ID)
	if err != nil {
		internalError(c, h.log, "like toggle", err)
		return
	}
	msg := "like removed"
	if liked {
		msg = "like added"
	}
	c.JSON(http.StatusOK, resp.Message(msg, gin.H{"liked": liked}))
}

// Get is public. With a valid bearer token it also reports whether the
// caller has liked the post; a broken token just reads as liked=false.
func (h *LikeHandler) Get(c *gin.Context) {
	postID, ok := paramID(c, "post_id")
	if !ok {
		return
	}

	count, err := h.likes.Count(c.Request.Context(), postID)
	if err != nil {
		internalError(c, h.log, "like count", err)
		return
	}

	liked := false
	if user, ok := middleware.CurrentUser(c); ok {
		liked, err = h.likes.Liked(c.Request.Context(), postID, user.ID)
		if err != nil {
			internalError(c, h.log, "like state", err)
			return
		}
	}

	c.JSON(http.StatusOK, resp.OK(gin.H{
		"post_id":    postID,
		"like_count": count,
		"liked":      liked,
	}))
}
