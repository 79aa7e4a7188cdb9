package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"maeul-forum/internal/domain"
	"maeul-forum/internal/repo"
	"maeul-forum/internal/transport/http/middleware"
	resp "maeul-forum/internal/transport/http/response"
)

type PostHandler struct {
	posts    *repo.PostRepo
	comments *repo.CommentRepo
	files    *repo.FileRepo
	log      *zap.Logger
}

func NewPostHandler(posts *repo.PostRepo, comments *repo.CommentRepo, files *repo.FileRepo, log *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, comments: comments, files: files, log: log}
}

// List is public: page of active posts with author fields, optional
// category filter and case-insensitive title/content search.
func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, total, err := h.posts.List(c.Request.Context(), repo.PostFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		internalError(c, h.log, "list posts", err)
		return
	}
	if posts == nil {
		posts = []domain.PostDetail{}
	}

	c.JSON(http.StatusOK, resp.OK(gin.H{
		"posts":      posts,
		"total":      total,
		"page":       page,
		"totalPages": int(math.Ceil(float64(total) / float64(limit))),
	}))
}

// Get attaches the active comments and all files to the post detail.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := h.posts.Detail(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "get post", err)
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, resp.Fail("post not found"))
		return
	}

	comments, err := h.comments.ListByPost(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "get post comments", err)
		return
	}
	files, err := h.files.ListByPost(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "get post files", err)
		return
	}
	detail.Comments = comments
	detail.Files = files

	c.JSON(http.StatusOK, resp.OK(detail))
}

type postReq struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

func (in *postReq) validate(c *gin.Context) bool {
	if in.Category == "" || in.Title == "" || in.Content == "" {
		c.JSON(http.StatusBadRequest, resp.Fail("all fields are required"))
		return false
	}
	if !domain.ValidPostCategory(in.Category) {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid category"))
		return false
	}
	return true
}

func (h *PostHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	var in postReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid request body"))
		return
	}
	if !in.validate(c) {
		return
	}

	p := domain.Post{
		UserID:   user.ID,
		Category: in.Category,
		Title:    in.Title,
		Content:  in.Content,
		Status:   domain.ContentActive,
	}
	if err := h.posts.Create(c.Request.Context(), &p); err != nil {
		internalError(c, h.log, "create post", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("post created", gin.H{"id": p.ID}))
}

func (h *PostHandler) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in postReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid request body"))
		return
	}
	if !in.validate(c) {
		return
	}

	p, err := h.posts.FindActive(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "update post lookup", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, resp.Fail("post not found"))
		return
	}
	if !user.CanMutate(p.UserID) {
		c.JSON(http.StatusForbidden, resp.Fail("no permission to edit this post"))
		return
	}

	if err := h.posts.Update(c.Request.Context(), id, in.Category, in.Title, in.Content); err != nil {
		internalError(c, h.log, "update post", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("post updated", nil))
}

func (h *PostHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.posts.FindActive(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "delete post lookup", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, resp.Fail("post not found"))
		return
	}
	if !user.CanMutate(p.UserID) {
		c.JSON(http.StatusForbidden, resp.Fail("no permission to delete this post"))
		return
	}

	if err := h.posts.SoftDelete(c.Request.Context(), id); err != nil {
		internalError(c, h.log, "delete post", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("post deleted", nil))
}

// UpdateCategory moves a post along the suggestion → in_progress →
// resolved board. Admin only, ownership notwithstanding; the route is
// mounted behind AdminRequired.
func (h *PostHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in struct {
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || !domain.ValidPostCategory(in.Category) {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid category"))
		return
	}

	p, err := h.posts.FindActive(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "update category lookup", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, resp.Fail("post not found"))
		return
	}

	if err := h.posts.UpdateCategory(c.Request.Context(), id, in.Category); err != nil {
		internalError(c, h.log, "update category", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("category updated", nil))
}
