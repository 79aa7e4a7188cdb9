package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"maeul-forum/internal/domain"
	"maeul-forum/internal/repo"
	"maeul-forum/internal/transport/http/middleware"
	resp "maeul-forum/internal/transport/http/response"
)

type VoteHandler struct {
	votes *repo.VoteRepo
	posts *repo.PostRepo
	log   *zap.Logger
}

func NewVoteHandler(votes *repo.VoteRepo, posts *repo.PostRepo, log *zap.Logger) *VoteHandler {
	return &VoteHandler{votes: votes, posts: posts, log: log}
}

type createVoteReq struct {
	PostID      uint     `json:"post_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	VoteType    string   `json:"vote_type"`
	EndDate     string   `json:"end_date"`
	Options     []string `json:"options"`
}

// Create attaches a poll to a post. Only the post's owner or an admin may
// do so, and at least two non-empty options are required.
func (h *VoteHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	var in createVoteReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid request body"))
		return
	}
	if in.PostID == 0 || in.Title == "" || in.VoteType == "" {
		c.JSON(http.StatusBadRequest, resp.Fail("post_id, title and vote_type are required"))
		return
	}
	if !domain.ValidVoteType(in.VoteType) {
		c.JSON(http.StatusBadRequest, resp.Fail("vote_type must be single or multiple"))
		return
	}
	options := make([]string, 0, len(in.Options))
	for _, o := range in.Options {
		if s := strings.TrimSpace(o); s != "" {
			options = append(options, s)
		}
	}
	if len(options) < 2 {
		c.JSON(http.StatusBadRequest, resp.Fail("at least two options are required"))
		return
	}

	var endDate *time.Time
	if in.EndDate != "" {
		t, err := parseEndDate(in.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, resp.Fail("invalid end_date"))
			return
		}
		endDate = &t
	}

	p, err := h.posts.FindActive(c.Request.Context(), in.PostID)
	if err != nil {
		internalError(c, h.log, "create vote lookup", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, resp.Fail("post not found"))
		return
	}
	if !user.CanMutate(p.UserID) {
		c.JSON(http.StatusForbidden, resp.Fail("no permission to create a vote on this post"))
		return
	}

	v := domain.PostVote{
		PostID:      in.PostID,
		Title:       in.Title,
		Description: in.Description,
		VoteType:    in.VoteType,
		EndDate:     endDate,
		Status:      domain.VoteActive,
	}
	if err := h.votes.CreateWithOptions(c.Request.Context(), &v, options); err != nil {
		internalError(c, h.log, "create vote", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("vote created", gin.H{"id": v.ID}))
}

// GetByPost is public. No active vote on the post is not an error: the
// response carries a null payload so clients can skip the poll widget.
func (h *VoteHandler) GetByPost(c *gin.Context) {
	postID, ok := paramID(c, "post_id")
	if !ok {
		return
	}

	v, err := h.votes.FindActiveByPost(c.Request.Context(), postID)
	if err != nil {
		internalError(c, h.log, "get vote", err)
		return
	}
	if v == nil {
		c.JSON(http.StatusOK, resp.OK(nil))
		return
	}

	results, err := h.votes.Results(c.Request.Context(), v.ID)
	if err != nil {
		internalError(c, h.log, "vote results", err)
		return
	}
	var total int64
	for _, r := range results {
		total += r.VoteCount
	}

	myVotes := []uint{}
	if user, ok := middleware.CurrentUser(c); ok {
		myVotes, err = h.votes.UserSelections(c.Request.Context(), v.ID, user.ID)
		if err != nil {
			internalError(c, h.log, "vote selections", err)
			return
		}
		if myVotes == nil {
			myVotes = []uint{}
		}
	}

	c.JSON(http.StatusOK, resp.OK(gin.H{
		"id":          v.ID,
		"post_id":     v.PostID,
		"title":       v.Title,
		"description": v.Description,
		"vote_type":   v.VoteType,
		"end_date":    v.EndDate,
		"status":      v.Status,
		"created_at":  v.CreatedAt,
		"options":     results,
		"total_votes": total,
		"my_votes":    myVotes,
	}))
}

// Cast replaces the caller's entire selection for the vote. Closed or
// expired votes reject further ballots; a single-type vote takes exactly
// one option id.
func (h *VoteHandler) Cast(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	voteID, ok := paramID(c, "vote_id")
	if !ok {
		return
	}
	var in struct {
		OptionIDs []uint `json:"option_ids"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || len(in.OptionIDs) == 0 {
		c.JSON(http.StatusBadRequest, resp.Fail("option_ids are required"))
		return
	}

	v, err := h.votes.FindActiveByID(c.Request.Context(), voteID)
	if err != nil {
		internalError(c, h.log, "cast lookup", err)
		return
	}
	if v == nil {
		c.JSON(http.StatusNotFound, resp.Fail("vote not found or closed"))
		return
	}
	if v.Ended(time.Now()) {
		c.JSON(http.StatusBadRequest, resp.Fail("vote has ended"))
		return
	}
	if v.VoteType == domain.VoteTypeSingle && len(in.OptionIDs) > 1 {
		c.JSON(http.StatusBadRequest, resp.Fail("only one option can be selected"))
		return
	}

	if err := h.votes.ReplaceBallots(c.Request.Context(), voteID, user.ID, in.OptionIDs); err != nil {
		internalError(c, h.log, "cast vote", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("vote cast", nil))
}

// Close sets the vote closed. Ownership comes from the parent post, looked
// up regardless of its soft-delete state.
func (h *VoteHandler) Close(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	voteID, ok := paramID(c, "vote_id")
	if !ok {
		return
	}

	v, err := h.votes.FindByID(c.Request.Context(), voteID)
	if err != nil {
		internalError(c, h.log, "close lookup", err)
		return
	}
	if v == nil {
		c.JSON(http.StatusNotFound, resp.Fail("vote not found"))
		return
	}
	p, err := h.posts.FindAny(c.Request.Context(), v.PostID)
	if err != nil {
		internalError(c, h.log, "close post lookup", err)
		return
	}
	if p == nil || !user.CanMutate(p.UserID) {
		c.JSON(http.StatusForbidden, resp.Fail("no permission to close this vote"))
		return
	}

	if err := h.votes.Close(c.Request.Context(), voteID); err != nil {
		internalError(c, h.log, "close vote", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("vote closed", nil))
}

// parseEndDate accepts RFC3339 or a bare yyyy-mm-dd date (midnight UTC).
func parseEndDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
