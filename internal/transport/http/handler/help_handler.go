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

type HelpHandler struct {
	help *repo.HelpRepo
	log  *zap.Logger
}

func NewHelpHandler(help *repo.HelpRepo, log *zap.Logger) *HelpHandler {
	return &HelpHandler{help: help, log: log}
}

func (h *HelpHandler) List(c *gin.Context) {
	rows, err := h.help.List(c.Request.Context(), repo.HelpFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	})
	if err != nil {
		internalError(c, h.log, "list help requests", err)
		return
	}
	if rows == nil {
		rows = []domain.HelpRequestDetail{}
	}
	c.JSON(http.StatusOK, resp.OK(rows))
}

// Get is public, but the applications list (applicant identities and phone
// numbers) is only attached for the request owner or an admin.
func (h *HelpHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.help.Detail(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "get help request", err)
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, resp.Fail("help request not found"))
		return
	}

	applications := []domain.HelpApplicationDetail{}
	if user, ok := middleware.CurrentUser(c); ok && user.CanMutate(detail.UserID) {
		applications, err = h.help.Applications(c.Request.Context(), id)
		if err != nil {
			internalError(c, h.log, "help applications", err)
			return
		}
		if applications == nil {
			applications = []domain.HelpApplicationDetail{}
		}
	}

	c.JSON(http.StatusOK, resp.OK(gin.H{
		"request":      detail,
		"applications": applications,
	}))
}

type helpReq struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Location string `json:"location"`
	Category string `json:"category"`
	Pay      int    `json:"pay"`
	Status   string `json:"status"`
}

func (h *HelpHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	var in helpReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid request body"))
		return
	}
	if in.Title == "" || in.Content == "" || in.Category == "" {
		c.JSON(http.StatusBadRequest, resp.Fail("title, content and category are required"))
		return
	}
	if !domain.ValidHelpCategory(in.Category) {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid category"))
		return
	}

	req := domain.HelpRequest{
		UserID:   user.ID,
		Title:    in.Title,
		Content:  in.Content,
		Location: in.Location,
		Category: in.Category,
		Pay:      in.Pay,
		Status:   domain.HelpOpen,
	}
	if err := h.help.Create(c.Request.Context(), &req); err != nil {
		internalError(c, h.log, "create help request", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("help request created", gin.H{"id": req.ID}))
}

func (h *HelpHandler) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in helpReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid request body"))
		return
	}
	if in.Title == "" || in.Content == "" || !domain.ValidHelpCategory(in.Category) {
		c.JSON(http.StatusBadRequest, resp.Fail("title, content and a valid category are required"))
		return
	}
	if in.Status != "" && !domain.ValidHelpStatus(in.Status) {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid status"))
		return
	}

	req, err := h.help.FindByID(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "update help lookup", err)
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, resp.Fail("help request not found"))
		return
	}
	if !user.CanMutate(req.UserID) {
		c.JSON(http.StatusForbidden, resp.Fail("no permission to edit this request"))
		return
	}

	req.Title = in.Title
	req.Content = in.Content
	req.Location = in.Location
	req.Category = in.Category
	req.Pay = in.Pay
	if in.Status != "" {
		req.Status = in.Status
	}
	if err := h.help.Update(c.Request.Context(), req); err != nil {
		internalError(c, h.log, "update help request", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("help request updated", nil))
}

func (h *HelpHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	req, err := h.help.FindByID(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "delete help lookup", err)
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, resp.Fail("help request not found"))
		return
	}
	if !user.CanMutate(req.UserID) {
		c.JSON(http.StatusForbidden, resp.Fail("no permission to delete this request"))
		return
	}

	if err := h.help.Delete(c.Request.Context(), id); err != nil {
		internalError(c, h.log, "delete help request", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("help request deleted", nil))
}

// Apply files an application on an open request. Owners cannot apply to
// their own request, and one application per resident is enforced before
// the insert (the unique index is the concurrent backstop).
func (h *HelpHandler) Apply(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in struct {
		Message string `json:"message"`
	}
	_ = c.ShouldBindJSON(&in) // message is optional; an empty body is fine

	req, err := h.help.FindByID(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "apply lookup", err)
		return
	}
	if req == nil || req.Status != domain.HelpOpen {
		c.JSON(http.StatusNotFound, resp.Fail("help request is not open"))
		return
	}
	if req.UserID == user.ID {
		c.JSON(http.StatusBadRequest, resp.Fail("cannot apply to your own request"))
		return
	}

	applied, err := h.help.HasApplied(c.Request.Context(), id, user.ID)
	if err != nil {
		internalError(c, h.log, "apply check", err)
		return
	}
	if applied {
		c.JSON(http.StatusBadRequest, resp.Fail("already applied"))
		return
	}

	app := domain.HelpApplication{
		HelpRequestID: id,
		UserID:        user.ID,
		Message:       in.Message,
		Status:        domain.ApplicationPending,
	}
	if err := h.help.Apply(c.Request.Context(), &app); err != nil {
		internalError(c, h.log, "apply", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("application submitted", gin.H{"id": app.ID}))
}

// CancelApplication removes the caller's own application. Idempotent.
func (h *HelpHandler) CancelApplication(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.help.CancelApplication(c.Request.Context(), id, user.ID); err != nil {
		internalError(c, h.log, "cancel application", err)
		return
	}
	c.JSON(http.StatusOK, resp.Message("application cancelled", nil))
}

// Decide accepts or rejects an application. Accepting moves the parent
// request to in_progress in the same transaction; other pending
// applications are left for the owner to handle.
func (h *HelpHandler) Decide(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil ||
		(in.Status != domain.ApplicationAccepted && in.Status != domain.ApplicationRejected) {
		c.JSON(http.StatusBadRequest, resp.Fail("status must be accepted or rejected"))
		return
	}

	app, err := h.help.FindApplication(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "decide lookup", err)
		return
	}
	if app == nil {
		c.JSON(http.StatusNotFound, resp.Fail("application not found"))
		return
	}
	req, err := h.help.FindByID(c.Request.Context(), app.HelpRequestID)
	if err != nil {
		internalError(c, h.log, "decide request lookup", err)
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, resp.Fail("help request not found"))
		return
	}
	if !user.CanMutate(req.UserID) {
		c.JSON(http.StatusForbidden, resp.Fail("no permission to decide this application"))
		return
	}

	if err := h.help.Decide(c.Request.Context(), app, in.Status); err != nil {
		internalError(c, h.log, "decide application", err)
		return
	}
	msg := "application rejected"
	if in.Status == domain.ApplicationAccepted {
		msg = "application accepted"
	}
	c.JSON(http.StatusOK, resp.Message(msg, nil))
}
