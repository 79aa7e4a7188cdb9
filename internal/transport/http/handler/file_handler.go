package handler

import (
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"maeul-forum/internal/domain"
	"maeul-forum/internal/repo"
	"maeul-forum/internal/storage"
	"maeul-forum/internal/transport/http/middleware"
	resp "maeul-forum/internal/transport/http/response"
)

// allowedFileTypes is the upload MIME allow-list: photos and short clips
// of the complex, nothing executable.
var allowedFileTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

type FileHandler struct {
	files   *repo.FileRepo
	blobs   storage.BlobStore
	maxSize int64
	log     *zap.Logger
}

func NewFileHandler(files *repo.FileRepo, blobs storage.BlobStore, maxSize int64, log *zap.Logger) *FileHandler {
	return &FileHandler{files: files, blobs: blobs, maxSize: maxSize, log: log}
}

// Upload accepts one multipart file plus optional post_id / comment_id form
// fields linking the attachment to content.
func (h *FileHandler) Upload(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("file field is required"))
		return
	}
	if fh.Size > h.maxSize {
		c.JSON(http.StatusBadRequest, resp.Fail("file exceeds the maximum upload size"))
		return
	}
	ctype := fh.Header.Get("Content-Type")
	if !allowedFileTypes[ctype] {
		c.JSON(http.StatusBadRequest, resp.Fail("unsupported file type"))
		return
	}

	var postID, commentID *uint
	if v := c.PostForm("post_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, resp.Fail("invalid post_id"))
			return
		}
		u := uint(id)
		postID = &u
	}
	if v := c.PostForm("comment_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, resp.Fail("invalid comment_id"))
			return
		}
		u := uint(id)
		commentID = &u
	}

	src, err := fh.Open()
	if err != nil {
		internalError(c, h.log, "open upload", err)
		return
	}
	defer src.Close()

	key := storage.NewObjectKey(fh.Filename)
	size, err := h.blobs.Put(c.Request.Context(), key, src)
	if err != nil {
		internalError(c, h.log, "store upload", err)
		return
	}

	rec := domain.FileRecord{
		PostID:    postID,
		CommentID: commentID,
		UserID:    user.ID,
		Filename:  fh.Filename,
		Filesize:  size,
		Filetype:  ctype,
		URL:       "/api/files/" + path.Base(key),
	}
	if err := h.files.Create(c.Request.Context(), &rec); err != nil {
		if derr := h.blobs.Delete(c.Request.Context(), key); derr != nil {
			h.log.Warn("orphan blob cleanup failed", zap.String("key", key), zap.Error(derr))
		}
		internalError(c, h.log, "record upload", err)
		return
	}

	c.JSON(http.StatusOK, resp.Message("file uploaded", rec))
}

// Download streams a stored blob. Attachments are public once uploaded and
// content is long-lived, so far-future caching is safe: keys are never
// reused.
func (h *FileHandler) Download(c *gin.Context) {
	name := path.Base(c.Param("name"))
	url := "/api/files/" + name

	rec, err := h.files.FindByURL(c.Request.Context(), url)
	if err != nil {
		internalError(c, h.log, "file lookup", err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, resp.Fail("file not found"))
		return
	}

	body, size, err := h.blobs.Get(c.Request.Context(), "uploads/"+name)
	if err == storage.ErrNotFound {
		c.JSON(http.StatusNotFound, resp.Fail("file not found"))
		return
	}
	if err != nil {
		internalError(c, h.log, "file read", err)
		return
	}
	defer body.Close()

	ctype := rec.Filetype
	if ctype == "" {
		ctype = mime.TypeByExtension(path.Ext(name))
	}
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=31536000")
	c.DataFromReader(http.StatusOK, size, ctype, body, nil)
}

func (h *FileHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	rec, err := h.files.FindByID(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "delete file lookup", err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, resp.Fail("file not found"))
		return
	}
	if !user.CanMutate(rec.UserID) {
		c.JSON(http.StatusForbidden, resp.Fail("no permission to delete this file"))
		return
	}

	if err := h.files.Delete(c.Request.Context(), id); err != nil {
		internalError(c, h.log, "delete file record", err)
		return
	}
	key := "uploads/" + path.Base(rec.URL)
	if err := h.blobs.Delete(c.Request.Context(), key); err != nil && err != storage.ErrNotFound {
		h.log.Warn("blob delete failed", zap.String("key", key), zap.Error(err))
	}
	c.JSON(http.StatusOK, resp.Message("file deleted", nil))
}
