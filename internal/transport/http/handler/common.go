package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "maeul-forum/internal/transport/http/response"
)

// internalError logs the real failure and hands the caller a generic 500.
func internalError(c *gin.Context, l *zap.Logger, op string, err error) {
	l.Error(op, zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, resp.Fail("internal server error"))
}

// paramID parses a numeric path parameter; on failure it writes the 400
// itself and reports false.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, resp.Fail("invalid id"))
		return 0, false
	}
	return uint(id), true
}
