package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"hattournament/src/app/http/response"
	"hattournament/src/app/middleware"
)

// pathID parses a positive int64 path parameter. On failure it writes a 400
// and returns false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, name, "must be a positive integer", middleware.GetRequestID(c))
		return 0, false
	}
	return id, true
}

// bind decodes the JSON body into req. On failure it writes a 400 and
// returns false.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "invalid payload: "+err.Error(), middleware.GetRequestID(c))
		return false
	}
	return true
}

func fail(c *gin.Context, err error) {
	if response.StatusOf(err) >= 500 {
		_ = c.Error(err)
	}
	response.FromDomainError(c, err, middleware.GetRequestID(c))
}
