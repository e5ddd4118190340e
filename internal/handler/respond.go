package handler

import (
	"net/http"

	"Group_Hub/internal/pkg"

	"github.com/gin-gonic/gin"
)

// fail 按错误类别统一翻译 HTTP 状态码，业务语义只在 service 层
func fail(c *gin.Context, err error) {
	var status int
	switch pkg.KindOf(err) {
	case pkg.KindValidation:
		status = http.StatusBadRequest
	case pkg.KindConflict:
		status = http.StatusConflict
	case pkg.KindAuthorization:
		status = http.StatusForbidden
	case pkg.KindNotFound:
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}

func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}
