package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 对外只暴露 success 布尔值，失败时不返回任何细节
type Response struct {
	Success bool `json:"success"`
}

// Success 返回 {"success": true, ...fields}
func Success(c *gin.Context, fields gin.H) {
	body := gin.H{}
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	c.JSON(http.StatusOK, body)
}

func Fail(c *gin.Context, status int) {
	c.JSON(status, Response{Success: false})
}

func ParamError(c *gin.Context) {
	Fail(c, http.StatusBadRequest)
}

func NotFound(c *gin.Context) {
	Fail(c, http.StatusNotFound)
}

func ServerError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError)
}

// Ack 网关回调只需要纯文本 OK
func Ack(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
