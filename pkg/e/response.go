package e

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 统一响应壳，业务码定义在 error.go
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: Success,
		Msg:  "success",
		Data: data,
	})
}

// 业务错误带码走 200，其余一律 500 并留日志
func ErrorResponse(c *gin.Context, err error) {
	var bizErr *Error
	if errors.As(err, &bizErr) {
		c.JSON(http.StatusOK, Response{
			Code: bizErr.Code,
			Msg:  bizErr.Msg,
		})
		return
	}
	log.Printf("unexpected error on %s: %v", c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, Response{
		Code: ErrorServer,
		Msg:  "服务器内部错误",
	})
}
