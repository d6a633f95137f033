package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atlas/internal/manager"
	"atlas/internal/model"
	"atlas/internal/pkg/ctxutil"
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// 业务错误码
const (
	codeBadRequest   = 40001
	codeValidation   = 40002
	codeUnauthorized = 40101
	codeForbidden    = 40301
	codeNotFound     = 40401
	codeInternal     = 50001
)

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    data,
	})
}

// respondWrite 写操作响应，durable=false 表示远端不可达、只写入了内存缓存
func respondWrite(c *gin.Context, status int, data any, durable bool) {
	c.JSON(status, gin.H{
		"code":    0,
		"message": "success",
		"data":    data,
		"durable": durable,
	})
}

func respondError(c *gin.Context, status, code int, message string) {
	c.JSON(status, ErrorResponse{Code: code, Message: message})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    codeBadRequest,
		Message: "Invalid request body",
		Detail:  err.Error(),
	})
}

// respondManagerError 校验错误报 400，其余报 500
func respondManagerError(c *gin.Context, err error) {
	if manager.IsValidation(err) {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	respondError(c, http.StatusInternalServerError, codeInternal, err.Error())
}

func respondNotFound(c *gin.Context, message string) {
	respondError(c, http.StatusNotFound, codeNotFound, message)
}

func respondForbidden(c *gin.Context) {
	respondError(c, http.StatusForbidden, codeForbidden, "没有权限执行该操作")
}

// currentUser 从认证中间件注入的身份解析出完整用户
// 权限判定要求用完整用户记录，而不是 JWT 里的快照角色
func currentUser(c *gin.Context, users *manager.UserManager) *model.User {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		return nil
	}
	return users.GetByID(c.Request.Context(), ident.UserID)
}
