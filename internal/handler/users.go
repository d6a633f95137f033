package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atlas/internal/manager"
	"atlas/internal/model"
	"atlas/internal/permission"
	"atlas/internal/pkg/password"
)

// UserHandler 用户管理接口处理器，全部操作要求 users.manage 权限
type UserHandler struct {
	mgr  *manager.Manager
	perm *permission.Evaluator
}

// NewUserHandler 创建用户处理器
func NewUserHandler(mgr *manager.Manager, perm *permission.Evaluator) *UserHandler {
	return &UserHandler{mgr: mgr, perm: perm}
}

func (h *UserHandler) authorize(c *gin.Context) bool {
	user := currentUser(c, h.mgr.Users)
	if !h.perm.CheckAction(user, permission.ModuleUsers, permission.ActionManage) {
		respondForbidden(c)
		return false
	}
	return true
}

// List 用户列表
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        role  query  string  false  "按角色过滤"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	if role := c.Query("role"); role != "" {
		respondOK(c, h.mgr.Users.ByRole(c.Request.Context(), role))
		return
	}
	respondOK(c, h.mgr.Users.GetAll(c.Request.Context()))
}

// Get 用户详情
// @Summary      用户详情
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "用户ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	user := h.mgr.Users.GetByID(c.Request.Context(), c.Param("id"))
	if user == nil {
		respondNotFound(c, "用户不存在")
		return
	}
	respondOK(c, user)
}

// CreateUserRequest 新建用户请求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"` // 用户名
	Email    string `json:"email" binding:"required"`    // 邮箱
	Password string `json:"password" binding:"required"` // 明文密码
	Phone    string `json:"phone"`                       // 手机号（可选）
	Role     string `json:"role"`                        // 角色，缺省 viewer
}

// Create 新建用户
// @Summary      新建用户
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreateUserRequest  true  "用户"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, codeInternal, "密码加密失败")
		return
	}

	user, durable, err := h.mgr.Users.Create(c.Request.Context(), &model.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashed,
		Role:         req.Role,
	})
	if err != nil {
		respondManagerError(c, err)
		return
	}
	respondWrite(c, http.StatusCreated, user, durable)
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"` // 明文密码，提供时重置
	Role     *string `json:"role,omitempty"`
}

// Update 更新用户
// @Summary      更新用户（合并更新）
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string             true  "用户ID"
// @Param        request  body  UpdateUserRequest  true  "变更字段"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	patch := &model.UserPatch{
		Email: req.Email,
		Phone: req.Phone,
		Role:  req.Role,
	}
	if req.Password != nil {
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			respondError(c, http.StatusInternalServerError, codeInternal, "密码加密失败")
			return
		}
		patch.PasswordHash = &hashed
	}

	user, durable, err := h.mgr.Users.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	if user == nil {
		respondNotFound(c, "用户不存在")
		return
	}
	respondWrite(c, http.StatusOK, user, durable)
}

// Delete 删除用户
// @Summary      删除用户
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "用户ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	removed, durable, err := h.mgr.Users.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondManagerError(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "用户不存在")
		return
	}
	respondWrite(c, http.StatusOK, gin.H{"removed": true}, durable)
}
