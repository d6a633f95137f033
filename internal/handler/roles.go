package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atlas/internal/manager"
	"atlas/internal/model"
	"atlas/internal/permission"
)

// RoleHandler 角色与权限接口处理器，全部写操作要求 roles.manage 权限
type RoleHandler struct {
	mgr  *manager.Manager
	perm *permission.Evaluator
}

// NewRoleHandler 创建角色处理器
func NewRoleHandler(mgr *manager.Manager, perm *permission.Evaluator) *RoleHandler {
	return &RoleHandler{mgr: mgr, perm: perm}
}

func (h *RoleHandler) authorize(c *gin.Context) bool {
	user := currentUser(c, h.mgr.Users)
	if !h.perm.CheckAction(user, permission.ModuleRoles, permission.ActionManage) {
		respondForbidden(c)
		return false
	}
	return true
}

// List 角色列表
// @Summary      角色列表
// @Tags         角色
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	respondOK(c, h.mgr.Roles.GetAll(c.Request.Context()))
}

// Permissions 权限项列表
// @Summary      权限项列表
// @Tags         角色
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/permissions [get]
func (h *RoleHandler) Permissions(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	respondOK(c, h.mgr.Roles.Permissions(c.Request.Context()))
}

// RolePermissions 指定角色已分配的权限项
// @Summary      角色的权限项
// @Description  角色-权限关联只存在于远端，远端不可达时返回空列表
// @Tags         角色
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "角色ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/roles/{id}/permissions [get]
func (h *RoleHandler) RolePermissions(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	roleID := c.Param("id")
	if h.mgr.Roles.GetByID(c.Request.Context(), roleID) == nil {
		respondNotFound(c, "角色不存在")
		return
	}
	respondOK(c, h.mgr.Roles.PermissionsOf(c.Request.Context(), roleID))
}

// Create 新建角色
// @Summary      新建角色
// @Tags         角色
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  model.Role  true  "角色"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	var req model.Role
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	role, durable, err := h.mgr.Roles.Create(c.Request.Context(), &req)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	respondWrite(c, http.StatusCreated, role, durable)
}

// Update 更新角色
// @Summary      更新角色（合并更新）
// @Description  系统角色不能降级为非系统角色
// @Tags         角色
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string           true  "角色ID"
// @Param        request  body  model.RolePatch  true  "变更字段"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/roles/{id} [patch]
func (h *RoleHandler) Update(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	var patch model.RolePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	role, durable, err := h.mgr.Roles.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	if role == nil {
		respondNotFound(c, "角色不存在")
		return
	}
	respondWrite(c, http.StatusOK, role, durable)
}

// Delete 删除角色
// @Summary      删除角色
// @Description  系统角色或仍分配给用户的角色不能删除
// @Tags         角色
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "角色ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/roles/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	removed, durable, err := h.mgr.Roles.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondManagerError(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "角色不存在")
		return
	}
	respondWrite(c, http.StatusOK, gin.H{"removed": true}, durable)
}
