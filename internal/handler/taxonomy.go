package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atlas/internal/manager"
	"atlas/internal/model"
	"atlas/internal/permission"
)

// TaxonomyHandler 分类与标签接口处理器
type TaxonomyHandler struct {
	mgr  *manager.Manager
	perm *permission.Evaluator
}

// NewTaxonomyHandler 创建分类与标签处理器
func NewTaxonomyHandler(mgr *manager.Manager, perm *permission.Evaluator) *TaxonomyHandler {
	return &TaxonomyHandler{mgr: mgr, perm: perm}
}

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         分类与标签
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/categories [get]
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	respondOK(c, h.mgr.Categories.GetAll(c.Request.Context()))
}

// CreateCategory 新建分类
// @Summary      新建分类
// @Tags         分类与标签
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  model.Category  true  "分类"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/categories [post]
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	if !h.perm.CheckAction(user, permission.ModuleCategories, permission.ActionCreate) {
		respondForbidden(c)
		return
	}

	var req model.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, durable, err := h.mgr.Categories.Create(c.Request.Context(), &req)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	respondWrite(c, http.StatusCreated, category, durable)
}

// UpdateCategory 更新分类
// @Summary      更新分类（合并更新）
// @Tags         分类与标签
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string               true  "分类ID"
// @Param        request  body  model.CategoryPatch  true  "变更字段"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/categories/{id} [patch]
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	if !h.perm.CheckAction(user, permission.ModuleCategories, permission.ActionEdit) {
		respondForbidden(c)
		return
	}

	var patch model.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	category, durable, err := h.mgr.Categories.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	if category == nil {
		respondNotFound(c, "分类不存在")
		return
	}
	respondWrite(c, http.StatusOK, category, durable)
}

// DeleteCategory 删除分类
// @Summary      删除分类
// @Description  有子分类或有文章挂载的分类不能删除
// @Tags         分类与标签
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "分类ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/categories/{id} [delete]
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	if !h.perm.CheckAction(user, permission.ModuleCategories, permission.ActionDelete) {
		respondForbidden(c)
		return
	}

	removed, durable, err := h.mgr.Categories.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondManagerError(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "分类不存在")
		return
	}
	respondWrite(c, http.StatusOK, gin.H{"removed": true}, durable)
}

// ListTags 标签列表
// @Summary      标签列表
// @Tags         分类与标签
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/tags [get]
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	respondOK(c, h.mgr.Tags.GetAll(c.Request.Context()))
}

// TagRequest 新建标签请求
type TagRequest struct {
	Name string `json:"name" binding:"required"` // 标签名
}

// CreateTag 新建标签
// @Summary      新建标签
// @Tags         分类与标签
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  TagRequest  true  "标签"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/tags [post]
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	if !h.perm.CheckAction(user, permission.ModuleTags, permission.ActionCreate) {
		respondForbidden(c)
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tag, durable, err := h.mgr.Tags.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	respondWrite(c, http.StatusCreated, tag, durable)
}

// DeleteTag 删除标签
// @Summary      删除标签
// @Description  删除时自动从所有文章的标签列表中摘除
// @Tags         分类与标签
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "标签ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/tags/{id} [delete]
func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	if !h.perm.CheckAction(user, permission.ModuleTags, permission.ActionDelete) {
		respondForbidden(c)
		return
	}

	removed, durable, err := h.mgr.Tags.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondManagerError(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "标签不存在")
		return
	}
	respondWrite(c, http.StatusOK, gin.H{"removed": true}, durable)
}
