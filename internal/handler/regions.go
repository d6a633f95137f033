package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atlas/internal/manager"
	"atlas/internal/model"
	"atlas/internal/permission"
)

// RegionHandler 地区接口处理器
type RegionHandler struct {
	mgr  *manager.Manager
	perm *permission.Evaluator
}

// NewRegionHandler 创建地区处理器
func NewRegionHandler(mgr *manager.Manager, perm *permission.Evaluator) *RegionHandler {
	return &RegionHandler{mgr: mgr, perm: perm}
}

// List 地区列表
// @Summary      地区列表
// @Description  列出全部地区，带 keyword 参数时做关键词检索
// @Tags         地区
// @Produce      json
// @Param        keyword  query  string  false  "检索关键词"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/regions [get]
func (h *RegionHandler) List(c *gin.Context) {
	if kw := c.Query("keyword"); kw != "" {
		respondOK(c, h.mgr.Regions.Search(c.Request.Context(), kw))
		return
	}
	respondOK(c, h.mgr.Regions.GetAll(c.Request.Context()))
}

// Get 地区详情
// @Summary      地区详情
// @Tags         地区
// @Produce      json
// @Param        id  path  string  true  "地区ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/regions/{id} [get]
func (h *RegionHandler) Get(c *gin.Context) {
	region := h.mgr.Regions.GetByID(c.Request.Context(), c.Param("id"))
	if region == nil {
		respondNotFound(c, "地区不存在")
		return
	}
	respondOK(c, region)
}

// Children 子地区列表
// @Summary      子地区列表
// @Tags         地区
// @Produce      json
// @Param        id  path  string  true  "地区ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/regions/{id}/children [get]
func (h *RegionHandler) Children(c *gin.Context) {
	respondOK(c, h.mgr.Regions.Children(c.Request.Context(), c.Param("id")))
}

// Create 新建地区
// @Summary      新建地区
// @Tags         地区
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  model.Region  true  "地区"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/regions [post]
func (h *RegionHandler) Create(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	if !h.perm.CheckAction(user, permission.ModuleRegions, permission.ActionCreate) {
		respondForbidden(c)
		return
	}

	var req model.Region
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	region, durable, err := h.mgr.Regions.Create(c.Request.Context(), &req)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	respondWrite(c, http.StatusCreated, region, durable)
}

// Update 更新地区
// @Summary      更新地区（合并更新）
// @Tags         地区
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string             true  "地区ID"
// @Param        request  body  model.RegionPatch  true  "变更字段"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/regions/{id} [patch]
func (h *RegionHandler) Update(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	if !h.perm.CheckAction(user, permission.ModuleRegions, permission.ActionEdit) {
		respondForbidden(c)
		return
	}

	var patch model.RegionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	region, durable, err := h.mgr.Regions.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	if region == nil {
		respondNotFound(c, "地区不存在")
		return
	}
	respondWrite(c, http.StatusOK, region, durable)
}

// Delete 删除地区
// @Summary      删除地区
// @Description  有子地区或有文章引用的地区不能删除
// @Tags         地区
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "地区ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/regions/{id} [delete]
func (h *RegionHandler) Delete(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	if !h.perm.CheckAction(user, permission.ModuleRegions, permission.ActionDelete) {
		respondForbidden(c)
		return
	}

	removed, durable, err := h.mgr.Regions.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondManagerError(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "地区不存在")
		return
	}
	respondWrite(c, http.StatusOK, gin.H{"removed": true}, durable)
}
