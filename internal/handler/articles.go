package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"atlas/internal/manager"
	"atlas/internal/model"
	"atlas/internal/permission"
)

// ArticleHandler 文章接口处理器
type ArticleHandler struct {
	mgr  *manager.Manager
	perm *permission.Evaluator
}

// NewArticleHandler 创建文章处理器
func NewArticleHandler(mgr *manager.Manager, perm *permission.Evaluator) *ArticleHandler {
	return &ArticleHandler{mgr: mgr, perm: perm}
}

// List 文章分页列表
// @Summary      文章分页列表
// @Description  支持 status/author_id/location_id/keyword 过滤，条件之间取 AND
// @Tags         文章
// @Produce      json
// @Param        page       query  int     false  "页码，从 1 开始"
// @Param        page_size  query  int     false  "每页条数，默认 10"
// @Param        status     query  string  false  "状态过滤"
// @Param        author_id  query  string  false  "作者过滤"
// @Param        location_id query string  false  "地区过滤"
// @Param        keyword    query  string  false  "检索关键词"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/topics [get]
func (h *ArticleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	opts := manager.ListOptions{
		Page:     page,
		PageSize: pageSize,
		Status:   model.ArticleStatus(c.Query("status")),
		AuthorID: c.Query("author_id"),
		RegionID: c.Query("location_id"),
		Keyword:  c.Query("keyword"),
	}
	if opts.Status != "" && !opts.Status.IsValid() {
		respondError(c, http.StatusBadRequest, codeBadRequest, "非法状态过滤条件")
		return
	}

	respondOK(c, h.mgr.Articles.List(c.Request.Context(), opts))
}

// Get 文章详情
// @Summary      文章详情
// @Tags         文章
// @Produce      json
// @Param        id  path  string  true  "文章ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/topics/{id} [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	article := h.mgr.Articles.GetByID(c.Request.Context(), c.Param("id"))
	if article == nil {
		respondNotFound(c, "文章不存在")
		return
	}
	respondOK(c, article)
}

// Create 新建文章
// @Summary      新建文章
// @Description  作者固定为当前登录用户，初始状态默认 draft
// @Tags         文章
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  model.Article  true  "文章"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/topics [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	if !h.perm.CheckAction(user, permission.ModuleArticles, permission.ActionCreate) {
		respondForbidden(c)
		return
	}

	var req model.Article
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	req.AuthorID = user.ID

	article, durable, err := h.mgr.Articles.Create(c.Request.Context(), &req)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	respondWrite(c, http.StatusCreated, article, durable)
}

// Update 更新文章
// @Summary      更新文章（合并更新）
// @Description  writer 只能改自己的文章，editor 及以上不受限
// @Tags         文章
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string              true  "文章ID"
// @Param        request  body  model.ArticlePatch  true  "变更字段"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/topics/{id} [patch]
func (h *ArticleHandler) Update(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	article := h.mgr.Articles.GetByID(c.Request.Context(), c.Param("id"))
	if article == nil {
		respondNotFound(c, "文章不存在")
		return
	}
	if !permission.CanEditArticle(user, article) {
		respondForbidden(c)
		return
	}

	var patch model.ArticlePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}
	if patch.Status != nil && *patch.Status == model.StatusPublished &&
		!h.perm.CheckAction(user, permission.ModuleArticles, permission.ActionPublish) {
		respondForbidden(c)
		return
	}

	updated, durable, err := h.mgr.Articles.Update(c.Request.Context(), article.ID, &patch, user.ID)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	respondWrite(c, http.StatusOK, updated, durable)
}

// StatusRequest 状态流转请求
type StatusRequest struct {
	Status model.ArticleStatus `json:"status" binding:"required"` // 目标状态
}

// ChangeStatus 文章状态流转
// @Summary      文章状态流转
// @Description  任意状态之间都允许流转；流转到 published 需要发布权限
// @Tags         文章
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string         true  "文章ID"
// @Param        request  body  StatusRequest  true  "目标状态"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/topics/{id}/status [put]
func (h *ArticleHandler) ChangeStatus(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	article := h.mgr.Articles.GetByID(c.Request.Context(), c.Param("id"))
	if article == nil {
		respondNotFound(c, "文章不存在")
		return
	}
	if !permission.CanEditArticle(user, article) {
		respondForbidden(c)
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Status == model.StatusPublished &&
		!h.perm.CheckAction(user, permission.ModuleArticles, permission.ActionPublish) {
		respondForbidden(c)
		return
	}

	updated, durable, err := h.mgr.Articles.ChangeStatus(c.Request.Context(), article.ID, req.Status, user.ID)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	respondWrite(c, http.StatusOK, updated, durable)
}

// Versions 文章版本记录
// @Summary      文章版本记录
// @Tags         文章
// @Produce      json
// @Param        id  path  string  true  "文章ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/topics/{id}/versions [get]
func (h *ArticleHandler) Versions(c *gin.Context) {
	if h.mgr.Articles.GetByID(c.Request.Context(), c.Param("id")) == nil {
		respondNotFound(c, "文章不存在")
		return
	}
	respondOK(c, h.mgr.Articles.Versions(c.Request.Context(), c.Param("id")))
}

// Delete 删除文章
// @Summary      删除文章
// @Description  writer 只能删自己的文章，editor 及以上不受限
// @Tags         文章
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "文章ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/topics/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	user := currentUser(c, h.mgr.Users)
	article := h.mgr.Articles.GetByID(c.Request.Context(), c.Param("id"))
	if article == nil {
		respondNotFound(c, "文章不存在")
		return
	}
	if !permission.CanDeleteArticle(user, article) {
		respondForbidden(c)
		return
	}

	removed, durable, err := h.mgr.Articles.Delete(c.Request.Context(), article.ID)
	if err != nil {
		respondManagerError(c, err)
		return
	}
	respondWrite(c, http.StatusOK, gin.H{"removed": removed}, durable)
}
