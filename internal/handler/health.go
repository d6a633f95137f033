package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atlas/internal/manager"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	mgr *manager.Manager
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(mgr *manager.Manager) *HealthHandler {
	return &HealthHandler{mgr: mgr}
}

// Health 健康检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready 就绪检查
// 报告远端存储最近一次同步时间；从未同步过说明正运行在兜底数据上
func (h *HealthHandler) Ready(c *gin.Context) {
	resp := gin.H{"status": "ready"}
	if t, ok := h.mgr.Regions.LastUpdated(); ok {
		resp["regions_synced_at"] = t.Format(time.RFC3339)
	} else {
		resp["regions_synced_at"] = nil
	}
	if t, ok := h.mgr.Articles.LastUpdated(); ok {
		resp["articles_synced_at"] = t.Format(time.RFC3339)
	} else {
		resp["articles_synced_at"] = nil
	}
	c.JSON(http.StatusOK, resp)
}
