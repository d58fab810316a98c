package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetOverview 管理后台总览
// GET /api/stats/overview
func (h *Handler) GetOverview(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.statsSvc.Overview()})
}

// GetDailyStats 按天统计
// GET /api/stats/daily
func (h *Handler) GetDailyStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.statsSvc.Daily()})
}

// GetHourlyStats 按小时统计
// GET /api/stats/hourly
func (h *Handler) GetHourlyStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.statsSvc.Hourly()})
}
