package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StartSensors 启动传感器模拟（重复启动为 no-op）
// POST /api/sensors/start
func (h *Handler) StartSensors(c *gin.Context) {
	h.simulator.Start()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"state": h.simulator.State()}})
}

// StopSensors 停止传感器模拟（重复停止为 no-op）
// POST /api/sensors/stop
func (h *Handler) StopSensors(c *gin.Context) {
	h.simulator.Stop()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"state": h.simulator.State()}})
}

// GetSensorLog 获取传感器事件日志，最新的在前
// GET /api/sensors/log
func (h *Handler) GetSensorLog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state": h.simulator.State(),
			"log":   h.simulator.Log(),
		},
	})
}
