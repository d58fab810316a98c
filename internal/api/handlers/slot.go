package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
)

type updateSlotStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available reserved occupied"`
}

// UpdateSlotStatus 管理端直接覆写车位状态
// PUT /api/slots/:id/status
func (h *Handler) UpdateSlotStatus(c *gin.Context) {
	var req updateSlotStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	slot, err := h.store.SetSlotStatus(c.Param("id"), models.SlotStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Slot status overridden",
		zap.String("slot_id", slot.ID),
		zap.String("status", req.Status))
	h.wsHub.BroadcastSlotUpdate(slot)

	c.JSON(http.StatusOK, gin.H{"data": slot})
}
