package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store/seed"
)

type parkingRequest struct {
	Name         string             `json:"name" binding:"required"`
	Zone         string             `json:"zone"`
	Capacity     int                `json:"capacity" binding:"min=0"`
	Coordinates  models.Coordinates `json:"coordinates"`
	Address      string             `json:"address"`
	OpenHours    string             `json:"open_hours"`
	PricePerHour int                `json:"price_per_hour" binding:"min=0"`
}

// ListParkings 获取停车场列表
func (h *Handler) ListParkings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.store.ListParkings()})
}

// GetParking 获取停车场详情
func (h *Handler) GetParking(c *gin.Context) {
	parking, err := h.store.GetParking(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": parking})
}

// CreateParking 创建停车场并按容量生成车位
// POST /api/parkings
func (h *Handler) CreateParking(c *gin.Context) {
	var req parkingRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	parking := models.Parking{
		ID:             fmt.Sprintf("parking-%d", time.Now().UnixMilli()),
		Name:           req.Name,
		Zone:           req.Zone,
		Capacity:       req.Capacity,
		AvailableSpots: req.Capacity,
		Coordinates:    req.Coordinates,
		Address:        req.Address,
		OpenHours:      req.OpenHours,
		PricePerHour:   req.PricePerHour,
	}

	// 新停车场的车位统一从 available 开始
	created := h.store.AddParking(parking, seed.NewSlots(parking.ID, req.Capacity))
	h.logger.Info("Parking created", zap.String("parking_id", created.ID), zap.Int("capacity", created.Capacity))

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// UpdateParking 更新停车场信息
// PUT /api/parkings/:id
func (h *Handler) UpdateParking(c *gin.Context) {
	var req parkingRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updated, err := h.store.UpdateParking(c.Param("id"), func(p *models.Parking) {
		p.Name = req.Name
		p.Zone = req.Zone
		p.Coordinates = req.Coordinates
		p.Address = req.Address
		p.OpenHours = req.OpenHours
		p.PricePerHour = req.PricePerHour
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteParking 删除停车场
// DELETE /api/parkings/:id
func (h *Handler) DeleteParking(c *gin.Context) {
	if err := h.store.DeleteParking(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Parking deleted", zap.String("parking_id", c.Param("id")))
	c.Status(http.StatusNoContent)
}

// ListSlots 获取停车场车位，支持 ?status= 过滤（all 不过滤）
// GET /api/parkings/:id/slots
func (h *Handler) ListSlots(c *gin.Context) {
	status := c.DefaultQuery("status", store.StatusAll)
	if status != store.StatusAll && !models.SlotStatus(status).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot status"})
		return
	}

	slots := h.store.FilterSlotsByStatus(c.Param("id"), status)
	c.JSON(http.StatusOK, gin.H{"data": slots})
}

// GetParkingStats 所有停车场的占用统计
// GET /api/parkings/stats
func (h *Handler) GetParkingStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.statsSvc.ComputeOverall()})
}

// GetParkingStatsByID 单个停车场的占用统计
// GET /api/parkings/:id/stats
func (h *Handler) GetParkingStatsByID(c *gin.Context) {
	if _, err := h.store.GetParking(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": h.statsSvc.ComputeByParking(c.Param("id"))})
}
