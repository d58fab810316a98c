package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/api/middleware"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
)

type createReservationRequest struct {
	ParkingID string    `json:"parking_id" binding:"required"`
	SlotID    string    `json:"slot_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// CreateReservation 创建预约，用户取自登录态
// POST /api/reservations
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID := c.GetString(middleware.UserIDKey)
	res, err := h.reservationSvc.Create(c.Request.Context(), userID, req.ParkingID, req.SlotID, req.StartTime, req.EndTime)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": res})
}

// CancelReservation 取消预约
// POST /api/reservations/:id/cancel
func (h *Handler) CancelReservation(c *gin.Context) {
	if err := h.reservationSvc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled"})
}

// GetReservation 获取预约详情
func (h *Handler) GetReservation(c *gin.Context) {
	res, err := h.reservationSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}

// ListUserReservations 获取某用户的预约列表。
// 普通用户只能看自己的，管理员可以看任何人的。
// GET /api/reservations/user/:id
func (h *Handler) ListUserReservations(c *gin.Context) {
	targetID := c.Param("id")
	callerID := c.GetString(middleware.UserIDKey)
	callerRole := c.GetString(middleware.UserRoleKey)

	if targetID != callerID && callerRole != string(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": h.reservationSvc.ListByUser(c.Request.Context(), targetID)})
}

// ListReservations 获取全部预约（管理端）
// GET /api/reservations
func (h *Handler) ListReservations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.reservationSvc.ListAll(c.Request.Context())})
}
