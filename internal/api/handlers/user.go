package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
)

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student staff admin"`
}

// ListUsers 获取用户列表（管理端）
// GET /api/users
func (h *Handler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.store.ListUsers()})
}

// UpdateUserRole 修改用户角色
// PUT /api/users/:id/role
func (h *Handler) UpdateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.store.UpdateUserRole(c.Param("id"), models.UserRole(req.Role))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("User role updated", zap.String("user_id", user.ID), zap.String("role", req.Role))
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// DeleteUser 删除用户
// DELETE /api/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.store.DeleteUser(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("User deleted", zap.String("user_id", c.Param("id")))
	c.Status(http.StatusNoContent)
}
