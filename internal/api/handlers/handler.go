package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/api/middleware"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/sensor"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/service"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/pkg/ws"
)

// Handler HTTP 处理器
type Handler struct {
	logger         *zap.Logger
	store          *store.Store
	reservationSvc *service.ReservationService
	statsSvc       *service.StatsService
	authSvc        *service.AuthService
	simulator      *sensor.Simulator
	authMW         *middleware.AuthMiddleware
	wsHub          *ws.Hub
	upgrader       websocket.Upgrader
}

// NewHandler 创建处理器
func NewHandler(
	logger *zap.Logger,
	st *store.Store,
	reservationSvc *service.ReservationService,
	statsSvc *service.StatsService,
	authSvc *service.AuthService,
	simulator *sensor.Simulator,
	wsHub *ws.Hub,
) *Handler {
	return &Handler{
		logger:         logger,
		store:          st,
		reservationSvc: reservationSvc,
		statsSvc:       statsSvc,
		authSvc:        authSvc,
		simulator:      simulator,
		authMW:         middleware.NewAuthMiddleware(authSvc),
		wsHub:          wsHub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 开发环境允许所有来源
			},
		},
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// API 路由
	api := r.Group("/api")
	{
		// 认证
		api.POST("/auth/login", h.Login)
		api.POST("/auth/register", h.Register)
		api.GET("/auth/me", h.authMW.Authenticate(), h.CurrentUser)

		// 停车场（公开读取）
		api.GET("/parkings", h.ListParkings)
		api.GET("/parkings/stats", h.GetParkingStats)
		api.GET("/parkings/:id", h.GetParking)
		api.GET("/parkings/:id/slots", h.ListSlots)
		api.GET("/parkings/:id/stats", h.GetParkingStatsByID)

		// 预约（需登录）
		authed := api.Group("", h.authMW.Authenticate())
		{
			authed.POST("/reservations", h.CreateReservation)
			authed.GET("/reservations/user/:id", h.ListUserReservations)
			authed.POST("/reservations/:id/cancel", h.CancelReservation)
			authed.GET("/reservations/:id", h.GetReservation)
		}

		// 管理端
		admin := api.Group("", h.authMW.Authenticate(), h.authMW.RequireRole(models.RoleAdmin))
		{
			admin.POST("/parkings", h.CreateParking)
			admin.PUT("/parkings/:id", h.UpdateParking)
			admin.DELETE("/parkings/:id", h.DeleteParking)

			admin.PUT("/slots/:id/status", h.UpdateSlotStatus)

			admin.GET("/reservations", h.ListReservations)

			admin.GET("/users", h.ListUsers)
			admin.PUT("/users/:id/role", h.UpdateUserRole)
			admin.DELETE("/users/:id", h.DeleteUser)

			admin.GET("/stats/overview", h.GetOverview)
			admin.GET("/stats/daily", h.GetDailyStats)
			admin.GET("/stats/hourly", h.GetHourlyStats)

			admin.POST("/sensors/start", h.StartSensors)
			admin.POST("/sensors/stop", h.StopSensors)
			admin.GET("/sensors/log", h.GetSensorLog)
		}
	}

	// WebSocket
	r.GET("/ws", h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)
}

// HandleWebSocket WebSocket 处理
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	client.Register()

	// 启动读写协程
	go client.ReadPump()
	go client.WritePump()
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"ws_clients": h.wsHub.ClientCount(),
	})
}

// respondError 把领域错误映射为 HTTP 状态码
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrParkingNotFound),
		errors.Is(err, store.ErrSlotNotFound),
		errors.Is(err, store.ErrReservationNotFound),
		errors.Is(err, store.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrSlotUnavailable),
		errors.Is(err, store.ErrReservationNotActive),
		errors.Is(err, store.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
