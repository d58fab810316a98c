package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/config"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/sensor"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/service"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store/seed"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/pkg/ws"
)

type testEnv struct {
	router  *gin.Engine
	store   *store.Store
	authSvc *service.AuthService
}

// newTestEnv 搭建完整的路由与固定数据：一个全 available 的停车场加两个用户
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	st := store.New()
	st.AddParking(models.Parking{
		ID:           "parking-1",
		Name:         "Parking Central",
		Capacity:     4,
		PricePerHour: 5,
	}, seed.NewSlots("parking-1", 4))

	require.NoError(t, st.AddUser(models.User{
		ID:    "user-1",
		Name:  "Ahmed Benali",
		Email: "ahmed.benali@univ.edu",
		Role:  models.RoleStudent,
	}))
	require.NoError(t, st.AddUser(models.User{
		ID:    "admin-1",
		Name:  "Mohamed Admin",
		Email: "admin@univ.edu",
		Role:  models.RoleAdmin,
	}))

	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	wsHub := ws.NewHub(logger)
	authSvc := service.NewAuthService(logger, st, cfg)
	reservationSvc := service.NewReservationService(logger, st, wsHub)
	statsSvc := service.NewStatsService(st)
	sim := sensor.New(logger, st, wsHub, 10*time.Millisecond, false, rand.New(rand.NewSource(1)))

	h := NewHandler(logger, st, reservationSvc, statsSvc, authSvc, sim, wsHub)
	router := gin.New()
	h.RegisterRoutes(router)

	return &testEnv{router: router, store: st, authSvc: authSvc}
}

// token 为指定邮箱签发访问 token
func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	resp, err := e.authSvc.Login(context.Background(), email)
	require.NoError(t, err)
	return resp.Token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ahmed.benali@univ.edu",
		"password": "whatever",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data service.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.Data.User.ID)
	assert.NotEmpty(t, resp.Data.Token)
	assert.NotEmpty(t, resp.Data.RefreshToken)
}

func TestLoginEndpoint_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@univ.edu",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Fatima Zahra",
		"email":    "fatima.zahra@univ.edu",
		"password": "whatever",
		"role":     "staff",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 重复邮箱
	w = env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Fatima Zahra",
		"email":    "fatima.zahra@univ.edu",
		"password": "whatever",
		"role":     "staff",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetParking_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/parkings/parking-99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSlots_StatusFilter(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.store.SetSlotStatus("parking-1-slot-1", models.SlotOccupied)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/parkings/parking-1/slots?status=available", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Slot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3)

	w = env.do(t, http.MethodGet, "/api/parkings/parking-1/slots?status=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservation(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "ahmed.benali@univ.edu")

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	w := env.do(t, http.MethodPost, "/api/reservations", token, gin.H{
		"parking_id": "parking-1",
		"slot_id":    "parking-1-slot-2",
		"start_time": start,
		"end_time":   start.Add(2 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Reservation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.Data.UserID)
	assert.Equal(t, 10, resp.Data.TotalPrice)
	assert.Equal(t, models.ReservationActive, resp.Data.Status)

	slot, err := env.store.GetSlot("parking-1-slot-2")
	require.NoError(t, err)
	assert.Equal(t, models.SlotReserved, slot.Status)
}

func TestCreateReservation_Unauthorized(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/reservations", "", gin.H{
		"parking_id": "parking-1",
		"slot_id":    "parking-1-slot-2",
		"start_time": time.Now(),
		"end_time":   time.Now().Add(time.Hour),
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateReservation_SlotConflict(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "ahmed.benali@univ.edu")

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	body := gin.H{
		"parking_id": "parking-1",
		"slot_id":    "parking-1-slot-3",
		"start_time": start,
		"end_time":   start.Add(time.Hour),
	}

	w := env.do(t, http.MethodPost, "/api/reservations", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/reservations", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateReservation_InvalidRange(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "ahmed.benali@univ.edu")

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	w := env.do(t, http.MethodPost, "/api/reservations", token, gin.H{
		"parking_id": "parking-1",
		"slot_id":    "parking-1-slot-2",
		"start_time": start,
		"end_time":   start.Add(-time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 车位不应被占用
	slot, err := env.store.GetSlot("parking-1-slot-2")
	require.NoError(t, err)
	assert.Equal(t, models.SlotAvailable, slot.Status)
}

func TestCancelReservation(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "ahmed.benali@univ.edu")

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	w := env.do(t, http.MethodPost, "/api/reservations", token, gin.H{
		"parking_id": "parking-1",
		"slot_id":    "parking-1-slot-2",
		"start_time": start,
		"end_time":   start.Add(time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Reservation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = env.do(t, http.MethodPost, "/api/reservations/"+resp.Data.ID+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	slot, err := env.store.GetSlot("parking-1-slot-2")
	require.NoError(t, err)
	assert.Equal(t, models.SlotAvailable, slot.Status)

	// 二次取消冲突
	w = env.do(t, http.MethodPost, "/api/reservations/"+resp.Data.ID+"/cancel", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListUserReservations_Permissions(t *testing.T) {
	env := newTestEnv(t)
	studentToken := env.token(t, "ahmed.benali@univ.edu")
	adminToken := env.token(t, "admin@univ.edu")

	// 普通用户看别人的列表被拒
	w := env.do(t, http.MethodGet, "/api/reservations/user/admin-1", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 看自己的可以
	w = env.do(t, http.MethodGet, "/api/reservations/user/user-1", studentToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 管理员看任何人的都可以
	w = env.do(t, http.MethodGet, "/api/reservations/user/user-1", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	studentToken := env.token(t, "ahmed.benali@univ.edu")

	w := env.do(t, http.MethodGet, "/api/reservations", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/users", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateSlotStatus(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.token(t, "admin@univ.edu")

	w := env.do(t, http.MethodPut, "/api/slots/parking-1-slot-1/status", adminToken, gin.H{
		"status": "occupied",
	})
	require.Equal(t, http.StatusOK, w.Code)

	slot, err := env.store.GetSlot("parking-1-slot-1")
	require.NoError(t, err)
	assert.Equal(t, models.SlotOccupied, slot.Status)

	w = env.do(t, http.MethodPut, "/api/slots/parking-99-slot-1/status", adminToken, gin.H{
		"status": "occupied",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateParking(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.token(t, "admin@univ.edu")

	w := env.do(t, http.MethodPost, "/api/parkings", adminToken, gin.H{
		"name":           "Parking Stade",
		"zone":           "Zone D - Complexe Sportif",
		"capacity":       10,
		"price_per_hour": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Parking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	slots := env.store.ListSlotsByParking(resp.Data.ID)
	require.Len(t, slots, 10)
	for _, slot := range slots {
		assert.Equal(t, models.SlotAvailable, slot.Status)
	}
}

func TestSensorLifecycle(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.token(t, "admin@univ.edu")

	w := env.do(t, http.MethodPost, "/api/sensors/start", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"running"`)

	w = env.do(t, http.MethodGet, "/api/sensors/log", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/sensors/stop", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"stopped"`)
}

func TestParkingStats(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.store.SetSlotStatus("parking-1-slot-1", models.SlotOccupied)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/parkings/parking-1/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.ParkingStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Data.TotalSpots)
	assert.Equal(t, 1, resp.Data.OccupiedSpots)
	assert.Equal(t, 25, resp.Data.OccupancyRate)
}
