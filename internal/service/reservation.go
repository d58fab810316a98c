package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/pkg/ws"
)

// ErrInvalidTimeRange 结束时间不晚于开始时间
var ErrInvalidTimeRange = errors.New("end time must be after start time")

// ReservationService 预约服务：校验、计价，并驱动车位状态变更
type ReservationService struct {
	logger *zap.Logger
	store  *store.Store
	wsHub  *ws.Hub // 可为 nil（测试场景）
}

// NewReservationService 创建预约服务
func NewReservationService(logger *zap.Logger, st *store.Store, wsHub *ws.Hub) *ReservationService {
	return &ReservationService{
		logger: logger,
		store:  st,
		wsHub:  wsHub,
	}
}

// Create 创建预约：车位必须 available，价格 = round(小时数 × 每小时单价)。
// 校验和落库在存储的同一临界区内完成，调用方不会观察到中间状态。
func (s *ReservationService) Create(ctx context.Context, userID, parkingID, slotID string, startTime, endTime time.Time) (*models.Reservation, error) {
	parking, err := s.store.GetParking(parkingID)
	if err != nil {
		return nil, err
	}
	slot, err := s.store.GetSlot(slotID)
	if err != nil || slot.ParkingID != parkingID {
		return nil, store.ErrSlotNotFound
	}
	if !endTime.After(startTime) {
		return nil, ErrInvalidTimeRange
	}

	hours := endTime.Sub(startTime).Hours()
	price := int(math.Round(hours * float64(parking.PricePerHour)))
	if price < 0 {
		price = 0
	}

	res := models.Reservation{
		ID:          "res-" + uuid.NewString(),
		UserID:      userID,
		SlotID:      slotID,
		ParkingID:   parkingID,
		ParkingName: parking.Name,
		SlotNumber:  slot.Number,
		StartTime:   startTime,
		EndTime:     endTime,
		Status:      models.ReservationActive,
		TotalPrice:  price,
		CreatedAt:   time.Now(),
	}

	// BookSlot 内部会重新校验车位可用性，并原子地完成状态翻转和落库
	created, err := s.store.BookSlot(res)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reservation created",
		zap.String("reservation_id", created.ID),
		zap.String("slot_id", slotID),
		zap.Int("total_price", created.TotalPrice))

	s.broadcastSlot(slotID)
	return &created, nil
}

// Cancel 取消预约：仅 active 预约可取消，车位仍归该预约时恢复为 available
func (s *ReservationService) Cancel(ctx context.Context, reservationID string) error {
	res, err := s.store.CancelReservation(reservationID)
	if err != nil {
		return err
	}

	s.logger.Info("Reservation cancelled",
		zap.String("reservation_id", res.ID),
		zap.String("slot_id", res.SlotID))

	s.broadcastSlot(res.SlotID)
	return nil
}

// Get 按 ID 获取预约
func (s *ReservationService) Get(ctx context.Context, reservationID string) (*models.Reservation, error) {
	res, err := s.store.GetReservation(reservationID)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByUser 获取某用户的预约（创建顺序）
func (s *ReservationService) ListByUser(ctx context.Context, userID string) []models.Reservation {
	return s.store.ListReservationsByUser(userID)
}

// ListAll 获取全部预约（创建顺序）
func (s *ReservationService) ListAll(ctx context.Context) []models.Reservation {
	return s.store.ListReservations()
}

// broadcastSlot 把车位最新状态推给 WebSocket 订阅者
func (s *ReservationService) broadcastSlot(slotID string) {
	if s.wsHub == nil {
		return
	}
	slot, err := s.store.GetSlot(slotID)
	if err != nil {
		return
	}
	s.wsHub.BroadcastSlotUpdate(slot)
}
