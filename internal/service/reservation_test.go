package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store"
)

func newTestStore() *store.Store {
	st := store.New()
	st.AddParking(
		models.Parking{
			ID:           "P1",
			Name:         "Parking Central",
			Zone:         "Zone A",
			Capacity:     1,
			PricePerHour: 5,
		},
		[]models.Slot{
			{ID: "S1", ParkingID: "P1", Number: "A1", Status: models.SlotAvailable},
		},
	)
	return st
}

func newTestService(st *store.Store) *ReservationService {
	return NewReservationService(zap.NewNop(), st, nil)
}

// 预约 2 小时，单价 5 → 总价 10，车位翻转为 reserved
func TestCreate(t *testing.T) {
	st := newTestStore()
	svc := newTestService(st)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	res, err := svc.Create(context.Background(), "u1", "P1", "S1", start, start.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, models.ReservationActive, res.Status)
	assert.Equal(t, 10, res.TotalPrice)
	assert.Equal(t, "Parking Central", res.ParkingName)
	assert.Equal(t, "A1", res.SlotNumber)
	assert.Equal(t, "u1", res.UserID)

	slot, err := st.GetSlot("S1")
	require.NoError(t, err)
	assert.Equal(t, models.SlotReserved, slot.Status)
	assert.Len(t, st.ListReservations(), 1)
}

func TestCreate_FractionalHours(t *testing.T) {
	st := newTestStore()
	svc := newTestService(st)

	// 1.5 小时 × 5 = 7.5 → 四舍五入为 8
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	res, err := svc.Create(context.Background(), "u1", "P1", "S1", start, start.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 8, res.TotalPrice)
}

// 车位已被预约时重复预约必须失败，且状态不变
func TestCreate_SlotUnavailable(t *testing.T) {
	st := newTestStore()
	svc := newTestService(st)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), "u1", "P1", "S1", start, start.Add(2*time.Hour))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "u2", "P1", "S1", start, start.Add(time.Hour))
	assert.ErrorIs(t, err, store.ErrSlotUnavailable)

	slot, _ := st.GetSlot("S1")
	assert.Equal(t, models.SlotReserved, slot.Status)
	assert.Len(t, st.ListReservations(), 1)
}

func TestCreate_InvalidTimeRange(t *testing.T) {
	st := newTestStore()
	svc := newTestService(st)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), "u1", "P1", "S1", start, start)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.Create(context.Background(), "u1", "P1", "S1", start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	// 校验失败不留下任何状态变化
	slot, _ := st.GetSlot("S1")
	assert.Equal(t, models.SlotAvailable, slot.Status)
	assert.Empty(t, st.ListReservations())
}

func TestCreate_ParkingNotFound(t *testing.T) {
	svc := newTestService(newTestStore())

	start := time.Now()
	_, err := svc.Create(context.Background(), "u1", "P9", "S1", start, start.Add(time.Hour))
	assert.ErrorIs(t, err, store.ErrParkingNotFound)
}

func TestCreate_SlotNotFound(t *testing.T) {
	st := newTestStore()
	st.AddParking(models.Parking{ID: "P2", Name: "Annexe", PricePerHour: 3},
		[]models.Slot{{ID: "S2", ParkingID: "P2", Number: "B1", Status: models.SlotAvailable}})
	svc := newTestService(st)

	start := time.Now()
	_, err := svc.Create(context.Background(), "u1", "P1", "S9", start, start.Add(time.Hour))
	assert.ErrorIs(t, err, store.ErrSlotNotFound)

	// 车位存在但不属于该停车场
	_, err = svc.Create(context.Background(), "u1", "P1", "S2", start, start.Add(time.Hour))
	assert.ErrorIs(t, err, store.ErrSlotNotFound)
}

// 取消后车位恢复 available，可以重新预约
func TestCancel(t *testing.T) {
	st := newTestStore()
	svc := newTestService(st)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	res, err := svc.Create(context.Background(), "u1", "P1", "S1", start, start.Add(2*time.Hour))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), res.ID))

	got, err := svc.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, got.Status)

	slot, _ := st.GetSlot("S1")
	assert.Equal(t, models.SlotAvailable, slot.Status)

	// 重新预约成功
	again, err := svc.Create(context.Background(), "u1", "P1", "S1", start, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.ReservationActive, again.Status)
}

func TestCancel_NotActive(t *testing.T) {
	st := newTestStore()
	svc := newTestService(st)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	res, err := svc.Create(context.Background(), "u1", "P1", "S1", start, start.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), res.ID))
	assert.ErrorIs(t, svc.Cancel(context.Background(), res.ID), store.ErrReservationNotActive)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(newTestStore())
	assert.ErrorIs(t, svc.Cancel(context.Background(), "missing"), store.ErrReservationNotFound)
}

func TestListByUser_Order(t *testing.T) {
	st := newTestStore()
	st.AddParking(models.Parking{ID: "P2", Name: "Annexe", PricePerHour: 3},
		[]models.Slot{{ID: "S2", ParkingID: "P2", Number: "B1", Status: models.SlotAvailable}})
	svc := newTestService(st)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	first, err := svc.Create(context.Background(), "u1", "P1", "S1", start, start.Add(time.Hour))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), "u1", "P2", "S2", start, start.Add(time.Hour))
	require.NoError(t, err)

	list := svc.ListByUser(context.Background(), "u1")
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}
