package store

import "github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"

// BookSlot 原子地完成一次预约落库：校验停车场和车位存在、车位可用，
// 然后把车位置为 reserved 并记录预约。任何一步失败都不留下中间状态。
func (s *Store) BookSlot(res models.Reservation) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findParking(res.ParkingID) == nil {
		return models.Reservation{}, ErrParkingNotFound
	}

	var slot *models.Slot
	for _, sl := range s.slots[res.ParkingID] {
		if sl.ID == res.SlotID {
			slot = sl
			break
		}
	}
	if slot == nil {
		return models.Reservation{}, ErrSlotNotFound
	}
	if slot.Status != models.SlotAvailable {
		return models.Reservation{}, ErrSlotUnavailable
	}

	slot.Status = models.SlotReserved
	slot.ReservationID = res.ID

	cp := res
	s.reservations = append(s.reservations, &cp)
	return cp, nil
}

// CancelReservation 取消预约并在车位仍归该预约占用时恢复为 available。
// 车位被模拟器或管理端改写过的情况下不回退，避免误释放。
func (s *Store) CancelReservation(id string) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res *models.Reservation
	for _, r := range s.reservations {
		if r.ID == id {
			res = r
			break
		}
	}
	if res == nil {
		return models.Reservation{}, ErrReservationNotFound
	}
	if res.Status != models.ReservationActive {
		return models.Reservation{}, ErrReservationNotActive
	}

	res.Status = models.ReservationCancelled

	if sl := s.findSlot(res.SlotID); sl != nil && sl.ReservationID == res.ID {
		sl.Status = models.SlotAvailable
		sl.ReservationID = ""
	}
	return *res, nil
}

// GetReservation 按 ID 获取预约
func (s *Store) GetReservation(id string) (models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reservations {
		if r.ID == id {
			return *r, nil
		}
	}
	return models.Reservation{}, ErrReservationNotFound
}

// ListReservations 获取全部预约（创建顺序）
func (s *Store) ListReservations() []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, *r)
	}
	return out
}

// ListReservationsByUser 获取某用户的预约（创建顺序）
func (s *Store) ListReservationsByUser(userID string) []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Reservation
	for _, r := range s.reservations {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out
}

// AddReservation 直接写入一条预约记录（fixture 用，不触碰车位状态）
func (s *Store) AddReservation(res models.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := res
	s.reservations = append(s.reservations, &cp)
}
