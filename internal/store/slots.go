package store

import "github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"

// StatusAll FilterSlotsByStatus 的不过滤取值
const StatusAll = "all"

// ListSlotsByParking 获取停车场的全部车位（插入顺序）。
// 停车场不存在时返回空列表，不报错。
func (s *Store) ListSlotsByParking(parkingID string) []models.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.slots[parkingID]
	out := make([]models.Slot, 0, len(list))
	for _, sl := range list {
		out = append(out, *sl)
	}
	return out
}

// FilterSlotsByStatus 按状态过滤车位，status 为 "all" 时不过滤
func (s *Store) FilterSlotsByStatus(parkingID string, status string) []models.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.slots[parkingID]
	out := make([]models.Slot, 0, len(list))
	for _, sl := range list {
		if status == StatusAll || string(sl.Status) == status {
			out = append(out, *sl)
		}
	}
	return out
}

// GetSlot 跨停车场按 ID 查找车位
func (s *Store) GetSlot(slotID string) (models.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl := s.findSlot(slotID)
	if sl == nil {
		return models.Slot{}, ErrSlotNotFound
	}
	return *sl, nil
}

// SetSlotStatus 直接覆写车位状态，返回更新后的车位。
// 这是管理端/模拟器的覆写通道，会清除占用预约标记。
func (s *Store) SetSlotStatus(slotID string, status models.SlotStatus) (models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl := s.findSlot(slotID)
	if sl == nil {
		return models.Slot{}, ErrSlotNotFound
	}
	sl.Status = status
	sl.ReservationID = ""
	return *sl, nil
}

// AllSlots 获取所有停车场的所有车位快照
func (s *Store) AllSlots() []models.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Slot
	for _, p := range s.parkings {
		for _, sl := range s.slots[p.ID] {
			out = append(out, *sl)
		}
	}
	return out
}

// findSlot 调用方需持有锁
func (s *Store) findSlot(slotID string) *models.Slot {
	for _, list := range s.slots {
		for _, sl := range list {
			if sl.ID == slotID {
				return sl
			}
		}
	}
	return nil
}
