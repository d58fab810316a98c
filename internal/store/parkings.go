package store

import "github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"

// AddParking 添加停车场及其车位
func (s *Store) AddParking(p models.Parking, slots []models.Slot) models.Parking {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := p
	s.parkings = append(s.parkings, &cp)

	list := make([]*models.Slot, 0, len(slots))
	for _, sl := range slots {
		c := sl
		list = append(list, &c)
	}
	s.slots[p.ID] = list
	return cp
}

// ListParkings 获取全部停车场（插入顺序）
func (s *Store) ListParkings() []models.Parking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Parking, 0, len(s.parkings))
	for _, p := range s.parkings {
		out = append(out, *p)
	}
	return out
}

// GetParking 按 ID 获取停车场
func (s *Store) GetParking(id string) (models.Parking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.findParking(id)
	if p == nil {
		return models.Parking{}, ErrParkingNotFound
	}
	return *p, nil
}

// UpdateParking 更新停车场信息（ID 不变）
func (s *Store) UpdateParking(id string, update func(p *models.Parking)) (models.Parking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findParking(id)
	if p == nil {
		return models.Parking{}, ErrParkingNotFound
	}
	update(p)
	p.ID = id
	return *p, nil
}

// DeleteParking 删除停车场及其车位
func (s *Store) DeleteParking(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.parkings {
		if p.ID == id {
			s.parkings = append(s.parkings[:i], s.parkings[i+1:]...)
			delete(s.slots, id)
			return nil
		}
	}
	return ErrParkingNotFound
}

// findParking 调用方需持有锁
func (s *Store) findParking(id string) *models.Parking {
	for _, p := range s.parkings {
		if p.ID == id {
			return p
		}
	}
	return nil
}
