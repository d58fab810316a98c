package store

import (
	"errors"
	"sync"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
)

var (
	ErrParkingNotFound      = errors.New("parking not found")
	ErrSlotNotFound         = errors.New("slot not found")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailExists          = errors.New("email already registered")
	ErrSlotUnavailable      = errors.New("slot is not available")
	ErrReservationNotActive = errors.New("reservation is not active")
)

// Store 内存数据存储，车位状态的唯一权威来源。
// 所有读写都经过同一把锁，预约服务和传感器模拟器共用一个实例。
type Store struct {
	mu sync.RWMutex

	parkings     []*models.Parking
	slots        map[string][]*models.Slot // parkingID -> 车位（插入顺序）
	reservations []*models.Reservation     // 创建顺序
	users        []*models.User

	dailyStats  []models.DailyStats
	hourlyStats []models.HourlyStats
}

// New 创建空存储
func New() *Store {
	return &Store{
		slots: make(map[string][]*models.Slot),
	}
}

// SetDailyStats 设置按天统计表（由 fixture 填充）
func (s *Store) SetDailyStats(stats []models.DailyStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyStats = stats
}

// SetHourlyStats 设置按小时统计表
func (s *Store) SetHourlyStats(stats []models.HourlyStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hourlyStats = stats
}

// DailyStats 获取按天统计表
func (s *Store) DailyStats() []models.DailyStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DailyStats, len(s.dailyStats))
	copy(out, s.dailyStats)
	return out
}

// HourlyStats 获取按小时统计表
func (s *Store) HourlyStats() []models.HourlyStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.HourlyStats, len(s.hourlyStats))
	copy(out, s.hourlyStats)
	return out
}
