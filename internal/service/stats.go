package service

import (
	"math"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store"
)

// StatsService 统计服务：每次调用都基于存储当前状态重新计算，不做缓存
type StatsService struct {
	store *store.Store
}

// NewStatsService 创建统计服务
func NewStatsService(st *store.Store) *StatsService {
	return &StatsService{store: st}
}

// ComputeOverall 统计所有停车场的车位占用情况
func (s *StatsService) ComputeOverall() models.ParkingStats {
	slots := s.store.AllSlots()

	stats := models.ParkingStats{TotalSpots: len(slots)}
	for _, sl := range slots {
		switch sl.Status {
		case models.SlotAvailable:
			stats.AvailableSpots++
		case models.SlotReserved:
			stats.ReservedSpots++
		case models.SlotOccupied:
			stats.OccupiedSpots++
		}
	}

	// 没有车位时占用率为 0，避免除零
	if stats.TotalSpots > 0 {
		occupied := float64(stats.ReservedSpots + stats.OccupiedSpots)
		stats.OccupancyRate = int(math.Round(occupied / float64(stats.TotalSpots) * 100))
	}
	return stats
}

// ComputeByParking 统计单个停车场的车位占用情况
func (s *StatsService) ComputeByParking(parkingID string) models.ParkingStats {
	slots := s.store.ListSlotsByParking(parkingID)

	stats := models.ParkingStats{TotalSpots: len(slots)}
	for _, sl := range slots {
		switch sl.Status {
		case models.SlotAvailable:
			stats.AvailableSpots++
		case models.SlotReserved:
			stats.ReservedSpots++
		case models.SlotOccupied:
			stats.OccupiedSpots++
		}
	}
	if stats.TotalSpots > 0 {
		occupied := float64(stats.ReservedSpots + stats.OccupiedSpots)
		stats.OccupancyRate = int(math.Round(occupied / float64(stats.TotalSpots) * 100))
	}
	return stats
}

// Overview 管理后台总览数字
func (s *StatsService) Overview() models.Overview {
	revenue := 0
	for _, d := range s.store.DailyStats() {
		revenue += d.Revenue
	}
	return models.Overview{
		TotalUsers:        len(s.store.ListUsers()),
		TotalParkings:     len(s.store.ListParkings()),
		TotalReservations: len(s.store.ListReservations()),
		Revenue:           revenue,
	}
}

// Daily 按天统计表
func (s *StatsService) Daily() []models.DailyStats {
	return s.store.DailyStats()
}

// Hourly 按小时统计表
func (s *StatsService) Hourly() []models.HourlyStats {
	return s.store.HourlyStats()
}
