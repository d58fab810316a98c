package models

import "time"

// ParkingStats 车位占用统计快照
type ParkingStats struct {
	TotalSpots     int `json:"total_spots"`
	AvailableSpots int `json:"available_spots"`
	ReservedSpots  int `json:"reserved_spots"`
	OccupiedSpots  int `json:"occupied_spots"`
	OccupancyRate  int `json:"occupancy_rate"` // 百分比
}

// DailyStats 按天统计
type DailyStats struct {
	Date         string `json:"date"`
	Occupancy    int    `json:"occupancy"`
	Reservations int    `json:"reservations"`
	Revenue      int    `json:"revenue"`
}

// HourlyStats 按小时统计
type HourlyStats struct {
	Hour      string `json:"hour"`
	Occupancy int    `json:"occupancy"`
}

// Overview 管理后台总览
type Overview struct {
	TotalUsers        int `json:"total_users"`
	TotalParkings     int `json:"total_parkings"`
	TotalReservations int `json:"total_reservations"`
	Revenue           int `json:"revenue"`
}

// SensorEvent 模拟传感器事件（仅用于展示）
type SensorEvent struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
