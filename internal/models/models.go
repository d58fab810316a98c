package models

import "time"

// UserRole 用户角色
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleStaff   UserRole = "staff"
	RoleAdmin   UserRole = "admin"
)

// User 用户信息
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Coordinates 地理坐标
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Parking 停车场
type Parking struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Zone           string      `json:"zone"`
	Capacity       int         `json:"capacity"`
	AvailableSpots int         `json:"available_spots"` // 冗余缓存值，以车位存储为准
	Coordinates    Coordinates `json:"coordinates"`
	Address        string      `json:"address"`
	OpenHours      string      `json:"open_hours"`
	PricePerHour   int         `json:"price_per_hour"`
	Image          string      `json:"image,omitempty"`
}

// SlotStatus 车位状态
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotReserved  SlotStatus = "reserved"
	SlotOccupied  SlotStatus = "occupied"
)

// Valid 检查状态是否合法
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotAvailable, SlotReserved, SlotOccupied:
		return true
	}
	return false
}

// Slot 车位
type Slot struct {
	ID         string     `json:"id"`
	ParkingID  string     `json:"parking_id"`
	Number     string     `json:"number"`
	Status     SlotStatus `json:"status"`
	Floor      int        `json:"floor,omitempty"`
	Section    string     `json:"section,omitempty"`
	IsHandicap bool       `json:"is_handicap,omitempty"`
	IsElectric bool       `json:"is_electric,omitempty"`

	// 当前占用该车位的预约 ID（仅 reserved 状态下有值），
	// 取消预约时据此判断车位是否仍归该预约所有
	ReservationID string `json:"reservation_id,omitempty"`
}

// ReservationStatus 预约状态
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation 预约记录
type Reservation struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	SlotID    string `json:"slot_id"`
	ParkingID string `json:"parking_id"`

	// 创建时刻的快照，停车场改名后不回填
	ParkingName string `json:"parking_name"`
	SlotNumber  string `json:"slot_number"`

	StartTime  time.Time         `json:"start_time"`
	EndTime    time.Time         `json:"end_time"`
	Status     ReservationStatus `json:"status"`
	TotalPrice int               `json:"total_price"`
	CreatedAt  time.Time         `json:"created_at"`
}
