// Package seed 生成演示用的 mock 数据集。
// 随机初始车位状态只是演示效果，不属于存储层的运行时契约，
// 因此作为独立的 fixture 放在 store 之外，rand 源由调用方注入。
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store"
)

var sections = []string{"A", "B", "C", "D"}

var statuses = []models.SlotStatus{
	models.SlotAvailable,
	models.SlotReserved,
	models.SlotOccupied,
}

// NewSlots 为停车场生成 count 个车位，初始状态全部 available
func NewSlots(parkingID string, count int) []models.Slot {
	slots := make([]models.Slot, 0, count)
	for i := 0; i < count; i++ {
		section := sections[(i/10)%len(sections)]
		slots = append(slots, models.Slot{
			ID:         fmt.Sprintf("%s-slot-%d", parkingID, i+1),
			ParkingID:  parkingID,
			Number:     fmt.Sprintf("%s%d", section, i%10+1),
			Status:     models.SlotAvailable,
			Floor:      i/20 + 1,
			Section:    section,
			IsHandicap: i%15 == 0,
			IsElectric: i%12 == 0,
		})
	}
	return slots
}

// GenerateSlots 在 NewSlots 的基础上随机化初始状态（仅演示数据用）
func GenerateSlots(rng *rand.Rand, parkingID string, count int) []models.Slot {
	slots := NewSlots(parkingID, count)
	for i := range slots {
		slots[i].Status = statuses[rng.Intn(len(statuses))]
	}
	return slots
}

// Populate 向空存储填充演示数据：3 个校园停车场、示例用户和统计表
func Populate(st *store.Store, rng *rand.Rand) {
	parkings := []struct {
		p     models.Parking
		count int
	}{
		{
			p: models.Parking{
				ID:             "parking-1",
				Name:           "Parking Central",
				Zone:           "Zone A - Faculté des Sciences",
				Capacity:       40,
				AvailableSpots: 12,
				Coordinates:    models.Coordinates{Lat: 33.5731, Lng: -7.5898},
				Address:        "Boulevard Hassan II, Campus Principal",
				OpenHours:      "06:00 - 22:00",
				PricePerHour:   5,
			},
			count: 40,
		},
		{
			p: models.Parking{
				ID:             "parking-2",
				Name:           "Parking Bibliothèque",
				Zone:           "Zone B - Bibliothèque Centrale",
				Capacity:       35,
				AvailableSpots: 8,
				Coordinates:    models.Coordinates{Lat: 33.5745, Lng: -7.5912},
				Address:        "Avenue Mohammed V, Campus Est",
				OpenHours:      "07:00 - 21:00",
				PricePerHour:   4,
			},
			count: 35,
		},
		{
			p: models.Parking{
				ID:             "parking-3",
				Name:           "Parking Résidence",
				Zone:           "Zone C - Cité Universitaire",
				Capacity:       45,
				AvailableSpots: 25,
				Coordinates:    models.Coordinates{Lat: 33.5718, Lng: -7.5875},
				Address:        "Rue des Étudiants, Campus Sud",
				OpenHours:      "24/7",
				PricePerHour:   3,
			},
			count: 45,
		},
	}

	for _, entry := range parkings {
		st.AddParking(entry.p, GenerateSlots(rng, entry.p.ID, entry.count))
	}

	users := []models.User{
		{
			ID:        "user-1",
			Name:      "Ahmed Benali",
			Email:     "ahmed.benali@univ.edu",
			Role:      models.RoleStudent,
			Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=Ahmed",
			CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "user-2",
			Name:      "Fatima Zahra",
			Email:     "fatima.zahra@univ.edu",
			Role:      models.RoleStaff,
			Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=Fatima",
			CreatedAt: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "admin-1",
			Name:      "Mohamed Admin",
			Email:     "admin@univ.edu",
			Role:      models.RoleAdmin,
			Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=Admin",
			CreatedAt: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, u := range users {
		_ = st.AddUser(u)
	}

	now := time.Now()
	st.AddReservation(models.Reservation{
		ID:          "res-1",
		UserID:      "user-1",
		SlotID:      "parking-2-slot-12",
		ParkingID:   "parking-2",
		ParkingName: "Parking Bibliothèque",
		SlotNumber:  "B2",
		StartTime:   now.Add(-24 * time.Hour),
		EndTime:     now.Add(-22 * time.Hour),
		Status:      models.ReservationCompleted,
		TotalPrice:  8,
		CreatedAt:   now.Add(-24 * time.Hour),
	})
	st.AddReservation(models.Reservation{
		ID:          "res-2",
		UserID:      "user-2",
		SlotID:      "parking-3-slot-20",
		ParkingID:   "parking-3",
		ParkingName: "Parking Résidence",
		SlotNumber:  "C10",
		StartTime:   now.Add(-48 * time.Hour),
		EndTime:     now.Add(-45 * time.Hour),
		Status:      models.ReservationCompleted,
		TotalPrice:  9,
		CreatedAt:   now.Add(-48 * time.Hour),
	})

	st.SetDailyStats([]models.DailyStats{
		{Date: "Lun", Occupancy: 75, Reservations: 45, Revenue: 225},
		{Date: "Mar", Occupancy: 82, Reservations: 52, Revenue: 260},
		{Date: "Mer", Occupancy: 68, Reservations: 38, Revenue: 190},
		{Date: "Jeu", Occupancy: 90, Reservations: 65, Revenue: 325},
		{Date: "Ven", Occupancy: 85, Reservations: 58, Revenue: 290},
		{Date: "Sam", Occupancy: 45, Reservations: 22, Revenue: 110},
		{Date: "Dim", Occupancy: 30, Reservations: 15, Revenue: 75},
	})
	st.SetHourlyStats([]models.HourlyStats{
		{Hour: "06:00", Occupancy: 15},
		{Hour: "08:00", Occupancy: 65},
		{Hour: "10:00", Occupancy: 85},
		{Hour: "12:00", Occupancy: 75},
		{Hour: "14:00", Occupancy: 90},
		{Hour: "16:00", Occupancy: 88},
		{Hour: "18:00", Occupancy: 60},
		{Hour: "20:00", Occupancy: 35},
		{Hour: "22:00", Occupancy: 10},
	})
}
