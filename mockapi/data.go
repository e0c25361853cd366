/*
data.go - Seeded fixtures

Fixtures are small but cover the interesting cases: resources of
different types and capacities, one non-active resource, and bookings
placed at fixed offsets from startup so overlap behavior is exercisable
without knowing the wall clock.
*/
package mockapi

import (
	"time"

	"github.com/warp/reservation-engine/engine"
)

func seedUsers() []engine.User {
	return []engine.User{
		{
			Username:   "jdoe",
			Email:      "jdoe@example.com",
			FullName:   "Jane Doe",
			Role:       "user",
			Department: "Engineering",
			Groups:     []string{"engineering", "all-staff"},
		},
		{
			Username:   "asmith",
			Email:      "asmith@example.com",
			FullName:   "Alex Smith",
			Role:       "admin",
			Department: "Facilities",
			Groups:     []string{"facilities", "admins", "all-staff"},
		},
	}
}

func seedFeatures() []engine.Feature {
	return []engine.Feature{
		{ID: "projector", Name: "Projector", Icon: "video"},
		{ID: "whiteboard", Name: "Whiteboard", Icon: "edit"},
		{ID: "video-conf", Name: "Video Conferencing", Icon: "camera"},
		{ID: "phone", Name: "Conference Phone", Icon: "phone"},
		{ID: "standing-desk", Name: "Standing Desk", Icon: "desk"},
	}
}

func seedResourceTypes() []engine.ResourceType {
	return []engine.ResourceType{
		{ID: 1, Name: "room", Description: "Meeting and conference rooms", Icon: "door", Color: "#4287f5"},
		{ID: 2, Name: "vehicle", Description: "Pool vehicles", Icon: "car", Color: "#42f554"},
		{ID: 3, Name: "equipment", Description: "Portable equipment", Icon: "toolbox", Color: "#f5a442"},
	}
}

func seedResources() []engine.Resource {
	return []engine.Resource{
		{
			ID:         "room-alpha",
			Name:       "Alpha Conference Room",
			Type:       "room",
			Capacity:   12,
			Location:   "Building A, Floor 2",
			Features:   []engine.FeatureID{"projector", "whiteboard", "video-conf"},
			Email:      "room-alpha@example.com",
			CalendarID: "cal-room-alpha",
			Status:     "active",
			Manager:    "asmith",
		},
		{
			ID:         "room-beta",
			Name:       "Beta Huddle Room",
			Type:       "room",
			Capacity:   4,
			Location:   "Building A, Floor 3",
			Features:   []engine.FeatureID{"whiteboard"},
			Email:      "room-beta@example.com",
			CalendarID: "cal-room-beta",
			Status:     "active",
			Manager:    "asmith",
		},
		{
			ID:         "room-gamma",
			Name:       "Gamma Boardroom",
			Type:       "room",
			Capacity:   20,
			Location:   "Building B, Floor 1",
			Features:   []engine.FeatureID{"projector", "video-conf", "phone"},
			Email:      "room-gamma@example.com",
			CalendarID: "cal-room-gamma",
			Status:     "maintenance",
			Manager:    "asmith",
		},
		{
			ID:         "van-01",
			Name:       "Delivery Van 01",
			Type:       "vehicle",
			Capacity:   2,
			Location:   "Parking Lot C",
			Features:   nil,
			Email:      "van-01@example.com",
			CalendarID: "cal-van-01",
			Status:     "active",
			Manager:    "asmith",
		},
	}
}

// seedBookings places bookings at fixed offsets from now so tests can
// construct overlapping and non-overlapping requests deterministically.
func seedBookings(now time.Time) []engine.Booking {
	return []engine.Booking{
		{
			ID:         "booking-seed-1",
			ResourceID: "room-alpha",
			UserID:     "jdoe",
			Title:      "Sprint Planning",
			StartTime:  now.Add(2 * time.Hour),
			EndTime:    now.Add(3 * time.Hour),
			Status:     engine.BookingConfirmed,
			Attendees:  []engine.UserID{"asmith"},
			CreatedAt:  now.Add(-24 * time.Hour),
		},
		{
			ID:         "booking-seed-2",
			ResourceID: "room-beta",
			UserID:     "asmith",
			Title:      "1:1",
			StartTime:  now.Add(4 * time.Hour),
			EndTime:    now.Add(5 * time.Hour),
			Status:     engine.BookingPending,
			CreatedAt:  now.Add(-2 * time.Hour),
		},
		{
			ID:          "booking-seed-3",
			ResourceID:  "room-alpha",
			UserID:      "asmith",
			Title:       "Cancelled Standup",
			StartTime:   now.Add(6 * time.Hour),
			EndTime:     now.Add(7 * time.Hour),
			Status:      engine.BookingCancelled,
			CreatedAt:   now.Add(-48 * time.Hour),
			Description: "Recurring slot, no longer needed",
		},
	}
}
