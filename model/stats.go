package model

import "time"

// DashboardStats backs the admin dashboard endpoint.
type DashboardStats struct {
	TotalUsers       int64            `json:"total_users"`
	TotalHotels      int64            `json:"total_hotels"`
	TotalBookings    int64            `json:"total_bookings"`
	TotalRevenue     float64          `json:"total_revenue"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	TopCities        []CityCount      `json:"top_cities"`
	RecentBookings   []*Booking       `json:"recent_bookings"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

type CityCount struct {
	City  string `bson:"_id" json:"city"`
	Count int64  `bson:"count" json:"count"`
}
