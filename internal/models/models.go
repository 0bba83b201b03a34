package models

import (
	"encoding/json"
	"time"
)

// User represents a registered user
type User struct {
	ID         int     `json:"id"`
	Username   string  `json:"username"`
	Password   string  `json:"-"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	FullName   *string `json:"fullName,omitempty"`
	ProfilePic *string `json:"profilePic,omitempty"`
}

// Ride status values used by clients. The column itself is free-form text.
const (
	RideStatusBooked    = "booked"
	RideStatusCompleted = "completed"
	RideStatusCancelled = "cancelled"
)

// SavedPlace represents a user-saved location shortcut
type SavedPlace struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// RideHistory represents an immutable booking record
type RideHistory struct {
	ID               int             `json:"id"`
	UserID           int             `json:"userId"`
	PickupLocation   string          `json:"pickupLocation"`
	DropoffLocation  string          `json:"dropoffLocation"`
	PickupLatitude   string          `json:"pickupLatitude"`
	PickupLongitude  string          `json:"pickupLongitude"`
	DropoffLatitude  string          `json:"dropoffLatitude"`
	DropoffLongitude string          `json:"dropoffLongitude"`
	Service          string          `json:"service"`
	RideType         string          `json:"rideType"`
	Fare             string          `json:"fare"`
	Distance         string          `json:"distance"`
	Duration         string          `json:"duration"`
	Timestamp        time.Time       `json:"timestamp"`
	Status           string          `json:"status"`
	PaymentMethod    *string         `json:"paymentMethod,omitempty"`
	DriverDetails    json.RawMessage `json:"driverDetails,omitempty"`
}

// Session binds an opaque cookie token to an authenticated user
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// RideEstimate is a single fare/ETA quote from one provider
type RideEstimate struct {
	RideType            string `json:"rideType"`
	Capacity            int    `json:"capacity"`
	Fare                string `json:"fare"`
	Currency            string `json:"currency"`
	EstimatedPickupTime int    `json:"estimatedPickupTime"`
	EstimatedDuration   int    `json:"estimatedDuration"`
	Distance            string `json:"distance"`
	DeepLink            string `json:"deepLink"`
}

// ProviderEstimates groups the quotes of one ride-hailing service
type ProviderEstimates struct {
	Service   string         `json:"service"`
	Estimates []RideEstimate `json:"estimates"`
}
