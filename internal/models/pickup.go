package models

import "time"

// PickupStatus is the lifecycle state of a pickup request.
type PickupStatus string

const (
	PickupPending   PickupStatus = "pending"
	PickupCompleted PickupStatus = "completed"
)

// PickupRequest is a user-initiated request to collect waste. The user fields
// are a snapshot taken when the request was created.
type PickupRequest struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	UserName    string        `json:"userName"`
	UserEmail   string        `json:"userEmail"`
	UserPhone   string        `json:"userPhone"`
	UserAddress string        `json:"userAddress"`
	Date        string        `json:"date"`
	WasteTypes  []WasteTypeID `json:"wasteTypes"`
	Status      PickupStatus  `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
}

// IsPending reports whether the request still awaits collection.
func (r PickupRequest) IsPending() bool { return r.Status == PickupPending }
