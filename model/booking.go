package model

import (
	"math"
	"time"
)

type BookingStatus string

const (
	BookingRequested BookingStatus = "Requested"
	BookingApproved  BookingStatus = "Approved"
	BookingRejected  BookingStatus = "Rejected"
	BookingCompleted BookingStatus = "Completed"
	BookingCancelled BookingStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

type Booking struct {
	ID              int64         `json:"id"`
	ListingID       int64         `json:"listing_id"`
	RenterID        int64         `json:"renter_id"`
	OwnerID         int64         `json:"owner_id"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	TotalPrice      float64       `json:"total_price"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	PaymentIntentID string        `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// bookingTransitions is the rental-axis state machine. Payment status is a
// separate axis and never constrained by it.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingRequested: {BookingApproved, BookingRejected, BookingCancelled},
	BookingApproved:  {BookingCompleted, BookingCancelled},
}

// CanTransition reports whether the rental status may move from -> to.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range bookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further rental-axis transition exists.
func Terminal(s BookingStatus) bool { return len(bookingTransitions[s]) == 0 }

// RentalDays is the chargeable day count: ceiling of the span in 24h units.
func RentalDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

type CreateBookingReq struct {
	ListingID int64  `json:"listing_id" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type UpdateBookingStatusReq struct {
	Status string `json:"status" validate:"required,oneof=Approved Rejected Completed Cancelled"`
}
