package booking

import "studiobook/internal/domain"

// CreateBookingRequest carries dates as YYYY-MM-DD and times as HH:MM.
type CreateBookingRequest struct {
	ResourceID  int64  `json:"resource_id" validate:"required,gt=0"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
}

type DecideRequest struct {
	Approve         *bool  `json:"approve" validate:"required"`
	RejectionReason string `json:"rejection_reason,omitempty" validate:"max=1000"`
}

type CancelRequest struct {
	CancelReason string `json:"cancel_reason" validate:"required,min=5,max=500"`
}

// Cancel reason bounds, in characters.
const (
	minCancelReason = 5
	maxCancelReason = 500
)

// SlotsResponse lists the windows of one resource-day.
type SlotsResponse struct {
	ResourceID  int64       `json:"resource_id"`
	BookingDate domain.Date `json:"booking_date"`
	Closed      bool        `json:"closed"`
	Slots       []Slot      `json:"slots"`
}
