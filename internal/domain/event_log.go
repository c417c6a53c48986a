package domain

import "time"

const (
	EventBookingCreated   = "booking.created"
	EventBookingApproved  = "booking.approved"
	EventBookingRejected  = "booking.rejected"
	EventBookingCancelled = "booking.cancelled"
)

// EventLog is an append-only audit row.
type EventLog struct {
	ID          int64          `json:"log_id" gorm:"column:id;primaryKey"`
	UserID      *int64         `json:"user_id,omitempty"`
	BookingID   *int64         `json:"booking_id,omitempty" gorm:"index"`
	StudioID    *int64         `json:"studio_id,omitempty"`
	EventType   string         `json:"event_type" gorm:"type:varchar(100);not null;index"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Metadata    map[string]any `json:"metadata,omitempty" gorm:"type:text;serializer:json"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
}

func (EventLog) TableName() string { return "event_log" }
