package domain

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPendingApproval BookingStatus = "pending_approval"
	BookingApproved        BookingStatus = "approved"
	BookingRejected        BookingStatus = "rejected"
	BookingConfirmed       BookingStatus = "confirmed"
	BookingCheckedIn       BookingStatus = "checked_in"
	BookingCompleted       BookingStatus = "completed"
	BookingCancelled       BookingStatus = "cancelled"
	BookingRefunded        BookingStatus = "refunded"
)

var bookingStatuses = map[BookingStatus]struct{}{
	BookingPendingApproval: {},
	BookingApproved:        {},
	BookingRejected:        {},
	BookingConfirmed:       {},
	BookingCheckedIn:       {},
	BookingCompleted:       {},
	BookingCancelled:       {},
	BookingRefunded:        {},
}

// ActiveBookingStatuses still hold their time slot.
var ActiveBookingStatuses = []BookingStatus{
	BookingPendingApproval,
	BookingApproved,
	BookingConfirmed,
	BookingCheckedIn,
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return st, nil
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingStatuses[s]
	return ok
}

// IsTerminal reports whether no customer or owner operation may move the booking on.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingRefunded || s == BookingCompleted
}

func (s BookingStatus) HoldsSlot() bool {
	for _, a := range ActiveBookingStatuses {
		if s == a {
			return true
		}
	}
	return false
}

func (BookingStatus) GormDataType() string { return "varchar(20)" }

func (s BookingStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown booking status %q", string(s))
	}
	return string(s), nil
}

func (s *BookingStatus) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into BookingStatus", src)
	}
	st, err := ParseBookingStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

type Booking struct {
	ID         int64 `json:"booking_id" gorm:"column:id;primaryKey"`
	UserID     int64 `json:"user_id" gorm:"not null;index"`
	ResourceID int64 `json:"resource_id" gorm:"not null;index:idx_bookings_resource_date"`
	StudioID   int64 `json:"studio_id" gorm:"not null;index"`

	BookingDate     Date      `json:"booking_date" gorm:"not null;index:idx_bookings_resource_date"`
	StartTime       TimeOfDay `json:"start_time" gorm:"not null"`
	EndTime         TimeOfDay `json:"end_time" gorm:"not null"`
	DurationMinutes int       `json:"duration_minutes" gorm:"not null"`

	Status      BookingStatus   `json:"status" gorm:"not null;index"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:numeric(10,2);not null"`
	Currency    string          `json:"currency" gorm:"type:varchar(10);not null"`

	ApprovedBy      *int64     `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectionReason *string    `json:"rejection_reason" gorm:"type:text"`

	CancelledAt      *time.Time          `json:"cancelled_at"`
	CancelReason     *string             `json:"cancel_reason" gorm:"type:text"`
	RefundPercentage decimal.NullDecimal `json:"refund_percentage" gorm:"type:numeric(5,2)"`
	RefundAmount     decimal.NullDecimal `json:"refund_amount" gorm:"type:numeric(10,2)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// StartsAt is the booking start as an instant in loc.
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	return b.BookingDate.At(b.StartTime, loc)
}
