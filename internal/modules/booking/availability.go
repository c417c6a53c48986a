package booking

import (
	"context"
	"fmt"

	"studiobook/internal/domain"
)

// Checker answers whether an interval on a resource is still free.
type Checker struct {
	bookings BookingRepository
}

func NewChecker(bookings BookingRepository) *Checker {
	return &Checker{bookings: bookings}
}

// IsAvailable reports whether [start, end) is free on the resource and date.
// A non-zero excludeBookingID ignores that booking's own reservation.
func (c *Checker) IsAvailable(ctx context.Context, resourceID int64, date domain.Date, start, end domain.TimeOfDay, excludeBookingID int64) (bool, error) {
	iv, err := NewInterval(start, end)
	if err != nil {
		return false, err
	}
	existing, err := c.FindConflict(ctx, resourceID, date, iv, excludeBookingID)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

// FindConflict returns the first slot-holding booking overlapping iv, or nil.
func (c *Checker) FindConflict(ctx context.Context, resourceID int64, date domain.Date, iv Interval, excludeBookingID int64) (*domain.Booking, error) {
	occ, err := c.Occupancy(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}
	return occ.Conflict(iv, excludeBookingID), nil
}

// Occupancy loads the slot-holding bookings of one resource-day.
func (c *Checker) Occupancy(ctx context.Context, resourceID int64, date domain.Date) (Occupancy, error) {
	rows, err := c.bookings.ListActive(ctx, resourceID, date)
	if err != nil {
		return nil, fmt.Errorf("list active bookings: %w", err)
	}
	return Occupancy(rows), nil
}

// Occupancy is a snapshot of the bookings holding slots on one resource-day.
type Occupancy []domain.Booking

func (o Occupancy) Conflict(iv Interval, excludeBookingID int64) *domain.Booking {
	for i := range o {
		b := &o[i]
		if excludeBookingID != 0 && b.ID == excludeBookingID {
			continue
		}
		// repositories already filter, but the rule belongs here
		if !b.Status.HoldsSlot() {
			continue
		}
		if iv.Overlaps(Interval{Start: b.StartTime, End: b.EndTime}) {
			return b
		}
	}
	return nil
}
