package booking

import (
	"iter"
	"time"

	"github.com/shopspring/decimal"
)

// Slot is one bookable window of SlotMinutes.
type Slot struct {
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	IsAvailable bool            `json:"is_available"`
	Price       decimal.Decimal `json:"price"`
}

// SlotGrid walks a day schedule in SlotMinutes steps.
type SlotGrid struct {
	Schedule  DaySchedule
	Occupancy Occupancy
	// Slots starting at or before Now are reported unavailable. Zero disables the check.
	Now      time.Time
	Location *time.Location
}

// All yields every window that fits completely inside the opening window.
// The sequence is finite and can be ranged over more than once.
func (g SlotGrid) All() iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if g.Schedule.Closed {
			return
		}
		price := Price(g.Schedule.HourlyRate, SlotMinutes)
		for start := g.Schedule.Window.Start; start.Add(SlotMinutes) <= g.Schedule.Window.End; start = start.Add(SlotMinutes) {
			iv := Interval{Start: start, End: start.Add(SlotMinutes)}
			if !yield(Slot{
				StartTime:   iv.Start.String(),
				EndTime:     iv.End.String(),
				IsAvailable: g.available(iv),
				Price:       price,
			}) {
				return
			}
		}
	}
}

func (g SlotGrid) available(iv Interval) bool {
	if _, closed := g.Schedule.closureFor(iv); closed {
		return false
	}
	if !g.Now.IsZero() && !g.Schedule.Date.At(iv.Start, g.Location).After(g.Now) {
		return false
	}
	return g.Occupancy.Conflict(iv, 0) == nil
}
