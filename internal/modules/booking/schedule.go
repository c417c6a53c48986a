package booking

import (
	"github.com/shopspring/decimal"

	"studiobook/internal/domain"
)

// Opening window used when a resource has no template for the weekday.
var (
	DefaultOpenTime  = domain.NewTimeOfDay(9, 0)
	DefaultCloseTime = domain.NewTimeOfDay(22, 0)
)

// DaySchedule is the resolved opening plan of one resource on one date.
type DaySchedule struct {
	Date       domain.Date
	Closed     bool
	Window     Interval
	Closures   []Interval
	HourlyRate decimal.Decimal
}

// ResolveSchedule applies the weekday template and the date's exceptions on top
// of the default window. tmpl may be nil.
func ResolveSchedule(res *domain.Resource, date domain.Date, tmpl *domain.AvailabilityTemplate, exceptions []domain.AvailabilityException) DaySchedule {
	s := DaySchedule{
		Date:       date,
		Window:     Interval{Start: DefaultOpenTime, End: DefaultCloseTime},
		HourlyRate: res.BasePricePerHour,
	}

	if tmpl != nil {
		if !tmpl.IsAvailable || tmpl.CloseTime <= tmpl.OpenTime {
			s.Closed = true
		}
		s.Window = Interval{Start: tmpl.OpenTime, End: tmpl.CloseTime}
	}

	closedAllDay := false
	for i := range exceptions {
		ex := &exceptions[i]
		if ex.OverridePrice.Valid {
			s.HourlyRate = ex.OverridePrice.Decimal
		}
		switch {
		case !ex.IsAvailable && ex.WholeDay():
			closedAllDay = true
		case !ex.IsAvailable:
			if *ex.EndTime > *ex.StartTime {
				s.Closures = append(s.Closures, Interval{Start: *ex.StartTime, End: *ex.EndTime})
			}
		case !ex.WholeDay() && *ex.EndTime > *ex.StartTime:
			// special opening hours for the date
			s.Window = Interval{Start: *ex.StartTime, End: *ex.EndTime}
			s.Closed = false
		}
	}
	// a whole-day closure wins over special hours regardless of row order
	if closedAllDay {
		s.Closed = true
	}
	return s
}

// Permits reports why iv cannot be booked under the schedule, or nil.
func (s DaySchedule) Permits(iv Interval) error {
	if s.Closed {
		return invalidInterval("booking_date", "resource is closed on "+s.Date.String())
	}
	if !s.Window.Contains(iv) {
		return invalidInterval("start_time", "booking "+iv.String()+" is outside operating hours "+s.Window.String())
	}
	if c, ok := s.closureFor(iv); ok {
		return invalidInterval("start_time", "booking "+iv.String()+" overlaps closure "+c.String())
	}
	return nil
}

func (s DaySchedule) closureFor(iv Interval) (Interval, bool) {
	for _, c := range s.Closures {
		if c.Overlaps(iv) {
			return c, true
		}
	}
	return Interval{}, false
}
