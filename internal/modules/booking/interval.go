package booking

import (
	"fmt"

	"studiobook/internal/domain"
)

// SlotMinutes is the booking granularity.
const SlotMinutes = 30

// Interval is a half-open wall-clock range [Start, End) on a single day.
type Interval struct {
	Start domain.TimeOfDay `json:"start_time"`
	End   domain.TimeOfDay `json:"end_time"`
}

func NewInterval(start, end domain.TimeOfDay) (Interval, error) {
	if _, err := DurationMinutes(start, end); err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// DurationMinutes returns the whole minutes from start to end on the same day.
// It imposes no granularity.
func DurationMinutes(start, end domain.TimeOfDay) (int, error) {
	if !start.Valid() || !end.Valid() {
		return 0, invalidInterval("start_time", "time of day out of range")
	}
	if end <= start {
		return 0, invalidInterval("end_time", fmt.Sprintf("end time %s must be after start time %s", end, start))
	}
	return int(end - start), nil
}

// ValidateDuration enforces the booking granularity on a computed duration.
func ValidateDuration(minutes int) error {
	if minutes < SlotMinutes {
		return invalidInterval("duration_minutes", fmt.Sprintf("minimum booking duration is %d minutes", SlotMinutes))
	}
	if minutes%SlotMinutes != 0 {
		return invalidInterval("duration_minutes", fmt.Sprintf("booking duration must be in %d-minute increments", SlotMinutes))
	}
	return nil
}

func (i Interval) Minutes() int {
	return int(i.End - i.Start)
}

// Overlaps is symmetric; touching endpoints do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

// Contains reports whether o lies entirely inside i.
func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.End <= i.End
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}
