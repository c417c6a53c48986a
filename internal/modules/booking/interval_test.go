package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiobook/internal/domain"
)

func iv(start, end string) Interval {
	return Interval{Start: domain.MustTimeOfDay(start), End: domain.MustTimeOfDay(end)}
}

func TestDurationMinutes(t *testing.T) {
	m, err := DurationMinutes(domain.MustTimeOfDay("14:00"), domain.MustTimeOfDay("16:00"))
	require.NoError(t, err)
	assert.Equal(t, 120, m)

	m, err = DurationMinutes(domain.MustTimeOfDay("09:00"), domain.MustTimeOfDay("09:17"))
	require.NoError(t, err)
	assert.Equal(t, 17, m, "no granularity here")

	_, err = DurationMinutes(domain.MustTimeOfDay("10:00"), domain.MustTimeOfDay("10:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = DurationMinutes(domain.MustTimeOfDay("11:00"), domain.MustTimeOfDay("10:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(30))
	assert.NoError(t, ValidateDuration(90))
	assert.ErrorIs(t, ValidateDuration(0), ErrInvalidInterval)
	assert.ErrorIs(t, ValidateDuration(29), ErrInvalidInterval)
	assert.ErrorIs(t, ValidateDuration(45), ErrInvalidInterval)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"touching end to start", iv("09:00", "10:00"), iv("10:00", "11:00"), false},
		{"one minute into next", iv("09:00", "10:01"), iv("10:00", "11:00"), true},
		{"identical", iv("09:00", "10:00"), iv("09:00", "10:00"), true},
		{"contained", iv("09:00", "12:00"), iv("10:00", "11:00"), true},
		{"disjoint", iv("09:00", "10:00"), iv("13:00", "14:00"), false},
		{"partial", iv("09:30", "10:30"), iv("10:00", "11:00"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestOverlaps_SymmetricOverGrid(t *testing.T) {
	var all []Interval
	for s := domain.NewTimeOfDay(9, 0); s < domain.NewTimeOfDay(12, 0); s = s.Add(SlotMinutes) {
		for e := s.Add(SlotMinutes); e <= domain.NewTimeOfDay(12, 0); e = e.Add(SlotMinutes) {
			all = append(all, Interval{Start: s, End: e})
		}
	}
	for _, a := range all {
		for _, b := range all {
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "%s vs %s", a, b)
		}
	}
}

func TestInterval_Contains(t *testing.T) {
	day := iv("09:00", "22:00")
	assert.True(t, day.Contains(iv("09:00", "22:00")))
	assert.True(t, day.Contains(iv("14:00", "16:00")))
	assert.False(t, day.Contains(iv("08:30", "09:30")))
	assert.False(t, day.Contains(iv("21:30", "22:30")))
}

func TestNewInterval(t *testing.T) {
	got, err := NewInterval(domain.MustTimeOfDay("14:00"), domain.MustTimeOfDay("16:00"))
	require.NoError(t, err)
	assert.Equal(t, 120, got.Minutes())
	assert.Equal(t, "14:00-16:00", got.String())

	_, err = NewInterval(domain.TimeOfDay(-5), domain.MustTimeOfDay("16:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
