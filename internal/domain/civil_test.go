package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "09:00", want: NewTimeOfDay(9, 0)},
		{in: "14:30:00", want: NewTimeOfDay(14, 30)},
		{in: " 22:00 ", want: NewTimeOfDay(22, 0)},
		{in: "10:01:30", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "noon", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTimeOfDay_ScanAndValue(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan("16:30"))
	assert.Equal(t, "16:30", tod.String())

	require.NoError(t, tod.Scan([]byte("08:00")))
	assert.Equal(t, NewTimeOfDay(8, 0), tod)

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 11, 30, 0, 0, time.UTC)))
	assert.Equal(t, NewTimeOfDay(11, 30), tod)

	v, err := NewTimeOfDay(7, 5).Value()
	require.NoError(t, err)
	assert.Equal(t, "07:05", v)

	_, err = TimeOfDay(24 * 60).Value()
	assert.Error(t, err)

	assert.Error(t, tod.Scan(42))
}

func TestDate_ScanAcceptsDriverShapes(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2026-10-20"))
	assert.Equal(t, NewDate(2026, time.October, 20), d)

	require.NoError(t, d.Scan(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-01-02", d.String())

	require.NoError(t, d.Scan([]byte("2026-03-04T00:00:00Z")))
	assert.Equal(t, "2026-03-04", d.String())

	assert.Error(t, d.Scan("04/03/2026"))
}

func TestDate_JSONRoundTrip(t *testing.T) {
	type payload struct {
		Date  Date      `json:"date"`
		Start TimeOfDay `json:"start"`
	}
	in := payload{Date: NewDate(2026, time.December, 31), Start: NewTimeOfDay(14, 0)}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-12-31","start":"14:00"}`, string(b))

	var out payload
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestDate_Helpers(t *testing.T) {
	d := NewDate(2026, time.October, 19)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, "2026-10-20", d.AddDays(1).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))

	loc := time.FixedZone("IST", 5*3600+1800)
	at := d.At(NewTimeOfDay(14, 0), loc)
	assert.Equal(t, 14, at.Hour())
	assert.Equal(t, loc, at.Location())
}
