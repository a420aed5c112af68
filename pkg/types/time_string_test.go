package types

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59", "24:00"}
	for _, s := range valid {
		ts, err := NewTimeStringFromString(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, ts.String())
	}

	invalid := []string{"", "9:30", "24:01", "12:60", "ab:cd", "12-30"}
	for _, s := range invalid {
		_, err := NewTimeStringFromString(s)
		assert.ErrorIs(t, err, ErrInvalidTimeString, s)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("23:30")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), next)

	_, err = ts.AddMinutes(31)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.True(t, TimeString("24:00").IsAfter("23:59"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
}

func TestTimeString_On(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, loc)

	start, err := TimeString("09:15").On(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 6, 15, 0, 0, time.UTC), start.UTC())

	end, err := TimeString("24:00").On(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, loc), end)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("18:00")))
	assert.Equal(t, TimeString("18:00"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Start TimeString `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"08:45"}`), &payload))
	assert.Equal(t, TimeString("08:45"), payload.Start)

	assert.Error(t, json.Unmarshal([]byte(`{"start":"8:45"}`), &payload))
}
