package dicom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatePrecisions(t *testing.T) {
	y, err := ParseDate("2024")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Precision: DatePrecisionYear}, y)
	assert.Equal(t, 4, y.EncodedLen())

	m, err := ParseDate("202403")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: 3, Precision: DatePrecisionMonth}, m)
	assert.Equal(t, 6, m.EncodedLen())

	d, err := ParseDate("20240315")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: 3, Day: 15, Precision: DatePrecisionDay}, d)
	assert.Equal(t, "20240315", d.String())
	assert.Equal(t, 8, d.EncodedLen())
}

func TestDateToTimeRequiresDayPrecision(t *testing.T) {
	y, err := ParseDate("2024")
	require.NoError(t, err)
	_, err = y.ToTime()
	assert.Error(t, err)

	d, err := ParseDate("20240315")
	require.NoError(t, err)
	got, err := d.ToTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateInvalidLength(t *testing.T) {
	_, err := ParseDate("202")
	assert.Error(t, err)
}

func TestParseTimePrecisions(t *testing.T) {
	h, err := ParseTime("14")
	require.NoError(t, err)
	assert.Equal(t, TimePrecisionHour, h.Precision)

	s, err := ParseTime("143015")
	require.NoError(t, err)
	assert.Equal(t, TimePrecisionSecond, s.Precision)
	assert.Equal(t, "143015", s.String())

	f, err := ParseTime("143015.5")
	require.NoError(t, err)
	assert.Equal(t, TimePrecisionFraction, f.Precision)
	assert.Equal(t, 1, f.FractionDigits)
	assert.Equal(t, "143015.5", f.String())
}

func TestTimeToDurationRequiresSecondPrecision(t *testing.T) {
	h, err := ParseTime("14")
	require.NoError(t, err)
	_, err = h.ToDuration()
	assert.Error(t, err)

	s, err := ParseTime("010203")
	require.NoError(t, err)
	d, err := s.ToDuration()
	require.NoError(t, err)
	assert.Equal(t, time.Hour+2*time.Minute+3*time.Second, d)
}

func TestParseDateTimeWithOffset(t *testing.T) {
	dt, err := ParseDateTime("20240315143015+0530")
	require.NoError(t, err)
	assert.True(t, dt.HasOffset)
	assert.Equal(t, 5*60+30, dt.OffsetMinute)
	assert.Equal(t, "20240315143015+0530", dt.String())
}

func TestParseDateTimeDateOnly(t *testing.T) {
	dt, err := ParseDateTime("20240315")
	require.NoError(t, err)
	assert.Equal(t, DatePrecisionDay, dt.Date.Precision)
	assert.False(t, dt.HasOffset)
}

func TestDateTimeToTimeRequiresPrecision(t *testing.T) {
	dt, err := ParseDateTime("20240315143015")
	require.NoError(t, err)
	got, err := dt.ToTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 14, 30, 15, 0, time.UTC), got)
}
