package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/mediacat/internal/media"
)

func TestParseDayNumber(t *testing.T) {
	day := func(d, m, y int) int { return media.DateParts{Day: d, Month: m, Year: y}.DayNumber() }

	tests := []struct {
		in   string
		end  bool
		want int
	}{
		{"15.06.2020", false, day(15, 6, 2020)},
		{"15.06.2020", true, day(15, 6, 2020)},
		{"06.2020", false, day(1, 6, 2020)},
		{"06.2020", true, day(30, 6, 2020)},
		{"02.2020", true, day(29, 2, 2020)},
		{"2020", false, day(1, 1, 2020)},
		{"2020", true, day(31, 12, 2020)},
	}
	for _, tt := range tests {
		got, err := parseDayNumber(tt.in, tt.end)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, "%s end=%v", tt.in, tt.end)
	}

	_, err := parseDayNumber("13.2020", false)
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("2024-03-01T10:00:00Z", false)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))

	start, err := parseTime("2024-03-01", false)
	require.NoError(t, err)
	end, err := parseTime("2024-03-01", true)
	require.NoError(t, err)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.Sub(start) < 24*time.Hour)

	_, err = parseTime("01.03.2024", false)
	assert.Error(t, err)
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "record", plural(1, "record"))
	assert.Equal(t, "records", plural(0, "record"))
	assert.Equal(t, "records", plural(2, "record"))
}
