package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate_TruncatesToDay(t *testing.T) {
	instant := time.Date(2026, 3, 14, 23, 45, 12, 999, time.FixedZone("CET", 3600))
	d := NewDate(instant)
	assert.Equal(t, "2026-03-14", d.String())
	assert.Equal(t, time.UTC, d.Time().Location())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-11-20")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-20", d.String())

	_, err = ParseDate("20/11/2025")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDate_Comparisons(t *testing.T) {
	earlier := MustParseDate("2026-01-05")
	later := MustParseDate("2026-01-08")

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.Equal(later))
	assert.True(t, earlier.Equal(MustParseDate("2026-01-05")))
}

func TestDate_AddDays(t *testing.T) {
	d := MustParseDate("2026-02-28")
	assert.Equal(t, "2026-03-01", d.AddDays(1).String())
	assert.Equal(t, "2026-02-27", d.AddDays(-1).String())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := MustParseDate("2025-11-20")

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-11-20"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, d.Equal(parsed))
}

func TestDate_JSONNull(t *testing.T) {
	var zero Date
	data, err := json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte("null"), &parsed))
	assert.True(t, parsed.IsZero())
}

func TestDate_Scan(t *testing.T) {
	t.Run("plain date string", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan("2026-01-08"))
		assert.Equal(t, "2026-01-08", d.String())
	})

	t.Run("full timestamp string", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan("2026-01-08 14:30:00+00:00"))
		assert.Equal(t, "2026-01-08", d.String())
	})

	t.Run("time value", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(time.Date(2026, 1, 8, 9, 0, 0, 0, time.UTC)))
		assert.Equal(t, "2026-01-08", d.String())
	})

	t.Run("nil clears", func(t *testing.T) {
		d := MustParseDate("2026-01-08")
		require.NoError(t, d.Scan(nil))
		assert.True(t, d.IsZero())
	})
}

func TestDate_Value(t *testing.T) {
	d := MustParseDate("2026-01-08")
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-01-08", v)

	var zero Date
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
