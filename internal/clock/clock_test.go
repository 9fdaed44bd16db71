package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_TodayUsesLocation(t *testing.T) {
	tokyo, err := Load("Asia/Tokyo")
	require.NoError(t, err)

	// 20:00 UTC on the 9th is already the 10th in Tokyo.
	instant := time.Date(2024, 1, 9, 20, 0, 0, 0, time.UTC)
	c := &Local{Location: tokyo, now: func() time.Time { return instant }}
	assert.Equal(t, "2024-01-10", c.Today())

	c.Location = time.UTC
	assert.Equal(t, "2024-01-09", c.Today())
}

func TestFixed(t *testing.T) {
	var c Clock = Fixed("2024-01-10")
	assert.Equal(t, "2024-01-10", c.Today())
}

func TestLoad(t *testing.T) {
	loc, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	_, err = Load("Not/AZone")
	assert.Error(t, err)
}
