package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWallClockIsUTC(t *testing.T) {
	now := NewWallClock().Now()
	assert.Equal(t, time.UTC, now.Location())
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	c := NewFixedClock(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start, c.Now(), "repeated observations do not drift")

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	next := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	c.SetTime(next)
	assert.Equal(t, next, c.Now())
}

func TestFixedClockNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("AEST", 10*60*60)
	local := time.Date(2024, 3, 1, 19, 30, 0, 0, loc)

	c := NewFixedClock(local)
	assert.Equal(t, time.UTC, c.Now().Location())
	assert.True(t, c.Now().Equal(local))
}
