package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	c := NewClock(time.Second)
	assert.False(t, c.IsRunning())
	assert.Equal(t, time.Second, c.GetTimeLeft())
	assert.Equal(t, 10, c.tenths())

	c.Start()
	assert.True(t, c.IsRunning())
	time.Sleep(20 * time.Millisecond)
	c.Stop()
	assert.False(t, c.IsRunning())

	left := c.GetTimeLeft()
	assert.Less(t, left, time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, left, c.GetTimeLeft(), "a stopped clock does not tick")

	c.Stop()
	assert.Equal(t, left, c.GetTimeLeft())
}

func TestClockNeverReportsNegative(t *testing.T) {
	c := NewClock(time.Millisecond)
	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Stop()
	assert.Negative(t, int64(c.GetTimeLeft()))
	assert.Equal(t, 0, c.tenths())
}
