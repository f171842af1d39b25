package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRecency(t *testing.T) {
	short := 24 * time.Hour
	long := 7 * 24 * time.Hour

	recent := time.Now().Add(-2 * time.Hour)
	assert.Equal(t, RecencyShort, ClassifyRecency(&recent, short, long))

	lastWeek := time.Now().Add(-3 * 24 * time.Hour)
	assert.Equal(t, RecencyLong, ClassifyRecency(&lastWeek, short, long))

	lastMonth := time.Now().Add(-30 * 24 * time.Hour)
	assert.Equal(t, RecencyOther, ClassifyRecency(&lastMonth, short, long))

	assert.Equal(t, RecencyNever, ClassifyRecency(nil, short, long))
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin(time.Now().Add(-time.Hour), 24*time.Hour))
	assert.False(t, IsWithin(time.Now().Add(-25*time.Hour), 24*time.Hour))
}
