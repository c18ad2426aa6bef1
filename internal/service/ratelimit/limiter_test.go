package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimiterBurstPerKey(t *testing.T) {
	l := New(0.001, 2)
	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	// other keys have their own bucket
	assert.True(t, l.Allow("b"))
}

func TestLimiterDisabled(t *testing.T) {
	l := New(0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("a"))
	}
}
