package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffCapsDelay(t *testing.T) {
	b := backoff{maxRetries: 5, delay: 500 * time.Millisecond, maxDelay: 5 * time.Second}

	assert.Equal(t, 500*time.Millisecond, b.nextDelay(0))
	assert.Equal(t, time.Second, b.nextDelay(1))
	assert.Equal(t, 4*time.Second, b.nextDelay(3))
	assert.Equal(t, 5*time.Second, b.nextDelay(4))
	assert.Equal(t, 5*time.Second, b.nextDelay(10))
}
