package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tourismBooking/internal/apperrors"
)

func TestLoginThrottle_PerKeyBurst(t *testing.T) {
	th := NewLoginThrottle(1, 3)
	now := time.Unix(1_700_000_000, 0)
	th.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, th.Allow("10.0.0.1"), "attempt %d", i)
	}
	assert.False(t, th.Allow("10.0.0.1"))
	assert.True(t, th.Allow("10.0.0.2"), "other clients are unaffected")

	now = now.Add(time.Second)
	assert.True(t, th.Allow("10.0.0.1"), "token refilled")
}

func TestLoginThrottle_SweepsIdleClients(t *testing.T) {
	th := NewLoginThrottle(1, 1)
	now := time.Unix(1_700_000_000, 0)
	th.now = func() time.Time { return now }
	th.Allow("a")
	now = now.Add(time.Hour)
	th.Allow("b")
	_, ok := th.limiters["a"]
	assert.False(t, ok)
}

func TestLoginThrottle_Disabled(t *testing.T) {
	th := NewLoginThrottle(0, 1)
	for i := 0; i < 100; i++ {
		assert.True(t, th.Allow("x"))
	}
	var nilThrottle *LoginThrottle
	assert.True(t, nilThrottle.Allow("x"))
}

func TestLoginThrottle_CheckWrapsRateLimited(t *testing.T) {
	th := NewLoginThrottle(1, 1)
	now := time.Unix(1_700_000_000, 0)
	th.now = func() time.Time { return now }

	assert.NoError(t, th.Check("10.0.0.1"))
	err := th.Check("10.0.0.1")
	assert.ErrorIs(t, err, apperrors.ErrRateLimited)
	assert.NoError(t, (*LoginThrottle)(nil).Check("10.0.0.1"))
}
