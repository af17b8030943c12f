package clock_test

import (
	"testing"
	"time"

	"github.com/colosseum-network/colosseumd/internal/infrastructure/clock"
	"github.com/stretchr/testify/require"
)

func TestSystemClock(t *testing.T) {
	c := clock.NewSystemClock()

	before := time.Now().UTC().Truncate(time.Second)
	now := c.Now()
	after := time.Now().UTC()

	require.Equal(t, time.UTC, now.Location())
	require.Zero(t, now.Nanosecond())
	require.False(t, now.Before(before))
	require.False(t, now.After(after))
}
