package redisx

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimOnlyOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := New(mr.Addr())
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, Ping(ctx, rdb))

	key := fmt.Sprintf(KeyDedup, "notifier", "evt-1")
	first, err := Claim(ctx, rdb, key, TTLDedup)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := Claim(ctx, rdb, key, TTLDedup)
	require.NoError(t, err)
	assert.False(t, second)

	assert.Equal(t, TTLDedup, mr.TTL(key))
}
