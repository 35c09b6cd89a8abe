package kv

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRecent()

	for i := 1; i <= 6; i++ {
		_, err := m.Add(ctx, "u1", fmt.Sprintf("q%d", i))
		require.NoError(t, err)
	}
	list, err := m.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"q6", "q5", "q4", "q3", "q2"}, list)

	list, err = m.Add(ctx, "u1", "q4")
	require.NoError(t, err)
	assert.Equal(t, []string{"q4", "q6", "q5", "q3", "q2"}, list)

	other, err := m.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, m.Clear(ctx, "u1"))
	list, err = m.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryIdempotency(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryIdempotency()
	m.now = func() time.Time { return now }

	_, ok, err := m.Get(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "u1", "k1", "BIB-1", time.Hour))
	v, ok, err := m.Get(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "BIB-1", v)

	_, ok, _ = m.Get(ctx, "u2", "k1")
	assert.False(t, ok, "keys are scoped per user")

	now = now.Add(2 * time.Hour)
	_, ok, _ = m.Get(ctx, "u1", "k1")
	assert.False(t, ok, "expired entry")
}

func TestKeyFormats(t *testing.T) {
	assert.Equal(t, "biblion:recent:u1", fmt.Sprintf(KeyRecentSearches, "u1"))
	assert.Equal(t, "biblion:idem:checkout:u1:abc", fmt.Sprintf(KeyIdemCheckout, "u1", "abc"))
}
