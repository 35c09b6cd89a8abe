package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/biblion/internal/mykafka"
	"github.com/Skotchmaster/biblion/internal/repo"
)

func TestCartService(t *testing.T) {
	r, pub := setup(t)
	ctx := context.Background()
	svc := &CartService{Repo: r, Events: pub}
	user := newUser(t, r)

	cart, err := svc.Get(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, uint(0), cart.Count)

	for i, id := range []uint{1, 1, 4} {
		_, err := svc.Add(ctx, user, id)
		require.NoError(t, err)
		cart, err = svc.Get(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, uint(i+1), cart.Count, "each add increases the count by one")
	}
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, "48.97", cart.Total.StringFixed(2))

	_, err = svc.Add(ctx, user, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, item, err := svc.DecrementOne(ctx, user, 1)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, uint(1), item.Quantity)

	deleted, _, err = svc.DecrementOne(ctx, user, 1)
	require.NoError(t, err)
	assert.True(t, deleted, "removing the last unit removes the line")

	_, _, err = svc.DecrementOne(ctx, user, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	item, err = svc.UpdateQuantity(ctx, user, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), item.Quantity)

	item, err = svc.UpdateQuantity(ctx, user, 4, 0)
	require.NoError(t, err)
	assert.Nil(t, item)

	_, err = svc.UpdateQuantity(ctx, user, 4, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Remove(ctx, user, 4), ErrNotFound)

	_, err = svc.Add(ctx, user, 2)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, user))
	cart, err = svc.Get(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	assert.Contains(t, pub.types(), mykafka.EventCartCleared)
}

func TestWishlistService(t *testing.T) {
	r, pub := setup(t)
	ctx := context.Background()
	svc := &WishlistService{Repo: r, Events: pub, Now: fixedNow}
	user := newUser(t, r)

	item, created, err := svc.Add(ctx, user, 1)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 14.99, item.PriceWhenAdded)
	assert.Nil(t, item.PriceDrop)

	_, created, err = svc.Add(ctx, user, 1)
	require.NoError(t, err)
	assert.False(t, created, "adding twice is a no-op")

	cheaper, pricier := 12.49, 19.99
	_, err = r.PatchBook(ctx, 1, repo.BookPatch{Price: &cheaper})
	require.NoError(t, err)

	_, _, err = svc.Add(ctx, user, 2)
	require.NoError(t, err)
	_, err = r.PatchBook(ctx, 2, repo.BookPatch{Price: &pricier})
	require.NoError(t, err)

	items, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].PriceDrop)
	assert.Equal(t, 2.5, *items[0].PriceDrop)
	assert.Nil(t, items[1].PriceDrop, "no drop when the price went up")

	added, err := svc.Toggle(ctx, user, 2)
	require.NoError(t, err)
	assert.False(t, added)
	ok, err := svc.Contains(ctx, user, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	added, err = svc.Toggle(ctx, user, 2)
	require.NoError(t, err)
	assert.True(t, added)

	require.NoError(t, svc.Remove(ctx, user, 1))
	assert.ErrorIs(t, svc.Remove(ctx, user, 1), ErrNotFound)

	_, err = svc.Toggle(ctx, user, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, mykafka.EventWishlistAdded, pub.types()[0])
}

func TestPriceDrop(t *testing.T) {
	tests := []struct {
		added, current float64
		want           *float64
	}{
		{14.99, 12.49, f64(2.5)},
		{10, 10, nil},
		{10, 11, nil},
		{0.3, 0.1, f64(0.2)},
	}
	for _, tt := range tests {
		got := PriceDrop(tt.added, tt.current)
		if tt.want == nil {
			assert.Nil(t, got)
			continue
		}
		require.NotNil(t, got)
		assert.Equal(t, *tt.want, *got)
	}
}
