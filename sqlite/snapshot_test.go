package sqlite_test

import (
	"context"
	"testing"

	"github.com/bombsimon/hemnet"
	"github.com/bombsimon/hemnet/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intptr(n int) *int { return &n }

func TestSnapshotService_CreateSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("assigns id, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewSnapshotService(db)

		snapshot := &hemnet.Snapshot{
			ListingType: hemnet.ListingTypeForSale,
			URL:         "https://www.hemnet.se/bostad/lagenhet-123",
			Address:     "Storgatan 12B",
			Price:       intptr(2600000),
			LivingArea:  64.5,
			Rooms:       2.5,
		}

		require.NoError(t, s.CreateSnapshot(context.Background(), snapshot))

		assert.NotEmpty(t, snapshot.ID)
		assert.NotEmpty(t, snapshot.ContentHash)
		assert.False(t, snapshot.SeenAt.IsZero())
	})

	t.Run("unchanged listings hash identically", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewSnapshotService(db)

		mk := func(price int) *hemnet.Snapshot {
			return &hemnet.Snapshot{
				ListingType: hemnet.ListingTypeForSale,
				URL:         "https://www.hemnet.se/bostad/lagenhet-123",
				Address:     "Storgatan 12B",
				Price:       intptr(price),
				LivingArea:  64.5,
				Rooms:       2.5,
			}
		}

		first, second, changed := mk(2600000), mk(2600000), mk(2500000)

		require.NoError(t, s.CreateSnapshot(context.Background(), first))
		require.NoError(t, s.CreateSnapshot(context.Background(), second))
		require.NoError(t, s.CreateSnapshot(context.Background(), changed))

		assert.Equal(t, first.ContentHash, second.ContentHash)
		assert.NotEqual(t, first.ContentHash, changed.ContentHash)
	})

	t.Run("invalid snapshot is rejected", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewSnapshotService(db)

		err := s.CreateSnapshot(context.Background(), &hemnet.Snapshot{
			ListingType: hemnet.ListingTypeForSale,
			URL:         "https://www.hemnet.se/bostad/lagenhet-123",
		})

		require.Error(t, err)
		assert.Equal(t, hemnet.EINVALID, hemnet.ErrorCode(err))
	})
}

func TestSnapshotService_FindSnapshots(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	s := sqlite.NewSnapshotService(db)
	ctx := context.Background()

	seed := []*hemnet.Snapshot{
		{ListingType: hemnet.ListingTypeForSale, URL: "https://www.hemnet.se/bostad/1", Address: "Storgatan 1", LivingArea: 40, Rooms: 2},
		{ListingType: hemnet.ListingTypeForSale, URL: "https://www.hemnet.se/bostad/2", Address: "Storgatan 2", LivingArea: 55, Rooms: 3},
		{ListingType: hemnet.ListingTypeSold, URL: "https://www.hemnet.se/salda/3", Address: "Vitmåravägen 23", Price: intptr(2450000), LivingArea: 120, Rooms: 5},
	}
	for _, snapshot := range seed {
		require.NoError(t, s.CreateSnapshot(ctx, snapshot))
	}

	t.Run("all", func(t *testing.T) {
		found, err := s.FindSnapshots(ctx, hemnet.SnapshotFilter{})

		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("by listing type", func(t *testing.T) {
		typ := hemnet.ListingTypeSold
		found, err := s.FindSnapshots(ctx, hemnet.SnapshotFilter{ListingType: &typ})

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Vitmåravägen 23", found[0].Address)
		require.NotNil(t, found[0].Price)
		assert.Equal(t, 2450000, *found[0].Price)
	})

	t.Run("by url", func(t *testing.T) {
		url := "https://www.hemnet.se/bostad/2"
		found, err := s.FindSnapshots(ctx, hemnet.SnapshotFilter{URL: &url})

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Storgatan 2", found[0].Address)
		assert.Nil(t, found[0].Price)
	})

	t.Run("latest first within the same second", func(t *testing.T) {
		db := MustOpenDB(t)
		s := sqlite.NewSnapshotService(db)

		// Back-to-back creates share a seen_at second, so insertion
		// order must decide which snapshot is the latest.
		url := "https://www.hemnet.se/bostad/9"
		for _, price := range []int{2600000, 2550000, 2500000} {
			require.NoError(t, s.CreateSnapshot(ctx, &hemnet.Snapshot{
				ListingType: hemnet.ListingTypeForSale,
				URL:         url,
				Address:     "Storgatan 9",
				Price:       intptr(price),
				LivingArea:  40,
				Rooms:       2,
			}))
		}

		found, err := s.FindSnapshots(ctx, hemnet.SnapshotFilter{URL: &url, Limit: 1})

		require.NoError(t, err)
		require.Len(t, found, 1)
		require.NotNil(t, found[0].Price)
		assert.Equal(t, 2500000, *found[0].Price)
	})

	t.Run("pagination", func(t *testing.T) {
		found, err := s.FindSnapshots(ctx, hemnet.SnapshotFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, found, 2)

		found, err = s.FindSnapshots(ctx, hemnet.SnapshotFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})
}

func TestSnapshotService_DeleteSnapshotsByType(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	s := sqlite.NewSnapshotService(db)
	ctx := context.Background()

	for _, snapshot := range []*hemnet.Snapshot{
		{ListingType: hemnet.ListingTypeForSale, URL: "https://www.hemnet.se/bostad/1", Address: "Storgatan 1"},
		{ListingType: hemnet.ListingTypeSold, URL: "https://www.hemnet.se/salda/2", Address: "Storgatan 2"},
	} {
		require.NoError(t, s.CreateSnapshot(ctx, snapshot))
	}

	require.NoError(t, s.DeleteSnapshotsByType(ctx, hemnet.ListingTypeForSale))

	found, err := s.FindSnapshots(ctx, hemnet.SnapshotFilter{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, hemnet.ListingTypeSold, found[0].ListingType)

	t.Run("invalid type is rejected", func(t *testing.T) {
		err := s.DeleteSnapshotsByType(ctx, hemnet.ListingType("rented"))

		require.Error(t, err)
		assert.Equal(t, hemnet.EINVALID, hemnet.ErrorCode(err))
	})
}
