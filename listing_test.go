package hemnet_test

import (
	"testing"
	"time"

	"github.com/bombsimon/hemnet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListingType(t *testing.T) {
	t.Parallel()

	t.Run("known types", func(t *testing.T) {
		t.Parallel()

		forSale, err := hemnet.ParseListingType("for-sale")
		require.NoError(t, err)
		assert.Equal(t, hemnet.ListingTypeForSale, forSale)

		sold, err := hemnet.ParseListingType("sold")
		require.NoError(t, err)
		assert.Equal(t, hemnet.ListingTypeSold, sold)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := hemnet.ParseListingType("rented")

		require.Error(t, err)
		assert.Equal(t, hemnet.EINVALID, hemnet.ErrorCode(err))
	})
}

func TestNewListing_ForSale(t *testing.T) {
	t.Parallel()

	raw := hemnet.RawFields{
		hemnet.FieldAddress:    "Storgatan 12B",
		hemnet.FieldPrice:      "2 600 000",
		hemnet.FieldLivingArea: "54,5+10",
		hemnet.FieldRooms:      "2,5",
		hemnet.FieldFloor:      "Vån 2",
		hemnet.FieldFee:        "3 298",
		hemnet.FieldPricePerM2: "47 706",
	}

	l, err := hemnet.NewListing("https://www.hemnet.se/bostad/123", raw)
	require.NoError(t, err)

	assert.Equal(t, "Storgatan", l.Street)
	require.NotNil(t, l.StreetNumber)
	assert.Equal(t, 12, *l.StreetNumber)
	assert.Equal(t, "B", l.StreetNumberLetter)

	require.NotNil(t, l.Price)
	assert.Equal(t, 2600000, *l.Price)

	assert.InDelta(t, 54.5, l.LivingArea, 0.001)
	assert.InDelta(t, 10, l.LivingBiArea, 0.001)
	assert.InDelta(t, 2.5, l.Rooms, 0.001)

	require.NotNil(t, l.Floor)
	assert.InDelta(t, 2, *l.Floor, 0.001)

	require.NotNil(t, l.Fee)
	assert.Equal(t, 3298, *l.Fee)
	require.NotNil(t, l.PricePerSquareMeter)
	assert.Equal(t, 47706, *l.PricePerSquareMeter)

	assert.Nil(t, l.PriceChange)
	assert.Nil(t, l.SoldAt)
	assert.False(t, l.SoldBeforePreview)
}

func TestNewListing_Sold(t *testing.T) {
	t.Parallel()

	raw := hemnet.RawFields{
		hemnet.FieldAddress:     "Vitmåravägen 23",
		hemnet.FieldPrice:       "Slutpris 2 450 000 kr",
		hemnet.FieldLivingArea:  "120",
		hemnet.FieldRooms:       "5",
		hemnet.FieldPriceChange: "-2",
		hemnet.FieldSoldDate:    "15 mars 2021",
	}

	l, err := hemnet.NewListing("https://www.hemnet.se/salda/456", raw)
	require.NoError(t, err)

	require.NotNil(t, l.Price)
	assert.Equal(t, 2450000, *l.Price)

	require.NotNil(t, l.PriceChange)
	assert.Equal(t, -2, *l.PriceChange)

	require.NotNil(t, l.SoldAt)
	assert.Equal(t, time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC), *l.SoldAt)

	// Sold listings lack floor data.
	assert.Nil(t, l.Floor)
}

func TestNewListing(t *testing.T) {
	t.Parallel()

	t.Run("address round trips through decomposition", func(t *testing.T) {
		t.Parallel()

		for _, address := range []string{"Storgatan 12B", "Vitmåravägen 23", "Skärgårdsvägen"} {
			l, err := hemnet.NewListing("https://www.hemnet.se/bostad/1", hemnet.RawFields{
				hemnet.FieldAddress:    address,
				hemnet.FieldLivingArea: "54,5",
			})

			require.NoError(t, err)
			assert.Equal(t, address, l.Address())
		}
	})

	t.Run("floor hint from address remainder", func(t *testing.T) {
		t.Parallel()

		l, err := hemnet.NewListing("https://www.hemnet.se/bostad/1", hemnet.RawFields{
			hemnet.FieldAddress:    "Kungsgatan 5, Vån 3",
			hemnet.FieldLivingArea: "70",
		})

		require.NoError(t, err)
		require.NotNil(t, l.Floor)
		assert.InDelta(t, 3, *l.Floor, 0.001)
	})

	t.Run("absent numeric fields stay nil", func(t *testing.T) {
		t.Parallel()

		l, err := hemnet.NewListing("https://www.hemnet.se/bostad/1", hemnet.RawFields{
			hemnet.FieldAddress:    "Storgatan 1",
			hemnet.FieldLivingArea: "40",
		})

		require.NoError(t, err)
		assert.Nil(t, l.Price)
		assert.Nil(t, l.Fee)
		assert.Nil(t, l.PricePerSquareMeter)
		assert.Nil(t, l.PriceChange)
		assert.Nil(t, l.Floor)
	})

	t.Run("price without digits stays nil", func(t *testing.T) {
		t.Parallel()

		l, err := hemnet.NewListing("https://www.hemnet.se/bostad/1", hemnet.RawFields{
			hemnet.FieldAddress:    "Storgatan 1",
			hemnet.FieldPrice:      "Prisuppgift saknas",
			hemnet.FieldLivingArea: "40",
		})

		require.NoError(t, err)
		assert.Nil(t, l.Price)
	})

	t.Run("sold before preview flag", func(t *testing.T) {
		t.Parallel()

		l, err := hemnet.NewListing("https://www.hemnet.se/bostad/1", hemnet.RawFields{
			hemnet.FieldAddress:           "Storgatan 1",
			hemnet.FieldLivingArea:        "40",
			hemnet.FieldSoldBeforePreview: "true",
		})

		require.NoError(t, err)
		assert.True(t, l.SoldBeforePreview)
	})

	t.Run("malformed sold date keeps listing and reports parse error", func(t *testing.T) {
		t.Parallel()

		l, err := hemnet.NewListing("https://www.hemnet.se/salda/1", hemnet.RawFields{
			hemnet.FieldAddress:    "Storgatan 1",
			hemnet.FieldLivingArea: "40",
			hemnet.FieldSoldDate:   "igår",
		})

		require.Error(t, err)
		assert.Equal(t, hemnet.EPARSE, hemnet.ErrorCode(err))
		require.NotNil(t, l)
		assert.Nil(t, l.SoldAt)
		assert.Equal(t, "Storgatan 1", l.Address())
	})

	t.Run("missing address is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := hemnet.NewListing("https://www.hemnet.se/bostad/1", hemnet.RawFields{})

		require.Error(t, err)
		assert.Equal(t, hemnet.EINVALID, hemnet.ErrorCode(err))
	})

	t.Run("missing URL is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := hemnet.NewListing("", hemnet.RawFields{hemnet.FieldAddress: "Storgatan 1"})

		require.Error(t, err)
		assert.Equal(t, hemnet.EINVALID, hemnet.ErrorCode(err))
	})
}

func TestListing_Validate(t *testing.T) {
	t.Parallel()

	l, err := hemnet.NewListing("https://www.hemnet.se/bostad/1", hemnet.RawFields{
		hemnet.FieldAddress:    "Storgatan 1",
		hemnet.FieldLivingArea: "0,5",
	})
	require.NoError(t, err)

	err = l.Validate()
	require.Error(t, err)
	assert.Equal(t, hemnet.EINVALID, hemnet.ErrorCode(err))

	ok, err := hemnet.NewListing("https://www.hemnet.se/bostad/2", hemnet.RawFields{
		hemnet.FieldAddress:    "Storgatan 1",
		hemnet.FieldLivingArea: "0,5+0,5",
	})
	require.NoError(t, err)
	assert.NoError(t, ok.Validate())
}

func TestListing_Formatting(t *testing.T) {
	t.Parallel()

	l, err := hemnet.NewListing("https://www.hemnet.se/bostad/1", hemnet.RawFields{
		hemnet.FieldAddress:    "Storgatan 12B",
		hemnet.FieldPrice:      "2 600 000",
		hemnet.FieldFee:        "3 298",
		hemnet.FieldPricePerM2: "47 706",
		hemnet.FieldLivingArea: "54,5+10",
	})
	require.NoError(t, err)

	assert.Equal(t, "2 600 000 kr", l.FormattedPrice())
	assert.Equal(t, "3 298 kr/mån", l.FormattedFee())
	assert.Equal(t, "47 706 kr/m²", l.FormattedPricePerSquareMeter())
	assert.Equal(t, "54,5 m² + 10 m²", l.FormattedLivingArea())
	assert.Equal(t, "+/-0%", l.FormattedPriceChange())

	empty, err := hemnet.NewListing("https://www.hemnet.se/bostad/2", hemnet.RawFields{
		hemnet.FieldAddress:    "Storgatan 1",
		hemnet.FieldLivingArea: "40",
	})
	require.NoError(t, err)

	assert.Empty(t, empty.FormattedPrice())
	assert.Empty(t, empty.FormattedFee())
	assert.Empty(t, empty.FormattedPricePerSquareMeter())
	assert.Equal(t, "40 m²", empty.FormattedLivingArea())
}

func TestFilterExactNumbers(t *testing.T) {
	t.Parallel()

	mustListing := func(address string) *hemnet.Listing {
		l, err := hemnet.NewListing("https://www.hemnet.se/bostad/1", hemnet.RawFields{
			hemnet.FieldAddress:    address,
			hemnet.FieldLivingArea: "50",
		})
		require.NoError(t, err)
		return l
	}

	listings := []*hemnet.Listing{
		mustListing("Storgatan 10"),
		mustListing("Storgatan 12"),
		mustListing("Storgatan 12B"),
		mustListing("Storgatan 15"),
		mustListing("Skärgårdsvägen"),
	}

	t.Run("keeps exact matches in order", func(t *testing.T) {
		t.Parallel()

		filtered := hemnet.FilterExactNumbers(listings, []int{12})

		require.Len(t, filtered, 2)
		assert.Equal(t, "Storgatan 12", filtered[0].Address())
		assert.Equal(t, "Storgatan 12B", filtered[1].Address())
	})

	t.Run("appends each listing at most once", func(t *testing.T) {
		t.Parallel()

		filtered := hemnet.FilterExactNumbers(listings, []int{12, 12, 12})

		assert.Len(t, filtered, 2)
	})

	t.Run("listings without street number are excluded", func(t *testing.T) {
		t.Parallel()

		filtered := hemnet.FilterExactNumbers(listings, []int{10, 12, 15, 23})

		for _, l := range filtered {
			assert.NotNil(t, l.StreetNumber)
		}
	})

	t.Run("empty allow-list returns input unchanged", func(t *testing.T) {
		t.Parallel()

		filtered := hemnet.FilterExactNumbers(listings, nil)

		assert.Equal(t, listings, filtered)
	})
}
