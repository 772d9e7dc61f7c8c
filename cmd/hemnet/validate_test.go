package main

import (
	"testing"

	"github.com/bombsimon/hemnet"
	"github.com/bombsimon/hemnet/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout := testDeps(t, []hemnet.RawFields{
		{hemnet.FieldAddress: "Storgatan 1", hemnet.FieldURL: "https://www.hemnet.se/bostad/1", hemnet.FieldLivingArea: "40"},
	})

	cmd := &ValidateCmd{}

	require.NoError(t, cmd.Run(deps))

	assert.Contains(t, stdout.String(), "OK: 1 for-sale and 1 sold listings")
}

func TestValidateCmd_Run_ImplausibleListing(t *testing.T) {
	t.Parallel()

	// A listing with a total area below one square meter fails the
	// sanity check.
	deps, _ := testDeps(t, []hemnet.RawFields{
		{hemnet.FieldAddress: "Storgatan 1", hemnet.FieldURL: "https://www.hemnet.se/bostad/1", hemnet.FieldLivingArea: "0,5"},
	})

	cmd := &ValidateCmd{}

	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Equal(t, hemnet.EINVALID, hemnet.ErrorCode(err))
}

func TestValidateCmd_Run_StrictScan(t *testing.T) {
	t.Parallel()

	deps, _ := testDeps(t, nil)
	deps.Scraper.Scanner = &mock.Scanner{
		ScanFn: func(html string, typ hemnet.ListingType, strict bool) ([]hemnet.RawFields, error) {
			assert.True(t, strict, "validate must scan strictly regardless of the global flag")
			return nil, nil
		},
	}

	cmd := &ValidateCmd{}

	require.NoError(t, cmd.Run(deps))
}
