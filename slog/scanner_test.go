package slog_test

import (
	"bytes"
	stdslog "log/slog"
	"testing"

	"github.com/bombsimon/hemnet"
	"github.com/bombsimon/hemnet/mock"
	"github.com/bombsimon/hemnet/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingScanner_Scan(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

	next := &mock.Scanner{
		ScanFn: func(html string, typ hemnet.ListingType, strict bool) ([]hemnet.RawFields, error) {
			return []hemnet.RawFields{
				{hemnet.FieldAddress: "Storgatan 1"},
				{hemnet.FieldAddress: "Storgatan 2"},
			}, nil
		},
	}

	s := slog.NewLoggingScanner(next, logger)

	result, err := s.Scan("<html></html>", hemnet.ListingTypeForSale, true)

	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Contains(t, buf.String(), "msg=scan")
	assert.Contains(t, buf.String(), "type=for-sale")
	assert.Contains(t, buf.String(), "cards=2")
	assert.Contains(t, buf.String(), "strict=true")
}
