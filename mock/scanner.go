package mock

import "github.com/bombsimon/hemnet"

var _ hemnet.Scanner = (*Scanner)(nil)

// Scanner is a mock implementation of hemnet.Scanner.
type Scanner struct {
	ScanFn func(html string, typ hemnet.ListingType, strict bool) ([]hemnet.RawFields, error)
}

func (s *Scanner) Scan(html string, typ hemnet.ListingType, strict bool) ([]hemnet.RawFields, error) {
	return s.ScanFn(html, typ, strict)
}
