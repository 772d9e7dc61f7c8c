package slog

import (
	"log/slog"
	"time"

	"github.com/bombsimon/hemnet"
)

// Ensure LoggingScanner implements hemnet.Scanner.
var _ hemnet.Scanner = (*LoggingScanner)(nil)

// LoggingScanner wraps a Scanner with debug logging.
type LoggingScanner struct {
	next   hemnet.Scanner
	logger *slog.Logger
}

// NewLoggingScanner creates a new LoggingScanner.
func NewLoggingScanner(next hemnet.Scanner, logger *slog.Logger) *LoggingScanner {
	return &LoggingScanner{next: next, logger: logger}
}

// Scan logs the scan outcome and delegates to the wrapped scanner.
func (s *LoggingScanner) Scan(html string, typ hemnet.ListingType, strict bool) (result []hemnet.RawFields, err error) {
	defer func(begin time.Time) {
		s.logger.Info("scan",
			"type", typ,
			"strict", strict,
			"bytes", len(html),
			"cards", len(result),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scan(html, typ, strict)
}
