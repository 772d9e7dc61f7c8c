package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/bombsimon/hemnet"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ hemnet.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements hemnet.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// hashSnapshot computes xxHash over the fields that constitute a
// listing's observable state, so two snapshots of an unchanged listing
// hash identically regardless of when they were taken.
func hashSnapshot(s *hemnet.Snapshot) string {
	price := ""
	if s.Price != nil {
		price = fmt.Sprintf("%d", *s.Price)
	}

	content := fmt.Sprintf("%s|%s|%s|%s|%g|%g", s.ListingType, s.URL, s.Address, price, s.LivingArea, s.Rooms)

	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateSnapshot stores a new snapshot, assigning its ID, content hash
// and seen-at timestamp.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *hemnet.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	snapshot.ID = uuid.New().String()
	snapshot.SeenAt = time.Now().UTC()
	snapshot.ContentHash = hashSnapshot(snapshot)

	var price sql.NullInt64
	if snapshot.Price != nil {
		price = sql.NullInt64{Int64: int64(*snapshot.Price), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, listing_type, url, address, price, living_area, rooms, content_hash, seen_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snapshot.ID, string(snapshot.ListingType), snapshot.URL, snapshot.Address, price,
		snapshot.LivingArea, snapshot.Rooms, snapshot.ContentHash, snapshot.SeenAt.Format(time.RFC3339))

	return err
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter hemnet.SnapshotFilter) ([]*hemnet.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, listing_type, url, address, price, living_area, rooms, content_hash, seen_at FROM snapshots WHERE 1=1")

	if filter.ListingType != nil {
		query.WriteString(" AND listing_type = ?")
		args = append(args, string(*filter.ListingType))
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	// seen_at has second granularity, so break ties on insertion order
	// to keep "latest snapshot" queries deterministic.
	query.WriteString(" ORDER BY seen_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*hemnet.Snapshot
	for rows.Next() {
		var (
			snapshot    hemnet.Snapshot
			listingType string
			price       sql.NullInt64
			seenAt      string
		)

		if err := rows.Scan(&snapshot.ID, &listingType, &snapshot.URL, &snapshot.Address,
			&price, &snapshot.LivingArea, &snapshot.Rooms, &snapshot.ContentHash, &seenAt); err != nil {
			return nil, err
		}

		snapshot.ListingType = hemnet.ListingType(listingType)
		if price.Valid {
			p := int(price.Int64)
			snapshot.Price = &p
		}

		snapshot.SeenAt, err = parseRFC3339(seenAt, "seen_at")
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, &snapshot)
	}

	return snapshots, rows.Err()
}

// DeleteSnapshotsByType removes all snapshots for a listing type.
func (s *SnapshotService) DeleteSnapshotsByType(ctx context.Context, typ hemnet.ListingType) error {
	if err := typ.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE listing_type = ?", string(typ))
	return err
}
