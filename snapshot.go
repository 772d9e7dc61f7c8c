package hemnet

import (
	"context"
	"time"
)

// Snapshot is a point-in-time record of a scraped listing, used by the
// watch command to keep history and detect changes between runs.
type Snapshot struct {
	ID          string      `json:"id"`
	ListingType ListingType `json:"listingType"`
	URL         string      `json:"url"`
	Address     string      `json:"address"`
	Price       *int        `json:"price"`
	LivingArea  float64     `json:"livingArea"`
	Rooms       float64     `json:"rooms"`
	ContentHash string      `json:"contentHash"`
	SeenAt      time.Time   `json:"seenAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if err := s.ListingType.Validate(); err != nil {
		return err
	}
	if s.URL == "" {
		return Errorf(EINVALID, "snapshot URL required")
	}
	if s.Address == "" {
		return Errorf(EINVALID, "snapshot address required")
	}
	return nil
}

// SnapshotFromListing builds a snapshot record from a scraped listing.
// ID, ContentHash and SeenAt are assigned by the SnapshotService on
// create.
func SnapshotFromListing(typ ListingType, l *Listing) *Snapshot {
	return &Snapshot{
		ListingType: typ,
		URL:         l.URL,
		Address:     l.Address(),
		Price:       l.Price,
		LivingArea:  l.TotalArea(),
		Rooms:       l.Rooms,
	}
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ListingType *ListingType `json:"listingType"`
	URL         *string      `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SnapshotService represents a service for persisting listing snapshots.
type SnapshotService interface {
	// CreateSnapshot stores a new snapshot, assigning its ID, content
	// hash and seen-at timestamp.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error

	// FindSnapshots retrieves snapshots matching the filter, newest
	// first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshotsByType removes all snapshots for a listing type.
	DeleteSnapshotsByType(ctx context.Context, typ ListingType) error
}
