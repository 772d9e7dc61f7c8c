package mock

import (
	"context"

	"github.com/bombsimon/hemnet"
)

var _ hemnet.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of hemnet.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn        func(ctx context.Context, snapshot *hemnet.Snapshot) error
	FindSnapshotsFn         func(ctx context.Context, filter hemnet.SnapshotFilter) ([]*hemnet.Snapshot, error)
	DeleteSnapshotsByTypeFn func(ctx context.Context, typ hemnet.ListingType) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *hemnet.Snapshot) error {
	return s.CreateSnapshotFn(ctx, snapshot)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter hemnet.SnapshotFilter) ([]*hemnet.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshotsByType(ctx context.Context, typ hemnet.ListingType) error {
	return s.DeleteSnapshotsByTypeFn(ctx, typ)
}
