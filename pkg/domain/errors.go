package domain

import "errors"

// ErrSnapshotNotFound is returned when no snapshot exists for a group ID.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrGroupClosed is returned when a pass is requested on a closed group.
var ErrGroupClosed = errors.New("group closed")
