package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// SnapshotArchive defines the interface for archiving plan snapshots to
// object storage. The reconfiguration engine writes a full JSON snapshot of
// the calendar here before it mutates anything, as a recovery safety net.
type SnapshotArchive interface {
	// PutSnapshot stores a serialized snapshot under the given object key.
	PutSnapshot(ctx context.Context, objectKey string, data []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for downloading a stored snapshot.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteSnapshot removes an archived snapshot.
	DeleteSnapshot(ctx context.Context, objectKey string) error
}
