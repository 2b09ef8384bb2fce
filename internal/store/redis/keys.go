package redis

const (
	// KeySnapshot holds the last-known-good state snapshot.
	KeySnapshot = "alltabs:snapshot"
	// KeySnapshotAt holds the RFC3339 time of the last snapshot write.
	KeySnapshotAt = "alltabs:snapshot:at"
)
