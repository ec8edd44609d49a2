package metadata

// --- SQLite Keys ---
// 这些常量用作metadata表中key列的取值。
const (
	// LastSnapshotAtKey 存储最近一次成功将Redis动态数据
	// 快照回SQLite的时间 (RFC3339)。
	LastSnapshotAtKey = "last_snapshot_at"

	// SnapshotCountKey 存储自建库以来成功完成的快照总次数。
	SnapshotCountKey = "snapshot_count"
)
