package initdb

import (
	"maps"
	"slices"
)

// Snapshot is the state of the target database captured once, before any write.
// Later decisions in the same run are taken from the snapshot, never re-queried.
type Snapshot struct {
	database    string
	exists      bool
	collections map[string]struct{}
}

// NewSnapshot copies collections into a new immutable Snapshot.
func NewSnapshot(database string, exists bool, collections []string) Snapshot {
	set := make(map[string]struct{}, len(collections))
	for _, c := range collections {
		set[c] = struct{}{}
	}
	return Snapshot{database: database, exists: exists, collections: set}
}

// Database returns the inspected database name.
func (s Snapshot) Database() string { return s.database }

// Exists reports whether the database was listed by the server.
func (s Snapshot) Exists() bool { return s.exists }

// Has reports whether the collection existed when the snapshot was taken.
func (s Snapshot) Has(collection string) bool {
	_, ok := s.collections[collection]
	return ok
}

// Collections returns the collection names in sorted order.
func (s Snapshot) Collections() []string {
	return slices.Sorted(maps.Keys(s.collections))
}

// AlreadyInitialized reports whether the database exists and contains both the
// target collection and the status collection. Only then is the run a no-op;
// if either one is missing, the missing one is created and seeded.
func AlreadyInitialized(s Snapshot, collection string) bool {
	return s.Exists() && s.Has(collection) && s.Has(StatusCollection)
}
