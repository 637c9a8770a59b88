package initdb

import "errors"

var (
	ErrInspectFailed      = errors.New("failed to inspect existing databases and collections")
	ErrSeedFailed         = errors.New("failed to seed collection")
	ErrInvalidSeed        = errors.New("invalid seed fixtures")
	ErrMissingDatabase    = errors.New("target database name is required")
	ErrMissingCollection  = errors.New("target collection name is required")
	ErrCollectionConflict = errors.New("target collection name collides with the status collection")
	ErrNilStore           = errors.New("store cannot be nil")
)
