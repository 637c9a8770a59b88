package initdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/undy45/medicine-initdb/core/logger"
)

const (
	// StatusCollection holds the order status transition graph.
	StatusCollection = "status"
	// IndexField is indexed in every seeded collection.
	IndexField = "id"
)

// CollectionSpec describes a collection the job guarantees.
type CollectionSpec struct {
	Name       string
	IndexField string
	Documents  []any
}

// Bootstrapper makes sure the target database holds the seeded collections.
type Bootstrapper struct {
	store      Store
	database   string
	collection string
	fixtures   Fixtures
	graph      StatusGraph
	runID      string
	log        *slog.Logger
}

// Option configures a Bootstrapper.
type Option func(*Bootstrapper)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(b *Bootstrapper) {
		if log != nil {
			b.log = log
		}
	}
}

// WithRunID tags the Result with the id of the job execution.
func WithRunID(id string) Option {
	return func(b *Bootstrapper) { b.runID = id }
}

// WithFixtures replaces the embedded seed documents.
func WithFixtures(f Fixtures) Option {
	return func(b *Bootstrapper) { b.fixtures = f }
}

// New creates a Bootstrapper for database/collection backed by store.
func New(store Store, database, collection string, opts ...Option) (*Bootstrapper, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if database == "" {
		return nil, ErrMissingDatabase
	}
	if collection == "" {
		return nil, ErrMissingCollection
	}
	if collection == StatusCollection {
		return nil, ErrCollectionConflict
	}

	b := &Bootstrapper{
		store:      store,
		database:   database,
		collection: collection,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.fixtures.Ambulances == nil && b.fixtures.Statuses == nil {
		f, err := LoadFixtures()
		if err != nil {
			return nil, err
		}
		b.fixtures = f
	} else if err := b.fixtures.Validate(); err != nil {
		return nil, err
	}

	graph, err := b.fixtures.Graph()
	if err != nil {
		return nil, err
	}
	b.graph = graph

	b.log = b.log.With(logger.Component("initdb"), logger.Database(database))
	return b, nil
}

// Specs returns the collections in the order they are ensured:
// the target collection first, then the status collection.
func (b *Bootstrapper) Specs() []CollectionSpec {
	return []CollectionSpec{
		{Name: b.collection, IndexField: IndexField, Documents: b.fixtures.AmbulanceDocuments()},
		{Name: StatusCollection, IndexField: IndexField, Documents: b.fixtures.StatusDocuments()},
	}
}

// Inspect captures which databases and collections exist.
func (b *Bootstrapper) Inspect(ctx context.Context) (Snapshot, error) {
	databases, err := b.store.DatabaseNames(ctx)
	if err != nil {
		return Snapshot{}, errors.Join(ErrInspectFailed, fmt.Errorf("list databases: %w", err))
	}
	if !slices.Contains(databases, b.database) {
		return NewSnapshot(b.database, false, nil), nil
	}

	collections, err := b.store.CollectionNames(ctx, b.database)
	if err != nil {
		return Snapshot{}, errors.Join(ErrInspectFailed, fmt.Errorf("list collections of %q: %w", b.database, err))
	}
	return NewSnapshot(b.database, true, collections), nil
}

// Run inspects the database once and creates what is missing. The returned
// error is only set when inspection fails; seeding failures are reported per
// collection in the Result.
func (b *Bootstrapper) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{RunID: b.runID, Database: b.database}

	snap, err := b.Inspect(ctx)
	if err != nil {
		return res, err
	}

	if AlreadyInitialized(snap, b.collection) {
		b.log.InfoContext(ctx, "Collections already exist, nothing to do",
			logger.Collection(b.collection),
			logger.Result("skipped"),
		)
		res.AlreadyInitialized = true
		return res, nil
	}

	b.log.DebugContext(ctx, "Database inspected",
		slog.Bool("exists", snap.Exists()),
		slog.Any("collections", snap.Collections()),
	)

	for _, spec := range b.Specs() {
		cr := b.EnsureCollection(ctx, snap, spec)
		if spec.Name == StatusCollection && cr.Created && cr.Err == nil {
			b.logStatusGraph(ctx)
		}
		res.Collections = append(res.Collections, cr)
	}

	result := "success"
	if res.Err() != nil {
		result = "partial"
	}
	b.log.InfoContext(ctx, "Initialization finished",
		logger.Result(result),
		logger.Count("inserted", res.Inserted()),
		logger.Errors(res.Errors()...),
		logger.Duration(time.Since(start)),
	)
	return res, nil
}

func (b *Bootstrapper) logStatusGraph(ctx context.Context) {
	initial := b.graph.Initial()
	next := make([]string, 0)
	for _, s := range b.fixtures.Statuses {
		if b.graph.CanTransition(initial.ID, s.ID) {
			next = append(next, s.Value)
		}
	}
	terminal := make([]string, 0)
	for _, id := range b.graph.Terminal() {
		if s, ok := b.graph.Status(id); ok {
			terminal = append(terminal, s.Value)
		}
	}
	b.log.InfoContext(ctx, "Status transitions seeded",
		logger.Collection(StatusCollection),
		slog.String("initial", initial.Value),
		slog.Any("next", next),
		slog.Any("terminal", terminal),
	)
}

// EnsureCollection creates, indexes and seeds spec.Name unless the snapshot
// shows it already existed. Failures are logged and recorded in the result;
// later steps still run.
func (b *Bootstrapper) EnsureCollection(ctx context.Context, snap Snapshot, spec CollectionSpec) CollectionResult {
	res := CollectionResult{Name: spec.Name}
	log := b.log.With(logger.Collection(spec.Name))

	if snap.Has(spec.Name) {
		res.Existed = true
		log.InfoContext(ctx, "Collection already exists, leaving it untouched", logger.Result("skipped"))
		return res
	}

	var errs []error

	if err := b.store.CreateCollection(ctx, b.database, spec.Name); err != nil {
		log.ErrorContext(ctx, "Error when creating the collection", logger.Action("create_collection"), logger.Error(err))
		res.Err = errors.Join(ErrSeedFailed, fmt.Errorf("create collection %q: %w", spec.Name, err))
		return res
	}
	res.Created = true

	index, err := b.store.CreateIndex(ctx, b.database, spec.Name, spec.IndexField)
	if err != nil {
		log.ErrorContext(ctx, "Error when creating the index", logger.Action("create_index"), logger.Error(err))
		errs = append(errs, fmt.Errorf("create index on %q.%s: %w", spec.Name, spec.IndexField, err))
	}
	res.Index = index

	inserted, err := b.store.InsertMany(ctx, b.database, spec.Name, spec.Documents)
	res.Inserted = inserted
	if err != nil {
		log.ErrorContext(ctx, "Error when writing the data",
			logger.Action("insert"),
			logger.Count("inserted", inserted),
			logger.Count("expected", len(spec.Documents)),
			logger.Error(err),
		)
		errs = append(errs, fmt.Errorf("insert into %q: %w", spec.Name, err))
	}

	if len(errs) > 0 {
		res.Err = errors.Join(append([]error{ErrSeedFailed}, errs...)...)
		return res
	}

	log.InfoContext(ctx, "Collection created and seeded",
		logger.Key("index", index),
		logger.Count("inserted", inserted),
	)
	return res
}
