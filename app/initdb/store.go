package initdb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// namespaceExistsCode is the server error code for creating an existing collection.
const namespaceExistsCode = 48

// Store is the subset of document store operations the Bootstrapper needs.
type Store interface {
	DatabaseNames(ctx context.Context) ([]string, error)
	CollectionNames(ctx context.Context, database string) ([]string, error)
	// CreateCollection must treat an already existing collection as success.
	CreateCollection(ctx context.Context, database, collection string) error
	// CreateIndex creates a unique ascending single-field index and returns its name.
	CreateIndex(ctx context.Context, database, collection, field string) (string, error)
	// InsertMany inserts docs unordered and returns how many were written,
	// which may be non-zero together with an error.
	InsertMany(ctx context.Context, database, collection string, docs []any) (int, error)
}

// MongoStore implements Store on top of a connected client.
type MongoStore struct {
	client  *mongo.Client
	timeout time.Duration
}

// NewMongoStore wraps client. Every call is bounded by timeout when it is positive.
func NewMongoStore(client *mongo.Client, timeout time.Duration) *MongoStore {
	return &MongoStore{client: client, timeout: timeout}
}

func (s *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *MongoStore) DatabaseNames(ctx context.Context) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.client.ListDatabaseNames(ctx, bson.D{})
}

func (s *MongoStore) CollectionNames(ctx context.Context, database string) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.client.Database(database).ListCollectionNames(ctx, bson.D{})
}

func (s *MongoStore) CreateCollection(ctx context.Context, database, collection string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.client.Database(database).CreateCollection(ctx, collection)
	if isNamespaceExists(err) {
		return nil
	}
	return err
}

func (s *MongoStore) CreateIndex(ctx context.Context, database, collection, field string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.client.Database(database).Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}

func (s *MongoStore) InsertMany(ctx context.Context, database, collection string, docs []any) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.client.Database(database).Collection(collection).
		InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return insertedOnError(len(docs), err), err
	}
	return len(res.InsertedIDs), nil
}

// insertedOnError counts the documents an unordered insert of n documents
// still wrote when it failed with err. Only per-document write errors leave
// the rest of the batch in place; any other failure counts as nothing written.
func insertedOnError(n int, err error) int {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || bwe.WriteConcernError != nil {
		return 0
	}
	return max(n-len(bwe.WriteErrors), 0)
}

func isNamespaceExists(err error) bool {
	if err == nil {
		return false
	}
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorCode(namespaceExistsCode)
}
