package initdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestIsNamespaceExists(t *testing.T) {
	t.Parallel()

	exists := mongo.CommandError{Code: namespaceExistsCode, Name: "NamespaceExists", Message: "Collection already exists"}

	assert.True(t, isNamespaceExists(exists))
	assert.True(t, isNamespaceExists(fmt.Errorf("create collection: %w", exists)))

	assert.False(t, isNamespaceExists(nil))
	assert.False(t, isNamespaceExists(mongo.CommandError{Code: 13, Name: "Unauthorized"}))
	assert.False(t, isNamespaceExists(errors.New("namespace exists")))
}

func duplicateKey(index int) mongo.BulkWriteError {
	return mongo.BulkWriteError{
		WriteError: mongo.WriteError{Index: index, Code: 11000, Message: "E11000 duplicate key error"},
	}
}

func TestInsertedOnError(t *testing.T) {
	t.Parallel()

	t.Run("partial duplicate keys", func(t *testing.T) {
		err := mongo.BulkWriteException{WriteErrors: []mongo.BulkWriteError{duplicateKey(0), duplicateKey(2)}}
		assert.Equal(t, 2, insertedOnError(4, err))
	})

	t.Run("all duplicate keys", func(t *testing.T) {
		err := mongo.BulkWriteException{WriteErrors: []mongo.BulkWriteError{duplicateKey(0)}}
		assert.Equal(t, 0, insertedOnError(1, err))
	})

	t.Run("wrapped exception", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", mongo.BulkWriteException{WriteErrors: []mongo.BulkWriteError{duplicateKey(1)}})
		assert.Equal(t, 3, insertedOnError(4, err))
	})

	t.Run("write concern error", func(t *testing.T) {
		err := mongo.BulkWriteException{
			WriteConcernError: &mongo.WriteConcernError{Code: 64, Message: "waiting for replication timed out"},
		}
		assert.Equal(t, 0, insertedOnError(4, err))
	})

	t.Run("other error", func(t *testing.T) {
		assert.Equal(t, 0, insertedOnError(4, errors.New("connection reset")))
	})
}
