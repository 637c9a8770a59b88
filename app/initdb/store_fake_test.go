package initdb_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/undy45/medicine-initdb/app/initdb"
)

var errDuplicateKey = errors.New("E11000 duplicate key error")

// memoryStore is an in-memory initdb.Store that counts writes.
type memoryStore struct {
	mu sync.Mutex

	// database -> collection -> documents
	data    map[string]map[string][]any
	indexes map[string]map[string]string

	writes int

	listErr   error
	createErr map[string]error
	indexErr  map[string]error
	insertErr map[string]error

	// beforeCreate runs inside CreateCollection, before the collection is created.
	beforeCreate func(s *memoryStore, database, collection string)
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		data:      map[string]map[string][]any{},
		indexes:   map[string]map[string]string{},
		createErr: map[string]error{},
		indexErr:  map[string]error{},
		insertErr: map[string]error{},
	}
}

// seed puts a collection with docs into the store without counting writes.
func (s *memoryStore) seed(database, collection string, docs ...any) {
	if s.data[database] == nil {
		s.data[database] = map[string][]any{}
	}
	s.data[database][collection] = append(s.data[database][collection], docs...)
}

func (s *memoryStore) docs(database, collection string) []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]any(nil), s.data[database][collection]...)
}

func (s *memoryStore) DatabaseNames(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	return names, nil
}

func (s *memoryStore) CollectionNames(_ context.Context, database string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.data[database]))
	for name := range s.data[database] {
		names = append(names, name)
	}
	return names, nil
}

func (s *memoryStore) CreateCollection(_ context.Context, database, collection string) error {
	if s.beforeCreate != nil {
		s.beforeCreate(s, database, collection)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.createErr[collection]; err != nil {
		return err
	}
	if s.data[database] == nil {
		s.data[database] = map[string][]any{}
	}
	if _, ok := s.data[database][collection]; ok {
		return nil
	}
	s.data[database][collection] = []any{}
	s.writes++
	return nil
}

func (s *memoryStore) CreateIndex(_ context.Context, database, collection, field string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.indexErr[collection]; err != nil {
		return "", err
	}
	if s.indexes[database] == nil {
		s.indexes[database] = map[string]string{}
	}
	name := field + "_1"
	if s.indexes[database][collection] != name {
		s.indexes[database][collection] = name
		s.writes++
	}
	return name, nil
}

func (s *memoryStore) InsertMany(_ context.Context, database, collection string, docs []any) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.insertErr[collection]; err != nil {
		return 0, err
	}

	unique := s.indexes[database][collection] != ""
	inserted := 0
	var errs []error
	for _, d := range docs {
		if unique && s.containsID(database, collection, docID(d)) {
			errs = append(errs, fmt.Errorf("%w: %v", errDuplicateKey, docID(d)))
			continue
		}
		s.data[database][collection] = append(s.data[database][collection], d)
		inserted++
		s.writes++
	}
	return inserted, errors.Join(errs...)
}

func (s *memoryStore) containsID(database, collection string, id any) bool {
	for _, d := range s.data[database][collection] {
		if docID(d) == id {
			return true
		}
	}
	return false
}

func docID(d any) any {
	switch v := d.(type) {
	case initdb.Ambulance:
		return v.ID
	case initdb.Status:
		return v.ID
	default:
		return nil
	}
}
