// Package initdb seeds the medicine API database at deployment time.
//
// A run connects (see integration/database/mongo), takes one Snapshot of the
// existing databases and collections and then:
//
//   - does nothing if the database already holds both the target collection
//     and the "status" collection;
//   - otherwise creates each missing collection, a unique ascending index on
//     "id", and inserts the seed documents from fixtures.yaml.
//
// Collections present in the snapshot are never written to, so repeating a run
// produces no writes. Seeding is best effort: create, index and insert failures
// are logged and returned in Result rather than aborting the run.
//
// Collection creation tolerates an already existing collection and the unique
// index turns a concurrent duplicate seed into a reported insert error instead
// of duplicated documents.
package initdb
