package initdb

import "errors"

// CollectionResult describes what happened to one collection.
type CollectionResult struct {
	Name     string
	Existed  bool
	Created  bool
	Index    string
	Inserted int
	// Err holds best-effort failures; it wraps ErrSeedFailed.
	Err error
}

// Result is the outcome of a Run.
type Result struct {
	RunID              string
	Database           string
	AlreadyInitialized bool
	Collections        []CollectionResult
}

// Errors returns the non-nil collection errors in processing order.
func (r Result) Errors() []error {
	var errs []error
	for _, c := range r.Collections {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	return errs
}

// Err joins the errors of all collections, or returns nil.
func (r Result) Err() error {
	return errors.Join(r.Errors()...)
}

// Inserted returns the number of documents written across all collections.
func (r Result) Inserted() int {
	n := 0
	for _, c := range r.Collections {
		n += c.Inserted
	}
	return n
}

// Created returns the names of collections created by the run.
func (r Result) Created() []string {
	var names []string
	for _, c := range r.Collections {
		if c.Created {
			names = append(names, c.Name)
		}
	}
	return names
}
