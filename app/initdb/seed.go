package initdb

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// InitialStatusID is the state new medicine orders start in.
const InitialStatusID = 1

//go:embed fixtures.yaml
var fixturesYAML []byte

// Ambulance is the seed record of the target collection.
type Ambulance struct {
	ID         string `yaml:"id" bson:"id"`
	Name       string `yaml:"name" bson:"name"`
	RoomNumber string `yaml:"roomNumber" bson:"roomNumber"`
}

// Status is one node of the order status transition graph.
type Status struct {
	ID               int    `yaml:"id" bson:"id"`
	Value            string `yaml:"value" bson:"value"`
	ValidTransitions []int  `yaml:"validTransitions" bson:"ValidTransitions"`
}

// Fixtures holds all seed documents.
type Fixtures struct {
	Ambulances []Ambulance `yaml:"ambulances"`
	Statuses   []Status    `yaml:"statuses"`
}

// LoadFixtures decodes and validates the embedded seed documents.
func LoadFixtures() (Fixtures, error) {
	return ParseFixtures(fixturesYAML)
}

// ParseFixtures decodes YAML seed documents. Unknown fields are rejected.
func ParseFixtures(data []byte) (Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Fixtures{}, errors.Join(ErrInvalidSeed, err)
	}

	for i := range f.Statuses {
		// bson encodes a nil slice as null; terminal states must be stored as [].
		if f.Statuses[i].ValidTransitions == nil {
			f.Statuses[i].ValidTransitions = []int{}
		}
	}

	if err := f.Validate(); err != nil {
		return Fixtures{}, err
	}
	return f, nil
}

// Validate checks ids and the status graph.
func (f Fixtures) Validate() error {
	seen := make(map[string]bool, len(f.Ambulances))
	for _, a := range f.Ambulances {
		if a.ID == "" {
			return fmt.Errorf("%w: ambulance without id", ErrInvalidSeed)
		}
		if seen[a.ID] {
			return fmt.Errorf("%w: duplicate ambulance id %q", ErrInvalidSeed, a.ID)
		}
		seen[a.ID] = true
	}

	_, err := f.Graph()
	return err
}

// AmbulanceDocuments returns the target collection seed as insertable documents.
func (f Fixtures) AmbulanceDocuments() []any {
	docs := make([]any, 0, len(f.Ambulances))
	for _, a := range f.Ambulances {
		docs = append(docs, a)
	}
	return docs
}

// StatusDocuments returns the status collection seed as insertable documents.
func (f Fixtures) StatusDocuments() []any {
	docs := make([]any, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		s.ValidTransitions = slices.Clone(s.ValidTransitions)
		docs = append(docs, s)
	}
	return docs
}

// StatusGraph is a validated, read-only view of the status transitions.
type StatusGraph struct {
	byID map[int]Status
}

// NewStatusGraph validates statuses: unique ids, the initial state present,
// every transition pointing at a known state, no self or repeated transitions.
func NewStatusGraph(statuses []Status) (StatusGraph, error) {
	if len(statuses) == 0 {
		return StatusGraph{}, fmt.Errorf("%w: no statuses", ErrInvalidSeed)
	}

	g := StatusGraph{byID: make(map[int]Status, len(statuses))}
	for _, s := range statuses {
		if s.Value == "" {
			return StatusGraph{}, fmt.Errorf("%w: status %d has no value", ErrInvalidSeed, s.ID)
		}
		if _, ok := g.byID[s.ID]; ok {
			return StatusGraph{}, fmt.Errorf("%w: duplicate status id %d", ErrInvalidSeed, s.ID)
		}
		g.byID[s.ID] = s
	}
	if _, ok := g.byID[InitialStatusID]; !ok {
		return StatusGraph{}, fmt.Errorf("%w: initial status %d missing", ErrInvalidSeed, InitialStatusID)
	}

	for _, s := range statuses {
		targets := make(map[int]bool, len(s.ValidTransitions))
		for _, to := range s.ValidTransitions {
			switch {
			case to == s.ID:
				return StatusGraph{}, fmt.Errorf("%w: status %d transitions to itself", ErrInvalidSeed, s.ID)
			case targets[to]:
				return StatusGraph{}, fmt.Errorf("%w: status %d lists transition to %d twice", ErrInvalidSeed, s.ID, to)
			}
			if _, ok := g.byID[to]; !ok {
				return StatusGraph{}, fmt.Errorf("%w: status %d transitions to unknown status %d", ErrInvalidSeed, s.ID, to)
			}
			targets[to] = true
		}
	}

	return g, nil
}

// Initial returns the state new orders start in.
func (g StatusGraph) Initial() Status {
	return g.byID[InitialStatusID]
}

// Status looks up a state by id.
func (g StatusGraph) Status(id int) (Status, bool) {
	s, ok := g.byID[id]
	return s, ok
}

// CanTransition reports whether an order may move from one state to another.
func (g StatusGraph) CanTransition(from, to int) bool {
	s, ok := g.byID[from]
	if !ok {
		return false
	}
	return slices.Contains(s.ValidTransitions, to)
}

// IsTerminal reports whether id is a known state with no outgoing transitions.
func (g StatusGraph) IsTerminal(id int) bool {
	s, ok := g.byID[id]
	return ok && len(s.ValidTransitions) == 0
}

// Terminal returns the ids of all terminal states in ascending order.
func (g StatusGraph) Terminal() []int {
	var ids []int
	for id := range g.byID {
		if g.IsTerminal(id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Graph builds the status transition graph of f.
func (f Fixtures) Graph() (StatusGraph, error) {
	return NewStatusGraph(f.Statuses)
}
