/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package versionchain

import (
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
)

var (
	// ErrChainExists is returned when a create operation targets a suffix that already has a chain.
	ErrChainExists = errors.New("version chain already exists")

	// ErrChainNotFound is returned when a non-create operation targets a suffix without a chain.
	ErrChainNotFound = errors.New("version chain not found")

	// ErrDuplicateOperation is returned when the operation hash was already appended.
	ErrDuplicateOperation = errors.New("duplicate operation")

	// ErrPredecessorNotFound is returned when the previous operation hash is not part of the chain.
	ErrPredecessorNotFound = errors.New("previous operation not found in chain")

	// ErrStalePredecessor is returned when the previous operation is not the latest operation of the chain.
	ErrStalePredecessor = errors.New("previous operation is not the latest operation in chain")
)

// Record is an entry in a version chain.
type Record struct {
	Hash      string
	Previous  string
	Operation *operation.Operation
}

type chain struct {
	records   []*Record
	positions map[string]int
}

func (c *chain) latest() *Record {
	return c.records[len(c.records)-1]
}

// Store holds the version chains of all DIDs. Each chain is an append log of records plus an
// index of hash to position, so removing an operation and everything after it is a truncation.
//
// Store is not safe for concurrent use.
type Store struct {
	chains map[string]*chain
	index  map[string]string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		chains: make(map[string]*chain),
		index:  make(map[string]string),
	}
}

// Append appends the operation with the given hash to the chain of the given suffix. An empty
// previous hash starts a new chain.
func (s *Store) Append(suffix, hash, previous string, op *operation.Operation) error {
	if _, ok := s.index[hash]; ok {
		return ErrDuplicateOperation
	}

	c, ok := s.chains[suffix]

	if previous == "" {
		if ok {
			return ErrChainExists
		}

		s.chains[suffix] = &chain{
			records:   []*Record{{Hash: hash, Operation: op}},
			positions: map[string]int{hash: 0},
		}
		s.index[hash] = suffix

		return nil
	}

	if !ok {
		return ErrChainNotFound
	}

	if _, ok := c.positions[previous]; !ok {
		return ErrPredecessorNotFound
	}

	if c.latest().Hash != previous {
		return ErrStalePredecessor
	}

	c.positions[hash] = len(c.records)
	c.records = append(c.records, &Record{Hash: hash, Previous: previous, Operation: op})
	s.index[hash] = suffix

	return nil
}

// RemoveFrom removes the operation with the given hash and every operation appended after it in
// the same chain. The chain is deleted when its create operation is removed. The removed records
// are returned, latest first.
func (s *Store) RemoveFrom(hash string) []*Record {
	suffix, ok := s.index[hash]
	if !ok {
		return nil
	}

	c := s.chains[suffix]
	pos := c.positions[hash]

	removed := make([]*Record, 0, len(c.records)-pos)

	for i := len(c.records) - 1; i >= pos; i-- {
		r := c.records[i]

		delete(c.positions, r.Hash)
		delete(s.index, r.Hash)

		c.records[i] = nil

		removed = append(removed, r)
	}

	c.records = c.records[:pos]

	if pos == 0 {
		delete(s.chains, suffix)
	}

	return removed
}

// ContainsChainFor returns true if a chain exists for the given suffix.
func (s *Store) ContainsChainFor(suffix string) bool {
	_, ok := s.chains[suffix]

	return ok
}

// Contains returns true if the operation hash is part of any chain.
func (s *Store) Contains(hash string) bool {
	_, ok := s.index[hash]

	return ok
}

// Suffix returns the suffix of the chain that contains the given hash.
func (s *Store) Suffix(hash string) (string, bool) {
	suffix, ok := s.index[hash]

	return suffix, ok
}

// Latest returns the latest record of the chain for the given suffix.
func (s *Store) Latest(suffix string) (*Record, bool) {
	c, ok := s.chains[suffix]
	if !ok {
		return nil, false
	}

	return c.latest(), true
}

// Len returns the number of operations in the chain for the given suffix.
func (s *Store) Len(suffix string) int {
	c, ok := s.chains[suffix]
	if !ok {
		return 0
	}

	return len(c.records)
}

// Hashes returns the operation hashes of the chain for the given suffix in chain order.
func (s *Store) Hashes(suffix string) []string {
	c, ok := s.chains[suffix]
	if !ok {
		return nil
	}

	hashes := make([]string, len(c.records))
	for i, r := range c.records {
		hashes[i] = r.Hash
	}

	return hashes
}

// Count returns the number of chains in the store.
func (s *Store) Count() int {
	return len(s.chains)
}

// Operations returns the operations of the chain containing the given hash, from the create
// operation up to and including the operation with the given hash. The returned slice is a copy.
func (s *Store) Operations(hash string) ([]*operation.Operation, bool) {
	c, pos, ok := s.locate(hash)
	if !ok {
		return nil, false
	}

	ops := make([]*operation.Operation, pos+1)
	for i := 0; i <= pos; i++ {
		ops[i] = c.records[i].Operation
	}

	return ops, true
}

// First returns the hash of the create operation of the chain containing the given hash.
func (s *Store) First(hash string) (string, bool) {
	c, _, ok := s.locate(hash)
	if !ok {
		return "", false
	}

	return c.records[0].Hash, true
}

// Last returns the hash of the latest operation of the chain containing the given hash.
func (s *Store) Last(hash string) (string, bool) {
	c, _, ok := s.locate(hash)
	if !ok {
		return "", false
	}

	return c.latest().Hash, true
}

// Previous returns the hash of the operation preceding the given hash.
func (s *Store) Previous(hash string) (string, bool) {
	c, pos, ok := s.locate(hash)
	if !ok || pos == 0 {
		return "", false
	}

	return c.records[pos-1].Hash, true
}

// Next returns the hash of the operation following the given hash.
func (s *Store) Next(hash string) (string, bool) {
	c, pos, ok := s.locate(hash)
	if !ok || pos == len(c.records)-1 {
		return "", false
	}

	return c.records[pos+1].Hash, true
}

func (s *Store) locate(hash string) (*chain, int, bool) {
	suffix, ok := s.index[hash]
	if !ok {
		return nil, 0, false
	}

	c := s.chains[suffix]

	return c, c.positions[hash], true
}
