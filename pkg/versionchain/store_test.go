/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package versionchain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
)

const (
	suffix1 = "suffix1"
	suffix2 = "suffix2"
)

func TestAppend(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := newStore(t, suffix1, "c1", "u1", "u2")

		require.True(t, s.ContainsChainFor(suffix1))
		require.False(t, s.ContainsChainFor(suffix2))
		require.True(t, s.Contains("u1"))
		require.False(t, s.Contains("u3"))
		require.Equal(t, 3, s.Len(suffix1))
		require.Equal(t, 1, s.Count())
		require.Equal(t, []string{"c1", "u1", "u2"}, s.Hashes(suffix1))

		latest, ok := s.Latest(suffix1)
		require.True(t, ok)
		require.Equal(t, "u2", latest.Hash)
		require.Equal(t, "u1", latest.Previous)

		suffix, ok := s.Suffix("u1")
		require.True(t, ok)
		require.Equal(t, suffix1, suffix)
	})

	t.Run("chain exists", func(t *testing.T) {
		s := newStore(t, suffix1, "c1")

		err := s.Append(suffix1, "c2", "", op(operation.TypeCreate))
		require.ErrorIs(t, err, ErrChainExists)
		require.Equal(t, 1, s.Len(suffix1))
	})

	t.Run("chain not found", func(t *testing.T) {
		s := New()

		err := s.Append(suffix1, "u1", "c1", op(operation.TypeUpdate))
		require.ErrorIs(t, err, ErrChainNotFound)
		require.False(t, s.ContainsChainFor(suffix1))
		require.False(t, s.Contains("u1"))
	})

	t.Run("duplicate", func(t *testing.T) {
		s := newStore(t, suffix1, "c1", "u1")

		err := s.Append(suffix1, "u1", "c1", op(operation.TypeUpdate))
		require.ErrorIs(t, err, ErrDuplicateOperation)

		err = s.Append(suffix1, "c1", "", op(operation.TypeCreate))
		require.ErrorIs(t, err, ErrDuplicateOperation)

		require.Equal(t, 2, s.Len(suffix1))
	})

	t.Run("predecessor not found", func(t *testing.T) {
		s := newStore(t, suffix1, "c1")
		_ = newStoreInto(t, s, suffix2, "c2")

		err := s.Append(suffix1, "u1", "unknown", op(operation.TypeUpdate))
		require.ErrorIs(t, err, ErrPredecessorNotFound)

		// the predecessor must be in the same chain
		err = s.Append(suffix1, "u1", "c2", op(operation.TypeUpdate))
		require.ErrorIs(t, err, ErrPredecessorNotFound)

		require.Equal(t, 1, s.Len(suffix1))
		require.False(t, s.Contains("u1"))
	})

	t.Run("stale predecessor", func(t *testing.T) {
		s := newStore(t, suffix1, "c1", "u1")

		err := s.Append(suffix1, "u2", "c1", op(operation.TypeUpdate))
		require.ErrorIs(t, err, ErrStalePredecessor)
		require.Equal(t, []string{"c1", "u1"}, s.Hashes(suffix1))
	})
}

func TestNavigation(t *testing.T) {
	s := newStore(t, suffix1, "c1", "u1", "u2", "u3")
	_ = newStoreInto(t, s, suffix2, "c2")

	for _, hash := range []string{"c1", "u1", "u2", "u3"} {
		first, ok := s.First(hash)
		require.True(t, ok)
		require.Equal(t, "c1", first)

		last, ok := s.Last(hash)
		require.True(t, ok)
		require.Equal(t, "u3", last)
	}

	t.Run("forward", func(t *testing.T) {
		var walked []string

		for hash, ok := "c1", true; ok; hash, ok = s.Next(hash) {
			walked = append(walked, hash)
		}

		require.Equal(t, []string{"c1", "u1", "u2", "u3"}, walked)
	})

	t.Run("backward", func(t *testing.T) {
		var walked []string

		for hash, ok := "u3", true; ok; hash, ok = s.Previous(hash) {
			walked = append(walked, hash)
		}

		require.Equal(t, []string{"u3", "u2", "u1", "c1"}, walked)
	})

	t.Run("single operation chain", func(t *testing.T) {
		first, ok := s.First("c2")
		require.True(t, ok)
		require.Equal(t, "c2", first)

		last, ok := s.Last("c2")
		require.True(t, ok)
		require.Equal(t, "c2", last)

		_, ok = s.Previous("c2")
		require.False(t, ok)

		_, ok = s.Next("c2")
		require.False(t, ok)
	})

	t.Run("unknown hash", func(t *testing.T) {
		_, ok := s.First("unknown")
		require.False(t, ok)

		_, ok = s.Last("unknown")
		require.False(t, ok)

		_, ok = s.Previous("unknown")
		require.False(t, ok)

		_, ok = s.Next("unknown")
		require.False(t, ok)

		_, ok = s.Operations("unknown")
		require.False(t, ok)

		_, ok = s.Suffix("unknown")
		require.False(t, ok)

		_, ok = s.Latest("unknown")
		require.False(t, ok)

		require.Zero(t, s.Len("unknown"))
		require.Nil(t, s.Hashes("unknown"))
	})
}

func TestOperations(t *testing.T) {
	s := newStore(t, suffix1, "c1", "u1", "u2")

	ops, ok := s.Operations("u1")
	require.True(t, ok)
	require.Len(t, ops, 2)
	require.Equal(t, "c1", ops[0].OperationHash)
	require.Equal(t, "u1", ops[1].OperationHash)

	ops, ok = s.Operations("u2")
	require.True(t, ok)
	require.Len(t, ops, 3)

	// the returned slice is not affected by later changes to the chain
	s.RemoveFrom("u1")
	require.NoError(t, s.Append(suffix1, "u4", "c1", op(operation.TypeUpdate)))
	require.Equal(t, "u1", ops[1].OperationHash)
	require.Equal(t, "u2", ops[2].OperationHash)
}

func TestRemoveFrom(t *testing.T) {
	t.Run("truncate", func(t *testing.T) {
		s := newStore(t, suffix1, "c1", "u1", "u2", "u3")

		removed := s.RemoveFrom("u2")
		require.Len(t, removed, 2)
		require.Equal(t, "u3", removed[0].Hash)
		require.Equal(t, "u2", removed[1].Hash)

		require.Equal(t, []string{"c1", "u1"}, s.Hashes(suffix1))
		require.False(t, s.Contains("u2"))
		require.False(t, s.Contains("u3"))

		last, ok := s.Last("c1")
		require.True(t, ok)
		require.Equal(t, "u1", last)

		// the latest pointer was rewound so the chain accepts u1 as predecessor again
		require.NoError(t, s.Append(suffix1, "u2", "u1", op(operation.TypeUpdate)))
		require.Equal(t, []string{"c1", "u1", "u2"}, s.Hashes(suffix1))
	})

	t.Run("remove create deletes chain", func(t *testing.T) {
		s := newStore(t, suffix1, "c1", "u1")
		_ = newStoreInto(t, s, suffix2, "c2")

		removed := s.RemoveFrom("c1")
		require.Len(t, removed, 2)
		require.False(t, s.ContainsChainFor(suffix1))
		require.False(t, s.Contains("c1"))
		require.False(t, s.Contains("u1"))
		require.True(t, s.ContainsChainFor(suffix2))
		require.Equal(t, 1, s.Count())

		// the suffix may be created again
		require.NoError(t, s.Append(suffix1, "c1", "", op(operation.TypeCreate)))
	})

	t.Run("unknown hash", func(t *testing.T) {
		s := newStore(t, suffix1, "c1")

		require.Empty(t, s.RemoveFrom("unknown"))
		require.Equal(t, 1, s.Len(suffix1))
	})
}

func op(opType operation.Type) *operation.Operation {
	return &operation.Operation{Type: opType}
}

func newStore(t *testing.T, suffix string, hashes ...string) *Store {
	t.Helper()

	return newStoreInto(t, New(), suffix, hashes...)
}

func newStoreInto(t *testing.T, s *Store, suffix string, hashes ...string) *Store {
	t.Helper()

	previous := ""

	for _, hash := range hashes {
		opType := operation.TypeUpdate
		if previous == "" {
			opType = operation.TypeCreate
		}

		o := &operation.Operation{
			Type:                  opType,
			UniqueSuffix:          suffix,
			OperationHash:         hash,
			PreviousOperationHash: previous,
		}

		require.NoError(t, s.Append(suffix, hash, previous, o))

		previous = hash
	}

	return s
}
