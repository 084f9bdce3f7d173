/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package selector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/protocol"
)

const protocolFile = `{
  "0.1": {
    "startingBlockNumber": 0,
    "hashAlgorithmInMultihashCode": 18,
    "maxOperationsPerBatch": 10,
    "maxOperationByteSize": 500
  },
  "0.2": {
    "startingBlockNumber": 500000,
    "hashAlgorithmInMultihashCode": 22,
    "maxOperationsPerBatch": 100,
    "maxOperationByteSize": 1000,
    "compressionAlgorithm": "GZIP"
  }
}`

func TestNew(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, err := New(
			protocol.Protocol{StartingBlockNumber: 100, MaxOperationsPerBatch: 2},
			protocol.Protocol{StartingBlockNumber: 0, MaxOperationsPerBatch: 1},
			protocol.Protocol{StartingBlockNumber: 1000, MaxOperationsPerBatch: 3},
		)
		require.NoError(t, err)

		versions := s.Versions()
		require.Len(t, versions, 3)
		require.EqualValues(t, 1000, versions[0].StartingBlockNumber)
		require.EqualValues(t, 100, versions[1].StartingBlockNumber)
		require.EqualValues(t, 0, versions[2].StartingBlockNumber)

		require.EqualValues(t, 1000, s.Current().StartingBlockNumber)
	})

	t.Run("no versions", func(t *testing.T) {
		s, err := New()
		require.Error(t, err)
		require.Nil(t, s)
		require.Contains(t, err.Error(), "at least one protocol version is required")
	})

	t.Run("duplicate starting block number", func(t *testing.T) {
		s, err := New(protocol.Protocol{StartingBlockNumber: 10}, protocol.Protocol{StartingBlockNumber: 10})
		require.Error(t, err)
		require.Nil(t, s)
		require.Contains(t, err.Error(), "duplicate protocol version")
	})
}

func TestGet(t *testing.T) {
	s, err := New(
		protocol.Protocol{StartingBlockNumber: 100, MaxOperationsPerBatch: 2},
		protocol.Protocol{StartingBlockNumber: 1000, MaxOperationsPerBatch: 3},
	)
	require.NoError(t, err)

	for block, expected := range map[uint64]uint{100: 2, 999: 2, 1000: 3, 50000: 3} {
		p, err := s.Get(block)
		require.NoError(t, err)
		require.Equal(t, expected, p.MaxOperationsPerBatch, "block %d", block)
	}

	_, err = s.Get(99)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrProtocolNotFound))
	require.Contains(t, err.Error(), "block number 99")
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("success", func(t *testing.T) {
		path := filepath.Join(dir, "protocol.json")
		require.NoError(t, os.WriteFile(path, []byte(protocolFile), 0o600))

		s, err := NewFromFile(path)
		require.NoError(t, err)

		p, err := s.Get(10)
		require.NoError(t, err)
		require.EqualValues(t, 18, p.HashAlgorithmInMultiHashCode)
		require.EqualValues(t, 500, p.MaxOperationByteSize)
		require.Empty(t, p.CompressionAlgorithm)

		p, err = s.Get(500000)
		require.NoError(t, err)
		require.EqualValues(t, 22, p.HashAlgorithmInMultiHashCode)
		require.Equal(t, "GZIP", p.CompressionAlgorithm)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := NewFromFile(filepath.Join(dir, "missing.json"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "read protocol file")
	})

	t.Run("invalid content", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

		_, err := NewFromFile(path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unmarshal protocol file")
	})

	t.Run("empty table", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

		_, err := NewFromFile(path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "at least one protocol version is required")
	})
}
