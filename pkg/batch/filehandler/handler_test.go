/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package filehandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-didcache-go/pkg/compression"
)

var operations = [][]byte{[]byte(`{"op":1}`), []byte(`{"op":2}`)}

func TestBatchFile(t *testing.T) {
	handler := New(compression.New(compression.WithDefaultAlgorithms()))

	t.Run("uncompressed", func(t *testing.T) {
		content, err := handler.CreateBatchFile(operations, "")
		require.NoError(t, err)
		require.Equal(t, `{"operations":["eyJvcCI6MX0","eyJvcCI6Mn0"]}`, string(content))

		ops, err := handler.ParseBatchFile(content, "")
		require.NoError(t, err)
		require.Equal(t, operations, ops)
	})

	t.Run("compressed", func(t *testing.T) {
		for _, alg := range []string{"GZIP", "SNAPPY"} {
			content, err := handler.CreateBatchFile(operations, alg)
			require.NoError(t, err)

			ops, err := handler.ParseBatchFile(content, alg)
			require.NoError(t, err)
			require.Equal(t, operations, ops)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		content, err := handler.CreateBatchFile(nil, "")
		require.NoError(t, err)
		require.Equal(t, `{"operations":[]}`, string(content))

		ops, err := handler.ParseBatchFile(content, "")
		require.NoError(t, err)
		require.Empty(t, ops)
	})

	t.Run("unsupported compression", func(t *testing.T) {
		content, err := handler.CreateBatchFile(operations, "LZ77")
		require.ErrorIs(t, err, compression.ErrAlgorithmNotSupported)
		require.Nil(t, content)
	})

	t.Run("malformed", func(t *testing.T) {
		ops, err := handler.ParseBatchFile([]byte("not json"), "")
		require.ErrorIs(t, err, ErrMalformedBatchFile)
		require.Nil(t, ops)

		ops, err = handler.ParseBatchFile([]byte(`{"operations":["!!"]}`), "")
		require.ErrorIs(t, err, ErrMalformedBatchFile)
		require.Contains(t, err.Error(), "index 0")
		require.Nil(t, ops)

		ops, err = handler.ParseBatchFile([]byte("not compressed"), "GZIP")
		require.ErrorIs(t, err, ErrMalformedBatchFile)
		require.Nil(t, ops)
	})
}
