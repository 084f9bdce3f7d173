/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package snappy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlgorithm(t *testing.T) {
	alg := New()
	require.True(t, alg.Accept(Name))
	require.False(t, alg.Accept("GZIP"))

	data := []byte("test data test data test data")

	compressed, err := alg.Compress(data)
	require.NoError(t, err)

	decompressed, err := alg.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)

	decompressed, err = alg.Decompress([]byte{0xff, 0xff, 0xff, 0xff, 0xff})
	require.Error(t, err)
	require.Nil(t, decompressed)
	require.Contains(t, err.Error(), "decode snappy data")
}
