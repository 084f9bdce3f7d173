/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
)

func TestSigningInput(t *testing.T) {
	header := Header{Operation: operation.TypeUpdate, KeyID: "key1", Algorithm: "ES256"}

	input, err := SigningInput(header, "cGF5bG9hZA")
	require.NoError(t, err)

	parts := strings.Split(string(input), ".")
	require.Len(t, parts, 2)
	require.Equal(t, "cGF5bG9hZA", parts[1])

	headerBytes, err := encoder.DecodeString(parts[0])
	require.NoError(t, err)
	require.Equal(t, `{"alg":"ES256","kid":"key1","operation":"update"}`, string(headerBytes))
}
