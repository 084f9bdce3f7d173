/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeAndDecodeAsString(t *testing.T) {
	encoded := EncodeToString([]byte("Hello World?"))
	require.NotContains(t, encoded, "=")
	require.NotContains(t, encoded, "+")

	decodedBytes, err := DecodeString(encoded)
	require.NoError(t, err)
	require.EqualValues(t, "Hello World?", decodedBytes)

	_, err = DecodeString("not base64!")
	require.Error(t, err)
}

func TestDecodeJSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var v struct {
			Field string `json:"field"`
		}

		require.NoError(t, DecodeJSON(EncodeToString([]byte(`{"field":"value"}`)), &v))
		require.Equal(t, "value", v.Field)
	})

	t.Run("invalid encoding", func(t *testing.T) {
		var v map[string]interface{}

		err := DecodeJSON("%%%", &v)
		require.Error(t, err)
		require.Contains(t, err.Error(), "decode base64url")
	})

	t.Run("invalid json", func(t *testing.T) {
		var v map[string]interface{}

		err := DecodeJSON(EncodeToString([]byte("{")), &v)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unmarshal json")
	})
}
