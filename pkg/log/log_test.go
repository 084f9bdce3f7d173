/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	t.Run("default level", func(t *testing.T) {
		SetDefaultLevel(ERROR)
		defer SetDefaultLevel(INFO)

		require.Equal(t, ERROR, GetLevel("sidetree-unconfigured"))
	})

	t.Run("module level", func(t *testing.T) {
		SetLevel("sidetree-didcache", PANIC)
		defer SetLevel("sidetree-didcache", INFO)

		require.Equal(t, PANIC, GetLevel("sidetree-didcache"))
	})

	t.Run("parse", func(t *testing.T) {
		l, err := ParseLevel("warning")
		require.NoError(t, err)
		require.Equal(t, WARNING, l)

		_, err = ParseLevel("trace")
		require.Error(t, err)
	})
}

func TestSpec(t *testing.T) {
	defer SetDefaultLevel(INFO)

	require.NoError(t, SetSpec("sidetree-observer=debug:sidetree-writer=panic:error"))

	require.Equal(t, DEBUG, GetLevel("sidetree-observer"))
	require.Equal(t, PANIC, GetLevel("sidetree-writer"))
	require.Equal(t, ERROR, GetLevel("sidetree-unconfigured"))

	spec := GetSpec()
	require.Contains(t, spec, "sidetree-observer=DEBUG")
	require.Contains(t, spec, "sidetree-writer=PANIC")
	require.Contains(t, spec, ":ERROR")
}
