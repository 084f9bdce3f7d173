/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-didcache-go/pkg/config"
	"github.com/trustbloc/sidetree-didcache-go/pkg/mocks"
)

const protocolFile = `{
  "1.0": {
    "startingBlockNumber": 0,
    "hashAlgorithmInMultihashCode": 18,
    "maxOperationsPerBatch": 10,
    "maxOperationByteSize": 2000,
    "compressionAlgorithm": "GZIP"
  }
}`

func TestNew(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		n, err := New(loadConfig(t, mocks.DefaultNS, "1"), newProviders())
		require.NoError(t, err)
		require.NotNil(t, n.Cache)
		require.NotNil(t, n.Observer)
		require.NotNil(t, n.Writer)
		require.Len(t, n.Protocol.Versions(), 1)
	})

	t.Run("missing namespace", func(t *testing.T) {
		n, err := New(loadConfig(t, "", "1"), newProviders())
		require.Error(t, err)
		require.Nil(t, n)
		require.Contains(t, err.Error(), "didNamespace is required")
	})

	t.Run("invalid batch interval", func(t *testing.T) {
		n, err := New(loadConfig(t, mocks.DefaultNS, "0"), newProviders())
		require.Error(t, err)
		require.Nil(t, n)
		require.Contains(t, err.Error(), "must be greater than zero")
	})

	t.Run("protocol file not found", func(t *testing.T) {
		cfg := loadConfig(t, mocks.DefaultNS, "1")
		require.NoError(t, os.Remove(cfg.Get(config.ProtocolFile)))

		n, err := New(cfg, newProviders())
		require.Error(t, err)
		require.Nil(t, n)
		require.Contains(t, err.Error(), "load protocol versions")
	})

	t.Run("metrics already registered", func(t *testing.T) {
		providers := newProviders()

		_, err := New(loadConfig(t, mocks.DefaultNS, "1"), providers)
		require.NoError(t, err)

		n, err := New(loadConfig(t, mocks.DefaultNS, "1"), providers)
		require.Error(t, err)
		require.Nil(t, n)
		require.Contains(t, err.Error(), "register collector")
	})
}

func TestNode(t *testing.T) {
	providers := newProviders()

	n, err := New(loadConfig(t, mocks.DefaultNS, "1"), providers)
	require.NoError(t, err)

	n.Start()
	defer n.Stop()

	gen, err := mocks.NewOperationGenerator()
	require.NoError(t, err)

	create, suffix, err := gen.Create("alice")
	require.NoError(t, err)

	versionID, err := n.Writer.Add(create)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, ok := n.Cache.Resolve(suffix)

		return ok
	}, 5*time.Second, 20*time.Millisecond)

	doc, ok := n.Cache.Lookup(versionID)
	require.True(t, ok)
	require.Equal(t, mocks.DefaultNS+":"+suffix, doc.ID())
	require.Equal(t, "alice", doc.GetStringValue("name"))

	lastTxn, ok := n.Cache.LastProcessedTransaction()
	require.True(t, ok)
	require.EqualValues(t, 1, lastTxn.TransactionNumber)

	count, err := testutil.GatherAndCount(providers.Registerer.(*prometheus.Registry),
		"sidetree_didcache_transactions_applied_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func newProviders() *Providers {
	return &Providers{
		Ledger:     mocks.NewMockLedger(nil),
		CASClient:  mocks.NewMockCasClient(nil),
		Registerer: prometheus.NewRegistry(),
	}
}

func loadConfig(t *testing.T, namespace, batchInterval string) *config.Config {
	t.Helper()

	t.Setenv("PORT", "8080")

	dir := t.TempDir()

	protocolPath := filepath.Join(dir, "protocol.json")
	require.NoError(t, os.WriteFile(protocolPath, []byte(protocolFile), 0o600))

	content := fmt.Sprintf(`{
  "didNamespace": %q,
  "protocolFile": %q,
  "batchIntervalInSeconds": %q,
  "documentCacheSize": 10
}`, namespace, protocolPath, batchInterval)

	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	cfg, err := config.Load(configPath)
	require.NoError(t, err)

	return cfg
}
