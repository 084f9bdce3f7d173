/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
)

func TestProvider(t *testing.T) {
	registry := prometheus.NewRegistry()

	p, err := New(registry)
	require.NoError(t, err)

	p.OperationApplied(operation.TypeCreate)
	p.OperationApplied(operation.TypeCreate)
	p.OperationApplied(operation.TypeUpdate)
	p.OperationRejected("duplicate-operation")
	p.TransactionApplied(10)
	p.TransactionApplied(11)
	p.RolledBack(3)
	p.OperationInvalid("malformed-operation")
	p.ProcessNotificationTime(time.Millisecond)
	p.CutBatchTime(time.Millisecond)
	p.BatchSize(4)
	p.CASWriteTime(time.Millisecond)

	require.Equal(t, float64(2), testutil.ToFloat64(p.operationsApplied.WithLabelValues("create")))
	require.Equal(t, float64(1), testutil.ToFloat64(p.operationsApplied.WithLabelValues("update")))
	require.Equal(t, float64(1), testutil.ToFloat64(p.operationsRejected.WithLabelValues("duplicate-operation")))
	require.Equal(t, float64(2), testutil.ToFloat64(p.transactionsApplied))
	require.Equal(t, float64(11), testutil.ToFloat64(p.lastTransaction))
	require.Equal(t, float64(1), testutil.ToFloat64(p.rollbacks))
	require.Equal(t, float64(3), testutil.ToFloat64(p.operationsRemoved))
	require.Equal(t, float64(1), testutil.ToFloat64(p.operationsInvalid.WithLabelValues("malformed-operation")))

	expected := `
# HELP sidetree_writer_batch_size The number of operations in an anchored batch.
# TYPE sidetree_writer_batch_size histogram
sidetree_writer_batch_size_bucket{le="1"} 0
sidetree_writer_batch_size_bucket{le="2"} 0
sidetree_writer_batch_size_bucket{le="4"} 1
sidetree_writer_batch_size_bucket{le="8"} 1
sidetree_writer_batch_size_bucket{le="16"} 1
sidetree_writer_batch_size_bucket{le="32"} 1
sidetree_writer_batch_size_bucket{le="64"} 1
sidetree_writer_batch_size_bucket{le="128"} 1
sidetree_writer_batch_size_bucket{le="256"} 1
sidetree_writer_batch_size_bucket{le="512"} 1
sidetree_writer_batch_size_bucket{le="+Inf"} 1
sidetree_writer_batch_size_sum 4
sidetree_writer_batch_size_count 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "sidetree_writer_batch_size"))

	count, err := testutil.GatherAndCount(registry)
	require.NoError(t, err)
	require.Equal(t, 12, count)
}

func TestNewRegisterError(t *testing.T) {
	registry := prometheus.NewRegistry()

	_, err := New(registry)
	require.NoError(t, err)

	p, err := New(registry)
	require.Error(t, err)
	require.Contains(t, err.Error(), "register collector")
	require.Nil(t, p)
}
