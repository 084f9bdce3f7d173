/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
)

const (
	namespace = "sidetree"

	subsystemCache    = "didcache"
	subsystemObserver = "observer"
	subsystemWriter   = "writer"

	labelType   = "type"
	labelReason = "reason"
)

// Provider records cache, observer and batch writer metrics with Prometheus.
type Provider struct {
	operationsApplied       *prometheus.CounterVec
	operationsRejected      *prometheus.CounterVec
	transactionsApplied     prometheus.Counter
	lastTransaction         prometheus.Gauge
	rollbacks               prometheus.Counter
	operationsRemoved       prometheus.Counter
	operationsInvalid       *prometheus.CounterVec
	processNotificationTime prometheus.Histogram
	cutBatchTime            prometheus.Histogram
	batchSize               prometheus.Histogram
	casWriteTime            prometheus.Histogram
}

// New creates the metrics and registers them with the registerer.
func New(registerer prometheus.Registerer) (*Provider, error) {
	p := &Provider{
		operationsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemCache,
			Name:      "operations_applied_total",
			Help:      "The number of operations appended to version chains.",
		}, []string{labelType}),
		operationsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemCache,
			Name:      "operations_rejected_total",
			Help:      "The number of operations that could not be linked into a version chain.",
		}, []string{labelReason}),
		transactionsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemCache,
			Name:      "transactions_applied_total",
			Help:      "The number of transactions applied.",
		}),
		lastTransaction: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemCache,
			Name:      "last_transaction_number",
			Help:      "The number of the last applied transaction.",
		}),
		rollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemCache,
			Name:      "rollbacks_total",
			Help:      "The number of rollbacks.",
		}),
		operationsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemCache,
			Name:      "operations_removed_total",
			Help:      "The number of operations removed by rollbacks.",
		}),
		operationsInvalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemObserver,
			Name:      "operations_invalid_total",
			Help:      "The number of anchored operations that failed validation.",
		}, []string{labelReason}),
		processNotificationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemObserver,
			Name:      "process_notification_seconds",
			Help:      "The time it takes to process a transaction notification.",
			Buckets:   prometheus.DefBuckets,
		}),
		cutBatchTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemWriter,
			Name:      "cut_batch_seconds",
			Help:      "The time it takes to cut, store and anchor a batch.",
			Buckets:   prometheus.DefBuckets,
		}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemWriter,
			Name:      "batch_size",
			Help:      "The number of operations in an anchored batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		casWriteTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemWriter,
			Name:      "cas_write_seconds",
			Help:      "The time it takes to write a batch file to CAS.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{
		p.operationsApplied, p.operationsRejected, p.transactionsApplied, p.lastTransaction,
		p.rollbacks, p.operationsRemoved, p.operationsInvalid, p.processNotificationTime,
		p.cutBatchTime, p.batchSize, p.casWriteTime,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, errors.Wrap(err, "register collector")
		}
	}

	return p, nil
}

// OperationApplied records an operation appended to a version chain.
func (p *Provider) OperationApplied(opType operation.Type) {
	p.operationsApplied.WithLabelValues(string(opType)).Inc()
}

// OperationRejected records an operation that could not be linked into a version chain.
func (p *Provider) OperationRejected(reason string) {
	p.operationsRejected.WithLabelValues(reason).Inc()
}

// TransactionApplied records an applied transaction.
func (p *Provider) TransactionApplied(txnNumber uint64) {
	p.transactionsApplied.Inc()
	p.lastTransaction.Set(float64(txnNumber))
}

// RolledBack records a rollback and the number of operations it removed.
func (p *Provider) RolledBack(removed int) {
	p.rollbacks.Inc()
	p.operationsRemoved.Add(float64(removed))
}

// OperationInvalid records an anchored operation that failed validation.
func (p *Provider) OperationInvalid(reason string) {
	p.operationsInvalid.WithLabelValues(reason).Inc()
}

// ProcessNotificationTime records the time to process a transaction notification.
func (p *Provider) ProcessNotificationTime(value time.Duration) {
	p.processNotificationTime.Observe(value.Seconds())
}

// CutBatchTime records the time to cut, store and anchor a batch.
func (p *Provider) CutBatchTime(value time.Duration) {
	p.cutBatchTime.Observe(value.Seconds())
}

// BatchSize records the number of operations in an anchored batch.
func (p *Provider) BatchSize(value float64) {
	p.batchSize.Observe(value)
}

// CASWriteTime records the time to write a batch file to CAS.
func (p *Provider) CASWriteTime(value time.Duration) {
	p.casWriteTime.Observe(value.Seconds())
}
