/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package observer

import (
	"context"
	"fmt"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"go.uber.org/atomic"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/cas"
	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/api/protocol"
	"github.com/trustbloc/sidetree-didcache-go/pkg/api/txn"
	"github.com/trustbloc/sidetree-didcache-go/pkg/internal/log"
	"github.com/trustbloc/sidetree-didcache-go/pkg/operationparser"
)

var logger = log.New("sidetree-observer")

const (
	defaultMaxConcurrentReads = 10
	defaultRetryInterval      = 500 * time.Millisecond
	defaultMaxRetryInterval   = 30 * time.Second
)

var (
	// ErrProtocol is returned when no protocol parameters are defined for a transaction's block.
	// Processing can't continue past such a transaction.
	ErrProtocol = errors.New("protocol parameters not available")

	// ErrCASRead is returned when a batch file could not be read from CAS. The transactions
	// before the failed one were applied; the rest of the notification was not. The listener
	// retries the notification until the read succeeds.
	ErrCASRead = errors.New("batch file not available")
)

// Ledger delivers transaction notifications.
type Ledger interface {
	RegisterForSidetreeTxn() <-chan txn.Notification
}

// DIDCache applies transactions and rolls them back.
type DIDCache interface {
	ApplyTransaction(t txn.Transaction, ops []*operation.Operation) ([]string, error)
	Rollback(txnNumber uint64) int
	LastProcessedTransaction() (txn.Transaction, bool)
}

// BatchFileParser returns the operations held by batch file content.
type BatchFileParser interface {
	ParseBatchFile(content []byte, compressionAlgorithm string) ([][]byte, error)
}

type metricsProvider interface {
	OperationInvalid(reason string)
	ProcessNotificationTime(value time.Duration)
}

// Providers contains all of the providers required by the Observer.
type Providers struct {
	Ledger         Ledger
	ProtocolClient protocol.Client
	CASClient      cas.Client
	BatchFiles     BatchFileParser
	Cache          DIDCache
	Metrics        metricsProvider
}

// Result is the outcome of processing one transaction.
type Result struct {
	Transaction txn.Transaction

	// Applied holds the version ids of the operations that were applied.
	Applied []string

	// Rejections are the operations of the batch that failed validation.
	Rejections []operationparser.Rejection

	// Err is set when the batch as a whole could not be used. The transaction is still
	// processed, with no operations.
	Err error
}

// Option is an observer option.
type Option func(o *Observer)

// WithMaxConcurrentReads sets the number of batch files read from CAS concurrently.
func WithMaxConcurrentReads(n int) Option {
	return func(o *Observer) {
		o.maxConcurrentReads = n
	}
}

// WithRetryInterval sets the initial and the maximum delay between attempts to process a
// notification whose batch files could not be read.
func WithRetryInterval(initial, maxInterval time.Duration) Option {
	return func(o *Observer) {
		o.retryInterval = initial
		o.maxRetryInterval = maxInterval
	}
}

// Observer receives transaction notifications and applies the anchored operations to the cache.
type Observer struct {
	*Providers

	maxConcurrentReads int
	retryInterval      time.Duration
	maxRetryInterval   time.Duration
	started            atomic.Bool
	stopped            atomic.Bool
	ctx                context.Context
	cancel             context.CancelFunc
	doneCh             chan struct{}
}

// New returns a new observer.
func New(providers *Providers, opts ...Option) *Observer {
	ctx, cancel := context.WithCancel(context.Background())

	o := &Observer{
		Providers:          providers,
		maxConcurrentReads: defaultMaxConcurrentReads,
		retryInterval:      defaultRetryInterval,
		maxRetryInterval:   defaultMaxRetryInterval,
		ctx:                ctx,
		cancel:             cancel,
		doneCh:             make(chan struct{}),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.Metrics == nil {
		o.Metrics = &noopMetrics{}
	}

	return o
}

// Start starts listening for transaction notifications.
func (o *Observer) Start() {
	if !o.started.CompareAndSwap(false, true) {
		return
	}

	go o.listen(o.Ledger.RegisterForSidetreeTxn())
}

// Stop stops the observer and waits for the notification in progress to complete.
func (o *Observer) Stop() {
	if !o.started.Load() || !o.stopped.CompareAndSwap(false, true) {
		return
	}

	o.cancel()

	<-o.doneCh
}

// Done is closed when the observer stops listening, which happens when it is stopped, when the
// notification channel is closed or when a transaction can't be processed with any protocol.
func (o *Observer) Done() <-chan struct{} {
	return o.doneCh
}

func (o *Observer) listen(notifications <-chan txn.Notification) {
	defer close(o.doneCh)

	for {
		select {
		case <-o.ctx.Done():
			logger.Info("The observer has been stopped. Exiting.")

			return

		case n, ok := <-notifications:
			if !ok {
				logger.Warn("Notification channel was closed. Exiting.")

				return
			}

			if err := o.handle(o.ctx, n); err != nil {
				switch {
				case errors.Is(err, ErrProtocol):
					logger.Error("Stopping the observer", log.WithError(err))

					return
				case errors.Is(err, context.Canceled):
					logger.Info("The observer has been stopped. Exiting.")

					return
				default:
					logger.Warn("Failed to process notification", log.WithError(err))
				}
			}
		}
	}
}

// handle processes the notification, retrying with backoff while batch files can't be read so
// that no later transaction is applied ahead of a missing one.
func (o *Observer) handle(ctx context.Context, n txn.Notification) error {
	backoff, err := retry.NewExponential(o.retryInterval)
	if err != nil {
		return errors.Wrap(err, "create backoff")
	}

	backoff = retry.WithCappedDuration(o.maxRetryInterval, backoff)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := o.Process(n)
		if errors.Is(err, ErrCASRead) {
			logger.Warn("Retrying notification", log.WithError(err))

			// The reorg was rolled back by the first attempt.
			n.Reorg = nil

			return retry.RetryableError(err)
		}

		return err
	})
}

type fetched struct {
	content []byte
	err     error
}

// Process handles a notification. A reorg is rolled back first; then every transaction that
// wasn't processed yet is applied in order.
func (o *Observer) Process(n txn.Notification) ([]*Result, error) {
	start := time.Now()

	defer func() {
		o.Metrics.ProcessNotificationTime(time.Since(start))
	}()

	if n.Reorg != nil {
		removed := o.Cache.Rollback(n.Reorg.TransactionNumber)

		logger.Info("Rolled back reorganized transactions", log.WithTransactionNumber(n.Reorg.TransactionNumber),
			log.WithTotalRemoved(removed))
	}

	txns := o.pending(n.Transactions)
	if len(txns) == 0 {
		return nil, nil
	}

	protocols := make([]protocol.Protocol, len(txns))

	for i, t := range txns {
		p, err := o.ProtocolClient.Get(t.TransactionTime)
		if err != nil {
			logger.Error("Failed to get protocol parameters", log.WithTransactionNumber(t.TransactionNumber),
				log.WithBlockNumber(t.TransactionTime), log.WithError(err))

			return nil, fmt.Errorf("%w: transaction %d at block %d: %w",
				ErrProtocol, t.TransactionNumber, t.TransactionTime, err)
		}

		protocols[i] = p
	}

	files := o.fetch(txns)

	results := make([]*Result, 0, len(txns))

	for i, t := range txns {
		if files[i].err != nil {
			logger.Warn("Failed to read batch file", log.WithTransactionNumber(t.TransactionNumber),
				log.WithAnchorFileHash(t.AnchorFileHash), log.WithError(files[i].err))

			return results, fmt.Errorf("%w: transaction %d anchor [%s]: %w",
				ErrCASRead, t.TransactionNumber, t.AnchorFileHash, files[i].err)
		}

		results = append(results, o.applyTransaction(t, protocols[i], files[i].content))
	}

	return results, nil
}

func (o *Observer) pending(txns []txn.Transaction) []txn.Transaction {
	last, ok := o.Cache.LastProcessedTransaction()
	if !ok {
		return txns
	}

	var pending []txn.Transaction

	for _, t := range txns {
		if t.TransactionNumber <= last.TransactionNumber {
			logger.Debug("Skipping transaction that was already processed", log.WithTransactionNumber(t.TransactionNumber))

			continue
		}

		pending = append(pending, t)
	}

	return pending
}

func (o *Observer) fetch(txns []txn.Transaction) []fetched {
	files := make([]fetched, len(txns))

	pool := workerpool.New(o.maxConcurrentReads)

	for i, t := range txns {
		i, address := i, t.AnchorFileHash

		pool.Submit(func() {
			content, err := o.CASClient.Read(address)
			files[i] = fetched{content: content, err: err}
		})
	}

	pool.StopWait()

	return files
}

func (o *Observer) applyTransaction(t txn.Transaction, p protocol.Protocol, content []byte) *Result {
	result := &Result{Transaction: t}

	ops, rejections, err := o.parse(t, p, content)
	result.Rejections = rejections

	if err != nil {
		logger.Warn("Ignoring operations of invalid batch", log.WithTransactionNumber(t.TransactionNumber),
			log.WithAnchorFileHash(t.AnchorFileHash), log.WithError(err))

		result.Err = err
	}

	applied, err := o.Cache.ApplyTransaction(t, ops)
	if err != nil {
		logger.Warn("Failed to apply transaction", log.WithTransactionNumber(t.TransactionNumber), log.WithError(err))

		result.Err = err

		return result
	}

	result.Applied = applied

	logger.Debug("Processed transaction", log.WithTransactionNumber(t.TransactionNumber),
		log.WithTotalOperations(len(ops)), log.WithTotalRejected(len(result.Rejections)))

	return result
}

func (o *Observer) parse(t txn.Transaction, p protocol.Protocol,
	content []byte) ([]*operation.Operation, []operationparser.Rejection, error) {
	buffers, err := o.BatchFiles.ParseBatchFile(content, p.CompressionAlgorithm)
	if err != nil {
		o.Metrics.OperationInvalid("malformed-batch")

		return nil, nil, err
	}

	ops, rejections, err := operationparser.New(p).ParseBatch(buffers)
	if err != nil {
		o.Metrics.OperationInvalid(invalidReason(err))

		return nil, nil, err
	}

	for _, r := range rejections {
		o.Metrics.OperationInvalid(invalidReason(r.Err))
	}

	for _, op := range ops {
		op.TransactionNumber = t.TransactionNumber
		op.TransactionTime = t.TransactionTime
	}

	return ops, rejections, nil
}

func invalidReason(err error) string {
	switch {
	case errors.Is(err, operationparser.ErrBatchTooLarge):
		return "batch-too-large"
	case errors.Is(err, operationparser.ErrOperationTooLarge):
		return "operation-too-large"
	case errors.Is(err, operationparser.ErrUnsupportedHashAlgorithm):
		return "unsupported-hash-algorithm"
	case errors.Is(err, operationparser.ErrInvalidSignature):
		return "invalid-signature"
	default:
		return "malformed-operation"
	}
}

type noopMetrics struct{}

func (m *noopMetrics) OperationInvalid(string) {}

func (m *noopMetrics) ProcessNotificationTime(time.Duration) {}
