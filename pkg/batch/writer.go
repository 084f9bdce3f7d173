/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package batch batches operations into batch files, stores the batch files in CAS (content
// addressable storage) and anchors the address of each batch file as a Sidetree transaction.
//
// Batch Writer basic flow:
//
// 1) accept operations being delivered via Add method
// 2) 'cut' configurable number of operations into a batch file
// 3) store the batch file in CAS
// 4) write the batch file address to the underlying anchoring system
package batch

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/cas"
	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/api/protocol"
	"github.com/trustbloc/sidetree-didcache-go/pkg/batch/cutter"
	"github.com/trustbloc/sidetree-didcache-go/pkg/internal/log"
	"github.com/trustbloc/sidetree-didcache-go/pkg/operationparser"
)

var logger = log.New("sidetree-writer")

const (
	defaultBatchTimeout    = 2 * time.Second
	defaultSendChannelSize = 100
)

// ErrStopped is returned by Add after the writer was stopped.
var ErrStopped = errors.New("writer is stopped")

type batchCutter interface {
	Add(op *operation.QueuedOperation) (uint, error)
	Cut(force bool) (cutter.Result, error)
}

// AnchorWriter defines an interface to access the underlying anchoring system.
type AnchorWriter interface {
	// WriteAnchor writes the batch file address as a transaction to the anchoring system.
	WriteAnchor(anchorFileHash string) error
}

// BatchFileWriter creates batch files.
type BatchFileWriter interface {
	CreateBatchFile(operations [][]byte, compressionAlgorithm string) ([]byte, error)
}

type metricsProvider interface {
	CutBatchTime(value time.Duration)
	BatchSize(value float64)
	CASWriteTime(value time.Duration)
}

// Providers contains the providers required by the Writer.
type Providers struct {
	ProtocolClient protocol.Client
	CASClient      cas.Client
	AnchorWriter   AnchorWriter
	OperationQueue cutter.OperationQueue
	BatchFiles     BatchFileWriter
	Metrics        metricsProvider
}

type process struct {
	// force indicates that the operation is to be processed
	// immediately, i.e. don't wait for the batch timeout
	force bool
}

// Option defines Writer options such as batch timeout.
type Option func(w *Writer)

// WithBatchTimeout sets the interval at which partial batches are cut.
func WithBatchTimeout(batchTimeout time.Duration) Option {
	return func(w *Writer) {
		w.batchTimeout = batchTimeout
	}
}

// Writer implements batch writer.
type Writer struct {
	*Providers

	batchCutter  batchCutter
	sendChan     chan process
	exitChan     chan struct{}
	doneChan     chan struct{}
	batchTimeout time.Duration
	started      atomic.Bool
	stopped      atomic.Bool
}

// New creates a new Writer. Writer accepts operations being delivered via Add, orders them, and
// then uses the batch cutter to form batch files. The address of each batch file is written to
// the anchoring system.
func New(providers *Providers, opts ...Option) *Writer {
	w := &Writer{
		Providers:    providers,
		batchCutter:  cutter.New(providers.ProtocolClient, providers.OperationQueue),
		sendChan:     make(chan process, defaultSendChannelSize),
		exitChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
		batchTimeout: defaultBatchTimeout,
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.Metrics == nil {
		w.Metrics = &noopMetrics{}
	}

	return w
}

// Start periodic anchoring of operation batches to anchoring system.
func (w *Writer) Start() {
	if !w.started.CompareAndSwap(false, true) {
		return
	}

	go w.main()
}

// Stop stops the writer. Operations that weren't anchored remain in the operation queue.
func (w *Writer) Stop() {
	if !w.stopped.CompareAndSwap(false, true) {
		return
	}

	close(w.exitChan)

	if w.started.Load() {
		<-w.doneChan
	}
}

// Stopped returns true if the writer has been stopped.
func (w *Writer) Stopped() bool {
	return w.stopped.Load()
}

// Add validates the operation request against the current protocol version and queues it to be
// batched and anchored. It returns the version id the operation will have.
func (w *Writer) Add(operationBuffer []byte) (string, error) {
	if w.Stopped() {
		return "", ErrStopped
	}

	op, err := operationparser.New(w.ProtocolClient.Current()).Parse(operationBuffer)
	if err != nil {
		return "", err
	}

	_, err = w.batchCutter.Add(&operation.QueuedOperation{
		UniqueSuffix:    op.UniqueSuffix,
		OperationHash:   op.OperationHash,
		OperationBuffer: operationBuffer,
	})
	if err != nil {
		return "", errors.Wrap(err, "add operation to queue")
	}

	select {
	case w.sendChan <- process{force: false}:
		logger.Debug("Operation added to the queue", log.WithSuffix(op.UniqueSuffix),
			log.WithOperationHash(op.OperationHash))

		return op.OperationHash, nil
	case <-w.exitChan:
		return "", ErrStopped
	}
}

func (w *Writer) main() {
	defer close(w.doneChan)

	// On startup, there may be operations in the queue.
	w.processAvailable(true)

	ticker := time.NewTicker(w.batchTimeout)
	defer ticker.Stop()

	for {
		select {
		case p := <-w.sendChan:
			w.processAvailable(p.force)

		case <-ticker.C:
			w.processAvailable(true)

		case <-w.exitChan:
			logger.Info("Exiting batch writer")

			return
		}
	}
}

func (w *Writer) processAvailable(forceCut bool) uint {
	// First drain the queue of all of the operations that are ready to form a batch
	pending, err := w.drain()
	if err != nil {
		logger.Warn("Error draining operations queue", log.WithError(err), log.WithTotalPending(pending))

		return pending
	}

	if pending == 0 || !forceCut {
		return pending
	}

	n, pending, err := w.cutAndProcess(true)
	if err != nil {
		logger.Warn("Error processing operations", log.WithError(err), log.WithTotalPending(pending))
	} else {
		logger.Info("Processed operations", log.WithTotal(n), log.WithTotalPending(pending))
	}

	return pending
}

// drain cuts and processes all pending operations that are ready to form a batch.
func (w *Writer) drain() (uint, error) {
	for {
		n, pending, err := w.cutAndProcess(false)
		if err != nil {
			return pending, err
		}

		if n == 0 {
			return pending, nil
		}
	}
}

func (w *Writer) cutAndProcess(forceCut bool) (int, uint, error) {
	start := time.Now()

	result, err := w.batchCutter.Cut(forceCut)
	if err != nil {
		return 0, 0, errors.Wrap(err, "cut batch")
	}

	if len(result.Operations) == 0 {
		return 0, result.Pending, nil
	}

	anchorFileHash, err := w.process(result.Operations)
	if err != nil {
		result.Nack()

		return 0, result.Pending + uint(len(result.Operations)), err
	}

	pending, err := result.Ack()
	if err != nil {
		return 0, pending, errors.Wrap(err, "acknowledge batch")
	}

	w.Metrics.CutBatchTime(time.Since(start))
	w.Metrics.BatchSize(float64(len(result.Operations)))

	logger.Info("Anchored batch", log.WithAnchorFileHash(anchorFileHash),
		log.WithTotalOperations(len(result.Operations)), log.WithTotalPending(pending))

	return len(result.Operations), pending, nil
}

func (w *Writer) process(ops []*operation.QueuedOperation) (string, error) {
	p := w.ProtocolClient.Current()

	buffers := make([][]byte, len(ops))
	for i, op := range ops {
		buffers[i] = op.OperationBuffer
	}

	content, err := w.BatchFiles.CreateBatchFile(buffers, p.CompressionAlgorithm)
	if err != nil {
		return "", errors.Wrap(err, "create batch file")
	}

	start := time.Now()

	anchorFileHash, err := w.CASClient.Write(content)
	if err != nil {
		return "", errors.Wrap(err, "write batch file")
	}

	w.Metrics.CASWriteTime(time.Since(start))

	if err := w.AnchorWriter.WriteAnchor(anchorFileHash); err != nil {
		return "", errors.Wrapf(err, "write anchor [%s]", anchorFileHash)
	}

	return anchorFileHash, nil
}

type noopMetrics struct{}

func (m *noopMetrics) CutBatchTime(time.Duration) {}

func (m *noopMetrics) BatchSize(float64) {}

func (m *noopMetrics) CASWriteTime(time.Duration) {}
