/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cutter

import (
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/api/protocol"
	"github.com/trustbloc/sidetree-didcache-go/pkg/internal/log"
)

var logger = log.New("sidetree-cutter")

// OperationQueue defines the functions for adding and removing operations from a queue.
type OperationQueue interface {
	// Add adds the given operation to the tail of the queue and returns the new length of the queue.
	Add(op *operation.QueuedOperation) (uint, error)
	// Remove removes (up to) the given number of items from the head of the queue.
	// Returns the actual number of items that were removed and the new length of the queue.
	Remove(num uint) (uint, uint, error)
	// Peek returns (up to) the given number of operations from the head of the queue but does not remove them.
	Peek(num uint) ([]*operation.QueuedOperation, error)
	// Len returns the number of operation in the queue.
	Len() uint
}

// Result is the result of a batch cut.
type Result struct {
	// Operations holds the operations that were cut from the queue.
	Operations []*operation.QueuedOperation

	// Pending is the number of operations remaining in the queue.
	Pending uint

	// Ack commits the batch by removing its operations from the queue. It returns the number of
	// pending operations.
	Ack func() (uint, error)

	// Nack leaves the operations in the queue so that they are cut again.
	Nack func()
}

// BatchCutter cuts batches of operations from the queue.
type BatchCutter struct {
	pendingBatch OperationQueue
	client       protocol.Client
}

// New creates a batch cutter.
func New(client protocol.Client, queue OperationQueue) *BatchCutter {
	return &BatchCutter{
		client:       client,
		pendingBatch: queue,
	}
}

// Add adds the given operation to the pending batch queue and returns the total number of
// pending operations.
func (r *BatchCutter) Add(op *operation.QueuedOperation) (uint, error) {
	return r.pendingBatch.Add(op)
}

// Cut returns up to MaxOperationsPerBatch of the current protocol version. If force is false
// a batch is only cut when a full batch is pending. If force is true a batch is cut when there
// is at least one pending operation.
func (r *BatchCutter) Cut(force bool) (Result, error) {
	pending := r.pendingBatch.Len()

	maxOperationsPerBatch := r.client.Current().MaxOperationsPerBatch
	if pending == 0 || (!force && pending < maxOperationsPerBatch) {
		return Result{Pending: pending}, nil
	}

	batchSize := pending
	if batchSize > maxOperationsPerBatch {
		batchSize = maxOperationsPerBatch
	}

	ops, err := r.pendingBatch.Peek(batchSize)
	if err != nil {
		return Result{}, errors.Wrap(err, "peek operation queue")
	}

	logger.Debugf("Pending Size: %d, MaxOperationsPerBatch: %d, Batch Size: %d",
		pending, maxOperationsPerBatch, len(ops))

	return Result{
		Operations: ops,
		Pending:    pending - uint(len(ops)),
		Ack: func() (uint, error) {
			_, remaining, err := r.pendingBatch.Remove(uint(len(ops)))

			return remaining, err
		},
		Nack: func() {},
	}, nil
}
