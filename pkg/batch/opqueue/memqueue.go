/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package opqueue

import (
	"sync"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
)

// MemQueue is an in-memory FIFO of operations waiting to be batched. Operations are lost on restart.
type MemQueue struct {
	mutex   sync.RWMutex
	pending []*operation.QueuedOperation
}

// Add appends the operation and returns the number of pending operations.
func (q *MemQueue) Add(op *operation.QueuedOperation) (uint, error) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	q.pending = append(q.pending, op)

	return uint(len(q.pending)), nil
}

// Peek returns up to num operations from the head of the queue without removing them.
func (q *MemQueue) Peek(num uint) ([]*operation.QueuedOperation, error) {
	q.mutex.RLock()
	defer q.mutex.RUnlock()

	head := q.pending[:q.headLen(num)]

	ops := make([]*operation.QueuedOperation, len(head))
	copy(ops, head)

	return ops, nil
}

// Remove drops up to num operations from the head of the queue. It returns the number
// removed and the number still pending.
func (q *MemQueue) Remove(num uint) (uint, uint, error) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	n := q.headLen(num)

	for i := 0; i < n; i++ {
		q.pending[i] = nil
	}

	q.pending = q.pending[n:]

	return uint(n), uint(len(q.pending)), nil
}

// Len returns the number of pending operations.
func (q *MemQueue) Len() uint {
	q.mutex.RLock()
	defer q.mutex.RUnlock()

	return uint(len(q.pending))
}

func (q *MemQueue) headLen(num uint) int {
	if uint(len(q.pending)) < num {
		return len(q.pending)
	}

	return int(num)
}
