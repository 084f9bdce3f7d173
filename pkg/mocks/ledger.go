/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"sync"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/txn"
)

// MockLedger mocks the blockchain: anchors written through WriteAnchor become transactions
// that are numbered in write order and anchored at the current block number.
type MockLedger struct {
	mutex       sync.RWMutex
	err         error
	blockNumber uint64
	txns        []txn.Transaction
	ch          chan txn.Notification
}

// NewMockLedger creates mock ledger.
func NewMockLedger(err error) *MockLedger {
	return &MockLedger{err: err, ch: make(chan txn.Notification, 100)}
}

// RegisterForSidetreeTxn returns the channel on which transaction notifications are delivered.
func (m *MockLedger) RegisterForSidetreeTxn() <-chan txn.Notification {
	return m.ch
}

// WriteAnchor records the anchor file hash as a new transaction and publishes it.
func (m *MockLedger) WriteAnchor(anchorFileHash string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.err != nil {
		return m.err
	}

	t := txn.Transaction{
		TransactionNumber: uint64(len(m.txns)) + 1,
		TransactionTime:   m.blockNumber,
		AnchorFileHash:    anchorFileHash,
	}

	m.txns = append(m.txns, t)
	m.ch <- txn.Notification{Transactions: []txn.Transaction{t}}

	return nil
}

// Notify publishes the given notification.
func (m *MockLedger) Notify(n txn.Notification) {
	m.ch <- n
}

// Close closes the notification channel.
func (m *MockLedger) Close() {
	close(m.ch)
}

// SetBlockNumber sets the block number of subsequently written anchors.
func (m *MockLedger) SetBlockNumber(blockNumber uint64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.blockNumber = blockNumber
}

// SetError injects an error returned by WriteAnchor.
func (m *MockLedger) SetError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.err = err
}

// Transactions returns the transactions written so far.
func (m *MockLedger) Transactions() []txn.Transaction {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return append([]txn.Transaction(nil), m.txns...)
}
