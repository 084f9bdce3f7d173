/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package didcache

import (
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/api/txn"
	"github.com/trustbloc/sidetree-didcache-go/pkg/composer"
	"github.com/trustbloc/sidetree-didcache-go/pkg/document"
	"github.com/trustbloc/sidetree-didcache-go/pkg/internal/log"
	"github.com/trustbloc/sidetree-didcache-go/pkg/versionchain"
)

var logger = log.New("sidetree-didcache")

var (
	// ErrTransactionOutOfOrder is returned when a transaction number is not greater than the
	// number of the last processed transaction.
	ErrTransactionOutOfOrder = errors.New("transaction out of order")

	// ErrChainDeleted is returned when an operation targets a deleted DID.
	ErrChainDeleted = errors.New("version chain is deleted")

	// ErrInvalidOperation is returned when the operation is missing its hash or suffix.
	ErrInvalidOperation = errors.New("invalid operation")
)

type metricsProvider interface {
	OperationApplied(opType operation.Type)
	OperationRejected(reason string)
	TransactionApplied(txnNumber uint64)
	RolledBack(removed int)
}

type journalEntry struct {
	txn       txn.Transaction
	completed bool
	hashes    []string
}

// Cache holds the version chain of every DID and resolves documents by replaying them.
//
// A single writer applies transactions in order while any number of readers resolve documents.
// Readers observe the state before or after a transaction, never part of one.
type Cache struct {
	mutex sync.RWMutex

	composer *composer.Composer
	chains   *versionchain.Store
	journal  map[uint64]*journalEntry
	lastTxn  *txn.Transaction
	highest  uint64

	docCacheSize int
	docs         *lru.Cache[string, document.Document]
	metrics      metricsProvider
}

// Option is a cache option.
type Option func(c *Cache)

// WithDocumentCacheSize enables the cache of materialized documents, keyed by version id.
func WithDocumentCacheSize(size int) Option {
	return func(c *Cache) {
		c.docCacheSize = size
	}
}

// WithMetrics sets the metrics provider.
func WithMetrics(p metricsProvider) Option {
	return func(c *Cache) {
		c.metrics = p
	}
}

// New returns an empty cache that assigns document ids in the given namespace.
func New(namespace string, opts ...Option) (*Cache, error) {
	c := &Cache{
		composer: composer.New(namespace),
		chains:   versionchain.New(),
		journal:  make(map[uint64]*journalEntry),
		metrics:  &noopMetrics{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.docCacheSize > 0 {
		docs, err := lru.New[string, document.Document](c.docCacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "create document cache")
		}

		c.docs = docs
	}

	return c, nil
}

// Apply appends a structurally valid operation to the version chain of its DID and records it
// under the given transaction number. It returns the version id of the operation, or false if the
// operation could not be linked into its chain. Apply doesn't complete the transaction.
func (c *Cache) Apply(op *operation.Operation, txnNumber uint64) (string, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := c.checkOrder(txnNumber); err != nil {
		c.reject(op, err)

		return "", false
	}

	versionID, err := c.apply(op, txnNumber)
	if err != nil {
		c.reject(op, err)

		return "", false
	}

	return versionID, true
}

// CompleteTransaction marks the transaction as fully applied.
func (c *Cache) CompleteTransaction(t txn.Transaction) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := c.checkOrder(t.TransactionNumber); err != nil {
		return err
	}

	c.complete(t)

	return nil
}

// ApplyTransaction applies the operations of the transaction and completes it in a single
// critical section. Operations that can't be linked into their chains are skipped. The version
// ids of the applied operations are returned.
func (c *Cache) ApplyTransaction(t txn.Transaction, ops []*operation.Operation) ([]string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := c.checkOrder(t.TransactionNumber); err != nil {
		return nil, err
	}

	var applied []string

	for _, op := range ops {
		versionID, err := c.apply(op, t.TransactionNumber)
		if err != nil {
			c.reject(op, err)

			continue
		}

		applied = append(applied, versionID)
	}

	c.complete(t)

	logger.Debug("Applied transaction", log.WithTransactionNumber(t.TransactionNumber),
		log.WithTotalOperations(len(ops)), log.WithTotal(len(applied)))

	return applied, nil
}

// Rollback discards the operations of all transactions with a number greater than or equal to
// the given number. The last processed transaction becomes the highest remaining completed
// transaction.
// It returns the number of operations removed.
func (c *Cache) Rollback(txnNumber uint64) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var numbers []uint64

	for n := range c.journal {
		if n >= txnNumber {
			numbers = append(numbers, n)
		}
	}

	if len(numbers) == 0 {
		logger.Debug("Nothing to roll back", log.WithTransactionNumber(txnNumber))

		return 0
	}

	sort.Slice(numbers, func(i, j int) bool { return numbers[i] > numbers[j] })

	removed := 0

	for _, n := range numbers {
		hashes := c.journal[n].hashes

		for i := len(hashes) - 1; i >= 0; i-- {
			for _, r := range c.chains.RemoveFrom(hashes[i]) {
				if c.docs != nil {
					c.docs.Remove(r.Hash)
				}

				removed++
			}
		}

		delete(c.journal, n)
	}

	c.resetLast()

	logger.Info("Rolled back transactions", log.WithTransactionNumber(txnNumber),
		log.WithTotal(len(numbers)), log.WithTotalRemoved(removed))

	c.metrics.RolledBack(removed)

	return removed
}

// Resolve returns the current document of the DID with the given suffix. It returns false if
// the DID doesn't exist or is deleted.
func (c *Cache) Resolve(suffix string) (document.Document, bool) {
	c.mutex.RLock()

	latest, ok := c.chains.Latest(suffix)
	if !ok || latest.Operation.Type == operation.TypeDelete {
		c.mutex.RUnlock()

		return nil, false
	}

	ops, _ := c.chains.Operations(latest.Hash)

	c.mutex.RUnlock()

	return c.materialize(latest.Hash, ops)
}

// Lookup returns the document as of the operation with the given version id.
func (c *Cache) Lookup(versionID string) (document.Document, bool) {
	c.mutex.RLock()
	ops, ok := c.chains.Operations(versionID)
	c.mutex.RUnlock()

	if !ok {
		return nil, false
	}

	return c.materialize(versionID, ops)
}

// First returns the version id of the create operation of the chain containing the given version.
func (c *Cache) First(versionID string) (string, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.chains.First(versionID)
}

// Last returns the latest version id of the chain containing the given version.
func (c *Cache) Last(versionID string) (string, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.chains.Last(versionID)
}

// Previous returns the version id preceding the given version.
func (c *Cache) Previous(versionID string) (string, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.chains.Previous(versionID)
}

// Next returns the version id following the given version.
func (c *Cache) Next(versionID string) (string, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.chains.Next(versionID)
}

// Versions returns the version ids of the DID with the given suffix in chain order.
func (c *Cache) Versions(suffix string) []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.chains.Hashes(suffix)
}

// LastProcessedTransaction returns the last transaction whose operations are fully applied.
func (c *Cache) LastProcessedTransaction() (txn.Transaction, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.lastTxn == nil {
		return txn.Transaction{}, false
	}

	return *c.lastTxn, true
}

func (c *Cache) checkOrder(txnNumber uint64) error {
	if c.lastTxn != nil && txnNumber <= c.lastTxn.TransactionNumber {
		return errors.Wrapf(ErrTransactionOutOfOrder, "transaction %d was received after transaction %d",
			txnNumber, c.lastTxn.TransactionNumber)
	}

	if txnNumber < c.highest {
		return errors.Wrapf(ErrTransactionOutOfOrder, "transaction %d was received after transaction %d",
			txnNumber, c.highest)
	}

	return nil
}

func (c *Cache) apply(op *operation.Operation, txnNumber uint64) (string, error) {
	if op == nil || op.OperationHash == "" || op.UniqueSuffix == "" {
		return "", ErrInvalidOperation
	}

	previous := ""

	if op.Type != operation.TypeCreate {
		if op.PreviousOperationHash == "" {
			return "", versionchain.ErrPredecessorNotFound
		}

		previous = op.PreviousOperationHash

		if latest, ok := c.chains.Latest(op.UniqueSuffix); ok && latest.Operation.Type == operation.TypeDelete &&
			!c.chains.Contains(op.OperationHash) {
			return "", ErrChainDeleted
		}
	}

	if err := c.chains.Append(op.UniqueSuffix, op.OperationHash, previous, op); err != nil {
		return "", err
	}

	e := c.entry(txnNumber)
	e.hashes = append(e.hashes, op.OperationHash)

	c.metrics.OperationApplied(op.Type)

	return op.OperationHash, nil
}

func (c *Cache) complete(t txn.Transaction) {
	e := c.entry(t.TransactionNumber)
	e.txn = t
	e.completed = true

	last := t
	c.lastTxn = &last

	c.metrics.TransactionApplied(t.TransactionNumber)
}

func (c *Cache) entry(txnNumber uint64) *journalEntry {
	e, ok := c.journal[txnNumber]
	if !ok {
		e = &journalEntry{txn: txn.Transaction{TransactionNumber: txnNumber}}
		c.journal[txnNumber] = e

		if txnNumber > c.highest {
			c.highest = txnNumber
		}
	}

	return e
}

// resetLast sets the last processed transaction to the highest remaining completed transaction.
// Operations of a remaining transaction that isn't completed still count for ordering.
func (c *Cache) resetLast() {
	c.highest = 0
	c.lastTxn = nil

	for n, e := range c.journal {
		if n > c.highest {
			c.highest = n
		}

		if e.completed && (c.lastTxn == nil || n > c.lastTxn.TransactionNumber) {
			t := e.txn
			c.lastTxn = &t
		}
	}
}

func (c *Cache) materialize(versionID string, ops []*operation.Operation) (document.Document, bool) {
	if c.docs != nil {
		if doc, ok := c.docs.Get(versionID); ok {
			return doc.Copy(), true
		}
	}

	doc, err := c.composer.Compose(ops)
	if err != nil {
		logger.Error("Failed to compose document", log.WithVersionID(versionID), log.WithError(err))

		return nil, false
	}

	if doc == nil {
		return nil, false
	}

	if c.docs != nil {
		c.mutex.RLock()
		if c.chains.Contains(versionID) {
			c.docs.Add(versionID, doc.Copy())
		}
		c.mutex.RUnlock()
	}

	return doc, true
}

func (c *Cache) reject(op *operation.Operation, err error) {
	reason := rejectionReason(err)

	if op != nil {
		logger.Info("Rejected operation", log.WithSuffix(op.UniqueSuffix), log.WithOperationHash(op.OperationHash),
			log.WithOperationType(string(op.Type)), log.WithReason(reason), log.WithError(err))
	} else {
		logger.Info("Rejected operation", log.WithReason(reason), log.WithError(err))
	}

	c.metrics.OperationRejected(reason)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, versionchain.ErrDuplicateOperation):
		return "duplicate-operation"
	case errors.Is(err, versionchain.ErrChainExists):
		return "chain-exists"
	case errors.Is(err, versionchain.ErrChainNotFound):
		return "chain-not-found"
	case errors.Is(err, versionchain.ErrPredecessorNotFound):
		return "predecessor-not-found"
	case errors.Is(err, versionchain.ErrStalePredecessor):
		return "stale-predecessor"
	case errors.Is(err, ErrChainDeleted):
		return "chain-deleted"
	case errors.Is(err, ErrTransactionOutOfOrder):
		return "transaction-out-of-order"
	default:
		return "invalid-operation"
	}
}

type noopMetrics struct{}

func (m *noopMetrics) OperationApplied(operation.Type) {}

func (m *noopMetrics) OperationRejected(string) {}

func (m *noopMetrics) TransactionApplied(uint64) {}

func (m *noopMetrics) RolledBack(int) {}
