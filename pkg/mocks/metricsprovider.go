/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"time"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
)

// MetricsProvider implements a mock metrics provider.
type MetricsProvider struct{}

// OperationApplied records an operation applied to a version chain.
func (m *MetricsProvider) OperationApplied(operation.Type) {
}

// OperationRejected records an operation that could not be linked into a version chain.
func (m *MetricsProvider) OperationRejected(string) {
}

// TransactionApplied records the number of the last applied transaction.
func (m *MetricsProvider) TransactionApplied(uint64) {
}

// RolledBack records a rollback and the number of operations it removed.
func (m *MetricsProvider) RolledBack(int) {
}

// OperationInvalid records an operation that failed validation.
func (m *MetricsProvider) OperationInvalid(string) {
}

// ProcessNotificationTime records the time to process a transaction notification.
func (m *MetricsProvider) ProcessNotificationTime(time.Duration) {
}

// CutBatchTime records the time to cut and anchor a batch.
func (m *MetricsProvider) CutBatchTime(time.Duration) {
}

// BatchSize records the number of operations in an anchored batch.
func (m *MetricsProvider) BatchSize(float64) {
}

// CASWriteTime records the time to write a batch file to CAS.
func (m *MetricsProvider) CASWriteTime(time.Duration) {
}
