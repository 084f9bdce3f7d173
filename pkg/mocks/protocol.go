/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/protocol"
	"github.com/trustbloc/sidetree-didcache-go/pkg/hashing"
)

// DefaultNS is default namespace used in mocks.
const DefaultNS = "did:sidetree"

// Protocol parameters of the default mock protocol.
const (
	DefaultMaxOperationsPerBatch = 10
	DefaultMaxOperationByteSize  = 2000
)

// MockProtocolClient mocks protocol for testing purposes. Versions are checked in order, so
// they must be listed newest first.
type MockProtocolClient struct {
	mutex    sync.RWMutex
	versions []protocol.Protocol
	err      error
}

// NewMockProtocolClient creates mocks protocol client. With no versions given it serves a
// single version starting at block 0.
func NewMockProtocolClient(versions ...protocol.Protocol) *MockProtocolClient {
	if len(versions) == 0 {
		versions = []protocol.Protocol{GetDefaultProtocolParameters()}
	}

	return &MockProtocolClient{versions: versions}
}

// GetDefaultProtocolParameters returns the default mock protocol parameters.
func GetDefaultProtocolParameters() protocol.Protocol {
	return protocol.Protocol{
		StartingBlockNumber:          0,
		HashAlgorithmInMultiHashCode: hashing.SHA2_256,
		MaxOperationsPerBatch:        DefaultMaxOperationsPerBatch,
		MaxOperationByteSize:         DefaultMaxOperationByteSize,
	}
}

// Current mocks getting last protocol version.
func (m *MockProtocolClient) Current() protocol.Protocol {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.versions[0]
}

// Get returns the first version whose starting block number is <= blockNumber.
func (m *MockProtocolClient) Get(blockNumber uint64) (protocol.Protocol, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.err != nil {
		return protocol.Protocol{}, m.err
	}

	for _, p := range m.versions {
		if p.StartingBlockNumber <= blockNumber {
			return p, nil
		}
	}

	return protocol.Protocol{}, errors.Errorf("protocol parameters are not defined for block number %d", blockNumber)
}

// SetError injects an error returned by Get.
func (m *MockProtocolClient) SetError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.err = err
}
