/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/hashing"
)

// ErrNotFound is returned by MockCasClient when the address holds no content.
var ErrNotFound = errors.New("content not found")

// MockCasClient is an in-memory CAS. Content is addressed by the encoded SHA2-256 multihash.
type MockCasClient struct {
	mutex sync.RWMutex
	m     map[string][]byte
	err   error
	reads int
}

// NewMockCasClient creates mock client.
func NewMockCasClient(err error) *MockCasClient {
	return &MockCasClient{m: make(map[string][]byte), err: err}
}

// Write writes the given content to CAS and returns its address.
func (m *MockCasClient) Write(content []byte) (string, error) {
	if err := m.GetError(); err != nil {
		return "", err
	}

	address, err := hashing.CalculateEncodedMultihash(hashing.SHA2_256, content)
	if err != nil {
		return "", err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.m[address] = content

	return address, nil
}

// Read reads the content of the given address in CAS.
func (m *MockCasClient) Read(address string) ([]byte, error) {
	if err := m.GetError(); err != nil {
		return nil, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.reads++

	value, ok := m.m[address]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "address [%s]", address)
	}

	return value, nil
}

// Reads returns the number of Read calls that reached the store.
func (m *MockCasClient) Reads() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.reads
}

// SetError injects an error into the mock client.
func (m *MockCasClient) SetError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.err = err
}

// GetError returns the injected error.
func (m *MockCasClient) GetError() error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.err
}
