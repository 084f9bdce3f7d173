/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package protocol

// Protocol defines protocol parameters.
type Protocol struct {
	// StartingBlockNumber is the inclusive starting block number that this protocol applies to.
	StartingBlockNumber uint64 `json:"startingBlockNumber"`
	// HashAlgorithmInMultiHashCode is the hash algorithm in multihash code (decimal).
	HashAlgorithmInMultiHashCode uint `json:"hashAlgorithmInMultihashCode"`
	// MaxOperationsPerBatch defines maximum operations per batch.
	MaxOperationsPerBatch uint `json:"maxOperationsPerBatch"`
	// MaxOperationByteSize is maximum size of an operation in bytes.
	MaxOperationByteSize uint `json:"maxOperationByteSize"`
	// CompressionAlgorithm is the batch file compression algorithm. Empty means no compression.
	CompressionAlgorithm string `json:"compressionAlgorithm,omitempty"`
}

// Client defines interface for accessing protocol version/information.
type Client interface {

	// Current returns latest version of protocol.
	Current() Protocol

	// Get returns the version of protocol in force at the given block number.
	Get(blockNumber uint64) (Protocol, error)
}
