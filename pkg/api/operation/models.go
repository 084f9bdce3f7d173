/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operation

import (
	"encoding/json"

	"github.com/trustbloc/sidetree-didcache-go/pkg/document"
)

// Type defines valid values for operation type.
type Type string

const (

	// TypeCreate captures "create" operation type.
	TypeCreate Type = "create"

	// TypeUpdate captures "update" operation type.
	TypeUpdate Type = "update"

	// TypeRecover captures "recover" operation type.
	TypeRecover Type = "recover"

	// TypeDelete captures "delete" operation type.
	TypeDelete Type = "delete"
)

// Operation is a decoded, structurally valid write operation. Fields that don't apply to
// the operation type are left empty.
type Operation struct {

	// Type defines operation type.
	Type Type `json:"type"`

	// UniqueSuffix is the suffix of the DID this operation targets. For a create operation it
	// is derived from the encoded initial document.
	UniqueSuffix string `json:"uniqueSuffix"`

	// OperationHash is the encoded multihash of the operation buffer; it is the version id.
	OperationHash string `json:"operationHash"`

	// PreviousOperationHash is the hash of the operation this one chains from (empty for create).
	PreviousOperationHash string `json:"previousOperationHash,omitempty"`

	// OperationBuffer is the original operation request.
	OperationBuffer []byte `json:"operationBuffer"`

	// SigningKeyID is the id of the key that signed the operation.
	SigningKeyID string `json:"kid,omitempty"`

	// Document is the initial document (create) or the replacement document (recover).
	Document document.Document `json:"document,omitempty"`

	// Patch holds the RFC 6902 patch of an update operation.
	Patch json.RawMessage `json:"patch,omitempty"`

	// TransactionTime is the block number of the anchoring transaction.
	TransactionTime uint64 `json:"transactionTime"`

	// TransactionNumber is the number of the transaction this operation was batched within.
	TransactionNumber uint64 `json:"transactionNumber"`

	// OperationIndex is the index this operation was assigned to in the batch.
	OperationIndex uint `json:"operationIndex"`
}

// QueuedOperation is a validated operation request waiting to be batched and anchored.
type QueuedOperation struct {
	// UniqueSuffix is the suffix of the DID the operation targets.
	UniqueSuffix string

	// OperationHash is the version id the operation will have once anchored.
	OperationHash string

	// OperationBuffer is the original operation request.
	OperationBuffer []byte
}
