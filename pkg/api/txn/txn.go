/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txn

// Transaction is a blockchain-anchored batch of DID operations.
type Transaction struct {
	// TransactionNumber is assigned by anchoring order and is globally unique and strictly increasing.
	TransactionNumber uint64 `json:"transactionNumber"`

	// TransactionTime is the block number at which the transaction was anchored. It selects
	// the protocol parameters used to validate the transaction's operations.
	TransactionTime uint64 `json:"transactionTime"`

	// AnchorFileHash is the CAS address of the batch file that holds the encoded operations.
	AnchorFileHash string `json:"anchorFileHash"`
}

// Reorg signals that the blockchain replaced all transactions starting at TransactionNumber.
type Reorg struct {
	TransactionNumber uint64 `json:"transactionNumber"`
}

// Notification is delivered by the transaction feed. If Reorg is set it must be handled
// before any of the transactions carried by the same notification.
type Notification struct {
	Reorg        *Reorg        `json:"reorg,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
}
