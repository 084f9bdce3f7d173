/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/model"
)

// DeleteRequestInfo is the information required to create delete request.
type DeleteRequestInfo struct {

	// DidUniqueSuffix is the suffix of the DID that is being deleted
	DidUniqueSuffix string

	// PreviousOperationHash is the hash of the operation this delete chains from
	PreviousOperationHash string

	// Signer signs the request
	Signer Signer
}

// NewDeleteRequest is utility function to create payload for 'delete' request.
func NewDeleteRequest(info *DeleteRequestInfo) ([]byte, error) {
	if err := validateChainInfo(info.DidUniqueSuffix, info.PreviousOperationHash); err != nil {
		return nil, err
	}

	return signRequest(operation.TypeDelete, &model.DeletePayload{
		DidUniqueSuffix:       info.DidUniqueSuffix,
		PreviousOperationHash: info.PreviousOperationHash,
	}, info.Signer)
}
