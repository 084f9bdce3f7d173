/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/document"
	"github.com/trustbloc/sidetree-didcache-go/pkg/model"
)

// RecoverRequestInfo is the information required to create recover request.
type RecoverRequestInfo struct {

	// DidUniqueSuffix is the suffix of the DID that is being recovered
	DidUniqueSuffix string

	// PreviousOperationHash is the hash of the operation this recover chains from
	PreviousOperationHash string

	// OpaqueDocument is the replacement document
	OpaqueDocument string

	// Signer signs the request
	Signer Signer
}

// NewRecoverRequest is utility function to create payload for 'recover' request.
func NewRecoverRequest(info *RecoverRequestInfo) ([]byte, error) {
	if err := validateChainInfo(info.DidUniqueSuffix, info.PreviousOperationHash); err != nil {
		return nil, err
	}

	if info.OpaqueDocument == "" {
		return nil, errors.New("missing opaque document")
	}

	doc, err := document.FromBytes([]byte(info.OpaqueDocument))
	if err != nil {
		return nil, errors.Wrap(err, "parse opaque document")
	}

	return signRequest(operation.TypeRecover, &model.RecoverPayload{
		DidUniqueSuffix:       info.DidUniqueSuffix,
		PreviousOperationHash: info.PreviousOperationHash,
		NewDidDocument:        doc,
	}, info.Signer)
}
