/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/model"
)

// UpdateRequestInfo is the information required to create update request.
type UpdateRequestInfo struct {

	// DidUniqueSuffix is the suffix of the DID that is being updated
	DidUniqueSuffix string

	// PreviousOperationHash is the hash of the operation this update chains from
	PreviousOperationHash string

	// Patches is an RFC 6902 JSON patch (array of operations)
	Patches string

	// Signer signs the request
	Signer Signer
}

// NewUpdateRequest is utility function to create payload for 'update' request.
func NewUpdateRequest(info *UpdateRequestInfo) ([]byte, error) {
	if err := validateChainInfo(info.DidUniqueSuffix, info.PreviousOperationHash); err != nil {
		return nil, err
	}

	if _, err := jsonpatch.DecodePatch([]byte(info.Patches)); err != nil {
		return nil, errors.Wrap(err, "invalid patches")
	}

	return signRequest(operation.TypeUpdate, &model.UpdatePayload{
		DidUniqueSuffix:       info.DidUniqueSuffix,
		PreviousOperationHash: info.PreviousOperationHash,
		Patches:               json.RawMessage(info.Patches),
	}, info.Signer)
}
