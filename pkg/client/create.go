/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/document"
)

// CreateRequestInfo contains data for creating create payload.
type CreateRequestInfo struct {

	// opaque document content; must declare the signing key
	// required
	OpaqueDocument string

	// Signer signs the request with one of the keys declared in the document
	// required
	Signer Signer
}

// NewCreateRequest is utility function to create payload for 'create' request.
func NewCreateRequest(info *CreateRequestInfo) ([]byte, error) {
	if info.OpaqueDocument == "" {
		return nil, errors.New("missing opaque document")
	}

	doc, err := document.FromBytes([]byte(info.OpaqueDocument))
	if err != nil {
		return nil, errors.Wrap(err, "parse opaque document")
	}

	return signRequest(operation.TypeCreate, doc, info.Signer)
}
