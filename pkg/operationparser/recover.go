/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operationparser

import (
	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/document"
	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
	"github.com/trustbloc/sidetree-didcache-go/pkg/model"
)

func (p *Parser) parseRecover(request *model.Request) (*operation.Operation, error) {
	payload := &model.RecoverPayload{}

	if err := encoder.DecodeJSON(request.Payload, payload); err != nil {
		return nil, malformed(err, "recover payload")
	}

	if payload.DidUniqueSuffix == "" {
		return nil, missing("didUniqueSuffix")
	}

	if err := p.validatePreviousOperationHash(payload.PreviousOperationHash); err != nil {
		return nil, err
	}

	if err := document.ValidateInitialDocument(payload.NewDidDocument); err != nil {
		return nil, malformed(err, "new document")
	}

	return &operation.Operation{
		Type:                  operation.TypeRecover,
		UniqueSuffix:          payload.DidUniqueSuffix,
		PreviousOperationHash: payload.PreviousOperationHash,
		Document:              payload.NewDidDocument,
	}, nil
}
