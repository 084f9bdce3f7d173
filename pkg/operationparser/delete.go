/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operationparser

import (
	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
	"github.com/trustbloc/sidetree-didcache-go/pkg/model"
)

func (p *Parser) parseDelete(request *model.Request) (*operation.Operation, error) {
	payload := &model.DeletePayload{}

	if err := encoder.DecodeJSON(request.Payload, payload); err != nil {
		return nil, malformed(err, "delete payload")
	}

	if payload.DidUniqueSuffix == "" {
		return nil, missing("didUniqueSuffix")
	}

	if err := p.validatePreviousOperationHash(payload.PreviousOperationHash); err != nil {
		return nil, err
	}

	return &operation.Operation{
		Type:                  operation.TypeDelete,
		UniqueSuffix:          payload.DidUniqueSuffix,
		PreviousOperationHash: payload.PreviousOperationHash,
	}, nil
}
