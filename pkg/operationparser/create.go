/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operationparser

import (
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/document"
	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
	"github.com/trustbloc/sidetree-didcache-go/pkg/hashing"
	"github.com/trustbloc/sidetree-didcache-go/pkg/jws"
	"github.com/trustbloc/sidetree-didcache-go/pkg/model"
)

// parseCreate parses a create operation. The payload is the initial document and the operation
// is self-certifying: it must be signed by one of the keys the document declares.
func (p *Parser) parseCreate(request *model.Request, signature []byte) (*operation.Operation, error) {
	doc := make(document.Document)

	if err := encoder.DecodeJSON(request.Payload, &doc); err != nil {
		return nil, malformed(err, "create payload")
	}

	if err := document.ValidateInitialDocument(doc); err != nil {
		return nil, malformed(err, "initial document")
	}

	if err := verifySignature(doc, request, signature); err != nil {
		return nil, err
	}

	uniqueSuffix, err := hashing.CalculateEncodedMultihash(p.HashAlgorithmInMultiHashCode, []byte(request.Payload))
	if err != nil {
		return nil, errors.Wrap(ErrUnsupportedHashAlgorithm, err.Error())
	}

	return &operation.Operation{
		Type:         operation.TypeCreate,
		UniqueSuffix: uniqueSuffix,
		Document:     doc,
	}, nil
}

func verifySignature(doc document.Document, request *model.Request, signature []byte) error {
	if request.Header.KeyID == "" {
		return errors.Wrap(ErrInvalidSignature, "missing kid")
	}

	pk, ok := doc.PublicKey(request.Header.KeyID)
	if !ok {
		return errors.Wrapf(ErrInvalidSignature, "signing key [%s] not found in document", request.Header.KeyID)
	}

	jwk, err := pk.JWK()
	if err != nil {
		return errors.Wrapf(ErrInvalidSignature, "signing key [%s]: %s", request.Header.KeyID, err.Error())
	}

	signingInput, err := model.SigningInput(request.Header, request.Payload)
	if err != nil {
		return malformed(err, "signing input")
	}

	if err := jws.VerifySignature(jwk, signature, signingInput); err != nil {
		return errors.Wrap(ErrInvalidSignature, err.Error())
	}

	return nil
}
