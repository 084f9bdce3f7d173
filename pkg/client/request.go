/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/canonicalizer"
	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
	"github.com/trustbloc/sidetree-didcache-go/pkg/hashing"
	"github.com/trustbloc/sidetree-didcache-go/pkg/jws"
	"github.com/trustbloc/sidetree-didcache-go/pkg/model"
)

// Signer defines JWS Signer interface that will be used to sign required data in Sidetree request.
type Signer interface {
	// Sign signs data and returns signature value
	Sign(data []byte) ([]byte, error)

	// Headers provides required JWS protected headers. It provides information about signing key and algorithm.
	Headers() jws.Headers
}

// signRequest builds the signed request for the given operation type and payload.
func signRequest(opType operation.Type, payload interface{}, signer Signer) ([]byte, error) {
	if signer == nil {
		return nil, errors.New("missing signer")
	}

	payloadBytes, err := canonicalizer.MarshalCanonical(payload)
	if err != nil {
		return nil, errors.Wrap(err, "canonicalize payload")
	}

	header := model.Header{Operation: opType}

	header.KeyID, _ = signer.Headers().KeyID()
	header.Algorithm, _ = signer.Headers().Algorithm()

	if header.Algorithm == "" {
		return nil, errors.New("signing algorithm is required")
	}

	encodedPayload := encoder.EncodeToString(payloadBytes)

	signingInput, err := model.SigningInput(header, encodedPayload)
	if err != nil {
		return nil, err
	}

	signature, err := signer.Sign(signingInput)
	if err != nil {
		return nil, errors.Wrap(err, "sign request")
	}

	return canonicalizer.MarshalCanonical(&model.Request{
		Header:    header,
		Payload:   encodedPayload,
		Signature: encoder.EncodeToString(signature),
	})
}

func validateChainInfo(didSuffix, previousOperationHash string) error {
	if didSuffix == "" {
		return errors.New("missing did unique suffix")
	}

	if !hashing.IsSupportedMultihash(previousOperationHash) {
		return errors.New("previous operation hash is not computed with a supported hash algorithm")
	}

	return nil
}
