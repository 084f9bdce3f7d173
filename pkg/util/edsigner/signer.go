/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package edsigner

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/jws"
)

const algEdDSA = "EdDSA"

// Signer signs with an Ed25519 private key.
type Signer struct {
	kid        string
	privateKey ed25519.PrivateKey
}

// New returns ED25519 signer.
func New(privKey ed25519.PrivateKey, kid string) *Signer {
	return &Signer{privateKey: privKey, kid: kid}
}

// Headers provides required JWS protected headers.
func (signer *Signer) Headers() jws.Headers {
	headers := jws.Headers{jws.HeaderAlgorithm: algEdDSA}

	if signer.kid != "" {
		headers[jws.HeaderKeyID] = signer.kid
	}

	return headers
}

// Sign signs msg and returns signature value.
func (signer *Signer) Sign(msg []byte) ([]byte, error) {
	if l := len(signer.privateKey); l != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid private key size %d", l)
	}

	return ed25519.Sign(signer.privateKey, msg), nil
}
