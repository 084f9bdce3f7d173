/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecsigner

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/jws"
)

const (
	algES256  = "ES256"
	algES256K = "ES256K"

	keySize = 32
)

// Signer signs with an EC private key on the P-256 or secp256k1 curve.
type Signer struct {
	alg        string
	kid        string
	privateKey *ecdsa.PrivateKey
}

// New creates new ECDSA signer. If alg is empty it is derived from the curve of the key.
func New(privKey *ecdsa.PrivateKey, alg, kid string) *Signer {
	if alg == "" && privKey != nil {
		alg = algorithm(privKey.Curve)
	}

	return &Signer{privateKey: privKey, kid: kid, alg: alg}
}

// Headers provides required JWS protected headers. It provides information about signing key and algorithm.
func (signer *Signer) Headers() jws.Headers {
	headers := make(jws.Headers)

	if signer.alg != "" {
		headers[jws.HeaderAlgorithm] = signer.alg
	}

	if signer.kid != "" {
		headers[jws.HeaderKeyID] = signer.kid
	}

	return headers
}

// Sign returns the raw r||s signature of the SHA-256 digest of msg.
func (signer *Signer) Sign(msg []byte) ([]byte, error) {
	if signer.privateKey == nil {
		return nil, errors.New("private key not provided")
	}

	if algorithm(signer.privateKey.Curve) == "" {
		return nil, errors.Errorf("unsupported curve %s", signer.privateKey.Curve.Params().Name)
	}

	hashed := sha256.Sum256(msg)

	r, s, err := ecdsa.Sign(rand.Reader, signer.privateKey, hashed[:])
	if err != nil {
		return nil, errors.Wrap(err, "ecdsa sign")
	}

	return append(copyPadded(r.Bytes(), keySize), copyPadded(s.Bytes(), keySize)...), nil
}

func copyPadded(source []byte, size int) []byte {
	dest := make([]byte, size)
	copy(dest[size-len(source):], source)

	return dest
}

func algorithm(curve elliptic.Curve) string {
	switch curve {
	case elliptic.P256():
		return algES256
	case btcec.S256():
		return algES256K
	default:
		return ""
	}
}
