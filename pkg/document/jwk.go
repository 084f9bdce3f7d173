/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
	"github.com/trustbloc/sidetree-didcache-go/pkg/jws"
)

// PublicKeyJwk returns the publicKeyJwk value property (nil if absent or not an object).
func (pk PublicKey) PublicKeyJwk() map[string]interface{} {
	value, ok := pk[PublicKeyJwkProperty].(map[string]interface{})
	if !ok {
		return nil
	}

	return value
}

// JWK returns the public key value in JWK format. Exactly one of publicKeyJwk and
// publicKeyBase58 must be set; base58 values are accepted for Ed25519 keys only.
func (pk PublicKey) JWK() (*jws.JWK, error) {
	_, hasJWK := pk[PublicKeyJwkProperty]
	_, hasBase58 := pk[PublicKeyBase58Property]

	switch {
	case hasJWK && hasBase58:
		return nil, errors.New("key must have only one of publicKeyJwk and publicKeyBase58")
	case hasJWK:
		return jwkFromValue(pk.PublicKeyJwk())
	case hasBase58:
		return pk.base58JWK()
	default:
		return nil, errors.New("key must have one of publicKeyJwk or publicKeyBase58")
	}
}

func jwkFromValue(value map[string]interface{}) (*jws.JWK, error) {
	if value == nil {
		return nil, errors.New("publicKeyJwk must be an object")
	}

	jwk := &jws.JWK{
		Kty: stringEntry(value["kty"]),
		Crv: stringEntry(value["crv"]),
		X:   stringEntry(value["x"]),
		Y:   stringEntry(value["y"]),
	}

	if err := jwk.Validate(); err != nil {
		return nil, err
	}

	return jwk, nil
}

func (pk PublicKey) base58JWK() (*jws.JWK, error) {
	if pk.Type() != Ed25519VerificationKey2018 {
		return nil, errors.Errorf("publicKeyBase58 is not supported for key type %s", pk.Type())
	}

	value := pk.DecodedPublicKeyBase58()
	if len(value) != ed25519.PublicKeySize {
		return nil, errors.New("invalid base58 encoded ed25519 key")
	}

	return &jws.JWK{Kty: jws.KeyTypeOKP, Crv: jws.CurveEd25519, X: encoder.EncodeToString(value)}, nil
}
