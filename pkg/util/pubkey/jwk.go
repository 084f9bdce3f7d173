/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pubkey

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"encoding/json"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
	gojose "github.com/square/go-jose/v3"

	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
	"github.com/trustbloc/sidetree-didcache-go/pkg/jws"
)

const coordinateSize = 32

// GetPublicKeyJWK returns public key in JWK format.
func GetPublicKeyJWK(pubKey interface{}) (*jws.JWK, error) {
	switch key := pubKey.(type) {
	case ed25519.PublicKey:
		return marshalJose(key)
	case *ecdsa.PublicKey:
		// go-jose doesn't handle the secp256k1 curve
		if key.Curve == btcec.S256() {
			return &jws.JWK{
				Kty: jws.KeyTypeEC,
				Crv: jws.CurveSecp256k1,
				X:   encoder.EncodeToString(padded(key.X.Bytes())),
				Y:   encoder.EncodeToString(padded(key.Y.Bytes())),
			}, nil
		}

		return marshalJose(key)
	default:
		return nil, errors.Errorf("unknown key type '%T'", pubKey)
	}
}

func marshalJose(key interface{}) (*jws.JWK, error) {
	jsonJWK, err := gojose.JSONWebKey{Key: key}.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshal JWK")
	}

	var jwk jws.JWK

	if err := json.Unmarshal(jsonJWK, &jwk); err != nil {
		return nil, errors.Wrap(err, "unmarshal JWK")
	}

	return &jwk, nil
}

func padded(b []byte) []byte {
	if len(b) >= coordinateSize {
		return b
	}

	dest := make([]byte, coordinateSize)
	copy(dest[coordinateSize-len(b):], b)

	return dest
}
