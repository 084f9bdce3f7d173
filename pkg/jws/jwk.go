/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"encoding/json"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
	gojose "github.com/square/go-jose/v3"

	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
)

// Key types and curves.
const (
	KeyTypeEC  = "EC"
	KeyTypeOKP = "OKP"

	CurveP256      = "P-256"
	CurveSecp256k1 = "secp256k1"
	CurveEd25519   = "Ed25519"
)

// JWK contains public key in JWK format.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y,omitempty"`
}

// Validate validates JWK.
func (jwk *JWK) Validate() error {
	if jwk.Crv == "" {
		return errors.New("JWK crv is missing")
	}

	if jwk.Kty == "" {
		return errors.New("JWK kty is missing")
	}

	if jwk.X == "" {
		return errors.New("JWK x is missing")
	}

	if jwk.Kty == KeyTypeEC && jwk.Y == "" {
		return errors.New("JWK y is missing")
	}

	return nil
}

// PublicKey decodes the JWK into an *ecdsa.PublicKey or an ed25519.PublicKey.
func (jwk *JWK) PublicKey() (crypto.PublicKey, error) {
	if err := jwk.Validate(); err != nil {
		return nil, err
	}

	// go-jose doesn't know the secp256k1 curve.
	if jwk.Kty == KeyTypeEC && jwk.Crv == CurveSecp256k1 {
		return jwk.secp256k1PublicKey()
	}

	jwkBytes, err := json.Marshal(jwk)
	if err != nil {
		return nil, err
	}

	var joseJWK gojose.JSONWebKey
	if err := joseJWK.UnmarshalJSON(jwkBytes); err != nil {
		return nil, errors.Wrap(err, "unmarshal JWK")
	}

	switch key := joseJWK.Key.(type) {
	case *ecdsa.PublicKey:
		return key, nil
	case ed25519.PublicKey:
		return key, nil
	default:
		return nil, errors.Errorf("unsupported public key type %T", joseJWK.Key)
	}
}

func (jwk *JWK) secp256k1PublicKey() (*ecdsa.PublicKey, error) {
	x, err := encoder.DecodeString(jwk.X)
	if err != nil {
		return nil, errors.Wrap(err, "decode x")
	}

	y, err := encoder.DecodeString(jwk.Y)
	if err != nil {
		return nil, errors.Wrap(err, "decode y")
	}

	pubKey := &ecdsa.PublicKey{
		Curve: btcec.S256(),
		X:     new(big.Int).SetBytes(x),
		Y:     new(big.Int).SetBytes(y),
	}

	if !pubKey.Curve.IsOnCurve(pubKey.X, pubKey.Y) {
		return nil, errors.New("secp256k1: point is not on curve")
	}

	return pubKey, nil
}
