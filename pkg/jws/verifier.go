/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/sha256"
	"math/big"

	"github.com/pkg/errors"
)

const ecKeySize = 32

// ErrInvalidSignature is returned when the signature doesn't verify against the public key.
var ErrInvalidSignature = errors.New("invalid signature")

// VerifySignature verifies the signature of msg against a public key in JWK format.
// Supported keys are EC (P-256, secp256k1) with raw r||s signatures over SHA-256, and Ed25519.
func VerifySignature(jwk *JWK, signature, msg []byte) error {
	if jwk == nil {
		return errors.New("JWK is not present")
	}

	switch jwk.Kty {
	case KeyTypeEC:
		return verifyECSignature(jwk, signature, msg)
	case KeyTypeOKP:
		return verifyEd25519Signature(jwk, signature, msg)
	default:
		return errors.Errorf("'%s' key type is not supported for verifying signature", jwk.Kty)
	}
}

func verifyECSignature(jwk *JWK, signature, msg []byte) error {
	if jwk.Crv != CurveP256 && jwk.Crv != CurveSecp256k1 {
		return errors.Errorf("ecdsa: unsupported elliptic curve '%s'", jwk.Crv)
	}

	key, err := jwk.PublicKey()
	if err != nil {
		return err
	}

	ecdsaPubKey, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return errors.New("not an EC public key")
	}

	if len(signature) != 2*ecKeySize {
		return errors.Wrap(ErrInvalidSignature, "ecdsa: invalid signature size")
	}

	hash := sha256.Sum256(msg)

	r := new(big.Int).SetBytes(signature[:ecKeySize])
	s := new(big.Int).SetBytes(signature[ecKeySize:])

	if !ecdsa.Verify(ecdsaPubKey, hash[:], r, s) {
		return errors.Wrap(ErrInvalidSignature, "ecdsa")
	}

	return nil
}

func verifyEd25519Signature(jwk *JWK, signature, msg []byte) error {
	if jwk.Crv != CurveEd25519 {
		return errors.Errorf("unsupported OKP curve '%s'", jwk.Crv)
	}

	key, err := jwk.PublicKey()
	if err != nil {
		return err
	}

	pubKey, ok := key.(ed25519.PublicKey)
	if !ok || len(pubKey) != ed25519.PublicKeySize {
		return errors.New("ed25519: invalid key")
	}

	if !ed25519.Verify(pubKey, msg, signature) {
		return errors.Wrap(ErrInvalidSignature, "ed25519")
	}

	return nil
}
