/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-didcache-go/pkg/jws"
	"github.com/trustbloc/sidetree-didcache-go/pkg/util/ecsigner"
	"github.com/trustbloc/sidetree-didcache-go/pkg/util/edsigner"
	"github.com/trustbloc/sidetree-didcache-go/pkg/util/pubkey"
)

var msg = []byte("test message")

func TestVerifySignature(t *testing.T) {
	t.Run("success EC P-256", func(t *testing.T) {
		jwk, signature := signEC(t, elliptic.P256())
		require.NoError(t, jws.VerifySignature(jwk, signature, msg))
	})

	t.Run("success EC secp256k1", func(t *testing.T) {
		jwk, signature := signEC(t, btcec.S256())
		require.NoError(t, jws.VerifySignature(jwk, signature, msg))
	})

	t.Run("success Ed25519", func(t *testing.T) {
		jwk, signature := signEd25519(t)
		require.NoError(t, jws.VerifySignature(jwk, signature, msg))
	})

	t.Run("EC signature doesn't match", func(t *testing.T) {
		jwk, signature := signEC(t, elliptic.P256())

		err := jws.VerifySignature(jwk, signature, []byte("other message"))
		require.Error(t, err)
		require.True(t, errors.Is(err, jws.ErrInvalidSignature))
	})

	t.Run("EC signature size", func(t *testing.T) {
		jwk, signature := signEC(t, btcec.S256())

		err := jws.VerifySignature(jwk, signature[1:], msg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid signature size")
	})

	t.Run("Ed25519 signature doesn't match", func(t *testing.T) {
		jwk, signature := signEd25519(t)
		signature[0] ^= 0xff

		err := jws.VerifySignature(jwk, signature, msg)
		require.Error(t, err)
		require.True(t, errors.Is(err, jws.ErrInvalidSignature))
	})

	t.Run("missing JWK", func(t *testing.T) {
		err := jws.VerifySignature(nil, []byte("sig"), msg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "JWK is not present")
	})

	t.Run("unsupported key type", func(t *testing.T) {
		err := jws.VerifySignature(&jws.JWK{Kty: "RSA", Crv: "crv", X: "x"}, []byte("sig"), msg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "key type is not supported")
	})

	t.Run("unsupported curve", func(t *testing.T) {
		err := jws.VerifySignature(&jws.JWK{Kty: "EC", Crv: "P-384", X: "x", Y: "y"}, []byte("sig"), msg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported elliptic curve")

		err = jws.VerifySignature(&jws.JWK{Kty: "OKP", Crv: "X25519", X: "x"}, []byte("sig"), msg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported OKP curve")
	})

	t.Run("invalid secp256k1 point", func(t *testing.T) {
		jwk, signature := signEC(t, btcec.S256())
		jwk.Y = jwk.X

		err := jws.VerifySignature(jwk, signature, msg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "not on curve")
	})

	t.Run("invalid P-256 key", func(t *testing.T) {
		jwk, signature := signEC(t, elliptic.P256())
		jwk.X = "invalid"

		err := jws.VerifySignature(jwk, signature, msg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unmarshal JWK")
	})
}

func signEC(t *testing.T, curve elliptic.Curve) (*jws.JWK, []byte) {
	t.Helper()

	privateKey, err := ecdsa.GenerateKey(curve, rand.Reader)
	require.NoError(t, err)

	jwk, err := pubkey.GetPublicKeyJWK(&privateKey.PublicKey)
	require.NoError(t, err)

	signature, err := ecsigner.New(privateKey, "", "key1").Sign(msg)
	require.NoError(t, err)

	return jwk, signature
}

func signEd25519(t *testing.T) (*jws.JWK, []byte) {
	t.Helper()

	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	jwk, err := pubkey.GetPublicKeyJWK(publicKey)
	require.NoError(t, err)

	signature, err := edsigner.New(privateKey, "key1").Sign(msg)
	require.NoError(t, err)

	return jwk, signature
}
