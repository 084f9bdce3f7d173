/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"github.com/btcsuite/btcutil/base58"
)

const (

	// ControllerProperty defines key for controller.
	ControllerProperty = "controller"

	// PurposeProperty describes key purpose property.
	PurposeProperty = "purpose"

	// PublicKeyJwkProperty describes external public key JWK.
	PublicKeyJwkProperty = "publicKeyJwk"

	// TypeProperty describes type.
	TypeProperty = "type"

	// PublicKeyBase58Property defines base 58 encoding for public key.
	PublicKeyBase58Property = "publicKeyBase58"
)

// PublicKey must include id and type properties, and exactly one value property.
type PublicKey map[string]interface{}

// NewPublicKey creates new public key.
func NewPublicKey(pk map[string]interface{}) PublicKey {
	return pk
}

// ParsePublicKeys returns the public keys held by the given document entry.
func ParsePublicKeys(entry interface{}) []PublicKey {
	if entry == nil {
		return nil
	}

	typeOfEntry, ok := entry.([]interface{})
	if !ok {
		return nil
	}

	var result []PublicKey

	for _, e := range typeOfEntry {
		emap, ok := e.(map[string]interface{})
		if !ok {
			continue
		}

		result = append(result, NewPublicKey(emap))
	}

	return result
}

// ID is public key ID.
func (pk PublicKey) ID() string {
	return stringEntry(pk[IDProperty])
}

// Type is public key type.
func (pk PublicKey) Type() string {
	return stringEntry(pk[TypeProperty])
}

// Controller identifies the entity that controls the corresponding private key.
func (pk PublicKey) Controller() string {
	return stringEntry(pk[ControllerProperty])
}

// PublicKeyBase58 is base58 encoded public key.
func (pk PublicKey) PublicKeyBase58() string {
	return stringEntry(pk[PublicKeyBase58Property])
}

// DecodedPublicKeyBase58 returns the raw bytes of the base58 encoded public key (nil if absent or invalid).
func (pk PublicKey) DecodedPublicKeyBase58() []byte {
	encoded := pk.PublicKeyBase58()
	if encoded == "" {
		return nil
	}

	decoded := base58.Decode(encoded)
	if len(decoded) == 0 {
		return nil
	}

	return decoded
}

// Purpose describes key purpose.
func (pk PublicKey) Purpose() []string {
	return StringArray(pk[PurposeProperty])
}
