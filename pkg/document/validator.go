/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"regexp"

	"github.com/pkg/errors"
)

// Public key types.
const (
	JSONWebKey2020                    = "JsonWebKey2020"
	EcdsaSecp256k1VerificationKey2019 = "EcdsaSecp256k1VerificationKey2019"
	Ed25519VerificationKey2018        = "Ed25519VerificationKey2018"

	maxIDLength = 50
)

//nolint:gochecknoglobals
var (
	asciiRegex = regexp.MustCompile("^[A-Za-z0-9_-]+$")

	allowedKeyTypes = map[string]struct{}{
		JSONWebKey2020:                    {},
		EcdsaSecp256k1VerificationKey2019: {},
		Ed25519VerificationKey2018:        {},
	}
)

// ValidateInitialDocument validates the document carried by a create or recover operation.
// The document must not set its own id and must declare at least one valid public key.
func ValidateInitialDocument(doc Document) error {
	if doc == nil {
		return errors.New("document is missing")
	}

	if _, ok := doc[IDProperty]; ok {
		return errors.New("document must NOT have the id property")
	}

	pubKeys := doc.PublicKeys()
	if len(pubKeys) == 0 {
		return errors.New("document must contain at least one public key")
	}

	return ValidatePublicKeys(pubKeys)
}

// ValidatePublicKeys validates public keys.
func ValidatePublicKeys(pubKeys []PublicKey) error {
	ids := make(map[string]struct{})

	for _, pubKey := range pubKeys {
		kid := pubKey.ID()
		if err := validateKID(kid); err != nil {
			return err
		}

		if _, ok := ids[kid]; ok {
			return errors.Errorf("duplicate public key id: %s", kid)
		}

		ids[kid] = struct{}{}

		if _, ok := allowedKeyTypes[pubKey.Type()]; !ok {
			return errors.Errorf("invalid key type: %s", pubKey.Type())
		}

		if _, err := pubKey.JWK(); err != nil {
			return errors.Wrapf(err, "public key [%s]", kid)
		}
	}

	return nil
}

func validateKID(kid string) error {
	if kid == "" {
		return errors.New("public key id is missing")
	}

	if len(kid) > maxIDLength {
		return errors.Errorf("public key id exceeds maximum length: %d", maxIDLength)
	}

	if !asciiRegex.MatchString(kid) {
		return errors.New("public key id contains invalid characters")
	}

	return nil
}
