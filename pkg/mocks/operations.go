/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/trustbloc/sidetree-didcache-go/pkg/client"
	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
	"github.com/trustbloc/sidetree-didcache-go/pkg/hashing"
	"github.com/trustbloc/sidetree-didcache-go/pkg/jws"
	"github.com/trustbloc/sidetree-didcache-go/pkg/model"
	"github.com/trustbloc/sidetree-didcache-go/pkg/util/ecsigner"
	"github.com/trustbloc/sidetree-didcache-go/pkg/util/pubkey"
)

// SigningKeyID is the id of the key that OperationGenerator signs with.
const SigningKeyID = "key1"

// OperationGenerator creates signed operation requests for tests. Hashes are computed with
// the configured multihash code.
type OperationGenerator struct {
	MultihashCode uint

	signer *ecsigner.Signer
	jwk    *jws.JWK
}

// NewOperationGenerator creates a generator with a fresh P-256 signing key.
func NewOperationGenerator() (*OperationGenerator, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	jwk, err := pubkey.GetPublicKeyJWK(&privateKey.PublicKey)
	if err != nil {
		return nil, err
	}

	return &OperationGenerator{
		MultihashCode: hashing.SHA2_256,
		signer:        ecsigner.New(privateKey, "", SigningKeyID),
		jwk:           jwk,
	}, nil
}

// Document returns an initial document that declares the signing key and carries the given name.
func (g *OperationGenerator) Document(name string) string {
	jwkBytes, err := json.Marshal(g.jwk)
	if err != nil {
		panic(err)
	}

	return fmt.Sprintf(`{"name":%q,"publicKey":[{"id":%q,"type":"JsonWebKey2020","publicKeyJwk":%s}]}`,
		name, SigningKeyID, jwkBytes)
}

// Create returns a create request for a document with the given name, and the DID unique suffix
// the request creates.
func (g *OperationGenerator) Create(name string) ([]byte, string, error) {
	request, err := client.NewCreateRequest(&client.CreateRequestInfo{
		OpaqueDocument: g.Document(name),
		Signer:         g.signer,
	})
	if err != nil {
		return nil, "", err
	}

	r := &model.Request{}
	if err := json.Unmarshal(request, r); err != nil {
		return nil, "", err
	}

	suffix, err := hashing.CalculateEncodedMultihash(g.MultihashCode, []byte(r.Payload))
	if err != nil {
		return nil, "", err
	}

	return request, suffix, nil
}

// Update returns an update request that applies the JSON patch.
func (g *OperationGenerator) Update(suffix, previousOperationHash, patches string) ([]byte, error) {
	return client.NewUpdateRequest(&client.UpdateRequestInfo{
		DidUniqueSuffix:       suffix,
		PreviousOperationHash: previousOperationHash,
		Patches:               patches,
		Signer:                g.signer,
	})
}

// Recover returns a recover request that replaces the document with one carrying the given name.
func (g *OperationGenerator) Recover(suffix, previousOperationHash, name string) ([]byte, error) {
	return client.NewRecoverRequest(&client.RecoverRequestInfo{
		DidUniqueSuffix:       suffix,
		PreviousOperationHash: previousOperationHash,
		OpaqueDocument:        g.Document(name),
		Signer:                g.signer,
	})
}

// Delete returns a delete request.
func (g *OperationGenerator) Delete(suffix, previousOperationHash string) ([]byte, error) {
	return client.NewDeleteRequest(&client.DeleteRequestInfo{
		DidUniqueSuffix:       suffix,
		PreviousOperationHash: previousOperationHash,
		Signer:                g.signer,
	})
}

// Hash returns the operation hash (version id) of the request.
func (g *OperationGenerator) Hash(request []byte) (string, error) {
	return hashing.CalculateModelMultihash(request, g.MultihashCode)
}

// Signer returns the signer of the generator.
func (g *OperationGenerator) Signer() client.Signer {
	return g.signer
}

// NamePatch returns a JSON patch that sets the name of the document.
func NamePatch(name string) string {
	return fmt.Sprintf(`[{"op":"replace","path":"/name","value":%q}]`, name)
}

// EncodedOperations returns the base64url encoding of each request.
func EncodedOperations(requests ...[]byte) []string {
	encoded := make([]string, len(requests))
	for i, r := range requests {
		encoded[i] = encoder.EncodeToString(r)
	}

	return encoded
}
