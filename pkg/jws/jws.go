/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

const (
	// HeaderAlgorithm identifies the cryptographic algorithm used to secure the operation.
	HeaderAlgorithm = "alg"

	// HeaderKeyID is a hint indicating which key was used to secure the operation.
	HeaderKeyID = "kid"

	// HeaderOperation names the operation type the header belongs to.
	HeaderOperation = "operation"
)

// Headers represents JOSE protected headers.
type Headers map[string]interface{}

// KeyID gets Key ID from protected headers.
func (h Headers) KeyID() (string, bool) {
	return h.stringValue(HeaderKeyID)
}

// Algorithm gets Algorithm from protected headers.
func (h Headers) Algorithm() (string, bool) {
	return h.stringValue(HeaderAlgorithm)
}

func (h Headers) stringValue(key string) (string, bool) {
	raw, ok := h[key]
	if !ok {
		return "", false
	}

	str, ok := raw.(string)

	return str, ok
}

// Signer defines JWS Signer interface. It makes signing of data and provides custom JWS headers relevant to the signer.
type Signer interface {
	// Sign signs.
	Sign(data []byte) ([]byte, error)

	// Headers provides JWS headers.
	Headers() Headers
}
