/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package model

import (
	"encoding/json"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/document"
)

// Request is the signed operation request as it is anchored in a batch file.
type Request struct {
	// Header is the protected header.
	Header Header `json:"header"`

	// Payload is the base64url encoded JSON payload of the operation.
	Payload string `json:"payload"`

	// Signature is the base64url encoded signature over the signing input.
	Signature string `json:"signature"`
}

// Header is the protected operation header.
type Header struct {
	Operation operation.Type `json:"operation"`
	KeyID     string         `json:"kid"`
	Algorithm string         `json:"alg"`
}

// UpdatePayload is the payload of an update operation.
type UpdatePayload struct {
	DidUniqueSuffix       string `json:"didUniqueSuffix"`
	PreviousOperationHash string `json:"previousOperationHash"`

	// Patches is an RFC 6902 JSON patch.
	Patches json.RawMessage `json:"patches"`
}

// RecoverPayload is the payload of a recover operation.
type RecoverPayload struct {
	DidUniqueSuffix       string            `json:"didUniqueSuffix"`
	PreviousOperationHash string            `json:"previousOperationHash"`
	NewDidDocument        document.Document `json:"newDidDocument"`
}

// DeletePayload is the payload of a delete operation.
type DeletePayload struct {
	DidUniqueSuffix       string `json:"didUniqueSuffix"`
	PreviousOperationHash string `json:"previousOperationHash"`
}
