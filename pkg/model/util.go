/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package model

import (
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/canonicalizer"
	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
)

// SigningInput returns the bytes that are signed for an operation:
// base64url(canonical(header)) + "." + payload.
func SigningInput(header Header, encodedPayload string) ([]byte, error) {
	headerBytes, err := canonicalizer.MarshalCanonical(header)
	if err != nil {
		return nil, errors.Wrap(err, "canonicalize header")
	}

	return []byte(encoder.EncodeToString(headerBytes) + "." + encodedPayload), nil
}
