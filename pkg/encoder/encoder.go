/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package encoder

import (
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"
)

// EncodeToString encodes the bytes to string (base64url, no padding).
func EncodeToString(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeString decodes the encoded content to Bytes.
func DecodeString(encodedContent string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(encodedContent)
}

// DecodeJSON decodes the base64url encoded JSON content into v.
func DecodeJSON(encodedContent string, v interface{}) error {
	data, err := DecodeString(encodedContent)
	if err != nil {
		return errors.Wrap(err, "decode base64url")
	}

	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "unmarshal json")
	}

	return nil
}
