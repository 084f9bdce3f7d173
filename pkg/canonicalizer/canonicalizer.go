/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package canonicalizer

import (
	"bytes"
	"encoding/json"
)

// MarshalCanonical marshals the value into JSON with object keys sorted at every level and no
// insignificant whitespace. A []byte value is treated as already marshaled JSON.
func MarshalCanonical(value interface{}) ([]byte, error) {
	valueBytes, ok := value.([]byte)

	if !ok {
		var err error

		valueBytes, err = json.Marshal(value)
		if err != nil {
			return nil, err
		}
	}

	return transform(valueBytes)
}

// transform re-marshals generic JSON; encoding/json writes map keys in sorted order.
func transform(data []byte) ([]byte, error) {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()

	var v interface{}
	if err := d.Decode(&v); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}

	e := json.NewEncoder(buf)
	e.SetEscapeHTML(false)

	if err := e.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
