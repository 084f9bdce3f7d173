/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"encoding/json"

	"github.com/trustbloc/sidetree-didcache-go/pkg/canonicalizer"
)

const (
	// IDProperty describes id key.
	IDProperty = "id"

	// PublicKeyProperty describes public key key.
	PublicKeyProperty = "publicKey"
)

// Document defines generic document data structure.
type Document map[string]interface{}

// FromBytes creates an instance of Document by reading a JSON document from bytes.
func FromBytes(data []byte) (Document, error) {
	doc := make(Document)

	err := json.Unmarshal(data, &doc)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ID is document identifier.
func (doc Document) ID() string {
	return stringEntry(doc[IDProperty])
}

// PublicKeys returns the public keys declared by the document.
func (doc Document) PublicKeys() []PublicKey {
	return ParsePublicKeys(doc[PublicKeyProperty])
}

// PublicKey returns the public key with the given id, if present.
func (doc Document) PublicKey(id string) (PublicKey, bool) {
	for _, pk := range doc.PublicKeys() {
		if pk.ID() == id {
			return pk, true
		}
	}

	return nil, false
}

// GetStringValue returns string value for specified key or "" if not found or wrong type.
func (doc Document) GetStringValue(key string) string {
	return stringEntry(doc[key])
}

// Bytes returns the canonical JSON representation of the document.
func (doc Document) Bytes() ([]byte, error) {
	return canonicalizer.MarshalCanonical(doc)
}

// Copy returns a deep copy of the document. Modifying the copy never affects the original.
func (doc Document) Copy() Document {
	if doc == nil {
		return nil
	}

	return copyMap(doc)
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	c := make(map[string]interface{}, len(m))

	for k, v := range m {
		c[k] = copyValue(v)
	}

	return c
}

func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return copyMap(val)
	case Document:
		return Document(copyMap(val))
	case PublicKey:
		return PublicKey(copyMap(val))
	case []interface{}:
		c := make([]interface{}, len(val))
		for i, e := range val {
			c[i] = copyValue(e)
		}

		return c
	case []string:
		return append([]string(nil), val...)
	default:
		return val
	}
}

func stringEntry(entry interface{}) string {
	if entry == nil {
		return ""
	}

	id, ok := entry.(string)
	if !ok {
		return ""
	}

	return id
}

// StringArray is utility function to return string array from interface.
func StringArray(entry interface{}) []string {
	if entry == nil {
		return nil
	}

	entries, ok := entry.([]interface{})
	if !ok {
		return nil
	}

	var result []string

	for _, e := range entries {
		val, ok := e.(string)
		if !ok {
			continue
		}

		result = append(result, val)
	}

	return result
}
