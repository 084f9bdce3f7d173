/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package composer

import (
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/document"
	"github.com/trustbloc/sidetree-didcache-go/pkg/internal/log"
)

var logger = log.New("sidetree-composer")

// NamespaceDelimiter is the delimiter that separates the namespace from the unique suffix.
const NamespaceDelimiter = ":"

// Composer reconstructs documents by replaying the operations of a version chain.
type Composer struct {
	namespace string
}

// New returns a composer that assigns document ids in the given namespace.
func New(namespace string) *Composer {
	return &Composer{namespace: namespace}
}

// Compose replays the operations, which must start with the create operation of the chain and
// be in chain order. It returns nil if the last operation is a delete.
//
// Replay semantics: create sets the initial document, update applies its JSON patch (a patch
// that fails to apply leaves the document unchanged), recover replaces the document and delete
// ends the chain. The document id is always <namespace>:<suffix>.
func (c *Composer) Compose(ops []*operation.Operation) (document.Document, error) {
	if len(ops) == 0 {
		return nil, errors.New("no operations to compose")
	}

	if ops[0].Type != operation.TypeCreate {
		return nil, errors.Errorf("first operation must be create, got [%s]", ops[0].Type)
	}

	id := c.namespace + NamespaceDelimiter + ops[0].UniqueSuffix

	var doc document.Document

	for i, op := range ops {
		if i > 0 && doc == nil {
			return nil, errors.Errorf("operation [%s] follows delete", op.OperationHash)
		}

		switch op.Type {
		case operation.TypeCreate:
			if i > 0 {
				return nil, errors.Errorf("unexpected create operation [%s] at position %d", op.OperationHash, i)
			}

			doc = withID(op.Document, id)
		case operation.TypeUpdate:
			doc = applyUpdate(doc, op, id)
		case operation.TypeRecover:
			doc = withID(op.Document, id)
		case operation.TypeDelete:
			doc = nil
		default:
			return nil, errors.Errorf("operation type [%s] not supported", op.Type)
		}
	}

	return doc, nil
}

func withID(doc document.Document, id string) document.Document {
	c := doc.Copy()
	if c == nil {
		c = make(document.Document)
	}

	c[document.IDProperty] = id

	return c
}

func applyUpdate(doc document.Document, op *operation.Operation, id string) document.Document {
	updated, err := ApplyPatch(doc, op.Patch)
	if err != nil {
		logger.Warn("Ignoring update that could not be applied", log.WithOperationHash(op.OperationHash),
			log.WithSuffix(op.UniqueSuffix), log.WithError(err))

		return doc
	}

	return withID(updated, id)
}

// ApplyPatch applies an RFC 6902 JSON patch to a copy of the document.
func ApplyPatch(doc document.Document, patch []byte) (document.Document, error) {
	jsonPatch, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, errors.Wrap(err, "decode patch")
	}

	docBytes, err := doc.Bytes()
	if err != nil {
		return nil, err
	}

	docBytes, err = jsonPatch.Apply(docBytes)
	if err != nil {
		return nil, errors.Wrap(err, "apply patch")
	}

	return document.FromBytes(docBytes)
}
