/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operationparser

import (
	"encoding/json"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/document"
	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
	"github.com/trustbloc/sidetree-didcache-go/pkg/model"
)

const idPath = "/" + document.IDProperty

func (p *Parser) parseUpdate(request *model.Request) (*operation.Operation, error) {
	payload := &model.UpdatePayload{}

	if err := encoder.DecodeJSON(request.Payload, payload); err != nil {
		return nil, malformed(err, "update payload")
	}

	if payload.DidUniqueSuffix == "" {
		return nil, missing("didUniqueSuffix")
	}

	if err := p.validatePreviousOperationHash(payload.PreviousOperationHash); err != nil {
		return nil, err
	}

	if err := validatePatches(payload.Patches); err != nil {
		return nil, err
	}

	return &operation.Operation{
		Type:                  operation.TypeUpdate,
		UniqueSuffix:          payload.DidUniqueSuffix,
		PreviousOperationHash: payload.PreviousOperationHash,
		Patch:                 payload.Patches,
	}, nil
}

// patchOperation holds the members of a JSON patch operation that are validated.
type patchOperation struct {
	Op   string  `json:"op"`
	Path *string `json:"path"`
	From *string `json:"from"`
}

func validatePatches(patches []byte) error {
	if len(patches) == 0 {
		return missing("patches")
	}

	if _, err := jsonpatch.DecodePatch(patches); err != nil {
		return malformed(err, "patches")
	}

	var ops []patchOperation
	if err := json.Unmarshal(patches, &ops); err != nil {
		return malformed(err, "patches")
	}

	if len(ops) == 0 {
		return missing("patches")
	}

	for i, op := range ops {
		if err := validatePatchOperation(op); err != nil {
			return errors.WithMessagef(err, "patch[%d]", i)
		}
	}

	return nil
}

func validatePatchOperation(op patchOperation) error {
	switch op.Op {
	case "add", "remove", "replace", "move", "copy", "test":
	default:
		return errors.Wrapf(ErrMalformedOperation, "invalid op [%s]", op.Op)
	}

	if op.Path == nil {
		return missing("patch path")
	}

	if touchesID(*op.Path) {
		return errors.Wrap(ErrMalformedOperation, "document id cannot be modified")
	}

	if op.Op != "move" && op.Op != "copy" {
		return nil
	}

	if op.From == nil {
		return missing("patch from")
	}

	if op.Op == "move" && touchesID(*op.From) {
		return errors.Wrap(ErrMalformedOperation, "document id cannot be modified")
	}

	return nil
}

func touchesID(path string) bool {
	return path == idPath || strings.HasPrefix(path, idPath+"/") || path == "" || path == "/"
}
