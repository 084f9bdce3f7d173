/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package filehandler

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/canonicalizer"
	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
)

// ErrMalformedBatchFile is returned when batch file content can't be decoded.
var ErrMalformedBatchFile = errors.New("malformed batch file")

type compressionProvider interface {
	Compress(alg string, data []byte) ([]byte, error)
	Decompress(alg string, data []byte) ([]byte, error)
}

// BatchFile defines the schema of a batch file.
type BatchFile struct {
	// Operations are the base64url encoded operation requests in batch order.
	Operations []string `json:"operations"`
}

// Handler creates and parses batch files. When an algorithm is named, the content
// stored in CAS is compressed with it.
type Handler struct {
	compression compressionProvider
}

// New returns a new batch file handler.
func New(cp compressionProvider) *Handler {
	return &Handler{compression: cp}
}

// CreateBatchFile combines the operations into a batch file.
func (h *Handler) CreateBatchFile(operations [][]byte, compressionAlgorithm string) ([]byte, error) {
	ops := make([]string, len(operations))
	for i, op := range operations {
		ops[i] = encoder.EncodeToString(op)
	}

	content, err := canonicalizer.MarshalCanonical(BatchFile{Operations: ops})
	if err != nil {
		return nil, errors.Wrap(err, "marshal batch file")
	}

	if compressionAlgorithm == "" {
		return content, nil
	}

	return h.compression.Compress(compressionAlgorithm, content)
}

// ParseBatchFile returns the operation requests held by the batch file content.
func (h *Handler) ParseBatchFile(content []byte, compressionAlgorithm string) ([][]byte, error) {
	if compressionAlgorithm != "" {
		var err error

		content, err = h.compression.Decompress(compressionAlgorithm, content)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedBatchFile, "%s", err)
		}
	}

	bf := &BatchFile{}
	if err := json.Unmarshal(content, bf); err != nil {
		return nil, errors.Wrapf(ErrMalformedBatchFile, "unmarshal: %s", err)
	}

	operations := make([][]byte, len(bf.Operations))

	for i, op := range bf.Operations {
		decoded, err := encoder.DecodeString(op)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedBatchFile, "decode operation at index %d: %s", i, err)
		}

		operations[i] = decoded
	}

	return operations, nil
}
