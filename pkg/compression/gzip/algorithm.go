/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gzip

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Name is the protocol name of the algorithm.
const Name = "GZIP"

// Algorithm implements gzip compression.
type Algorithm struct{}

// New returns a gzip algorithm.
func New() *Algorithm {
	return &Algorithm{}
}

// Compress compresses the data.
func (a *Algorithm) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := gzip.NewWriter(&buf)

	if _, err := zw.Write(data); err != nil {
		return nil, errors.Wrap(err, "write data")
	}

	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "close writer")
	}

	return buf.Bytes(), nil
}

// Decompress decompresses the data.
func (a *Algorithm) Decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "create reader")
	}

	result, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(err, "read compressed data")
	}

	if err := zr.Close(); err != nil {
		return nil, errors.Wrap(err, "close reader")
	}

	return result, nil
}

// Accept returns true for GZIP.
func (a *Algorithm) Accept(alg string) bool {
	return alg == Name
}
