/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package snappy

import (
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Name is the protocol name of the algorithm.
const Name = "SNAPPY"

// Algorithm implements snappy block compression.
type Algorithm struct{}

// New returns a snappy algorithm.
func New() *Algorithm {
	return &Algorithm{}
}

// Compress compresses the data.
func (a *Algorithm) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

// Decompress decompresses the data.
func (a *Algorithm) Decompress(data []byte) ([]byte, error) {
	result, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(err, "decode snappy data")
	}

	return result, nil
}

// Accept returns true for SNAPPY.
func (a *Algorithm) Accept(alg string) bool {
	return alg == Name
}
