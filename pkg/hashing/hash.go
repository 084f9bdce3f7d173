/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hashing

import (
	"crypto/sha256"
	"hash"

	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/trustbloc/sidetree-didcache-go/pkg/canonicalizer"
	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
)

// Multihash codes of the supported hash algorithms.
const (
	SHA2_256 uint = multihash.SHA2_256
	SHA3_256 uint = multihash.SHA3_256
)

// ErrUnsupportedAlgorithm is returned when a multihash code doesn't map to a supported hash algorithm.
var ErrUnsupportedAlgorithm = errors.New("hash algorithm not supported")

// GetHash returns the hash function for the given multihash code.
func GetHash(multihashCode uint) (hash.Hash, error) {
	switch multihashCode {
	case SHA2_256:
		return sha256.New(), nil
	case SHA3_256:
		return sha3.New256(), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "multihash code %d", multihashCode)
	}
}

// IsSupported returns true if the multihash code maps to a supported hash algorithm.
func IsSupported(multihashCode uint) bool {
	return multihashCode == SHA2_256 || multihashCode == SHA3_256
}

// ComputeMultihash computes the hash of the given bytes and returns it in multihash format.
func ComputeMultihash(multihashCode uint, data []byte) ([]byte, error) {
	h, err := GetHash(multihashCode)
	if err != nil {
		return nil, err
	}

	if _, err := h.Write(data); err != nil {
		return nil, err
	}

	return multihash.Encode(h.Sum(nil), uint64(multihashCode))
}

// CalculateEncodedMultihash returns the base64url encoded multihash of the given bytes.
func CalculateEncodedMultihash(multihashCode uint, data []byte) (string, error) {
	mh, err := ComputeMultihash(multihashCode, data)
	if err != nil {
		return "", err
	}

	return encoder.EncodeToString(mh), nil
}

// CalculateModelMultihash returns the encoded multihash of the canonical JSON form of the value.
func CalculateModelMultihash(value interface{}, multihashCode uint) (string, error) {
	data, err := canonicalizer.MarshalCanonical(value)
	if err != nil {
		return "", err
	}

	return CalculateEncodedMultihash(multihashCode, data)
}

// GetMultihashCode returns the multihash code of the encoded multihash.
func GetMultihashCode(encodedMultihash string) (uint64, error) {
	multihashBytes, err := encoder.DecodeString(encodedMultihash)
	if err != nil {
		return 0, errors.Wrap(err, "decode multihash")
	}

	mh, err := multihash.Decode(multihashBytes)
	if err != nil {
		return 0, errors.Wrap(err, "decode multihash")
	}

	return mh.Code, nil
}

// IsSupportedMultihash returns true if the encoded multihash is well formed and was computed
// with a supported hash algorithm.
func IsSupportedMultihash(encodedMultihash string) bool {
	code, err := GetMultihashCode(encodedMultihash)
	if err != nil {
		return false
	}

	return IsSupported(uint(code))
}

// IsComputedUsingMultihashAlgorithm returns true if the encoded multihash was computed with the given code.
func IsComputedUsingMultihashAlgorithm(encodedMultihash string, code uint64) bool {
	mhCode, err := GetMultihashCode(encodedMultihash)
	if err != nil {
		return false
	}

	return mhCode == code
}
