/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package compression

import (
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/compression/gzip"
	"github.com/trustbloc/sidetree-didcache-go/pkg/compression/snappy"
)

// ErrAlgorithmNotSupported is returned when no registered algorithm accepts the algorithm name.
var ErrAlgorithmNotSupported = errors.New("compression algorithm not supported")

// Algorithm compresses and decompresses batch files.
type Algorithm interface {
	Compress(value []byte) ([]byte, error)
	Decompress(value []byte) ([]byte, error)
	Accept(alg string) bool
}

// Option is a registry option.
type Option func(r *Registry)

// Registry resolves compression algorithms by the name used in protocol parameters.
type Registry struct {
	algorithms []Algorithm
}

// New returns a registry holding the algorithms added by the given options.
func New(opts ...Option) *Registry {
	r := &Registry{}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithAlgorithm registers a compression algorithm.
func WithAlgorithm(alg Algorithm) Option {
	return func(r *Registry) {
		r.algorithms = append(r.algorithms, alg)
	}
}

// WithDefaultAlgorithms registers GZIP and SNAPPY.
func WithDefaultAlgorithms() Option {
	return func(r *Registry) {
		r.algorithms = append(r.algorithms, gzip.New(), snappy.New())
	}
}

// Supports returns true if an algorithm with the given name is registered.
func (r *Registry) Supports(alg string) bool {
	_, err := r.resolve(alg)

	return err == nil
}

// Compress compresses the data with the named algorithm.
func (r *Registry) Compress(alg string, data []byte) ([]byte, error) {
	algorithm, err := r.resolve(alg)
	if err != nil {
		return nil, err
	}

	result, err := algorithm.Compress(data)
	if err != nil {
		return nil, errors.Wrapf(err, "compress with algorithm [%s]", alg)
	}

	return result, nil
}

// Decompress decompresses the data with the named algorithm.
func (r *Registry) Decompress(alg string, data []byte) ([]byte, error) {
	algorithm, err := r.resolve(alg)
	if err != nil {
		return nil, err
	}

	result, err := algorithm.Decompress(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decompress with algorithm [%s]", alg)
	}

	return result, nil
}

func (r *Registry) resolve(alg string) (Algorithm, error) {
	for _, a := range r.algorithms {
		if a.Accept(alg) {
			return a, nil
		}
	}

	return nil, errors.Wrapf(ErrAlgorithmNotSupported, "algorithm [%s]", alg)
}
