/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operationparser

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-didcache-go/pkg/api/protocol"
	"github.com/trustbloc/sidetree-didcache-go/pkg/encoder"
	"github.com/trustbloc/sidetree-didcache-go/pkg/hashing"
	"github.com/trustbloc/sidetree-didcache-go/pkg/internal/log"
	"github.com/trustbloc/sidetree-didcache-go/pkg/model"
)

var logger = log.New("sidetree-parser")

// Validation failures. Every error returned by the parser wraps exactly one of these.
var (
	// ErrOperationTooLarge is returned when the operation exceeds the maximum operation size.
	ErrOperationTooLarge = errors.New("operation exceeds maximum operation size")

	// ErrMalformedOperation is returned when the operation can't be decoded or is structurally invalid.
	ErrMalformedOperation = errors.New("malformed operation")

	// ErrUnsupportedHashAlgorithm is returned when the protocol or a previous operation hash
	// names a hash algorithm that isn't supported.
	ErrUnsupportedHashAlgorithm = errors.New("unsupported hash algorithm")

	// ErrInvalidSignature is returned when the operation signature doesn't verify.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrBatchTooLarge is returned when a batch holds more than the maximum operations per batch.
	ErrBatchTooLarge = errors.New("batch exceeds maximum operations per batch")
)

// Parser decodes and validates operations according to the given protocol parameters.
// It checks the structure of an operation only; chain linkage is checked when the operation
// is applied.
type Parser struct {
	protocol.Protocol
}

// New returns a new operation parser for the given protocol version.
func New(p protocol.Protocol) *Parser {
	return &Parser{Protocol: p}
}

// Rejection reports an operation of a batch that failed validation.
type Rejection struct {
	// Index is the position of the operation in the batch.
	Index int

	// Err is the validation failure.
	Err error
}

// Parse parses and validates the operation buffer.
func (p *Parser) Parse(operationBuffer []byte) (*operation.Operation, error) {
	if len(operationBuffer) > int(p.MaxOperationByteSize) {
		return nil, errors.Wrapf(ErrOperationTooLarge, "operation size[%d] exceeds maximum operation size[%d]",
			len(operationBuffer), p.MaxOperationByteSize)
	}

	if !hashing.IsSupported(p.HashAlgorithmInMultiHashCode) {
		return nil, errors.Wrapf(ErrUnsupportedHashAlgorithm, "multihash code %d", p.HashAlgorithmInMultiHashCode)
	}

	request := &model.Request{}
	if err := json.Unmarshal(operationBuffer, request); err != nil {
		return nil, malformed(err, "unmarshal operation request")
	}

	if request.Payload == "" {
		return nil, missing("payload")
	}

	signature, err := encoder.DecodeString(request.Signature)
	if err != nil {
		return nil, malformed(err, "decode signature")
	}

	if len(signature) == 0 {
		return nil, missing("signature")
	}

	var op *operation.Operation

	switch request.Header.Operation {
	case operation.TypeCreate:
		op, err = p.parseCreate(request, signature)
	case operation.TypeUpdate:
		op, err = p.parseUpdate(request)
	case operation.TypeRecover:
		op, err = p.parseRecover(request)
	case operation.TypeDelete:
		op, err = p.parseDelete(request)
	default:
		return nil, errors.Wrapf(ErrMalformedOperation, "operation type [%s] not supported", request.Header.Operation)
	}

	if err != nil {
		logger.Debug("Invalid operation", log.WithOperationType(string(request.Header.Operation)), log.WithError(err))

		return nil, err
	}

	// the hash is taken over the canonical form so the version id doesn't depend on formatting
	op.OperationHash, err = hashing.CalculateModelMultihash(operationBuffer, p.HashAlgorithmInMultiHashCode)
	if err != nil {
		return nil, errors.Wrap(ErrUnsupportedHashAlgorithm, err.Error())
	}

	op.OperationBuffer = operationBuffer
	op.SigningKeyID = request.Header.KeyID

	return op, nil
}

// ParseBatch parses and validates the operations of a batch. A batch holding more operations
// than allowed is rejected with ErrBatchTooLarge. Otherwise every valid operation is returned
// in batch order, with its index in the batch set, and each invalid operation is reported
// as a Rejection.
func (p *Parser) ParseBatch(operationBuffers [][]byte) ([]*operation.Operation, []Rejection, error) {
	if len(operationBuffers) > int(p.MaxOperationsPerBatch) {
		return nil, nil, errors.Wrapf(ErrBatchTooLarge, "batch size[%d] exceeds maximum operations per batch[%d]",
			len(operationBuffers), p.MaxOperationsPerBatch)
	}

	var (
		ops        []*operation.Operation
		rejections []Rejection
	)

	for i, buf := range operationBuffers {
		op, err := p.Parse(buf)
		if err != nil {
			logger.Info("Rejected operation in batch", log.WithOperationIndex(i), log.WithError(err))

			rejections = append(rejections, Rejection{Index: i, Err: err})

			continue
		}

		op.OperationIndex = uint(i)

		ops = append(ops, op)
	}

	return ops, rejections, nil
}

func (p *Parser) validatePreviousOperationHash(previousOperationHash string) error {
	if previousOperationHash == "" {
		return missing("previousOperationHash")
	}

	code, err := hashing.GetMultihashCode(previousOperationHash)
	if err != nil {
		return malformed(err, "previousOperationHash")
	}

	if !hashing.IsSupported(uint(code)) {
		return errors.Wrapf(ErrUnsupportedHashAlgorithm, "previousOperationHash uses multihash code %d", code)
	}

	return nil
}

func malformed(err error, msg string) error {
	return errors.Wrapf(ErrMalformedOperation, "%s: %s", msg, err.Error())
}

func missing(property string) error {
	return errors.Wrapf(ErrMalformedOperation, "missing %s", property)
}
