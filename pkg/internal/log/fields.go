/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldURI                   = "uri"
	FieldData                  = "data"
	FieldSize                  = "size"
	FieldMaxSize               = "maxSize"
	FieldTotal                 = "total"
	FieldSuffix                = "suffix"
	FieldOperationType         = "operationType"
	FieldOperation             = "operation"
	FieldOperationHash         = "operationHash"
	FieldPreviousOperationHash = "previousOperationHash"
	FieldOperationIndex        = "operationIndex"
	FieldVersionID             = "versionID"
	FieldTransaction           = "transaction"
	FieldTransactionTime       = "transactionTime"
	FieldTransactionNumber     = "transactionNumber"
	FieldAnchorFileHash        = "anchorFileHash"
	FieldBlockNumber           = "blockNumber"
	FieldProtocol              = "protocol"
	FieldTotalOperations       = "totalOperations"
	FieldTotalRejected         = "totalRejected"
	FieldTotalPending          = "totalPending"
	FieldTotalRemoved          = "totalRemoved"
	FieldDocument              = "document"
	FieldReason                = "reason"
	FieldConfigKey             = "configKey"
	FieldSuffixes              = "suffixes"
)

// WithURIString sets the uri field.
func WithURIString(value string) zap.Field {
	return zap.String(FieldURI, value)
}

// WithData sets the data field.
func WithData(value []byte) zap.Field {
	return zap.String(FieldData, string(value))
}

// WithSize sets the size field.
func WithSize(value int) zap.Field {
	return zap.Int(FieldSize, value)
}

// WithMaxSize sets the max-size field.
func WithMaxSize(value int) zap.Field {
	return zap.Int(FieldMaxSize, value)
}

// WithTotal sets the total field.
func WithTotal(value int) zap.Field {
	return zap.Int(FieldTotal, value)
}

// WithSuffix sets the suffix field.
func WithSuffix(value string) zap.Field {
	return zap.String(FieldSuffix, value)
}

// WithSuffixes sets the suffixes field.
func WithSuffixes(value ...string) zap.Field {
	return zap.Array(FieldSuffixes, NewStringArrayMarshaller(value))
}

// WithOperationType sets the operation-type field.
func WithOperationType(value string) zap.Field {
	return zap.String(FieldOperationType, value)
}

// WithOperation sets the operation field.
func WithOperation(value interface{}) zap.Field {
	return zap.Inline(NewObjectMarshaller(FieldOperation, value))
}

// WithOperationHash sets the operation-hash field.
func WithOperationHash(value string) zap.Field {
	return zap.String(FieldOperationHash, value)
}

// WithPreviousOperationHash sets the previous-operation-hash field.
func WithPreviousOperationHash(value string) zap.Field {
	return zap.String(FieldPreviousOperationHash, value)
}

// WithOperationIndex sets the operation-index field.
func WithOperationIndex(value int) zap.Field {
	return zap.Int(FieldOperationIndex, value)
}

// WithVersionID sets the version-id field.
func WithVersionID(value string) zap.Field {
	return zap.String(FieldVersionID, value)
}

// WithTransaction sets the transaction field.
func WithTransaction(value interface{}) zap.Field {
	return zap.Inline(NewObjectMarshaller(FieldTransaction, value))
}

// WithTransactionTime sets the transaction-time field.
func WithTransactionTime(value uint64) zap.Field {
	return zap.Uint64(FieldTransactionTime, value)
}

// WithTransactionNumber sets the transaction-number field.
func WithTransactionNumber(value uint64) zap.Field {
	return zap.Uint64(FieldTransactionNumber, value)
}

// WithAnchorFileHash sets the anchor-file-hash field.
func WithAnchorFileHash(value string) zap.Field {
	return zap.String(FieldAnchorFileHash, value)
}

// WithBlockNumber sets the block-number field.
func WithBlockNumber(value uint64) zap.Field {
	return zap.Uint64(FieldBlockNumber, value)
}

// WithProtocol sets the protocol field.
func WithProtocol(value interface{}) zap.Field {
	return zap.Inline(NewObjectMarshaller(FieldProtocol, value))
}

// WithTotalOperations sets the total-operations field.
func WithTotalOperations(value int) zap.Field {
	return zap.Int(FieldTotalOperations, value)
}

// WithTotalRejected sets the total-rejected field.
func WithTotalRejected(value int) zap.Field {
	return zap.Int(FieldTotalRejected, value)
}

// WithTotalPending sets the total-pending field.
func WithTotalPending(value uint) zap.Field {
	return zap.Uint(FieldTotalPending, value)
}

// WithTotalRemoved sets the total-removed field.
func WithTotalRemoved(value int) zap.Field {
	return zap.Int(FieldTotalRemoved, value)
}

// WithDocument sets the document field.
func WithDocument(value map[string]interface{}) zap.Field {
	return zap.Inline(newJSONMarshaller(FieldDocument, value))
}

// WithReason sets the reason field.
func WithReason(value string) zap.Field {
	return zap.String(FieldReason, value)
}

// WithConfigKey sets the config-key field.
func WithConfigKey(value string) zap.Field {
	return zap.String(FieldConfigKey, value)
}

// WithError sets the error field.
func WithError(err error) zap.Field {
	return zap.Error(err)
}

type jsonMarshaller struct {
	key string
	obj interface{}
}

func newJSONMarshaller(key string, value interface{}) *jsonMarshaller {
	return &jsonMarshaller{key: key, obj: value}
}

func (m *jsonMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	b, err := json.Marshal(m.obj)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	e.AddString(m.key, string(b))

	return nil
}

// ObjectMarshaller uses reflection to marshal an object's fields.
type ObjectMarshaller struct {
	key string
	obj interface{}
}

// NewObjectMarshaller returns a new ObjectMarshaller.
func NewObjectMarshaller(key string, obj interface{}) *ObjectMarshaller {
	return &ObjectMarshaller{key: key, obj: obj}
}

// MarshalLogObject marshals the object's fields.
func (m *ObjectMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	return e.AddReflected(m.key, m.obj)
}

// StringArrayMarshaller marshals an array of strings into a log field.
type StringArrayMarshaller struct {
	values []string
}

// NewStringArrayMarshaller returns a new StringArrayMarshaller.
func NewStringArrayMarshaller(values []string) *StringArrayMarshaller {
	return &StringArrayMarshaller{values: values}
}

// MarshalLogArray marshals the array.
func (m *StringArrayMarshaller) MarshalLogArray(e zapcore.ArrayEncoder) error {
	for _, v := range m.values {
		e.AppendString(v)
	}

	return nil
}
