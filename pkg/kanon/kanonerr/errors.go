// Package kanonerr defines the error taxonomy for the Kanon Ethereum
// ledger plugin. Callers distinguish failure classes with errors.As.
package kanonerr

import "errors"

// Error codes carried by KanonError
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeContract          = "CONTRACT_ERROR"
	CodeNetwork           = "NETWORK_ERROR"
	CodeSchemaCreation    = "SCHEMA_CREATION_ERROR"
	CodeSchemaRetrieval   = "SCHEMA_RETRIEVAL_ERROR"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
)

// Contract revert reasons surfaced as ContractError.Reason
const (
	ReasonSchemaExists = "SCHEMA_EXISTS"
	ReasonNotOwner     = "NOT_OWNER"
)

// KanonError is the base error for all plugin failures
type KanonError struct {
	msg   string
	Code  string
	cause error
}

func (e *KanonError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *KanonError) Unwrap() error { return e.cause }

// ValidationError reports a rejected input before any network activity
type ValidationError struct {
	KanonError
}

// NewValidationError creates a validation error
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{KanonError{msg: msg, Code: CodeValidation}}
}

// ContractError reports a smart contract revert. Reason holds the
// contract's revert reason when it could be extracted.
type ContractError struct {
	KanonError
	Reason string
}

// NewContractError creates a contract error with a revert reason
func NewContractError(msg string, reason string, cause error) *ContractError {
	return &ContractError{
		KanonError: KanonError{msg: msg, Code: CodeContract, cause: cause},
		Reason:     reason,
	}
}

// NetworkError reports an RPC transport or connectivity failure
type NetworkError struct {
	KanonError
}

// NewNetworkError creates a network error
func NewNetworkError(msg string, cause error) *NetworkError {
	return &NetworkError{KanonError{msg: msg, Code: CodeNetwork, cause: cause}}
}

// InsufficientFundsError reports that the signing account cannot pay
// for the transaction
type InsufficientFundsError struct {
	KanonError
}

// NewInsufficientFundsError creates an insufficient funds error
func NewInsufficientFundsError(msg string, cause error) *InsufficientFundsError {
	return &InsufficientFundsError{KanonError{msg: msg, Code: CodeInsufficientFunds, cause: cause}}
}

// SchemaCreationError wraps any failure of the schema creation flow
// that is not already one of the specific classes above
type SchemaCreationError struct {
	KanonError
}

// NewSchemaCreationError creates a schema creation error
func NewSchemaCreationError(msg string, cause error) *SchemaCreationError {
	return &SchemaCreationError{KanonError{msg: msg, Code: CodeSchemaCreation, cause: cause}}
}

// SchemaRetrievalError wraps failures of schema reads
type SchemaRetrievalError struct {
	KanonError
}

// NewSchemaRetrievalError creates a schema retrieval error
func NewSchemaRetrievalError(msg string, cause error) *SchemaRetrievalError {
	return &SchemaRetrievalError{KanonError{msg: msg, Code: CodeSchemaRetrieval, cause: cause}}
}

// IsKanonError reports whether err belongs to the plugin's taxonomy
func IsKanonError(err error) bool {
	var validation *ValidationError
	var contract *ContractError
	var network *NetworkError
	var funds *InsufficientFundsError
	var creation *SchemaCreationError
	var retrieval *SchemaRetrievalError
	return errors.As(err, &validation) ||
		errors.As(err, &contract) ||
		errors.As(err, &network) ||
		errors.As(err, &funds) ||
		errors.As(err, &creation) ||
		errors.As(err, &retrieval)
}
