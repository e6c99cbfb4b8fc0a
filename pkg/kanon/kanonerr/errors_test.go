package kanonerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("schemaId must not be blank")
	assert.Equal(t, "schemaId must not be blank", err.Error())
	assert.Equal(t, CodeValidation, err.Code)

	var validation *ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.True(t, IsKanonError(err))
}

func TestContractErrorCarriesReason(t *testing.T) {
	cause := fmt.Errorf("execution reverted: SCHEMA_EXISTS")
	err := NewContractError("createSchema reverted", ReasonSchemaExists, cause)

	var contract *ContractError
	require.True(t, errors.As(err, &contract))
	assert.Equal(t, ReasonSchemaExists, contract.Reason)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "createSchema reverted")
	assert.Contains(t, err.Error(), "SCHEMA_EXISTS")
}

func TestInsufficientFundsIsNotNetworkError(t *testing.T) {
	err := NewInsufficientFundsError("account cannot pay for transaction", nil)

	var funds *InsufficientFundsError
	var network *NetworkError
	assert.True(t, errors.As(err, &funds))
	assert.False(t, errors.As(err, &network))
}

func TestWrappedTaxonomyErrorsSurviveWrapping(t *testing.T) {
	inner := NewNetworkError("rpc unreachable", fmt.Errorf("dial tcp: connection refused"))
	wrapped := fmt.Errorf("schema creation failed: %w", inner)

	var network *NetworkError
	require.True(t, errors.As(wrapped, &network))
	assert.Equal(t, CodeNetwork, network.Code)
	assert.True(t, IsKanonError(wrapped))
}

func TestIsKanonErrorRejectsForeignErrors(t *testing.T) {
	assert.False(t, IsKanonError(fmt.Errorf("some other failure")))
	assert.False(t, IsKanonError(nil))
}
