package ledger

import (
	gocontext "context"
	"errors"
	"net"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/ajna-inc/kanon/pkg/core/utils"
	"github.com/ajna-inc/kanon/pkg/kanon/kanonerr"
)

// MaxSchemaIdLength is the longest schema id the registry accepts
const MaxSchemaIdLength = 256

// SchemaRegistryConfig configures a connection to the on-chain schema
// registry. SigningKey is a hex-encoded secp256k1 private key and is
// optional; mutating operations fail without one, reads do not need it.
type SchemaRegistryConfig struct {
	ContractAddress string
	RpcUrl          string
	SigningKey      string
}

// SchemaLedger is the capability surface of a schema registry on some
// ledger. The orchestration layer depends on this interface only.
type SchemaLedger interface {
	CreateSchema(ctx gocontext.Context, schemaId string, schemaJson string) (*types.Receipt, error)
	AdminCreateSchema(ctx gocontext.Context, owner string, schemaId string, schemaJson string) (*types.Receipt, error)
	GetSchema(ctx gocontext.Context, owner string, schemaId string) (string, bool, error)
	GetSchemaIds(ctx gocontext.Context, owner string) ([]string, error)
	GetOwner(ctx gocontext.Context) (string, error)
	TransferOwnership(ctx gocontext.Context, newOwner string) (*types.Receipt, error)
	Close()
}

// EthereumSchemaRegistry is the Ethereum adapter for SchemaLedger. It
// validates inputs before any network activity and maps raw provider
// and contract failures into the typed error taxonomy.
type EthereumSchemaRegistry struct {
	client   *ethclient.Client
	contract *bind.BoundContract
	parsed   abi.ABI
	address  ethcommon.Address
	signer   *bind.TransactOpts
}

// NewEthereumSchemaRegistry connects to the registry contract. The
// connection handle is established eagerly so configuration mistakes
// surface at construction.
func NewEthereumSchemaRegistry(ctx gocontext.Context, config SchemaRegistryConfig) (*EthereumSchemaRegistry, error) {
	if !ethcommon.IsHexAddress(config.ContractAddress) {
		return nil, kanonerr.NewValidationError("invalid contract address: " + config.ContractAddress)
	}
	if utils.IsStringEmpty(config.RpcUrl) {
		return nil, kanonerr.NewValidationError("rpcUrl must not be empty")
	}

	client, err := ethclient.DialContext(ctx, config.RpcUrl)
	if err != nil {
		return nil, kanonerr.NewNetworkError("failed to connect to rpc endpoint "+config.RpcUrl, err)
	}

	parsed, err := abi.JSON(strings.NewReader(schemaRegistryABI))
	if err != nil {
		client.Close()
		return nil, kanonerr.NewContractError("failed to parse schema registry abi", "", err)
	}

	address := ethcommon.HexToAddress(config.ContractAddress)
	registry := &EthereumSchemaRegistry{
		client:   client,
		contract: bind.NewBoundContract(address, parsed, client, client, client),
		parsed:   parsed,
		address:  address,
	}

	if utils.IsNotEmpty(config.SigningKey) {
		privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(config.SigningKey, "0x"))
		if err != nil {
			client.Close()
			return nil, kanonerr.NewValidationError("invalid signing key: " + err.Error())
		}
		chainId, err := client.ChainID(ctx)
		if err != nil {
			client.Close()
			return nil, kanonerr.NewNetworkError("failed to fetch chain id", err)
		}
		signer, err := bind.NewKeyedTransactorWithChainID(privateKey, chainId)
		if err != nil {
			client.Close()
			return nil, kanonerr.NewValidationError("failed to derive signer: " + err.Error())
		}
		registry.signer = signer
	}

	return registry, nil
}

// Close releases the underlying rpc connection
func (r *EthereumSchemaRegistry) Close() {
	if r.client != nil {
		r.client.Close()
	}
}

func validateSchemaId(schemaId string) error {
	if utils.IsStringEmpty(schemaId) {
		return kanonerr.NewValidationError("schemaId must not be blank")
	}
	if !utils.HasMaxLength(schemaId, MaxSchemaIdLength) {
		return kanonerr.NewValidationError("schemaId exceeds 256 characters")
	}
	return nil
}

func validateSchemaJson(schemaJson string) error {
	if utils.IsStringEmpty(schemaJson) {
		return kanonerr.NewValidationError("schema json must not be empty")
	}
	if !utils.IsValidJSONString(schemaJson) {
		return kanonerr.NewValidationError("schema json is not parseable JSON")
	}
	return nil
}

func validateAddress(address string) error {
	if !ethcommon.IsHexAddress(address) {
		return kanonerr.NewValidationError("invalid address: " + address)
	}
	return nil
}

func (r *EthereumSchemaRegistry) requireSigner() error {
	if r.signer == nil {
		return kanonerr.NewValidationError("operation requires a signing key")
	}
	return nil
}

// CreateSchema writes a schema under the signer's address and waits
// for the transaction to be mined.
func (r *EthereumSchemaRegistry) CreateSchema(ctx gocontext.Context, schemaId string, schemaJson string) (*types.Receipt, error) {
	if err := validateSchemaId(schemaId); err != nil {
		return nil, err
	}
	if err := validateSchemaJson(schemaJson); err != nil {
		return nil, err
	}
	if err := r.requireSigner(); err != nil {
		return nil, err
	}
	return r.transact(ctx, "createSchema", schemaId, schemaJson)
}

// AdminCreateSchema writes a schema under another owner's address.
// Only the contract owner may call this.
func (r *EthereumSchemaRegistry) AdminCreateSchema(ctx gocontext.Context, owner string, schemaId string, schemaJson string) (*types.Receipt, error) {
	if err := validateAddress(owner); err != nil {
		return nil, err
	}
	if err := validateSchemaId(schemaId); err != nil {
		return nil, err
	}
	if err := validateSchemaJson(schemaJson); err != nil {
		return nil, err
	}
	if err := r.requireSigner(); err != nil {
		return nil, err
	}
	return r.transact(ctx, "adminCreateSchema", ethcommon.HexToAddress(owner), schemaId, schemaJson)
}

// GetSchema reads a stored schema. An empty stored value is reported
// as absent via the bool, never as an error.
func (r *EthereumSchemaRegistry) GetSchema(ctx gocontext.Context, owner string, schemaId string) (string, bool, error) {
	if err := validateAddress(owner); err != nil {
		return "", false, err
	}
	if err := validateSchemaId(schemaId); err != nil {
		return "", false, err
	}

	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	if err := r.contract.Call(opts, &out, "schemas", ethcommon.HexToAddress(owner), schemaId); err != nil {
		return "", false, classifyContractError("schemas call failed", err)
	}
	if len(out) == 0 {
		return "", false, nil
	}
	schema, ok := out[0].(string)
	if !ok || schema == "" {
		return "", false, nil
	}
	return schema, true, nil
}

// GetSchemaIds lists the schema ids stored for an owner
func (r *EthereumSchemaRegistry) GetSchemaIds(ctx gocontext.Context, owner string) ([]string, error) {
	if err := validateAddress(owner); err != nil {
		return nil, err
	}

	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	if err := r.contract.Call(opts, &out, "getSchemaIds", ethcommon.HexToAddress(owner)); err != nil {
		return nil, classifyContractError("getSchemaIds call failed", err)
	}
	if len(out) == 0 {
		return []string{}, nil
	}
	ids, ok := out[0].([]string)
	if !ok {
		return []string{}, nil
	}
	return ids, nil
}

// GetOwner returns the contract owner's address
func (r *EthereumSchemaRegistry) GetOwner(ctx gocontext.Context) (string, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	if err := r.contract.Call(opts, &out, "owner"); err != nil {
		return "", classifyContractError("owner call failed", err)
	}
	if len(out) == 0 {
		return "", kanonerr.NewContractError("owner call returned no value", "", nil)
	}
	ownerAddress, ok := out[0].(ethcommon.Address)
	if !ok {
		return "", kanonerr.NewContractError("owner call returned unexpected type", "", nil)
	}
	return ownerAddress.Hex(), nil
}

// TransferOwnership transfers contract ownership to a new address
func (r *EthereumSchemaRegistry) TransferOwnership(ctx gocontext.Context, newOwner string) (*types.Receipt, error) {
	if err := validateAddress(newOwner); err != nil {
		return nil, err
	}
	if err := r.requireSigner(); err != nil {
		return nil, err
	}
	return r.transact(ctx, "transferOwnership", ethcommon.HexToAddress(newOwner))
}

func (r *EthereumSchemaRegistry) transact(ctx gocontext.Context, method string, params ...interface{}) (*types.Receipt, error) {
	opts := *r.signer
	opts.Context = ctx

	tx, err := r.contract.Transact(&opts, method, params...)
	if err != nil {
		return nil, classifyContractError(method+" transaction failed", err)
	}

	receipt, err := bind.WaitMined(ctx, r.client, tx)
	if err != nil {
		return nil, kanonerr.NewNetworkError("failed waiting for "+method+" transaction "+tx.Hash().Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, kanonerr.NewContractError(method+" transaction "+tx.Hash().Hex()+" reverted", "", nil)
	}
	return receipt, nil
}

// classifyContractError maps a raw provider or contract failure into
// the typed taxonomy. Classification works over a small closed set of
// shapes: a revert reason when one is exposed, a transport failure, or
// a generic contract error wrapping the original cause.
func classifyContractError(msg string, err error) error {
	if reason, ok := revertReason(err); ok {
		switch reason {
		case kanonerr.ReasonSchemaExists:
			return kanonerr.NewContractError(msg, kanonerr.ReasonSchemaExists, err)
		case kanonerr.ReasonNotOwner:
			return kanonerr.NewContractError(msg, kanonerr.ReasonNotOwner, err)
		default:
			return kanonerr.NewContractError(msg, reason, err)
		}
	}
	if isNetworkFailure(err) {
		return kanonerr.NewNetworkError(msg, err)
	}
	return kanonerr.NewContractError(msg, "", err)
}

// revertReason extracts the contract revert reason when the provider
// exposes one, either as structured error data or in the message text.
func revertReason(err error) (string, bool) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, isString := dataErr.ErrorData().(string); isString && data != "" {
			return data, true
		}
	}

	const marker = "execution reverted"
	text := err.Error()
	idx := strings.Index(text, marker)
	if idx < 0 {
		return "", false
	}
	reason := strings.TrimPrefix(text[idx+len(marker):], ":")
	return strings.TrimSpace(reason), true
}

func isNetworkFailure(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "connection refused") ||
		strings.Contains(text, "no such host") ||
		strings.Contains(text, "i/o timeout") ||
		strings.Contains(text, "connection reset")
}
