package ledger

import (
	gocontext "context"
	"strings"
	"sync"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/ajna-inc/kanon/pkg/core/common"
	"github.com/ajna-inc/kanon/pkg/core/context"
	"github.com/ajna-inc/kanon/pkg/core/logger"
	"github.com/ajna-inc/kanon/pkg/core/utils"
	"github.com/ajna-inc/kanon/pkg/core/wallet"
	"github.com/ajna-inc/kanon/pkg/dids"
	"github.com/ajna-inc/kanon/pkg/dids/repository"
	"github.com/ajna-inc/kanon/pkg/kanon/kanonerr"
	"github.com/ajna-inc/kanon/pkg/kanon/resources"
)

// ServiceConfig configures the ledger orchestration service. All
// fields are read once at construction and never mutated.
type ServiceConfig struct {
	ContractAddress string
	RpcUrl          string
	ChainId         int64
	ServerUrl       string
	FileServerToken string
}

// SchemaCreateOptions is the request shape for schema creation. Schema
// is the JSON body of the schema and must be a non-empty object.
type SchemaCreateOptions struct {
	Did        string `json:"did"`
	SchemaName string `json:"schemaName"`
	Schema     string `json:"schema"`
}

// SchemaCreationResult is returned on successful schema creation. The
// schema id is freshly generated and decoupled from any on-chain
// identifier.
type SchemaCreationResult struct {
	Did           string `json:"did"`
	SchemaId      string `json:"schemaId"`
	SchemaTxnHash string `json:"schemaTxnHash"`
}

// ledgerFactory builds a SchemaLedger for one operation. Tests swap
// this out to run without a chain.
type ledgerFactory func(ctx gocontext.Context, config SchemaRegistryConfig) (SchemaLedger, error)

// EthereumLedgerService is the single integration surface the host
// agent calls for schema lifecycle operations. Each call constructs a
// fresh contract client scoped to the operation; the service itself
// holds no mutable state between requests.
type EthereumLedgerService struct {
	config        ServiceConfig
	log           logger.Logger
	didRepository repository.DidRepository
	walletService *wallet.WalletService
	uploader      resources.SchemaUploader
	newLedger     ledgerFactory
}

// NewEthereumLedgerService creates the orchestration service
func NewEthereumLedgerService(
	config ServiceConfig,
	log logger.Logger,
	didRepository repository.DidRepository,
	walletService *wallet.WalletService,
) *EthereumLedgerService {
	return &EthereumLedgerService{
		config:        config,
		log:           log,
		didRepository: didRepository,
		walletService: walletService,
		uploader:      resources.NewFileServerClient(config.ServerUrl, config.FileServerToken),
		newLedger: func(ctx gocontext.Context, cfg SchemaRegistryConfig) (SchemaLedger, error) {
			return NewEthereumSchemaRegistry(ctx, cfg)
		},
	}
}

// CreateSchema writes a schema to the on-chain registry and uploads
// its body to the file server. The chain write and the upload run
// concurrently; the chain write decides the outcome, a failed upload
// is logged and tolerated.
func (s *EthereumLedgerService) CreateSchema(ctx *context.AgentContext, options SchemaCreateOptions) (*SchemaCreationResult, error) {
	if utils.IsStringEmpty(s.config.ContractAddress) || utils.IsStringEmpty(s.config.RpcUrl) ||
		utils.IsStringEmpty(s.config.ServerUrl) || utils.IsStringEmpty(s.config.FileServerToken) {
		return nil, kanonerr.NewSchemaCreationError("ledger service is not fully configured", nil)
	}

	if utils.IsStringEmpty(options.Did) {
		return nil, kanonerr.NewValidationError("did must not be blank")
	}
	if utils.IsStringEmpty(options.SchemaName) {
		return nil, kanonerr.NewValidationError("schemaName must not be blank")
	}
	if !utils.IsValidJSONObjectString(options.Schema) {
		return nil, kanonerr.NewValidationError("schema must be a non-empty JSON object")
	}

	signingKey, address, err := s.resolveSigner(ctx, options.Did)
	if err != nil {
		return nil, passOrWrapCreation("failed to resolve signer for "+options.Did, err)
	}

	schemaId := common.GenerateUUID()
	resource, err := resources.BuildSchemaResource(options.Did, schemaId, options.SchemaName, options.Schema, address)
	if err != nil {
		return nil, passOrWrapCreation("failed to build schema resource", err)
	}
	s.log.WithFields(map[string]interface{}{
		"did":      options.Did,
		"schemaId": schemaId,
		"checksum": resource.Checksum,
	}).Debug("prepared schema resource")

	registry, err := s.newLedger(ctx.Context, SchemaRegistryConfig{
		ContractAddress: s.config.ContractAddress,
		RpcUrl:          s.config.RpcUrl,
		SigningKey:      signingKey,
	})
	if err != nil {
		return nil, passOrWrapCreation("failed to connect to schema registry", err)
	}
	defer registry.Close()

	var (
		wg        sync.WaitGroup
		txnHash   string
		chainErr  error
		uploadErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		receipt, err := registry.CreateSchema(ctx.Context, schemaId, options.Schema)
		if err != nil {
			chainErr = err
			return
		}
		if receipt == nil || receipt.TxHash == (ethcommon.Hash{}) {
			chainErr = kanonerr.NewSchemaCreationError("chain response carries no transaction hash", nil)
			return
		}
		txnHash = receipt.TxHash.Hex()
	}()
	go func() {
		defer wg.Done()
		uploadErr = s.uploader.UploadSchemaFile(ctx.Context, schemaId, options.Schema)
	}()
	wg.Wait()

	if chainErr != nil {
		return nil, classifyChainWriteError(chainErr)
	}
	if uploadErr != nil {
		// The on-chain transaction is the authoritative record; a
		// failed upload does not fail the operation.
		s.log.WithFields(map[string]interface{}{
			"schemaId": schemaId,
			"error":    uploadErr.Error(),
		}).Warn("schema file upload failed, continuing with on-chain record")
	}

	return &SchemaCreationResult{
		Did:           options.Did,
		SchemaId:      schemaId,
		SchemaTxnHash: txnHash,
	}, nil
}

// GetSchemaByDidAndSchemaId reads a schema back from the registry by
// the DID owner's derived address and the schema id.
func (s *EthereumLedgerService) GetSchemaByDidAndSchemaId(ctx *context.AgentContext, did string, schemaId string) (string, error) {
	if utils.IsStringEmpty(did) {
		return "", kanonerr.NewValidationError("did must not be blank")
	}
	if utils.IsStringEmpty(schemaId) {
		return "", kanonerr.NewValidationError("schemaId must not be blank")
	}
	if utils.IsStringEmpty(s.config.ContractAddress) || utils.IsStringEmpty(s.config.RpcUrl) {
		return "", kanonerr.NewSchemaRetrievalError("ledger service is not configured for reads", nil)
	}

	address, err := s.resolveAddress(ctx, did)
	if err != nil {
		if kanonerr.IsKanonError(err) {
			return "", err
		}
		return "", kanonerr.NewSchemaRetrievalError("failed to resolve address for "+did, err)
	}

	registry, err := s.newLedger(ctx.Context, SchemaRegistryConfig{
		ContractAddress: s.config.ContractAddress,
		RpcUrl:          s.config.RpcUrl,
	})
	if err != nil {
		if kanonerr.IsKanonError(err) {
			return "", err
		}
		return "", kanonerr.NewSchemaRetrievalError("failed to connect to schema registry", err)
	}
	defer registry.Close()

	schema, found, err := registry.GetSchema(ctx.Context, address, schemaId)
	if err != nil {
		if kanonerr.IsKanonError(err) {
			return "", err
		}
		return "", kanonerr.NewSchemaRetrievalError("schema lookup failed", err)
	}
	if !found {
		return "", kanonerr.NewSchemaRetrievalError("no schema found for "+did+" with id "+schemaId, nil)
	}
	return schema, nil
}

// ResolveDid resolves a did:ethr identifier into a DID document. This
// is a total function: failures come back as a notFound resolution
// result, never as an error.
func (s *EthereumLedgerService) ResolveDid(ctx *context.AgentContext, did string) *dids.DidResolutionResult {
	parsed, err := ParseEthrDid(did)
	if err != nil {
		return dids.NewDidResolutionError(dids.DidResolutionErrorNotFound,
			"unable to resolve did "+did+": "+err.Error())
	}

	doc := BuildEthrDidDocument(parsed, s.config.ChainId)
	return &dids.DidResolutionResult{
		DidResolutionMetadata: dids.DidResolutionMetadata{ContentType: "application/did+ld+json"},
		DidDocument:           doc,
		DidDocumentMetadata:   dids.DidDocumentMetadata{},
	}
}

// resolveSigner derives the hex signing key and chain address for a
// locally stored DID. The DID record must carry a document with a
// usable secp256k1 key whose private half is present in the wallet.
func (s *EthereumLedgerService) resolveSigner(ctx *context.AgentContext, did string) (string, string, error) {
	doc, err := s.storedDocument(ctx, did)
	if err != nil {
		return "", "", err
	}

	if _, err := PreferredVerificationMethod(doc); err != nil {
		return "", "", err
	}
	publicKeyHex, err := PublicKeyHexFromDocument(doc)
	if err != nil {
		return "", "", err
	}
	address, err := AddressFromPublicKeyHex(publicKeyHex)
	if err != nil {
		return "", "", err
	}

	publicKey, err := utils.DecodeHexString(strings.TrimPrefix(publicKeyHex, "0x"))
	if err != nil {
		return "", "", kanonerr.NewValidationError("invalid public key hex on did document: " + err.Error())
	}
	key, err := s.walletService.FindKeyByPublicKey(publicKey)
	if err != nil {
		return "", "", kanonerr.NewSchemaCreationError("no wallet key for did "+did, err)
	}
	if key.Type != wallet.KeyTypeSecp256k1 {
		return "", "", kanonerr.NewValidationError("wallet key for " + did + " is not a secp256k1 key")
	}
	if len(key.PrivateKey) == 0 {
		return "", "", kanonerr.NewSchemaCreationError("wallet key for "+did+" has no private material", nil)
	}

	return utils.EncodeHexString(key.PrivateKey), address, nil
}

// resolveAddress derives the chain address of a stored DID's key
func (s *EthereumLedgerService) resolveAddress(ctx *context.AgentContext, did string) (string, error) {
	doc, err := s.storedDocument(ctx, did)
	if err != nil {
		return "", err
	}
	publicKeyHex, err := PublicKeyHexFromDocument(doc)
	if err != nil {
		return "", err
	}
	return AddressFromPublicKeyHex(publicKeyHex)
}

func (s *EthereumLedgerService) storedDocument(ctx *context.AgentContext, did string) (*dids.DidDocument, error) {
	record, err := s.didRepository.FindCreatedDid(ctx, did)
	if err != nil {
		return nil, kanonerr.NewSchemaCreationError("no stored did record for "+did, err)
	}
	if record.DidDocument == nil {
		return nil, kanonerr.NewSchemaCreationError("did record for "+did+" has no document", nil)
	}
	return record.DidDocument, nil
}

// classifyChainWriteError finalizes a failed chain write. Funds
// shortages get their own class; taxonomy errors pass through; the
// rest is wrapped as a creation failure.
func classifyChainWriteError(err error) error {
	text := strings.ToLower(err.Error())
	if strings.Contains(text, "insufficient funds") || strings.Contains(text, "insufficient balance") {
		return kanonerr.NewInsufficientFundsError("signing account cannot pay for the schema transaction", err)
	}
	if kanonerr.IsKanonError(err) {
		return err
	}
	return kanonerr.NewSchemaCreationError("schema transaction failed", err)
}

func passOrWrapCreation(msg string, err error) error {
	if kanonerr.IsKanonError(err) {
		return err
	}
	return kanonerr.NewSchemaCreationError(msg, err)
}
