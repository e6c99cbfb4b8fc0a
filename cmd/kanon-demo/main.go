// Command kanon-demo exercises the schema registry plugin end to end:
// it creates a secp256k1 key, derives a did:ethr identifier from it,
// registers a schema on-chain and reads it back.
package main

import (
	gocontext "context"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ajna-inc/kanon/pkg/core/context"
	"github.com/ajna-inc/kanon/pkg/core/di"
	"github.com/ajna-inc/kanon/pkg/core/logger"
	"github.com/ajna-inc/kanon/pkg/core/storage"
	"github.com/ajna-inc/kanon/pkg/core/utils"
	"github.com/ajna-inc/kanon/pkg/core/wallet"
	"github.com/ajna-inc/kanon/pkg/dids"
	"github.com/ajna-inc/kanon/pkg/dids/repository"
	"github.com/ajna-inc/kanon/pkg/kanon"
	"github.com/ajna-inc/kanon/pkg/kanon/ledger"
)

func main() {
	_ = godotenv.Load()

	log := logger.NewDefaultLogger(logger.ParseLogLevel(envOr("LOG_LEVEL", "info")))
	logger.SetDefaultLogger(log)

	chainId, err := strconv.ParseInt(envOr("CHAIN_ID", "1337"), 10, 64)
	if err != nil {
		log.Fatalf("invalid CHAIN_ID: %v", err)
	}

	moduleConfig := kanon.KanonModuleConfig{
		Networks: []kanon.NetworkConfig{{
			Name:     envOr("NETWORK_NAME", "local"),
			ChainId:  chainId,
			RpcUrl:   envOr("RPC_URL", "http://localhost:8545"),
			Registry: os.Getenv("SCHEMA_REGISTRY_ADDRESS"),
		}},
		SchemaManagerContractAddress: os.Getenv("SCHEMA_REGISTRY_ADDRESS"),
		RpcUrl:                       envOr("RPC_URL", "http://localhost:8545"),
		ServerUrl:                    envOr("FILE_SERVER_URL", "http://localhost:3000"),
		FileServerToken:              os.Getenv("FILE_SERVER_TOKEN"),
	}

	dm := di.NewDependencyManager()
	dm.RegisterInstance(di.TokenLogger, log)

	store := storage.NewMemoryStorageService()
	dm.RegisterInstance(di.TokenStorageService, store)

	ctx := context.NewAgentContext(context.AgentContextOptions{
		Context:              gocontext.Background(),
		ContextCorrelationId: "kanon-demo",
		IsRootAgentContext:   true,
		Config:               &context.AgentConfig{Label: "kanon-demo"},
	})
	ctx.SetDependencyManager(dm)
	dm.SetContext(ctx)

	walletService := wallet.NewWalletService(ctx, wallet.NewSimpleKeyRepository())
	dm.RegisterInstance(di.TokenWalletService, walletService)

	didRepository := repository.NewStorageDidRepository(store)
	dm.RegisterInstance(di.TokenDidRepository, didRepository)

	resolverService := dids.NewDidResolverService()
	dm.RegisterInstance(di.TokenDidResolverService, resolverService)

	if err := dm.RegisterModules([]di.Module{kanon.NewKanonModule(moduleConfig)}); err != nil {
		log.Fatalf("failed to register modules: %v", err)
	}
	if err := dm.InitializeModules(ctx); err != nil {
		log.Fatalf("failed to initialize modules: %v", err)
	}
	defer func() {
		if err := dm.ShutdownModules(ctx); err != nil {
			log.Errorf("shutdown failed: %v", err)
		}
	}()

	// A fresh secp256k1 key; the public key form of did:ethr lets the
	// resolver expose the raw key material alongside the address.
	key, err := walletService.CreateKey(wallet.KeyTypeSecp256k1)
	if err != nil {
		log.Fatalf("failed to create key: %v", err)
	}
	publicKeyHex := utils.EncodeHexString(key.PublicKey)

	did := "did:ethr:0x" + publicKeyHex
	parsed, err := ledger.ParseEthrDid(did)
	if err != nil {
		log.Fatalf("failed to parse did: %v", err)
	}
	doc := ledger.BuildEthrDidDocument(parsed, chainId)

	record := repository.NewDidRecord(did, repository.DidRoleCreated, doc)
	if err := didRepository.StoreCreatedDid(ctx, record); err != nil {
		log.Fatalf("failed to store did record: %v", err)
	}
	log.WithField("did", did).Info("created did")

	api, err := di.ResolveAs[*kanon.KanonApi](dm, di.TokenKanonApi)
	if err != nil {
		log.Fatalf("failed to resolve kanon api: %v", err)
	}

	result, err := api.CreateSchema(ctx, ledger.SchemaCreateOptions{
		Did:        did,
		SchemaName: "demo-schema",
		Schema:     `{"name":"demo-schema","version":"1.0","attrNames":["name","age"]}`,
	})
	if err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}
	log.WithFields(map[string]interface{}{
		"schemaId": result.SchemaId,
		"txnHash":  result.SchemaTxnHash,
	}).Info("schema registered")

	schema, err := api.GetSchemaById(ctx, did, result.SchemaId)
	if err != nil {
		log.Fatalf("failed to read schema back: %v", err)
	}
	log.WithField("schema", schema).Info("schema read back")

	resolution := resolverService.Resolve(ctx, did)
	if resolution.DidResolutionMetadata.Error != "" {
		log.Fatalf("failed to resolve did: %s", resolution.DidResolutionMetadata.Message)
	}
	docJson, _ := resolution.DidDocument.ToJSON()
	log.WithField("didDocument", string(docJson)).Info("resolved did")
}

func envOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
