package kanon

import (
	contextpkg "github.com/ajna-inc/kanon/pkg/core/context"
	"github.com/ajna-inc/kanon/pkg/core/di"
	"github.com/ajna-inc/kanon/pkg/kanon/ledger"
)

// KanonApi is the public surface the host agent calls for schema
// lifecycle operations
type KanonApi struct {
	dm            di.DependencyManager
	ledgerService *ledger.EthereumLedgerService
}

// NewKanonApi creates the api facade
func NewKanonApi(dm di.DependencyManager, ledgerService *ledger.EthereumLedgerService) *KanonApi {
	return &KanonApi{dm: dm, ledgerService: ledgerService}
}

// CreateSchema registers a schema on-chain and uploads its body to the
// file server
func (a *KanonApi) CreateSchema(ctx *contextpkg.AgentContext, options ledger.SchemaCreateOptions) (*ledger.SchemaCreationResult, error) {
	return a.ledgerService.CreateSchema(ctx, options)
}

// GetSchemaById reads a schema back by the owning DID and schema id
func (a *KanonApi) GetSchemaById(ctx *contextpkg.AgentContext, did string, schemaId string) (string, error) {
	return a.ledgerService.GetSchemaByDidAndSchemaId(ctx, did, schemaId)
}
