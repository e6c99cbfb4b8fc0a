// Package kanon wires the Ethereum schema registry plugin into the
// agent's dependency container.
package kanon

import (
	"fmt"

	"github.com/ajna-inc/kanon/pkg/anoncreds/registry"
	contextpkg "github.com/ajna-inc/kanon/pkg/core/context"
	"github.com/ajna-inc/kanon/pkg/core/di"
	"github.com/ajna-inc/kanon/pkg/core/logger"
	"github.com/ajna-inc/kanon/pkg/core/wallet"
	"github.com/ajna-inc/kanon/pkg/dids"
	"github.com/ajna-inc/kanon/pkg/dids/repository"
	"github.com/ajna-inc/kanon/pkg/kanon/anoncredsregistry"
	"github.com/ajna-inc/kanon/pkg/kanon/ledger"
	"github.com/ajna-inc/kanon/pkg/kanon/resolver"
)

// NetworkConfig describes one Ethereum-compatible network the plugin
// can talk to
type NetworkConfig struct {
	Name     string `json:"name"`
	ChainId  int64  `json:"chainId"`
	RpcUrl   string `json:"rpcUrl"`
	Registry string `json:"registry"`
}

// KanonModuleConfig is the module configuration surface. It is read at
// construction and immutable afterward.
type KanonModuleConfig struct {
	Networks                     []NetworkConfig
	SchemaManagerContractAddress string
	RpcUrl                       string
	ServerUrl                    string
	FileServerToken              string
}

// KanonModule registers the ledger service, the did:ethr resolver and
// the anoncreds registry adapter
type KanonModule struct {
	config KanonModuleConfig
}

// NewKanonModule creates the module with its configuration
func NewKanonModule(config KanonModuleConfig) *KanonModule {
	return &KanonModule{config: config}
}

// serviceConfig maps the module configuration onto the ledger
// service's own config, preferring the first network entry for chain
// parameters when one is present.
func (m *KanonModule) serviceConfig() ledger.ServiceConfig {
	cfg := ledger.ServiceConfig{
		ContractAddress: m.config.SchemaManagerContractAddress,
		RpcUrl:          m.config.RpcUrl,
		ServerUrl:       m.config.ServerUrl,
		FileServerToken: m.config.FileServerToken,
	}
	if len(m.config.Networks) > 0 {
		network := m.config.Networks[0]
		cfg.ChainId = network.ChainId
		if cfg.RpcUrl == "" {
			cfg.RpcUrl = network.RpcUrl
		}
		if cfg.ContractAddress == "" {
			cfg.ContractAddress = network.Registry
		}
	}
	return cfg
}

// Register wires the module's services into the container
func (m *KanonModule) Register(dm di.DependencyManager) error {
	dm.RegisterSingleton(di.TokenKanonEthereumLedgerService, func(dmx di.DependencyManager) (any, error) {
		log, err := di.ResolveAs[logger.Logger](dmx, di.TokenLogger)
		if err != nil {
			log = logger.GetDefaultLogger()
		}
		didRepository, err := di.ResolveAs[repository.DidRepository](dmx, di.TokenDidRepository)
		if err != nil {
			return nil, fmt.Errorf("kanon module requires a did repository: %w", err)
		}
		walletService, err := di.ResolveAs[*wallet.WalletService](dmx, di.TokenWalletService)
		if err != nil {
			return nil, fmt.Errorf("kanon module requires a wallet service: %w", err)
		}
		return ledger.NewEthereumLedgerService(m.serviceConfig(), log, didRepository, walletService), nil
	})

	// A fresh contract client per resolve; chain connections are
	// scoped to one logical operation.
	dm.RegisterFactory(di.TokenKanonLedger, func(dmx di.DependencyManager) (any, error) {
		ctx := dmx.GetContext()
		if ctx == nil {
			return nil, fmt.Errorf("kanon ledger requires an active agent context")
		}
		cfg := m.serviceConfig()
		return ledger.NewEthereumSchemaRegistry(ctx.Context, ledger.SchemaRegistryConfig{
			ContractAddress: cfg.ContractAddress,
			RpcUrl:          cfg.RpcUrl,
		})
	})

	dm.RegisterSingleton(di.TokenKanonApi, func(dmx di.DependencyManager) (any, error) {
		ledgerService, err := di.ResolveAs[*ledger.EthereumLedgerService](dmx, di.TokenKanonEthereumLedgerService)
		if err != nil {
			return nil, err
		}
		return NewKanonApi(dmx, ledgerService), nil
	})

	return nil
}

// OnInitializeContext hooks the did:ethr resolver into the agent's
// resolver service and the registry adapter into the anoncreds router
// when one is present
func (m *KanonModule) OnInitializeContext(ctx *contextpkg.AgentContext) error {
	manager, ok := ctx.DependencyManager.(di.DependencyManager)
	if !ok {
		return fmt.Errorf("agent context has no dependency manager")
	}

	ledgerService, err := di.ResolveAs[*ledger.EthereumLedgerService](manager, di.TokenKanonEthereumLedgerService)
	if err != nil {
		return err
	}

	if resolverService, err := di.ResolveAs[*dids.DidResolverService](manager, di.TokenDidResolverService); err == nil {
		resolverService.RegisterResolver(resolver.NewKanonDidResolver(ledgerService))
	}

	if manager.IsRegistered(di.TokenAnonCredsRegistryService) {
		if router, err := di.ResolveAs[*registry.Service](manager, di.TokenAnonCredsRegistryService); err == nil {
			router.Register(anoncredsregistry.NewKanonRegistry(ledgerService))
		}
	}

	return nil
}

// OnShutdown releases module resources
func (m *KanonModule) OnShutdown(ctx *contextpkg.AgentContext) error {
	return nil
}
