package resolver

import (
	gocontext "context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajna-inc/kanon/pkg/core/context"
	"github.com/ajna-inc/kanon/pkg/core/logger"
	"github.com/ajna-inc/kanon/pkg/core/storage"
	"github.com/ajna-inc/kanon/pkg/core/wallet"
	"github.com/ajna-inc/kanon/pkg/dids"
	"github.com/ajna-inc/kanon/pkg/dids/repository"
	"github.com/ajna-inc/kanon/pkg/kanon/ledger"
)

func newResolverForTest(t *testing.T) (*KanonDidResolver, *context.AgentContext) {
	t.Helper()

	ctx := context.NewAgentContext(context.AgentContextOptions{
		Context:              gocontext.Background(),
		ContextCorrelationId: "test",
	})
	walletService := wallet.NewWalletService(ctx, wallet.NewSimpleKeyRepository())
	didRepository := repository.NewStorageDidRepository(storage.NewMemoryStorageService())

	service := ledger.NewEthereumLedgerService(ledger.ServiceConfig{ChainId: 1337},
		logger.NewDefaultLogger(logger.OffLevel), didRepository, walletService)
	return NewKanonDidResolver(service), ctx
}

func TestResolverSupportsEthrMethod(t *testing.T) {
	resolver, _ := newResolverForTest(t)
	assert.Equal(t, []string{"ethr"}, resolver.SupportedMethods())
}

func TestResolveReturnsNormalizedDocument(t *testing.T) {
	resolver, ctx := newResolverForTest(t)
	did := "did:ethr:0xB9c5714089478a327F09197987f16f9E5d936E8a"

	parsed, err := dids.ParseDid(did)
	require.NoError(t, err)
	result := resolver.Resolve(ctx, did, parsed)

	require.Empty(t, result.DidResolutionMetadata.Error)
	require.NotNil(t, result.DidDocument)

	contexts := result.DidDocument.ContextStrings()
	assert.NotContains(t, contexts, dids.SecurityContextV3Unstable)
	occurrences := 0
	for _, c := range contexts {
		if c == dids.Secp256k1Recovery2020V2 {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
}

func TestResolveFailureReturnsNotFound(t *testing.T) {
	resolver, ctx := newResolverForTest(t)
	did := "did:ethr:garbage-identifier"

	parsed, err := dids.ParseDid(did)
	require.NoError(t, err)
	result := resolver.Resolve(ctx, did, parsed)

	assert.Nil(t, result.DidDocument)
	assert.Equal(t, dids.DidResolutionErrorNotFound, result.DidResolutionMetadata.Error)
	assert.NotEmpty(t, result.DidResolutionMetadata.Message)
}

func TestNormalizeContexts(t *testing.T) {
	normalized := normalizeContexts([]string{
		dids.DIDContextV1,
		dids.SecurityContextV3Unstable,
		dids.Secp256k1Recovery2020V2,
		dids.Secp256k1Recovery2020V2,
	})

	assert.Equal(t, []string{dids.DIDContextV1, dids.Secp256k1Recovery2020V2}, normalized)
}
