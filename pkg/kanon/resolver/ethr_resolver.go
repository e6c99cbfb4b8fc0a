// Package resolver adapts did:ethr resolution to the agent's resolver
// contract.
package resolver

import (
	"github.com/ajna-inc/kanon/pkg/core/context"
	"github.com/ajna-inc/kanon/pkg/dids"
	"github.com/ajna-inc/kanon/pkg/kanon/ledger"
)

// KanonDidResolver resolves did:ethr identifiers through the ledger
// service. Resolve never returns an error across this boundary;
// failures are reported inside the resolution result.
type KanonDidResolver struct {
	ledgerService *ledger.EthereumLedgerService
}

// NewKanonDidResolver creates the resolver
func NewKanonDidResolver(ledgerService *ledger.EthereumLedgerService) *KanonDidResolver {
	return &KanonDidResolver{ledgerService: ledgerService}
}

// SupportedMethods reports the DID methods this resolver handles
func (r *KanonDidResolver) SupportedMethods() []string {
	return []string{"ethr"}
}

// Resolve resolves a did:ethr identifier. The returned document's
// context list is normalized: the unstable security context is
// dropped and the secp256k1 recovery suite context appears exactly
// once.
func (r *KanonDidResolver) Resolve(ctx *context.AgentContext, did string, parsed *dids.ParsedDid) (out *dids.DidResolutionResult) {
	defer func() {
		// Resolution is a total function; a panic below must not
		// escape to the caller.
		if rec := recover(); rec != nil {
			out = dids.NewDidResolutionError(dids.DidResolutionErrorNotFound,
				"unable to resolve did "+did)
		}
	}()

	result := r.ledgerService.ResolveDid(ctx, did)
	if result == nil {
		return dids.NewDidResolutionError(dids.DidResolutionErrorNotFound,
			"unable to resolve did "+did+": resolver returned no result")
	}
	if result.DidResolutionMetadata.Error != "" || result.DidDocument == nil {
		return dids.NewDidResolutionError(dids.DidResolutionErrorNotFound,
			"unable to resolve did "+did+": "+result.DidResolutionMetadata.Message)
	}

	result.DidDocument.SetContextStrings(normalizeContexts(result.DidDocument.ContextStrings()))
	return result
}

// normalizeContexts removes the unstable security context and ensures
// the stable secp256k1 recovery suite context is present exactly once.
func normalizeContexts(contexts []string) []string {
	normalized := make([]string, 0, len(contexts)+1)
	for _, c := range contexts {
		if c == dids.SecurityContextV3Unstable || c == dids.Secp256k1Recovery2020V2 {
			continue
		}
		normalized = append(normalized, c)
	}
	normalized = append(normalized, dids.Secp256k1Recovery2020V2)
	return normalized
}
