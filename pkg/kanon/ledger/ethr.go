package ledger

import (
	"fmt"
	"strconv"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/ajna-inc/kanon/pkg/dids"
)

// ParsedEthrDid holds the components of a did:ethr identifier
type ParsedEthrDid struct {
	Did        string
	Network    string
	Identifier string
	// Address is the Ethereum address of the identifier, derived when
	// the identifier is a public key.
	Address string
	// PublicKeyHex is set when the identifier form is a public key
	// rather than an address.
	PublicKeyHex string
}

// ParseEthrDid parses a did:ethr identifier. Both forms are supported:
//
//	did:ethr:<address>
//	did:ethr:<network>:<address or public key>
func ParseEthrDid(did string) (*ParsedEthrDid, error) {
	parsed, err := dids.ParseDid(did)
	if err != nil {
		return nil, err
	}
	if parsed.Method != "ethr" {
		return nil, fmt.Errorf("not a did:ethr identifier: %s", did)
	}

	network := "mainnet"
	identifier := parsed.Id
	if idx := strings.LastIndex(parsed.Id, ":"); idx >= 0 {
		network = parsed.Id[:idx]
		identifier = parsed.Id[idx+1:]
	}

	result := &ParsedEthrDid{
		Did:        parsed.Did,
		Network:    network,
		Identifier: identifier,
	}

	if ethcommon.IsHexAddress(identifier) {
		result.Address = ethcommon.HexToAddress(identifier).Hex()
		return result, nil
	}

	address, err := AddressFromPublicKeyHex(identifier)
	if err != nil {
		return nil, fmt.Errorf("did:ethr identifier is neither an address nor a public key: %w", err)
	}
	result.Address = address
	result.PublicKeyHex = strings.TrimPrefix(identifier, "0x")
	return result, nil
}

// BuildEthrDidDocument constructs the DID document for a did:ethr
// identifier without a chain lookup, mirroring the resolver's output
// for identifiers with no on-chain attribute events. chainId feeds the
// CAIP-10 blockchain account id.
func BuildEthrDidDocument(parsed *ParsedEthrDid, chainId int64) *dids.DidDocument {
	doc := &dids.DidDocument{
		Context: []string{
			dids.DIDContextV1,
			dids.Secp256k1Recovery2020V2,
		},
		Id: parsed.Did,
	}

	accountId := fmt.Sprintf("eip155:%s:%s", strconv.FormatInt(chainId, 10), parsed.Address)
	controllerId := parsed.Did + "#controller"
	doc.AddVerificationMethod(dids.VerificationMethod{
		Id:                  controllerId,
		Type:                dids.VerificationMethodRecovery,
		Controller:          parsed.Did,
		BlockchainAccountId: accountId,
	})
	doc.Authentication = append(doc.Authentication, controllerId)
	doc.AssertionMethod = append(doc.AssertionMethod, controllerId)

	if parsed.PublicKeyHex != "" {
		keyId := parsed.Did + "#controllerKey"
		doc.AddVerificationMethod(dids.VerificationMethod{
			Id:           keyId,
			Type:         dids.VerificationMethodSecp256k1,
			Controller:   parsed.Did,
			PublicKeyHex: parsed.PublicKeyHex,
		})
		doc.Authentication = append(doc.Authentication, keyId)
		doc.AssertionMethod = append(doc.AssertionMethod, keyId)
	}

	return doc
}
