package ledger

import (
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ajna-inc/kanon/pkg/core/utils"
	"github.com/ajna-inc/kanon/pkg/dids"
	"github.com/ajna-inc/kanon/pkg/dids/domain"
	"github.com/ajna-inc/kanon/pkg/kanon/kanonerr"
)

// PreferredVerificationMethod selects the verification method used for
// chain operations. Methods exposing a blockchain account or Ethereum
// address win; otherwise the first secp256k1-typed method is used.
// The selection rule is deterministic over document order.
func PreferredVerificationMethod(doc *dids.DidDocument) (*dids.VerificationMethod, error) {
	if doc == nil || len(doc.VerificationMethod) == 0 {
		return nil, kanonerr.NewValidationError("did document has no verification methods")
	}

	for i := range doc.VerificationMethod {
		vm := &doc.VerificationMethod[i]
		if vm.BlockchainAccountId != "" || vm.EthereumAddress != "" {
			return vm, nil
		}
	}
	for i := range doc.VerificationMethod {
		vm := &doc.VerificationMethod[i]
		if domain.IsSecp256k1Method(vm.Type) {
			return vm, nil
		}
	}
	return nil, kanonerr.NewValidationError("did document has no usable secp256k1 verification method")
}

// PublicKeyHexFromDocument returns the raw hex key material of the
// document, taken from whichever verification method exposes it. This
// is independent of which method carries the blockchain account id.
func PublicKeyHexFromDocument(doc *dids.DidDocument) (string, error) {
	if doc == nil {
		return "", kanonerr.NewValidationError("did document is nil")
	}
	for i := range doc.VerificationMethod {
		if hexKey := doc.VerificationMethod[i].PublicKeyHex; hexKey != "" {
			return hexKey, nil
		}
	}
	return "", kanonerr.NewValidationError("did document exposes no hex key material")
}

// AddressFromPublicKeyHex derives the Ethereum address for a
// hex-encoded secp256k1 public key. Compressed (33 byte), uncompressed
// (65 byte) and raw coordinate (64 byte) encodings are accepted.
func AddressFromPublicKeyHex(publicKeyHex string) (string, error) {
	raw, err := utils.DecodeHexString(strings.TrimPrefix(publicKeyHex, "0x"))
	if err != nil {
		return "", kanonerr.NewValidationError("invalid public key hex: " + err.Error())
	}

	switch len(raw) {
	case 33:
		pub, err := crypto.DecompressPubkey(raw)
		if err != nil {
			return "", kanonerr.NewValidationError("invalid compressed public key: " + err.Error())
		}
		return crypto.PubkeyToAddress(*pub).Hex(), nil
	case 65:
		pub, err := crypto.UnmarshalPubkey(raw)
		if err != nil {
			return "", kanonerr.NewValidationError("invalid uncompressed public key: " + err.Error())
		}
		return crypto.PubkeyToAddress(*pub).Hex(), nil
	case 64:
		pub, err := crypto.UnmarshalPubkey(append([]byte{0x04}, raw...))
		if err != nil {
			return "", kanonerr.NewValidationError("invalid public key coordinates: " + err.Error())
		}
		return crypto.PubkeyToAddress(*pub).Hex(), nil
	case 20:
		return ethcommon.BytesToAddress(raw).Hex(), nil
	default:
		return "", kanonerr.NewValidationError("unsupported public key length")
	}
}
