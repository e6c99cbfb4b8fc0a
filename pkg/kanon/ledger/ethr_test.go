package ledger

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajna-inc/kanon/pkg/dids"
)

func TestParseEthrDidAddressForm(t *testing.T) {
	parsed, err := ParseEthrDid("did:ethr:0xB9c5714089478a327F09197987f16f9E5d936E8a")
	require.NoError(t, err)

	assert.Equal(t, "mainnet", parsed.Network)
	assert.Equal(t, "0xB9c5714089478a327F09197987f16f9E5d936E8a", parsed.Address)
	assert.Empty(t, parsed.PublicKeyHex)
}

func TestParseEthrDidWithNetwork(t *testing.T) {
	parsed, err := ParseEthrDid("did:ethr:sepolia:0xB9c5714089478a327F09197987f16f9E5d936E8a")
	require.NoError(t, err)

	assert.Equal(t, "sepolia", parsed.Network)
	assert.Equal(t, "0xB9c5714089478a327F09197987f16f9E5d936E8a", parsed.Address)
}

func TestParseEthrDidPublicKeyForm(t *testing.T) {
	privateKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	compressed := hex.EncodeToString(crypto.CompressPubkey(&privateKey.PublicKey))

	parsed, err := ParseEthrDid("did:ethr:0x" + compressed)
	require.NoError(t, err)

	assert.Equal(t, crypto.PubkeyToAddress(privateKey.PublicKey).Hex(), parsed.Address)
	assert.Equal(t, compressed, parsed.PublicKeyHex)
}

func TestParseEthrDidRejectsOtherMethods(t *testing.T) {
	_, err := ParseEthrDid("did:key:z6Mkf5rGMoatrSj1f4CyvuHBeXJELe9RPdzo2PKGNCKVtZxP")
	assert.Error(t, err)
}

func TestParseEthrDidRejectsMalformedIdentifier(t *testing.T) {
	_, err := ParseEthrDid("did:ethr:hello-world")
	assert.Error(t, err)
}

func TestBuildEthrDidDocumentAddressForm(t *testing.T) {
	parsed, err := ParseEthrDid("did:ethr:0xB9c5714089478a327F09197987f16f9E5d936E8a")
	require.NoError(t, err)

	doc := BuildEthrDidDocument(parsed, 1337)

	assert.Equal(t, parsed.Did, doc.Id)
	assert.Contains(t, doc.ContextStrings(), dids.DIDContextV1)
	assert.Contains(t, doc.ContextStrings(), dids.Secp256k1Recovery2020V2)

	require.Len(t, doc.VerificationMethod, 1)
	vm := doc.VerificationMethod[0]
	assert.Equal(t, dids.VerificationMethodRecovery, vm.Type)
	assert.Equal(t, "eip155:1337:0xB9c5714089478a327F09197987f16f9E5d936E8a", vm.BlockchainAccountId)
	assert.Equal(t, parsed.Did+"#controller", vm.Id)
}

func TestBuildEthrDidDocumentPublicKeyForm(t *testing.T) {
	privateKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	compressed := hex.EncodeToString(crypto.CompressPubkey(&privateKey.PublicKey))

	parsed, err := ParseEthrDid("did:ethr:0x" + compressed)
	require.NoError(t, err)

	doc := BuildEthrDidDocument(parsed, 1)

	require.Len(t, doc.VerificationMethod, 2)
	assert.Equal(t, dids.VerificationMethodSecp256k1, doc.VerificationMethod[1].Type)
	assert.Equal(t, compressed, doc.VerificationMethod[1].PublicKeyHex)
	assert.Len(t, doc.Authentication, 2)
	assert.Len(t, doc.AssertionMethod, 2)
}
