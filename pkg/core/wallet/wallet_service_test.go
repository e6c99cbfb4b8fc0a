package wallet

import (
	gocontext "context"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/ajna-inc/kanon/pkg/core/context"
)

func newTestWallet() *WalletService {
	ctx := context.NewAgentContext(context.AgentContextOptions{
		Context:              gocontext.Background(),
		ContextCorrelationId: "test",
	})
	return NewWalletService(ctx, NewSimpleKeyRepository())
}

func TestCreateEd25519Key(t *testing.T) {
	w := newTestWallet()

	key, err := w.CreateKey(KeyTypeEd25519)
	if err != nil {
		t.Fatalf("CreateKey failed: %v", err)
	}
	if key.Type != KeyTypeEd25519 {
		t.Errorf("expected key type %s, got %s", KeyTypeEd25519, key.Type)
	}
	if len(key.PublicKey) != 32 {
		t.Errorf("expected 32-byte public key, got %d", len(key.PublicKey))
	}
}

func TestCreateSecp256k1Key(t *testing.T) {
	w := newTestWallet()

	key, err := w.CreateKey(KeyTypeSecp256k1)
	if err != nil {
		t.Fatalf("CreateKey failed: %v", err)
	}
	if len(key.PublicKey) != 33 {
		t.Errorf("expected 33-byte compressed public key, got %d", len(key.PublicKey))
	}
	if len(key.PrivateKey) != 32 {
		t.Errorf("expected 32-byte private key, got %d", len(key.PrivateKey))
	}
	if _, err := ethcrypto.DecompressPubkey(key.PublicKey); err != nil {
		t.Errorf("public key does not decompress: %v", err)
	}
}

func TestCreateKeyRejectsUnknownType(t *testing.T) {
	w := newTestWallet()

	if _, err := w.CreateKey(KeyType("X448")); err == nil {
		t.Fatal("expected error for unknown key type")
	}
}

func TestSignAndVerifyEd25519(t *testing.T) {
	w := newTestWallet()

	key, err := w.CreateKey(KeyTypeEd25519)
	if err != nil {
		t.Fatalf("CreateKey failed: %v", err)
	}

	message := []byte("hello world")
	signature, err := w.Sign(key.Id, message)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	valid, err := w.Verify(key.Id, message, signature)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !valid {
		t.Error("signature should be valid")
	}

	valid, err = w.Verify(key.Id, []byte("tampered"), signature)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if valid {
		t.Error("signature over tampered message should be invalid")
	}
}

func TestSignAndVerifySecp256k1(t *testing.T) {
	w := newTestWallet()

	key, err := w.CreateKey(KeyTypeSecp256k1)
	if err != nil {
		t.Fatalf("CreateKey failed: %v", err)
	}

	message := []byte("transaction payload")
	signature, err := w.Sign(key.Id, message)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(signature) != 65 {
		t.Fatalf("expected 65-byte recoverable signature, got %d", len(signature))
	}

	valid, err := w.Verify(key.Id, message, signature)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !valid {
		t.Error("signature should be valid")
	}
}

func TestFindKeyByPublicKey(t *testing.T) {
	w := newTestWallet()

	created, err := w.CreateKey(KeyTypeSecp256k1)
	if err != nil {
		t.Fatalf("CreateKey failed: %v", err)
	}

	found, err := w.FindKeyByPublicKey(created.PublicKey)
	if err != nil {
		t.Fatalf("FindKeyByPublicKey failed: %v", err)
	}
	if found.Id != created.Id {
		t.Errorf("expected key %s, got %s", created.Id, found.Id)
	}
}

func TestDeleteKey(t *testing.T) {
	w := newTestWallet()

	key, err := w.CreateKey(KeyTypeEd25519)
	if err != nil {
		t.Fatalf("CreateKey failed: %v", err)
	}
	if err := w.DeleteKey(key.Id); err != nil {
		t.Fatalf("DeleteKey failed: %v", err)
	}
	if _, err := w.GetKey(key.Id); err == nil {
		t.Error("expected error fetching deleted key")
	}
}

func TestListKeys(t *testing.T) {
	w := newTestWallet()

	if _, err := w.CreateKey(KeyTypeEd25519); err != nil {
		t.Fatalf("CreateKey failed: %v", err)
	}
	if _, err := w.CreateKey(KeyTypeSecp256k1); err != nil {
		t.Fatalf("CreateKey failed: %v", err)
	}

	keys, err := w.ListKeys()
	if err != nil {
		t.Fatalf("ListKeys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 keys, got %d", len(keys))
	}
}
