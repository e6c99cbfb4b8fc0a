package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/ajna-inc/kanon/pkg/core/common"
	"github.com/ajna-inc/kanon/pkg/core/context"
	"github.com/ajna-inc/kanon/pkg/core/storage"
)

// WalletService handles key management and cryptographic operations
type WalletService struct {
	context    *context.AgentContext
	repository KeyRepository
}

// KeyType represents supported key types
type KeyType string

const (
	KeyTypeEd25519   KeyType = "Ed25519"
	KeyTypeSecp256k1 KeyType = "Secp256k1"
)

// Key represents a cryptographic key
type Key struct {
	Id         string  `json:"id"`
	Type       KeyType `json:"type"`
	PublicKey  []byte  `json:"publicKey"`
	PrivateKey []byte  `json:"privateKey,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

// KeyRecord represents a stored key record
type KeyRecord struct {
	*storage.BaseRecord

	Key *Key `json:"key"`
}

// Implement storage.Record JSON methods for full serialization
func (r *KeyRecord) ToJSON() ([]byte, error)    { return json.Marshal(r) }
func (r *KeyRecord) FromJSON(data []byte) error { return json.Unmarshal(data, r) }

// Implement Clone to satisfy storage.Record and preserve key data
func (r *KeyRecord) Clone() storage.Record {
	clone := &KeyRecord{}
	if r.BaseRecord != nil {
		clone.BaseRecord = r.BaseRecord.Clone().(*storage.BaseRecord)
	}
	if r.Key != nil {
		k := *r.Key
		if r.Key.PublicKey != nil {
			k.PublicKey = append([]byte(nil), r.Key.PublicKey...)
		}
		if r.Key.PrivateKey != nil {
			k.PrivateKey = append([]byte(nil), r.Key.PrivateKey...)
		}
		clone.Key = &k
	}
	return clone
}

// Register the "Key" record type so storage can deserialize full records
func init() {
	storage.RegisterRecordType("Key", func() storage.Record {
		return &KeyRecord{BaseRecord: &storage.BaseRecord{Type: "Key", Tags: make(map[string]string)}}
	})
}

// KeyRepository interface for key storage
type KeyRepository interface {
	Save(ctx *context.AgentContext, record *KeyRecord) error
	FindById(ctx *context.AgentContext, id string) (*KeyRecord, error)
	FindByPublicKey(ctx *context.AgentContext, publicKey []byte) (*KeyRecord, error)
	Delete(ctx *context.AgentContext, id string) error
	GetAll(ctx *context.AgentContext) ([]*KeyRecord, error)
}

// SimpleKeyRepository provides an in-memory key repository for development
type SimpleKeyRepository struct {
	keys map[string]*KeyRecord
}

// NewSimpleKeyRepository creates a new in-memory key repository
func NewSimpleKeyRepository() *SimpleKeyRepository {
	return &SimpleKeyRepository{
		keys: make(map[string]*KeyRecord),
	}
}

func (r *SimpleKeyRepository) Save(ctx *context.AgentContext, record *KeyRecord) error {
	r.keys[record.Key.Id] = record
	return nil
}

func (r *SimpleKeyRepository) FindById(ctx *context.AgentContext, id string) (*KeyRecord, error) {
	record, exists := r.keys[id]
	if !exists {
		return nil, fmt.Errorf("key with id %s not found", id)
	}
	return record, nil
}

func (r *SimpleKeyRepository) FindByPublicKey(ctx *context.AgentContext, publicKey []byte) (*KeyRecord, error) {
	for _, record := range r.keys {
		if common.AreSlicesEqual(record.Key.PublicKey, publicKey) {
			return record, nil
		}
	}
	return nil, fmt.Errorf("key with public key not found")
}

func (r *SimpleKeyRepository) Delete(ctx *context.AgentContext, id string) error {
	delete(r.keys, id)
	return nil
}

func (r *SimpleKeyRepository) GetAll(ctx *context.AgentContext) ([]*KeyRecord, error) {
	keys := make([]*KeyRecord, 0, len(r.keys))
	for _, record := range r.keys {
		keys = append(keys, record)
	}
	return keys, nil
}

// NewWalletService creates a new wallet service
func NewWalletService(ctx *context.AgentContext, repository KeyRepository) *WalletService {
	return &WalletService{
		context:    ctx,
		repository: repository,
	}
}

// CreateKey generates a new key of the specified type
func (w *WalletService) CreateKey(keyType KeyType) (*Key, error) {
	keyId := common.GenerateUUID()

	var key *Key

	switch keyType {
	case KeyTypeEd25519:
		publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to generate Ed25519 key: %w", err)
		}

		key = &Key{
			Id:         keyId,
			Type:       KeyTypeEd25519,
			PublicKey:  publicKey,
			PrivateKey: privateKey,
			CreatedAt:  common.CurrentTimestamp(),
		}

	case KeyTypeSecp256k1:
		privateKey, err := ethcrypto.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
		}

		// Public key is stored in 33-byte compressed form
		key = &Key{
			Id:         keyId,
			Type:       KeyTypeSecp256k1,
			PublicKey:  ethcrypto.CompressPubkey(&privateKey.PublicKey),
			PrivateKey: ethcrypto.FromECDSA(privateKey),
			CreatedAt:  common.CurrentTimestamp(),
		}

	default:
		return nil, fmt.Errorf("unsupported key type: %s", keyType)
	}

	if err := w.repository.Save(w.context, NewKeyRecord(key)); err != nil {
		return nil, fmt.Errorf("failed to save key: %w", err)
	}

	return key, nil
}

// GetKey retrieves a key by ID
func (w *WalletService) GetKey(keyId string) (*Key, error) {
	record, err := w.repository.FindById(w.context, keyId)
	if err != nil {
		return nil, fmt.Errorf("failed to find key: %w", err)
	}
	return record.Key, nil
}

// GetPublicKey retrieves just the public key portion
func (w *WalletService) GetPublicKey(keyId string) ([]byte, error) {
	key, err := w.GetKey(keyId)
	if err != nil {
		return nil, err
	}
	return key.PublicKey, nil
}

// FindKeyByPublicKey finds a key by its public key
func (w *WalletService) FindKeyByPublicKey(publicKey []byte) (*Key, error) {
	record, err := w.repository.FindByPublicKey(w.context, publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to find key by public key: %w", err)
	}
	return record.Key, nil
}

// Sign signs data with the specified key. For secp256k1 keys the data is
// hashed with keccak-256 before signing, matching Ethereum transaction
// and message signing conventions.
func (w *WalletService) Sign(keyId string, data []byte) ([]byte, error) {
	key, err := w.GetKey(keyId)
	if err != nil {
		return nil, fmt.Errorf("failed to get key for signing: %w", err)
	}

	if len(key.PrivateKey) == 0 {
		return nil, fmt.Errorf("private key not available for signing")
	}

	switch key.Type {
	case KeyTypeEd25519:
		return ed25519.Sign(ed25519.PrivateKey(key.PrivateKey), data), nil

	case KeyTypeSecp256k1:
		privateKey, err := ethcrypto.ToECDSA(key.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse secp256k1 private key: %w", err)
		}
		digest := ethcrypto.Keccak256(data)
		return ethcrypto.Sign(digest, privateKey)

	default:
		return nil, fmt.Errorf("signing not supported for key type %s", key.Type)
	}
}

// Verify verifies a signature with the specified key
func (w *WalletService) Verify(keyId string, data []byte, signature []byte) (bool, error) {
	key, err := w.GetKey(keyId)
	if err != nil {
		return false, fmt.Errorf("failed to get key for verification: %w", err)
	}

	switch key.Type {
	case KeyTypeEd25519:
		return ed25519.Verify(ed25519.PublicKey(key.PublicKey), data, signature), nil

	case KeyTypeSecp256k1:
		if len(signature) < 64 {
			return false, fmt.Errorf("invalid secp256k1 signature length %d", len(signature))
		}
		digest := ethcrypto.Keccak256(data)
		// Drop the recovery id when present
		return ethcrypto.VerifySignature(key.PublicKey, digest, signature[:64]), nil

	default:
		return false, fmt.Errorf("verification not supported for key type %s", key.Type)
	}
}

// GenerateNonce generates a random nonce
func (w *WalletService) GenerateNonce(length int) ([]byte, error) {
	nonce := make([]byte, length)
	_, err := rand.Read(nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

// DeleteKey deletes a key by ID
func (w *WalletService) DeleteKey(keyId string) error {
	return w.repository.Delete(w.context, keyId)
}

// ListKeys returns all keys
func (w *WalletService) ListKeys() ([]*Key, error) {
	records, err := w.repository.GetAll(w.context)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	keys := make([]*Key, len(records))
	for i, record := range records {
		keys[i] = record.Key
	}

	return keys, nil
}

// NewKeyRecord creates a new key record
func NewKeyRecord(key *Key) *KeyRecord {
	return &KeyRecord{
		BaseRecord: &storage.BaseRecord{
			ID:   key.Id,
			Type: "Key",
			Tags: map[string]string{
				"keyType": string(key.Type),
			},
		},
		Key: key,
	}
}
