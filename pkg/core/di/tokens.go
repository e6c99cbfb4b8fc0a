package di

import (
	"errors"
	"fmt"
)

var ErrDependencyNotFound = errors.New("dependency not found")

// Token is an identifier for dependencies
type Token struct {
	Name string
}

// Common tokens used across the agent
var (
	TokenLogger         = Token{Name: "Logger"}
	TokenStorageService = Token{Name: "StorageService"}
	TokenAgentConfig    = Token{Name: "AgentConfig"}
	TokenAgentContext   = Token{Name: "AgentContext"}

	// Core service tokens (single DI system)
	TokenWalletService = Token{Name: "WalletService"}

	// DID services
	TokenDidRepository      = Token{Name: "DidRepository"}
	TokenDidResolverService = Token{Name: "DidResolverService"}

	// AnonCreds registry router
	TokenAnonCredsRegistryService = Token{Name: "AnonCreds.RegistryService"}

	// Kanon typed services
	TokenKanonLedger                = Token{Name: "Kanon.Ledger"}
	TokenKanonEthereumLedgerService = Token{Name: "Kanon.EthereumLedgerService"}
	TokenKanonApi                   = Token{Name: "KanonApi"}
)

// TypedToken is a type-safe token with generic type information
type TypedToken[T any] struct {
	Name string
}

// NewTypedToken creates a new type-safe token
func NewTypedToken[T any](name string) TypedToken[T] {
	return TypedToken[T]{Name: name}
}

// ToToken converts a typed token to a regular token
func (tt TypedToken[T]) ToToken() Token {
	return Token{Name: tt.Name}
}

// ResolveAs is a helper to cast resolved dependencies
func ResolveAs[T any](dm DependencyManager, token Token) (T, error) {
	var zero T
	v, err := dm.Resolve(token)
	if err != nil {
		return zero, err
	}
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	return zero, fmt.Errorf("dependency '%s' has unexpected type", token.Name)
}

// ResolveTyped resolves a type-safe token
func ResolveTyped[T any](dm DependencyManager, token TypedToken[T]) (T, error) {
	return ResolveAs[T](dm, token.ToToken())
}
