package registry

import (
	"fmt"
	"sync"

	"github.com/ajna-inc/kanon/pkg/core/context"
)

// Service routes anoncreds operations to the registry whose
// SupportedIdentifier pattern matches the identifier.
type Service struct {
	mu         sync.RWMutex
	registries []Registry
}

// NewService creates an empty registry router
func NewService() *Service {
	return &Service{}
}

// Register adds a registry to the router
func (s *Service) Register(registry Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registries = append(s.registries, registry)
}

// RegistryFor returns the first registry whose pattern matches the identifier
func (s *Service) RegistryFor(identifier string) (Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, registry := range s.registries {
		if registry.SupportedIdentifier().MatchString(identifier) {
			return registry, nil
		}
	}
	return nil, fmt.Errorf("no registry supports identifier %s", identifier)
}

// GetSchema fetches a schema through the matching registry
func (s *Service) GetSchema(ctx *context.AgentContext, schemaId string) (*GetSchemaResult, error) {
	registry, err := s.RegistryFor(schemaId)
	if err != nil {
		return &GetSchemaResult{
			SchemaId: schemaId,
			ResolutionMetadata: map[string]interface{}{
				"error":   "unsupportedAnonCredsMethod",
				"message": err.Error(),
			},
			SchemaMetadata: map[string]interface{}{},
		}, nil
	}
	return registry.GetSchema(ctx, schemaId)
}

// RegisterSchema registers a schema through the registry matching the issuer
func (s *Service) RegisterSchema(ctx *context.AgentContext, options *RegisterSchemaOptions) (*RegisterSchemaResult, error) {
	if options == nil || options.Schema == nil {
		return nil, fmt.Errorf("schema is required")
	}
	registry, err := s.RegistryFor(options.Schema.IssuerId)
	if err != nil {
		return &RegisterSchemaResult{
			SchemaState: SchemaState{
				State:  RegistrationStateFailed,
				Schema: options.Schema,
				Reason: err.Error(),
			},
			RegistrationMetadata: map[string]interface{}{},
			SchemaMetadata:       map[string]interface{}{},
		}, nil
	}
	return registry.RegisterSchema(ctx, options)
}

// GetRevocationRegistryDefinition fetches a revocation registry definition
func (s *Service) GetRevocationRegistryDefinition(ctx *context.AgentContext, id string) (*GetRevocationRegistryDefinitionResult, error) {
	registry, err := s.RegistryFor(id)
	if err != nil {
		return nil, err
	}
	return registry.GetRevocationRegistryDefinition(ctx, id)
}

// GetRevocationStatusList fetches a revocation status list
func (s *Service) GetRevocationStatusList(ctx *context.AgentContext, revocationRegistryId string, timestamp int64) (*GetRevocationStatusListResult, error) {
	registry, err := s.RegistryFor(revocationRegistryId)
	if err != nil {
		return nil, err
	}
	return registry.GetRevocationStatusList(ctx, revocationRegistryId, timestamp)
}
