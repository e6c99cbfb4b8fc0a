// Package anoncredsregistry exposes the Ethereum schema registry as an
// anoncreds registry for did:ethr issuers.
package anoncredsregistry

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ajna-inc/kanon/pkg/anoncreds/registry"
	"github.com/ajna-inc/kanon/pkg/core/context"
	"github.com/ajna-inc/kanon/pkg/kanon/ledger"
)

var ethrIdentifier = regexp.MustCompile(`^did:ethr:.+`)

// KanonRegistry implements the anoncreds registry contract over the
// Ethereum schema registry. Registered schema ids are DID URLs of the
// form <did>/resources/<schemaId>.
type KanonRegistry struct {
	ledgerService *ledger.EthereumLedgerService
}

// NewKanonRegistry creates the registry adapter
func NewKanonRegistry(ledgerService *ledger.EthereumLedgerService) *KanonRegistry {
	return &KanonRegistry{ledgerService: ledgerService}
}

func (r *KanonRegistry) MethodName() string { return "kanon" }

func (r *KanonRegistry) SupportedIdentifier() *regexp.Regexp { return ethrIdentifier }

// RegisterSchema writes the schema on-chain under the issuer's DID
func (r *KanonRegistry) RegisterSchema(ctx *context.AgentContext, options *registry.RegisterSchemaOptions) (*registry.RegisterSchemaResult, error) {
	schema := options.Schema

	schemaJson, err := json.Marshal(map[string]interface{}{
		"issuerId":  schema.IssuerId,
		"name":      schema.Name,
		"version":   schema.Version,
		"attrNames": schema.AttrNames,
	})
	if err != nil {
		return failedRegistration(schema, "failed to encode schema: "+err.Error()), nil
	}

	result, err := r.ledgerService.CreateSchema(ctx, ledger.SchemaCreateOptions{
		Did:        schema.IssuerId,
		SchemaName: schema.Name,
		Schema:     string(schemaJson),
	})
	if err != nil {
		return failedRegistration(schema, err.Error()), nil
	}

	return &registry.RegisterSchemaResult{
		SchemaState: registry.SchemaState{
			State:    registry.RegistrationStateFinished,
			Schema:   schema,
			SchemaId: result.Did + "/resources/" + result.SchemaId,
		},
		RegistrationMetadata: map[string]interface{}{},
		SchemaMetadata: map[string]interface{}{
			"schemaTxnHash": result.SchemaTxnHash,
		},
	}, nil
}

// GetSchema reads a schema back by its DID URL
func (r *KanonRegistry) GetSchema(ctx *context.AgentContext, schemaId string) (*registry.GetSchemaResult, error) {
	did, resourceId, ok := splitSchemaId(schemaId)
	if !ok {
		return schemaNotFound(schemaId, "schema id is not a did:ethr resource url"), nil
	}

	schemaJson, err := r.ledgerService.GetSchemaByDidAndSchemaId(ctx, did, resourceId)
	if err != nil {
		return schemaNotFound(schemaId, err.Error()), nil
	}

	var schema registry.AnonCredsSchema
	if err := json.Unmarshal([]byte(schemaJson), &schema); err != nil {
		return schemaNotFound(schemaId, "stored schema is not valid: "+err.Error()), nil
	}

	return &registry.GetSchemaResult{
		Schema:             &schema,
		SchemaId:           schemaId,
		ResolutionMetadata: map[string]interface{}{},
		SchemaMetadata:     map[string]interface{}{},
	}, nil
}

// GetRevocationRegistryDefinition is not supported by the Ethereum
// schema registry
func (r *KanonRegistry) GetRevocationRegistryDefinition(ctx *context.AgentContext, id string) (*registry.GetRevocationRegistryDefinitionResult, error) {
	return &registry.GetRevocationRegistryDefinitionResult{
		RevocationRegistryDefinitionId: id,
		ResolutionMetadata: map[string]interface{}{
			"error":   "unsupported",
			"message": "revocation is not supported by the kanon registry",
		},
	}, nil
}

// GetRevocationStatusList is not supported by the Ethereum schema
// registry
func (r *KanonRegistry) GetRevocationStatusList(ctx *context.AgentContext, revocationRegistryId string, timestamp int64) (*registry.GetRevocationStatusListResult, error) {
	return &registry.GetRevocationStatusListResult{
		ResolutionMetadata: map[string]interface{}{
			"error":   "unsupported",
			"message": "revocation is not supported by the kanon registry",
		},
	}, nil
}

// splitSchemaId splits "<did>/resources/<schemaId>" into its parts
func splitSchemaId(schemaId string) (string, string, bool) {
	idx := strings.Index(schemaId, "/resources/")
	if idx <= 0 {
		return "", "", false
	}
	did := schemaId[:idx]
	resourceId := schemaId[idx+len("/resources/"):]
	if !ethrIdentifier.MatchString(did) || resourceId == "" {
		return "", "", false
	}
	return did, resourceId, true
}

func failedRegistration(schema *registry.AnonCredsSchema, reason string) *registry.RegisterSchemaResult {
	return &registry.RegisterSchemaResult{
		SchemaState: registry.SchemaState{
			State:  registry.RegistrationStateFailed,
			Schema: schema,
			Reason: reason,
		},
		RegistrationMetadata: map[string]interface{}{},
		SchemaMetadata:       map[string]interface{}{},
	}
}

func schemaNotFound(schemaId string, message string) *registry.GetSchemaResult {
	return &registry.GetSchemaResult{
		SchemaId: schemaId,
		ResolutionMetadata: map[string]interface{}{
			"error":   "notFound",
			"message": message,
		},
		SchemaMetadata: map[string]interface{}{},
	}
}
