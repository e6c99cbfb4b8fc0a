package registry

import (
	"regexp"

	"github.com/ajna-inc/kanon/pkg/core/context"
)

// Registry implements schema operations for one identifier family.
// SupportedIdentifier decides routing; a registry only ever sees
// identifiers its pattern matched.
type Registry interface {
	MethodName() string
	SupportedIdentifier() *regexp.Regexp

	GetSchema(ctx *context.AgentContext, schemaId string) (*GetSchemaResult, error)
	RegisterSchema(ctx *context.AgentContext, options *RegisterSchemaOptions) (*RegisterSchemaResult, error)

	GetRevocationRegistryDefinition(ctx *context.AgentContext, revocationRegistryDefinitionId string) (*GetRevocationRegistryDefinitionResult, error)
	GetRevocationStatusList(ctx *context.AgentContext, revocationRegistryId string, timestamp int64) (*GetRevocationStatusListResult, error)
}
