package registry

// AnonCredsSchema is the schema shape shared by all registries
type AnonCredsSchema struct {
	IssuerId  string   `json:"issuerId"`
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	AttrNames []string `json:"attrNames"`
}

// Registration states
const (
	RegistrationStateFinished = "finished"
	RegistrationStateFailed   = "failed"
	RegistrationStateWait     = "wait"
	RegistrationStateAction   = "action"
)

// GetSchemaResult is the result of fetching a schema from a registry
type GetSchemaResult struct {
	Schema             *AnonCredsSchema       `json:"schema,omitempty"`
	SchemaId           string                 `json:"schemaId"`
	ResolutionMetadata map[string]interface{} `json:"resolutionMetadata"`
	SchemaMetadata     map[string]interface{} `json:"schemaMetadata"`
}

// RegisterSchemaOptions are the inputs to schema registration
type RegisterSchemaOptions struct {
	Schema  *AnonCredsSchema       `json:"schema"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// SchemaState describes the registration state of a schema
type SchemaState struct {
	State    string           `json:"state"`
	Schema   *AnonCredsSchema `json:"schema,omitempty"`
	SchemaId string           `json:"schemaId,omitempty"`
	Reason   string           `json:"reason,omitempty"`
}

// RegisterSchemaResult is the result of registering a schema
type RegisterSchemaResult struct {
	SchemaState          SchemaState            `json:"schemaState"`
	RegistrationMetadata map[string]interface{} `json:"registrationMetadata"`
	SchemaMetadata       map[string]interface{} `json:"schemaMetadata"`
}

// GetRevocationRegistryDefinitionResult is the result of fetching a
// revocation registry definition
type GetRevocationRegistryDefinitionResult struct {
	RevocationRegistryDefinitionId string                 `json:"revocationRegistryDefinitionId"`
	RevocationRegistryDefinition   map[string]interface{} `json:"revocationRegistryDefinition,omitempty"`
	ResolutionMetadata             map[string]interface{} `json:"resolutionMetadata"`
}

// GetRevocationStatusListResult is the result of fetching a revocation
// status list
type GetRevocationStatusListResult struct {
	RevocationStatusList map[string]interface{} `json:"revocationStatusList,omitempty"`
	ResolutionMetadata   map[string]interface{} `json:"resolutionMetadata"`
}
