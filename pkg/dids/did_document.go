package dids

import (
	"encoding/json"
	"fmt"
)

// W3C DID and verification suite context URIs
const (
	DIDContextV1                  = "https://www.w3.org/ns/did/v1"
	SecurityContextV3Unstable     = "https://w3id.org/security/v3-unstable"
	Secp256k1Recovery2020V2       = "https://w3id.org/security/suites/secp256k1recovery-2020/v2"
	VerificationMethodRecovery    = "EcdsaSecp256k1RecoveryMethod2020"
	VerificationMethodSecp256k1   = "EcdsaSecp256k1VerificationKey2019"
	VerificationMethodEd255192018 = "Ed25519VerificationKey2018"
	VerificationMethodEd255192020 = "Ed25519VerificationKey2020"
)

// DidDocument represents a W3C DID Document
type DidDocument struct {
	Context              interface{}          `json:"@context,omitempty"`
	Id                   string               `json:"id"`
	AlsoKnownAs          []string             `json:"alsoKnownAs,omitempty"`
	Controller           interface{}          `json:"controller,omitempty"`
	VerificationMethod   []VerificationMethod `json:"verificationMethod,omitempty"`
	Authentication       []interface{}        `json:"authentication,omitempty"`
	AssertionMethod      []interface{}        `json:"assertionMethod,omitempty"`
	KeyAgreement         []interface{}        `json:"keyAgreement,omitempty"`
	CapabilityInvocation []interface{}        `json:"capabilityInvocation,omitempty"`
	CapabilityDelegation []interface{}        `json:"capabilityDelegation,omitempty"`
	Service              []Service            `json:"service,omitempty"`
}

// VerificationMethod represents a verification method in a DID document
type VerificationMethod struct {
	Id                  string                 `json:"id"`
	Type                string                 `json:"type"`
	Controller          string                 `json:"controller"`
	PublicKeyBase58     string                 `json:"publicKeyBase58,omitempty"`
	PublicKeyMultibase  string                 `json:"publicKeyMultibase,omitempty"`
	PublicKeyHex        string                 `json:"publicKeyHex,omitempty"`
	PublicKeyJwk        map[string]interface{} `json:"publicKeyJwk,omitempty"`
	BlockchainAccountId string                 `json:"blockchainAccountId,omitempty"`
	EthereumAddress     string                 `json:"ethereumAddress,omitempty"`
}

// Service represents a service endpoint in a DID document
type Service struct {
	Id              string      `json:"id"`
	Type            string      `json:"type"`
	ServiceEndpoint interface{} `json:"serviceEndpoint"`
	Priority        int         `json:"priority,omitempty"`
	RecipientKeys   []string    `json:"recipientKeys,omitempty"`
	RoutingKeys     []string    `json:"routingKeys,omitempty"`
	Accept          []string    `json:"accept,omitempty"`
}

// NewDidDocument creates a new DID document with the base context
func NewDidDocument(id string) *DidDocument {
	return &DidDocument{
		Context: []string{DIDContextV1},
		Id:      id,
	}
}

// ContextStrings returns the document context as a string slice,
// handling both string and array representations.
func (d *DidDocument) ContextStrings() []string {
	switch ctx := d.Context.(type) {
	case string:
		return []string{ctx}
	case []string:
		return ctx
	case []interface{}:
		out := make([]string, 0, len(ctx))
		for _, c := range ctx {
			if s, ok := c.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// SetContextStrings replaces the document context
func (d *DidDocument) SetContextStrings(contexts []string) {
	d.Context = contexts
}

// GetVerificationMethod finds a verification method by id
func (d *DidDocument) GetVerificationMethod(id string) (*VerificationMethod, error) {
	for i := range d.VerificationMethod {
		if d.VerificationMethod[i].Id == id {
			return &d.VerificationMethod[i], nil
		}
	}
	return nil, fmt.Errorf("verification method %s not found", id)
}

// AddVerificationMethod appends a verification method
func (d *DidDocument) AddVerificationMethod(vm VerificationMethod) {
	d.VerificationMethod = append(d.VerificationMethod, vm)
}

// ToJSON serializes the DID document
func (d *DidDocument) ToJSON() ([]byte, error) {
	return json.Marshal(d)
}

// FromJSON deserializes a DID document
func (d *DidDocument) FromJSON(data []byte) error {
	return json.Unmarshal(data, d)
}
