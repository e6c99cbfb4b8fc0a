// Package resources builds and uploads the off-chain metadata records
// that accompany on-chain schema entries.
package resources

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ajna-inc/kanon/pkg/core/common"
	"github.com/ajna-inc/kanon/pkg/kanon/kanonerr"
)

// ResourcePayload describes one schema version. Checksum is the
// keccak-256 hash of the schema body, so identical bodies always
// produce identical checksums.
type ResourcePayload struct {
	ResourceURI          string `json:"resourceURI"`
	ResourceCollectionId string `json:"resourceCollectionId"`
	ResourceId           string `json:"resourceId"`
	ResourceName         string `json:"resourceName"`
	ResourceType         string `json:"resourceType"`
	MediaType            string `json:"mediaType"`
	Created              string `json:"created"`
	Checksum             string `json:"checksum"`
	PreviousVersionId    string `json:"previousVersionId,omitempty"`
	NextVersionId        string `json:"nextVersionId,omitempty"`
}

// ChecksumOf computes the hex-encoded keccak-256 hash of a schema body
func ChecksumOf(schemaJson string) string {
	return hex.EncodeToString(crypto.Keccak256([]byte(schemaJson)))
}

// BuildSchemaResource assembles the resource payload for one schema
// version. The address is the schema owner's chain address, used as
// the resource collection id.
func BuildSchemaResource(did string, schemaId string, name string, schemaJson string, address string) (*ResourcePayload, error) {
	checksum := ChecksumOf(schemaJson)
	if checksum == "" {
		return nil, kanonerr.NewSchemaCreationError("checksum computation produced an empty result", nil)
	}

	return &ResourcePayload{
		ResourceURI:          did + "/resources/" + schemaId,
		ResourceCollectionId: address,
		ResourceId:           schemaId,
		ResourceName:         name,
		ResourceType:         "anonCredsSchema",
		MediaType:            "application/json",
		Created:              common.CurrentTimestamp(),
		Checksum:             checksum,
	}, nil
}
