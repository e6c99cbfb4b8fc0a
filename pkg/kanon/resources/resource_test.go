package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumIsDeterministic(t *testing.T) {
	body := `{"name":"person","version":"1.0"}`
	first := ChecksumOf(body)
	second := ChecksumOf(body)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestChecksumDiffersForDifferentBodies(t *testing.T) {
	assert.NotEqual(t, ChecksumOf(`{"a":1}`), ChecksumOf(`{"a":2}`))
}

func TestBuildSchemaResource(t *testing.T) {
	did := "did:ethr:0xB9c5714089478a327F09197987f16f9E5d936E8a"
	body := `{"name":"person"}`

	resource, err := BuildSchemaResource(did, "schema-1", "person", body, "0xB9c5714089478a327F09197987f16f9E5d936E8a")
	require.NoError(t, err)

	assert.Equal(t, did+"/resources/schema-1", resource.ResourceURI)
	assert.Equal(t, "0xB9c5714089478a327F09197987f16f9E5d936E8a", resource.ResourceCollectionId)
	assert.Equal(t, "schema-1", resource.ResourceId)
	assert.Equal(t, "person", resource.ResourceName)
	assert.Equal(t, "anonCredsSchema", resource.ResourceType)
	assert.Equal(t, "application/json", resource.MediaType)
	assert.Equal(t, ChecksumOf(body), resource.Checksum)
	assert.NotEmpty(t, resource.Created)
}
