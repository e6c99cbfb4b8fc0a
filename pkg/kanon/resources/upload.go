package resources

import (
	"bytes"
	gocontext "context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// SchemaUploader pushes schema content to an off-chain store
type SchemaUploader interface {
	UploadSchemaFile(ctx gocontext.Context, schemaId string, schemaJson string) error
}

// FileServerClient uploads schema blobs to the configured file server.
// The upload is idempotent on the server side, so transient transport
// failures are retried with backoff.
type FileServerClient struct {
	serverUrl string
	token     string
	client    *retryablehttp.Client
}

// NewFileServerClient creates a file server client
func NewFileServerClient(serverUrl string, token string) *FileServerClient {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = nil

	return &FileServerClient{
		serverUrl: strings.TrimSuffix(serverUrl, "/"),
		token:     token,
		client:    client,
	}
}

type uploadRequest struct {
	SchemaId string `json:"schemaId"`
	Schema   string `json:"schema"`
}

// UploadSchemaFile posts the schema body to {serverUrl}/schemas with
// bearer authorization. Non-2xx responses and transport failures are
// wrapped with the original cause preserved.
func (c *FileServerClient) UploadSchemaFile(ctx gocontext.Context, schemaId string, schemaJson string) error {
	body, err := json.Marshal(uploadRequest{SchemaId: schemaId, Schema: schemaJson})
	if err != nil {
		return fmt.Errorf("failed to encode schema upload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", c.serverUrl+"/schemas", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build schema upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("schema upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("schema upload rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
