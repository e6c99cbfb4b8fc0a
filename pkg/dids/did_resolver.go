package dids

import (
	"sync"
	"time"

	"github.com/ajna-inc/kanon/pkg/core/context"
)

// DID resolution error codes, as used in didResolutionMetadata.error
const (
	DidResolutionErrorNotFound       = "notFound"
	DidResolutionErrorInvalidDid     = "invalidDid"
	DidResolutionErrorUnsupportedDid = "unsupportedDidMethod"
)

// DidResolutionMetadata describes the outcome of a resolution attempt
type DidResolutionMetadata struct {
	ContentType string `json:"contentType,omitempty"`
	Error       string `json:"error,omitempty"`
	Message     string `json:"message,omitempty"`
}

// DidDocumentMetadata holds metadata about a resolved DID document
type DidDocumentMetadata struct {
	Created     string `json:"created,omitempty"`
	Updated     string `json:"updated,omitempty"`
	Deactivated bool   `json:"deactivated,omitempty"`
	VersionId   string `json:"versionId,omitempty"`
}

// DidResolutionResult is the result of resolving a DID. Resolution is a
// total function: failures are reported in DidResolutionMetadata.Error,
// never as a Go error.
type DidResolutionResult struct {
	DidResolutionMetadata DidResolutionMetadata `json:"didResolutionMetadata"`
	DidDocument           *DidDocument          `json:"didDocument"`
	DidDocumentMetadata   DidDocumentMetadata   `json:"didDocumentMetadata"`
}

// NewDidResolutionError builds a failed resolution result
func NewDidResolutionError(code string, message string) *DidResolutionResult {
	return &DidResolutionResult{
		DidResolutionMetadata: DidResolutionMetadata{
			Error:   code,
			Message: message,
		},
		DidDocument:         nil,
		DidDocumentMetadata: DidDocumentMetadata{},
	}
}

// DidResolver resolves DIDs for a set of supported methods
type DidResolver interface {
	SupportedMethods() []string
	Resolve(ctx *context.AgentContext, did string, parsed *ParsedDid) *DidResolutionResult
}

type cachedResolution struct {
	result    *DidResolutionResult
	expiresAt time.Time
}

// DidResolverService routes DID resolution to registered method resolvers
// and caches successful results.
type DidResolverService struct {
	mu        sync.RWMutex
	resolvers map[string]DidResolver
	cache     map[string]cachedResolution
	cacheTTL  time.Duration
}

// NewDidResolverService creates a resolver service with a default cache TTL
func NewDidResolverService() *DidResolverService {
	return &DidResolverService{
		resolvers: make(map[string]DidResolver),
		cache:     make(map[string]cachedResolution),
		cacheTTL:  5 * time.Minute,
	}
}

// RegisterResolver registers a resolver for its supported methods.
// Later registrations for the same method take precedence.
func (s *DidResolverService) RegisterResolver(resolver DidResolver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, method := range resolver.SupportedMethods() {
		s.resolvers[method] = resolver
	}
}

// SupportsMethod reports whether a resolver is registered for a method
func (s *DidResolverService) SupportsMethod(method string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.resolvers[method]
	return ok
}

// Resolve resolves a DID through the registered resolver for its method.
// Invalid DIDs and unsupported methods produce failed resolution results.
func (s *DidResolverService) Resolve(ctx *context.AgentContext, did string) *DidResolutionResult {
	parsed, err := ParseDid(did)
	if err != nil {
		return NewDidResolutionError(DidResolutionErrorInvalidDid, err.Error())
	}

	s.mu.RLock()
	if cached, ok := s.cache[parsed.Did]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.result
	}
	resolver, ok := s.resolvers[parsed.Method]
	s.mu.RUnlock()

	if !ok {
		return NewDidResolutionError(DidResolutionErrorUnsupportedDid,
			"no resolver registered for did method "+parsed.Method)
	}

	result := resolver.Resolve(ctx, did, parsed)

	if result.DidResolutionMetadata.Error == "" && result.DidDocument != nil {
		s.mu.Lock()
		s.cache[parsed.Did] = cachedResolution{
			result:    result,
			expiresAt: time.Now().Add(s.cacheTTL),
		}
		s.mu.Unlock()
	}

	return result
}

// InvalidateCache removes a DID from the resolution cache
func (s *DidResolverService) InvalidateCache(did string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, did)
}
