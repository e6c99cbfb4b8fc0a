package domain

import (
	"strings"

	"github.com/ajna-inc/kanon/pkg/dids"
)

// DidDocumentKey pairs a verification method with its role in the document
type DidDocumentKey struct {
	Role               string
	VerificationMethod *dids.VerificationMethod
}

// KeysFromDocument extracts all verification methods with their roles
func KeysFromDocument(doc *dids.DidDocument) []DidDocumentKey {
	var keys []DidDocumentKey
	for i := range doc.VerificationMethod {
		keys = append(keys, DidDocumentKey{
			Role:               "verificationMethod",
			VerificationMethod: &doc.VerificationMethod[i],
		})
	}
	return keys
}

// IsSecp256k1Method reports whether a verification method type carries a
// secp256k1 key
func IsSecp256k1Method(vmType string) bool {
	return strings.Contains(vmType, "Secp256k1")
}
