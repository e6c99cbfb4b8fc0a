package utils

import (
	"encoding/json"
	"strings"
	"unicode"
)

// IsStringEmpty checks if a string is empty or only whitespace
func IsStringEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsNotEmpty checks if a string is not empty
func IsNotEmpty(s string) bool {
	return !IsStringEmpty(s)
}

// HasMaxLength checks if string has maximum length
func HasMaxLength(s string, maxLength int) bool {
	return len(s) <= maxLength
}

// IsValidJSONString checks if string is valid JSON
func IsValidJSONString(s string) bool {
	var js interface{}
	return json.Unmarshal([]byte(s), &js) == nil
}

// IsValidJSONObjectString checks if string is a valid, non-empty JSON object
func IsValidJSONObjectString(s string) bool {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return false
	}
	return len(obj) > 0
}

// IsValidDIDFormat checks if string matches basic DID format
func IsValidDIDFormat(did string) bool {
	// Basic DID format: did:method:method-specific-id
	parts := strings.Split(did, ":")
	if len(parts) < 3 {
		return false
	}
	if parts[0] != "did" {
		return false
	}
	// Method must be lowercase and contain only letters, numbers, and hyphens
	method := parts[1]
	if method == "" {
		return false
	}
	for _, r := range method {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	// Method-specific-id must not be empty
	return parts[2] != ""
}

// IsValidDid validates a DID string format (alias for IsValidDIDFormat)
func IsValidDid(did string) bool {
	return IsValidDIDFormat(did)
}
