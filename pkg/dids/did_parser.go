package dids

import (
	"fmt"
	"regexp"
	"strings"
)

// ParsedDid holds the components of a parsed DID
type ParsedDid struct {
	Did      string
	Method   string
	Id       string
	Path     string
	Query    string
	Fragment string
}

var didRegex = regexp.MustCompile(`^did:([a-z0-9]+):([^/?#]+)(/[^?#]*)?(\?[^#]*)?(#.*)?$`)

// ParseDid parses a DID string into its components
func ParseDid(did string) (*ParsedDid, error) {
	matches := didRegex.FindStringSubmatch(did)
	if matches == nil {
		return nil, fmt.Errorf("invalid DID: %s", did)
	}

	parsed := &ParsedDid{
		Did:    "did:" + matches[1] + ":" + matches[2],
		Method: matches[1],
		Id:     matches[2],
	}
	if matches[3] != "" {
		parsed.Path = matches[3]
	}
	if matches[4] != "" {
		parsed.Query = strings.TrimPrefix(matches[4], "?")
	}
	if matches[5] != "" {
		parsed.Fragment = strings.TrimPrefix(matches[5], "#")
	}
	return parsed, nil
}

// IsDid checks if a string looks like a DID
func IsDid(s string) bool {
	return didRegex.MatchString(s)
}
