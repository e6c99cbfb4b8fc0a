package dids

import "testing"

func TestParseDid(t *testing.T) {
	parsed, err := ParseDid("did:ethr:0xB9c5714089478a327F09197987f16f9E5d936E8a")
	if err != nil {
		t.Fatalf("ParseDid failed: %v", err)
	}
	if parsed.Method != "ethr" {
		t.Errorf("expected method ethr, got %s", parsed.Method)
	}
	if parsed.Id != "0xB9c5714089478a327F09197987f16f9E5d936E8a" {
		t.Errorf("unexpected id: %s", parsed.Id)
	}
}

func TestParseDidWithPathQueryFragment(t *testing.T) {
	parsed, err := ParseDid("did:ethr:0xB9c5714089478a327F09197987f16f9E5d936E8a/resources/abc?versionId=1#key-1")
	if err != nil {
		t.Fatalf("ParseDid failed: %v", err)
	}
	if parsed.Did != "did:ethr:0xB9c5714089478a327F09197987f16f9E5d936E8a" {
		t.Errorf("unexpected base did: %s", parsed.Did)
	}
	if parsed.Path != "/resources/abc" {
		t.Errorf("unexpected path: %s", parsed.Path)
	}
	if parsed.Query != "versionId=1" {
		t.Errorf("unexpected query: %s", parsed.Query)
	}
	if parsed.Fragment != "key-1" {
		t.Errorf("unexpected fragment: %s", parsed.Fragment)
	}
}

func TestParseDidWithNetworkSegment(t *testing.T) {
	parsed, err := ParseDid("did:ethr:sepolia:0xB9c5714089478a327F09197987f16f9E5d936E8a")
	if err != nil {
		t.Fatalf("ParseDid failed: %v", err)
	}
	if parsed.Id != "sepolia:0xB9c5714089478a327F09197987f16f9E5d936E8a" {
		t.Errorf("unexpected id: %s", parsed.Id)
	}
}

func TestParseDidRejectsMalformed(t *testing.T) {
	for _, did := range []string{"", "did:", "did:ethr:", "notadid", "did:UPPER:x"} {
		if _, err := ParseDid(did); err == nil {
			t.Errorf("%q should fail to parse", did)
		}
	}
}

func TestIsDid(t *testing.T) {
	if !IsDid("did:ethr:0xabc") {
		t.Error("expected valid did")
	}
	if IsDid("http://example.com") {
		t.Error("expected invalid did")
	}
}
