package utils

import "testing"

func TestIsStringEmpty(t *testing.T) {
	if !IsStringEmpty("") {
		t.Error("empty string should be empty")
	}
	if !IsStringEmpty("   ") {
		t.Error("whitespace string should be empty")
	}
	if IsStringEmpty("x") {
		t.Error("non-empty string should not be empty")
	}
}

func TestHasMaxLength(t *testing.T) {
	if !HasMaxLength("abc", 3) {
		t.Error("length 3 should satisfy max 3")
	}
	if HasMaxLength("abcd", 3) {
		t.Error("length 4 should not satisfy max 3")
	}
}

func TestIsValidJSONString(t *testing.T) {
	valid := []string{`{}`, `{"a":1}`, `[1,2]`, `"text"`, `42`}
	for _, s := range valid {
		if !IsValidJSONString(s) {
			t.Errorf("%q should be valid JSON", s)
		}
	}
	invalid := []string{``, `{`, `{"a":}`, `not json`}
	for _, s := range invalid {
		if IsValidJSONString(s) {
			t.Errorf("%q should be invalid JSON", s)
		}
	}
}

func TestIsValidJSONObjectString(t *testing.T) {
	if !IsValidJSONObjectString(`{"a":1}`) {
		t.Error("non-empty object should be valid")
	}
	for _, s := range []string{`{}`, `[1,2]`, `"text"`, ``, `null`} {
		if IsValidJSONObjectString(s) {
			t.Errorf("%q should not be a valid non-empty object", s)
		}
	}
}

func TestIsValidDIDFormat(t *testing.T) {
	valid := []string{
		"did:ethr:0xB9c5714089478a327F09197987f16f9E5d936E8a",
		"did:ethr:sepolia:0xB9c5714089478a327F09197987f16f9E5d936E8a",
		"did:key:z6Mkf5rGMoatrSj1f4CyvuHBeXJELe9RPdzo2PKGNCKVtZxP",
	}
	for _, did := range valid {
		if !IsValidDIDFormat(did) {
			t.Errorf("%q should be a valid DID", did)
		}
	}
	invalid := []string{"", "did:", "did:ethr", "notdid:ethr:x", "did:ETHR:x", "did::x"}
	for _, did := range invalid {
		if IsValidDIDFormat(did) {
			t.Errorf("%q should be an invalid DID", did)
		}
	}
}
