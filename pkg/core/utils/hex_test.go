package utils

import (
	"bytes"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	data := []byte{0x01, 0xab, 0xff}

	encoded := EncodeHexString(data)
	if encoded != "01abff" {
		t.Errorf("expected 01abff, got %s", encoded)
	}

	decoded, err := DecodeHexString(encoded)
	if err != nil {
		t.Fatalf("DecodeHexString failed: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("round trip mismatch: %v != %v", decoded, data)
	}
}

func TestDecodeHexStringRejectsGarbage(t *testing.T) {
	if _, err := DecodeHexString("zz"); err == nil {
		t.Error("expected error for non-hex input")
	}
}

func TestTrimAndAddHexPrefix(t *testing.T) {
	if TrimHexPrefix("0xabc") != "abc" {
		t.Error("prefix should be trimmed")
	}
	if TrimHexPrefix("abc") != "abc" {
		t.Error("unprefixed value should pass through")
	}
	if AddHexPrefix("abc") != "0xabc" {
		t.Error("prefix should be added")
	}
	if AddHexPrefix("0xabc") != "0xabc" {
		t.Error("prefixed value should pass through")
	}
}
