package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainSequence is the domain prefix for content-addressed sequence
// identity. Version suffix enables future algorithm migration.
const DomainSequence = "vecgen/sequence/v1"

// SequenceHash computes the content-addressed identity of an event
// sequence and its advisory vector size. The hash is stable across
// restarts and across config formats (JSON and YAML configs describing
// the same sequence hash identically).
func SequenceHash(events []Event, vectorSize int) (string, error) {
	canonical, err := MarshalCanonical(events, vectorSize)
	if err != nil {
		return "", fmt.Errorf("SequenceHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSequence, canonical), nil
}

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte separator
// prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
