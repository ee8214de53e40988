package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainMergeInput prefixes input hashes. The version suffix allows the
// hashed shape to change without colliding with old hashes.
const DomainMergeInput = "calmerge/merge-input/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// InputHash identifies a merge request: the fields and every context
// setting that can change the outcome.
func InputHash(input map[string]int64, strict, checkUnused bool, zone, resolver string) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"check_unused": checkUnused,
		"input":        input,
		"resolver":     resolver,
		"strict":       strict,
		"zone":         zone,
	})
	if err != nil {
		return "", fmt.Errorf("InputHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainMergeInput, canonical), nil
}
