package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// DeterministicID hashes namespace+":"+key with SHA-256 and formats the
// first 16 bytes of the digest as a UUID-v4-shaped string (version
// nibble forced to 4, variant bits forced to RFC-4122). It is byte-
// identical across machines and runs for the same inputs — the
// foundation of idempotent re-ingestion.
func DeterministicID(namespace, key string) string {
	sum := sha256.Sum256([]byte(namespace + ":" + key))
	b := make([]byte, 16)
	copy(b, sum[:16])

	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // RFC-4122 variant

	hexStr := hex.EncodeToString(b)
	return fmt.Sprintf("%s-%s-%s-%s-%s",
		hexStr[0:8], hexStr[8:12], hexStr[12:16], hexStr[16:20], hexStr[20:32])
}

// AssetIDFromAPINumber builds the deterministic asset identifier for
// API-bearing sources: <SOURCE_TAG>_<zero-padded API number>.
func AssetIDFromAPINumber(sourceTag, apiNumber string, width int) string {
	padded := apiNumber
	if width > len(apiNumber) {
		padded = strings.Repeat("0", width-len(apiNumber)) + apiNumber
	}
	return strings.ToUpper(sourceTag) + "_" + padded
}

// AssetIDFromKey builds the deterministic asset identifier for sources
// with no API number: <SOURCE_TAG>_<SHA-256(source_key) as UUID>.
func AssetIDFromKey(sourceTag, sourceKey string) string {
	return strings.ToUpper(sourceTag) + "_" + DeterministicID(sourceTag, sourceKey)
}

// OperatorIDFromNumber builds the deterministic operator identifier
// when the source provides an operator number: <SOURCE_TAG>_OP_<number>.
func OperatorIDFromNumber(sourceTag, operatorNumber string) string {
	return strings.ToUpper(sourceTag) + "_OP_" + operatorNumber
}

// OperatorIDFromName builds the deterministic operator identifier when
// no operator number is available: <SOURCE_TAG>_OP_<normalized name>.
func OperatorIDFromName(sourceTag, name string) string {
	return strings.ToUpper(sourceTag) + "_OP_" + NormalizeForMatching(name)
}
