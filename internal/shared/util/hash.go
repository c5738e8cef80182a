package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the hex SHA-256 fingerprint used for duplicate
// detection. The digest is computed over the extracted text; when extraction
// produced no text it falls back to the raw upload bytes so that distinct
// no-text files are not collapsed into a single duplicate class.
func ContentHash(text string, raw []byte) string {
	if text == "" {
		sum := sha256.Sum256(raw)
		return hex.EncodeToString(sum[:])
	}
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
