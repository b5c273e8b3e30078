package util

import (
	"crypto/rand"
	"encoding/hex"
)

const idLength = 8

func GenerateRandomID(length int) string {
	b := make([]byte, length)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// GenerateID returns an opaque identifier for ledger records.
func GenerateID() string {
	return GenerateRandomID(idLength)
}
