package common

import (
	"crypto/rand"
	"encoding/hex"
)

// RandHexString generates a random hexadecimal string from size random
// bytes. The resulting string is twice as long as size, since every byte
// encodes as two hex characters.
//
// It returns an error only if the random number generator fails.
func RandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeBytes overwrites the contents of b with zeros. Useful for removing
// passwords from memory once they have been handed to the auth layer.
// A nil slice is a no-op.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
