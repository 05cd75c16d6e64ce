package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
)

var (
	printfFn = fmt.Printf
	fatalfFn = log.Fatalf
	readRand = func(b []byte) (int, error) { return io.ReadFull(rand.Reader, b) }
)

// generateKey produces a random 32-byte key as 64 hex characters, the
// format SESSION_ENCRYPTION_KEY and BOT_ID_ENCRYPTION_KEY expect.
func generateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := readRand(key); err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

func main() {
	key, err := generateKey()
	if err != nil {
		fatalfFn("Failed to generate key: %v", err)
	}
	printfFn("%s\n", key)
}
