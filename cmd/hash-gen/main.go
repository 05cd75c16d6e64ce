package main

import (
	"fmt"
	"log"
	"os"

	"bot-commander.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	fatalfFn       = log.Fatalf
)

// resolvePassword returns the first CLI argument, or a throwaway
// default for quick local testing.
func resolvePassword(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "Commander.Dev-01"
}

func generateHash(password string) (string, error) {
	return crypto.HashPassword(password)
}

func main() {
	password := resolvePassword(os.Args[1:])

	printfFn("Generating hash for password: %s\n", password)

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}
