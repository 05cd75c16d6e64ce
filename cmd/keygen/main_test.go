package main

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	key, err := generateKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(key) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(key))
	}
	if _, err := hex.DecodeString(key); err != nil {
		t.Fatalf("not valid hex: %v", err)
	}

	other, err := generateKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key == other {
		t.Fatal("two generated keys must differ")
	}
}

func TestGenerateKey_RandFailure(t *testing.T) {
	origReadRand := readRand
	defer func() { readRand = origReadRand }()

	readRand = func([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

	_, err := generateKey()
	if err == nil {
		t.Fatal("expected error from failing randomness source")
	}
}

func TestMain_PrintsKey(t *testing.T) {
	var printed string
	origPrintf := printfFn
	defer func() { printfFn = origPrintf }()
	printfFn = func(format string, a ...interface{}) (int, error) {
		printed = format
		if len(a) > 0 {
			printed = a[0].(string)
		}
		return 0, nil
	}

	main()

	if len(strings.TrimSpace(printed)) != 64 {
		t.Fatalf("expected a 64-char key, got %q", printed)
	}
}
