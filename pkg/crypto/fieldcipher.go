package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"
)

// Decrypt sentinels. Decryption never fails the caller: a bot id that
// cannot be recovered is replaced by one of these placeholder strings.
const (
	SentinelKeyMismatch = "[Encrypted - Key Mismatch]"
)

// FieldCipher encrypts a single sensitive string field with AES-256-GCM.
// The hex-encoded ciphertext is self-describing (nonce prepended), so it
// is stored directly in one column with no separate IV.
type FieldCipher struct {
	key []byte
}

var fieldReadNonce = func(b []byte) (int, error) { return io.ReadFull(rand.Reader, b) }

// NewFieldCipher builds a cipher from a 64-hex-char (32-byte) key.
func NewFieldCipher(keyHex string) (*FieldCipher, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	return &FieldCipher{key: key}, nil
}

// Encrypt encrypts a plaintext bot id for storage.
func (f *FieldCipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(f.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := fieldReadNonce(nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(ciphertext), nil
}

// Decrypt recovers the plaintext bot id. It degrades gracefully: a GCM
// authentication failure (wrong key or tampered data) yields the
// key-mismatch sentinel, any other decoding failure yields a sentinel
// naming the failure kind. No error ever propagates to the caller.
func (f *FieldCipher) Decrypt(ciphertextHex string) string {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "[Decryption Error: InvalidEncoding]"
	}

	block, err := aes.NewCipher(f.key)
	if err != nil {
		return "[Decryption Error: InvalidKey]"
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "[Decryption Error: InvalidKey]"
	}

	if len(ciphertext) < gcm.NonceSize() {
		return "[Decryption Error: TruncatedCiphertext]"
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return SentinelKeyMismatch
	}
	return string(plaintext)
}

// IsDecryptSentinel reports whether a Decrypt result is one of the
// placeholder strings rather than a recovered plaintext.
func IsDecryptSentinel(s string) bool {
	return s == SentinelKeyMismatch || strings.HasPrefix(s, "[Decryption Error:")
}

// Fingerprint returns a deterministic keyed digest of the plaintext,
// hex encoded. GCM ciphertexts are randomized per call, so the unique
// one-bot-one-assignment constraint is enforced on this value instead
// of on the ciphertext column.
func (f *FieldCipher) Fingerprint(plaintext string) string {
	mac := hmac.New(sha256.New, f.key)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}
