// Package cryptox implements the encrypted database file format: Argon2id
// key derivation, AES-256-GCM authenticated encryption and the versioned
// envelope written to disk.
//
// Envelope layout, byte-exact:
//
//	[0]        version byte (currently 0x01)
//	[1..17)    salt (16 bytes)
//	[17..29)   nonce (12 bytes)
//	[29..N-16) ciphertext
//	[N-16..N)  GCM authentication tag (16 bytes)
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"kontaktvault/internal/common"
)

const (
	// Version is the current envelope format version.
	Version byte = 0x01

	SaltLength  = 16
	NonceLength = 12
	KeyLength   = 32
	tagLength   = 16

	// MinEnvelopeLength is the smallest valid envelope: version byte, salt,
	// nonce and the authentication tag around an empty ciphertext.
	MinEnvelopeLength = 1 + SaltLength + NonceLength + tagLength

	// Argon2id parameters. Changing any of these changes the derived key,
	// so existing databases would stop opening.
	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
)

// verificationPlaintext is the known constant encrypted into the
// verification token stored inside the database payload.
var verificationPlaintext = []byte("KONTAKTVAULT_VERIFICATION_V1")

var (
	ErrNotInitialized     = errors.New("encryption not initialized")
	ErrInvalidEnvelope    = errors.New("invalid database file: too short")
	ErrUnsupportedVersion = errors.New("unsupported database file version")
)

// Engine derives and holds the AES-256 key for one open database.
// Call Clear when the database closes, and on any failed open, to limit
// how long key material stays in memory.
type Engine struct {
	key  []byte
	salt []byte
}

func NewEngine() *Engine { return &Engine{} }

// IsInitialized reports whether a key has been derived.
func (e *Engine) IsInitialized() bool { return e.key != nil }

// Salt returns a copy of the current salt, or nil if none is loaded.
func (e *Engine) Salt() []byte {
	if e.salt == nil {
		return nil
	}
	return append([]byte(nil), e.salt...)
}

// GenerateSalt draws a fresh random salt from the system CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey derives a 32-byte AES key from the password and salt using
// Argon2id. Deterministic for fixed inputs, and deliberately slow.
func DeriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, KeyLength)
}

// InitializeNew generates a fresh salt and derives the key for a new
// database. The returned salt is what gets persisted in the envelope.
func (e *Engine) InitializeNew(password string) ([]byte, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}
	e.salt = salt
	e.key = DeriveKey(password, salt)
	return e.Salt(), nil
}

// InitializeExisting derives the key from a stored salt. It performs no
// correctness check itself; use VerifyPassword for that.
func (e *Engine) InitializeExisting(password string, salt []byte) {
	e.salt = append([]byte(nil), salt...)
	e.key = DeriveKey(password, e.salt)
}

// CreateVerificationToken encrypts the known verification constant under
// the current key. The token is stored inside the database payload and
// rechecked on open.
func (e *Engine) CreateVerificationToken() ([]byte, error) {
	return e.Encrypt(verificationPlaintext)
}

// VerifyPassword decrypts a verification token and compares the result to
// the known constant. Any failure yields false; it never returns an error.
func (e *Engine) VerifyPassword(token []byte) bool {
	if e.key == nil {
		return false
	}
	plaintext, err := e.Decrypt(token)
	if err != nil {
		return false
	}
	return bytes.Equal(plaintext, verificationPlaintext)
}

// Encrypt seals plaintext with AES-256-GCM under a fresh random 12-byte
// nonce and returns nonce ‖ ciphertext ‖ tag. A nonce is never reused
// under the same key; every call draws a new one.
func (e *Engine) Encrypt(plaintext []byte) ([]byte, error) {
	if e.key == nil {
		return nil, ErrNotInitialized
	}

	nonce := make([]byte, NonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	aead, err := e.aead()
	if err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt splits the leading nonce off blob, then decrypts and verifies
// the remainder. A wrong key and a tampered blob are indistinguishable:
// both return common.ErrAuthentication.
func (e *Engine) Decrypt(blob []byte) ([]byte, error) {
	if e.key == nil {
		return nil, ErrNotInitialized
	}
	if len(blob) < NonceLength+tagLength {
		return nil, common.ErrAuthentication
	}

	aead, err := e.aead()
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, blob[:NonceLength], blob[NonceLength:], nil)
	if err != nil {
		return nil, common.ErrAuthentication
	}
	return plaintext, nil
}

// EncryptEnvelope produces the complete file payload:
// version ‖ salt ‖ Encrypt(data).
func (e *Engine) EncryptEnvelope(data []byte) ([]byte, error) {
	if e.key == nil || e.salt == nil {
		return nil, ErrNotInitialized
	}

	sealed, err := e.Encrypt(data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 1+len(e.salt)+len(sealed))
	out = append(out, Version)
	out = append(out, e.salt...)
	return append(out, sealed...), nil
}

// DecryptEnvelope validates the envelope frame, derives the key from the
// embedded salt and the given password, and decrypts the payload.
func (e *Engine) DecryptEnvelope(blob []byte, password string) ([]byte, error) {
	if len(blob) < MinEnvelopeLength {
		return nil, ErrInvalidEnvelope
	}
	if blob[0] != Version {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnsupportedVersion, blob[0])
	}

	salt := blob[1 : 1+SaltLength]
	e.InitializeExisting(password, salt)
	return e.Decrypt(blob[1+SaltLength:])
}

// Clear overwrites the key and salt buffers with random bytes before
// dropping them. Copies the runtime or OS may already have made cannot be
// scrubbed; this limits, not eliminates, key-material lifetime.
func (e *Engine) Clear() {
	Wipe(e.key)
	e.key = nil
	Wipe(e.salt)
	e.salt = nil
}

// Wipe overwrites b with random bytes, falling back to zeros if the
// random source fails.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	if _, err := rand.Read(b); err != nil {
		for i := range b {
			b[i] = 0
		}
	}
}

func (e *Engine) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
