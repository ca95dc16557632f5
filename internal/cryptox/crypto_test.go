package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kontaktvault/internal/common"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine()
	_, err := e.InitializeNew("mySecret1")
	require.NoError(t, err)
	return e
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, SaltLength)

	k1 := DeriveKey("mySecret1", salt)
	k2 := DeriveKey("mySecret1", salt)
	require.Len(t, k1, KeyLength)
	require.Equal(t, k1, k2)

	k3 := DeriveKey("Wrong12345", salt)
	require.NotEqual(t, k1, k3)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	e := newTestEngine(t)

	for _, plaintext := range [][]byte{
		[]byte(""),
		[]byte("x"),
		[]byte(`{"contacts":[]}`),
		make([]byte, 4096),
	} {
		blob, err := e.Encrypt(plaintext)
		require.NoError(t, err)
		require.Len(t, blob, NonceLength+len(plaintext)+16)

		got, err := e.Decrypt(blob)
		require.NoError(t, err)
		require.Equal(t, plaintext, got)
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	e := newTestEngine(t)

	a, err := e.Encrypt([]byte("same plaintext"))
	require.NoError(t, err)
	b, err := e.Encrypt([]byte("same plaintext"))
	require.NoError(t, err)

	require.NotEqual(t, a[:NonceLength], b[:NonceLength])
	require.NotEqual(t, a, b)
}

func TestDecrypt_AnyBitFlipFails(t *testing.T) {
	e := newTestEngine(t)

	blob, err := e.Encrypt([]byte("sensitive contact data"))
	require.NoError(t, err)

	for i := range blob {
		mutated := append([]byte(nil), blob...)
		mutated[i] ^= 0x01
		_, err := e.Decrypt(mutated)
		require.ErrorIs(t, err, common.ErrAuthentication, "flipped bit at offset %d", i)
	}
}

func TestDecrypt_TruncatedBlob(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Decrypt([]byte("short"))
	require.ErrorIs(t, err, common.ErrAuthentication)
}

func TestVerificationToken_RoundTrip(t *testing.T) {
	e := newTestEngine(t)

	token, err := e.CreateVerificationToken()
	require.NoError(t, err)
	require.True(t, e.VerifyPassword(token))

	// A token made under one key must not verify under another.
	other := NewEngine()
	_, err = other.InitializeNew("Wrong12345")
	require.NoError(t, err)
	require.False(t, other.VerifyPassword(token))

	// Corrupt token fails closed.
	token[len(token)-1] ^= 0xff
	require.False(t, e.VerifyPassword(token))
}

func TestEnvelope_RoundTrip(t *testing.T) {
	e := newTestEngine(t)
	payload := []byte(`{"metadata":{},"contacts":[]}`)

	blob, err := e.EncryptEnvelope(payload)
	require.NoError(t, err)
	require.Equal(t, Version, blob[0])
	require.Equal(t, e.Salt(), blob[1:1+SaltLength])
	require.GreaterOrEqual(t, len(blob), MinEnvelopeLength)

	got, err := NewEngine().DecryptEnvelope(blob, "mySecret1")
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestDecryptEnvelope_WrongPassword(t *testing.T) {
	e := newTestEngine(t)
	blob, err := e.EncryptEnvelope([]byte("data"))
	require.NoError(t, err)

	_, err = NewEngine().DecryptEnvelope(blob, "Wrong12345")
	require.ErrorIs(t, err, common.ErrAuthentication)
}

func TestDecryptEnvelope_RejectsBadFrames(t *testing.T) {
	e := newTestEngine(t)
	blob, err := e.EncryptEnvelope([]byte("data"))
	require.NoError(t, err)

	_, err = NewEngine().DecryptEnvelope(blob[:MinEnvelopeLength-1], "mySecret1")
	require.ErrorIs(t, err, ErrInvalidEnvelope)

	bad := append([]byte(nil), blob...)
	bad[0] = 0x7f
	_, err = NewEngine().DecryptEnvelope(bad, "mySecret1")
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestClear_DropsKeyMaterial(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.IsInitialized())

	e.Clear()
	require.False(t, e.IsInitialized())
	require.Nil(t, e.Salt())

	_, err := e.Encrypt([]byte("data"))
	require.ErrorIs(t, err, ErrNotInitialized)
	_, err = e.Decrypt(make([]byte, NonceLength+tagLength))
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestEncrypt_Uninitialized(t *testing.T) {
	_, err := NewEngine().Encrypt([]byte("data"))
	require.ErrorIs(t, err, ErrNotInitialized)
}
