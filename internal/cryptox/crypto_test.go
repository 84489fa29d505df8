package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_KnownVectors(t *testing.T) {
	require.Equal(t, "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", HashPassword("password"))
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashPassword(""))
}

func TestHashPassword_NeverPlaintext(t *testing.T) {
	h := HashPassword("hunter2")
	require.Len(t, h, 64)
	require.NotContains(t, h, "hunter2")
}

func TestDeriveVerifier_Deterministic(t *testing.T) {
	salt := []byte("fixed-salt")
	h := HashPassword("secret-password")

	v1 := DeriveVerifier(h, salt)
	v2 := DeriveVerifier(h, salt)

	if !bytes.Equal(v1, v2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	require.Len(t, v1, 32)
}

func TestDeriveVerifier_DifferentSalts(t *testing.T) {
	h := HashPassword("secret-password")

	v1 := DeriveVerifier(h, []byte("salt-1"))
	v2 := DeriveVerifier(h, []byte("salt-2"))

	if bytes.Equal(v1, v2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestCheckVerifier(t *testing.T) {
	salt, err := NewSalt(16)
	require.NoError(t, err)
	require.Len(t, salt, 16)

	v := DeriveVerifier(HashPassword("right"), salt)

	require.True(t, CheckVerifier(HashPassword("right"), salt, v))
	require.False(t, CheckVerifier(HashPassword("wrong"), salt, v))
	require.False(t, CheckVerifier("right", salt, v), "plaintext must not match the hashed form")
}
