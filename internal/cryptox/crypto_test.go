package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_StableAndShort(t *testing.T) {
	a := Fingerprint("7f1c5c7e-0c8e-4b8e-9a55-6d2b8d0a1f00")
	b := Fingerprint("7f1c5c7e-0c8e-4b8e-9a55-6d2b8d0a1f00")

	require.Len(t, a, 16)
	assert.Equal(t, a, b)
	_, err := hex.DecodeString(a)
	assert.NoError(t, err)
}

func TestFingerprint_DiffersPerSecret(t *testing.T) {
	assert.NotEqual(t, Fingerprint("token-a"), Fingerprint("token-b"))
}

func TestFingerprint_Empty(t *testing.T) {
	assert.Equal(t, "", Fingerprint(""))
}
