package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlake2b256EmptyInput(t *testing.T) {
	// Known digest of the empty input under the "ckb-default-hash"
	// personalization.
	expected, err := hex.DecodeString(
		"44f4c69744d5f8c55d642062949dcae49bc4e7ef43d388c5a12f42b5633d163e")
	require.NoError(t, err)

	digest := Blake2b256(nil)
	assert.Equal(t, expected, digest[:])
}

func TestBlake2b256Deterministic(t *testing.T) {
	data := []byte("cell model transaction")
	assert.Equal(t, Blake2b256(data), Blake2b256(data))
}

func TestBlake2b256InputSensitive(t *testing.T) {
	a := Blake2b256([]byte{0x00})
	b := Blake2b256([]byte{0x01})
	assert.NotEqual(t, a, b)
}

func TestBlake160IsTruncatedBlake2b256(t *testing.T) {
	data := []byte{0x02, 0x03, 0x04}

	full := Blake2b256(data)
	short := Blake160(data)
	assert.Equal(t, full[:Blake160Size], short[:])
}
