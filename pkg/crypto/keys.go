package crypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"github.com/cell-labs/ckb-txkit/pkg/tx"
)

// WIF (Wallet Import Format) import and export for the 32-byte private
// key scalars the Signer consumes. WIF is the common interchange format
// for secp256k1 keys:
//
//	version_byte || key (32 bytes) || [0x01 if compressed] || checksum (4)
//
// base58-encoded, where the checksum is the first 4 bytes of
// SHA-256(SHA-256(payload)).

const (
	wifVersionMainnet = 0x80
	wifVersionTestnet = 0xef
)

// PrivateKeyFromWIF decodes a WIF string to the raw 32-byte scalar.
func PrivateKeyFromWIF(wif string) ([32]byte, error) {
	var key [32]byte

	decoded := base58.Decode(wif)
	if len(decoded) != 37 && len(decoded) != 38 {
		return key, &tx.ParameterError{Message: "invalid WIF length"}
	}

	version := decoded[0]
	if version != wifVersionMainnet && version != wifVersionTestnet {
		return key, &tx.ParameterError{
			Message: fmt.Sprintf("invalid WIF version byte 0x%02x", version),
		}
	}

	payload := decoded[:len(decoded)-4]
	provided := decoded[len(decoded)-4:]
	expected := wifChecksum(payload)
	for i := range provided {
		if provided[i] != expected[i] {
			return key, &tx.ParameterError{Message: "WIF checksum mismatch"}
		}
	}

	copy(key[:], payload[1:33])
	return key, nil
}

// PrivateKeyToWIF encodes a raw scalar as WIF. compressed records whether
// the corresponding public key should be used in compressed form (always
// true for keys feeding this pipeline, kept as a parameter for
// interchange with other tooling).
func PrivateKeyToWIF(key [32]byte, compressed, testnet bool) string {
	version := byte(wifVersionMainnet)
	if testnet {
		version = wifVersionTestnet
	}

	payload := make([]byte, 0, 38)
	payload = append(payload, version)
	payload = append(payload, key[:]...)
	if compressed {
		payload = append(payload, 0x01)
	}
	checksum := wifChecksum(payload)
	payload = append(payload, checksum[:]...)

	return base58.Encode(payload)
}

func wifChecksum(payload []byte) [4]byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])

	var checksum [4]byte
	copy(checksum[:], second[:4])
	return checksum
}
