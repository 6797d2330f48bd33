// Package address implements the human-readable address encoding for lock
// scripts: bech32m (BIP-350) over a payload of
//
//	format_type (0x00) || code_hash (32) || hash_type (1) || args
//
// giving strings of the form hrp || '1' || base32-payload || checksum,
// e.g. "ckb1..." on mainnet. Payload bytes are repacked into 5-bit groups
// (MSB first, zero-padded), checksummed with the bech32m constant and
// mapped through the standard 32-character alphabet.
//
// Encoding only; decoding is the concern of wallet tooling.
package address

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/cell-labs/ckb-txkit/pkg/crypto"
	"github.com/cell-labs/ckb-txkit/pkg/tx"
)

// Human-readable prefixes.
const (
	MainnetHRP = "ckb"
	TestnetHRP = "ckt"
)

// fullFormatType is the payload discriminator for the full address format
// (code hash + hash type + args spelled out).
const fullFormatType = 0x00

// Secp256k1Blake160CodeHash is the code hash of the default lock script,
// which verifies a recoverable secp256k1 signature against the 20-byte
// lock arg in its args field.
var Secp256k1Blake160CodeHash = mustHash32(
	"9bd7e06f3ecf4be0f2fcd2188b23f1b9fcc88e5d4b65a8637b17723bbda3cce8")

// Encode produces the bech32m string for an arbitrary payload under hrp.
func Encode(hrp string, payload []byte) (string, error) {
	grouped, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", &tx.ParameterError{Message: "payload bit regrouping failed", Cause: err}
	}
	encoded, err := bech32.EncodeM(hrp, grouped)
	if err != nil {
		return "", &tx.ParameterError{Message: "bech32m encode failed", Cause: err}
	}
	return encoded, nil
}

// EncodeBounded is Encode with a caller-supplied bound on the output
// length, for callers marshalling into fixed-size display buffers.
// Exceeding the bound is a ParameterError.
func EncodeBounded(hrp string, payload []byte, maxLen int) (string, error) {
	encoded, err := Encode(hrp, payload)
	if err != nil {
		return "", err
	}
	if len(encoded) > maxLen {
		return "", &tx.ParameterError{Message: "encoded address exceeds caller buffer bound"}
	}
	return encoded, nil
}

// EncodeScript produces the full address for an arbitrary lock script.
func EncodeScript(hrp string, script *tx.Script) (string, error) {
	if script == nil {
		return "", &tx.ParameterError{Message: "lock script is not built"}
	}
	payload := make([]byte, 0, 34+len(script.Args))
	payload = append(payload, fullFormatType)
	payload = append(payload, script.CodeHash[:]...)
	payload = append(payload, byte(script.HashType))
	payload = append(payload, script.Args...)
	return Encode(hrp, payload)
}

// EncodeSecp256k1Blake160 produces the address of the default lock script
// for a 20-byte lock arg (see crypto.Signer.LockArg).
func EncodeSecp256k1Blake160(hrp string, lockArg [crypto.Blake160Size]byte) (string, error) {
	script, err := tx.NewScript(Secp256k1Blake160CodeHash, tx.HashTypeType, lockArg[:])
	if err != nil {
		return "", err
	}
	return EncodeScript(hrp, script)
}

func mustHash32(s string) [32]byte {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		panic("address: invalid code hash constant")
	}
	var out [32]byte
	copy(out[:], raw)
	return out
}
