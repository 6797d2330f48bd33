package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"io"
	"strconv"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/cell-labs/ckb-txkit/pkg/tx"
)

// Algorithm selects the message-hashing convention applied to a signing
// hash before the secp256k1 signature is produced. The identifiers match
// the on-chain lock scripts that verify each convention.
type Algorithm byte

const (
	// AlgorithmCkb signs the hash directly; the domain hash has already
	// been applied by the signing-hash pipeline.
	AlgorithmCkb Algorithm = 0x00
	// AlgorithmEthereum applies the personal-message convention: the hash
	// is prefixed with "\x19Ethereum Signed Message:\n" and its decimal
	// length, then Keccak-256 hashed.
	AlgorithmEthereum Algorithm = 0x01
	// AlgorithmBitcoin applies the signed-message convention: the hash is
	// framed with varint-length-prefixed "Bitcoin Signed Message:\n",
	// then double SHA-256 hashed.
	AlgorithmBitcoin Algorithm = 0x04
)

const bitcoinMessagePrefix = "Bitcoin Signed Message:\n"

// Signer holds a secp256k1 private key and a selected algorithm, set once
// via Begin, and produces 65-byte recoverable signatures:
// recovery id (1) || r (32) || s (32).
//
// Signing is deterministic (RFC 6979 nonces), so repeated signing of the
// same hash with the same key is reproducible. Call Wipe when done with a
// Signer; it zeroes the key material in place and is safe to defer at
// Begin time so it runs on every exit path.
//
// A Signer is exclusively owned by one logical flow; it has no internal
// locking.
type Signer struct {
	key *secp256k1.PrivateKey
	alg Algorithm
}

// Begin loads the 32-byte private key scalar and selects the algorithm.
// An unrecognized algorithm id is an AlgorithmError; a zero scalar is a
// ParameterError. Begin on an already-initialized Signer replaces the key
// after wiping the old one.
func (s *Signer) Begin(key [32]byte, alg Algorithm) error {
	switch alg {
	case AlgorithmCkb, AlgorithmEthereum, AlgorithmBitcoin:
	default:
		return &tx.AlgorithmError{ID: byte(alg)}
	}

	if key == ([32]byte{}) {
		return &tx.ParameterError{Message: "private key scalar is zero"}
	}

	s.Wipe()
	s.key = secp256k1.PrivKeyFromBytes(key[:])
	s.alg = alg
	return nil
}

// Sign hashes the message per the selected algorithm's convention and
// produces a recoverable signature over the result.
func (s *Signer) Sign(hash [32]byte) ([tx.SignatureSize]byte, error) {
	var sig [tx.SignatureSize]byte
	if s.key == nil {
		return sig, &tx.NoKeyError{Op: "Sign"}
	}

	digest := s.messageDigest(hash)

	// SignCompact yields header (27 + recovery id + 4 for a compressed
	// key) || r || s. Re-frame as recovery id || r || s.
	compact := ecdsa.SignCompact(s.key, digest[:], true)
	if len(compact) != tx.SignatureSize {
		return sig, &tx.SignError{Message: "unexpected compact signature length"}
	}
	sig[0] = compact[0] - 27 - 4
	copy(sig[1:], compact[1:])
	return sig, nil
}

// PublicKey returns the 33-byte compressed public key for the loaded key.
func (s *Signer) PublicKey() ([33]byte, error) {
	var pub [33]byte
	if s.key == nil {
		return pub, &tx.NoKeyError{Op: "PublicKey"}
	}
	copy(pub[:], s.key.PubKey().SerializeCompressed())
	return pub, nil
}

// LockArg returns the 20-byte lock identifier: the truncated domain hash
// of the compressed public key. It is what the default lock script's args
// field carries.
func (s *Signer) LockArg() ([Blake160Size]byte, error) {
	var arg [Blake160Size]byte
	pub, err := s.PublicKey()
	if err != nil {
		return arg, &tx.NoKeyError{Op: "LockArg"}
	}
	return Blake160(pub[:]), nil
}

// Wipe zeroes the private key in place. The Signer returns to its
// uninitialized state; Sign, PublicKey and LockArg fail with NoKeyError
// until Begin is called again. Wipe on an uninitialized Signer is a no-op.
func (s *Signer) Wipe() {
	if s.key != nil {
		s.key.Zero()
		s.key = nil
	}
	s.alg = AlgorithmCkb
}

// messageDigest applies the selected algorithm's message-hashing
// convention to the 32-byte message.
func (s *Signer) messageDigest(hash [32]byte) [32]byte {
	switch s.alg {
	case AlgorithmEthereum:
		k := sha3.NewLegacyKeccak256()
		k.Write([]byte("\x19Ethereum Signed Message:\n"))
		k.Write([]byte(strconv.Itoa(len(hash))))
		k.Write(hash[:])

		var digest [32]byte
		copy(digest[:], k.Sum(nil))
		return digest

	case AlgorithmBitcoin:
		h := sha256.New()
		writeCompactSize(h, uint64(len(bitcoinMessagePrefix)))
		io.WriteString(h, bitcoinMessagePrefix)
		writeCompactSize(h, uint64(len(hash)))
		h.Write(hash[:])

		first := h.Sum(nil)
		return sha256.Sum256(first)

	default: // AlgorithmCkb
		return hash
	}
}

// writeCompactSize writes a Bitcoin-style varint.
func writeCompactSize(w io.Writer, n uint64) {
	if n < 253 {
		w.Write([]byte{byte(n)})
	} else if n <= 0xFFFF {
		w.Write([]byte{253})
		binary.Write(w, binary.LittleEndian, uint16(n))
	} else if n <= 0xFFFFFFFF {
		w.Write([]byte{254})
		binary.Write(w, binary.LittleEndian, uint32(n))
	} else {
		w.Write([]byte{255})
		binary.Write(w, binary.LittleEndian, n)
	}
}
