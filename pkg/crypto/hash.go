// Package crypto implements the hashing and signing side of the
// transaction pipeline: the personalized BLAKE2b-256 hash primitive, the
// signing-hash computation, and a multi-algorithm recoverable signer.
//
// The hash primitive is BLAKE2b-256 with the domain personalization
// "ckb-default-hash". The personalization is NOT a key: it is a distinct
// BLAKE2b parameter that separates this domain's hashes from any other use
// of the same function.
package crypto

import (
	"hash"

	blake2b "github.com/minio/blake2b-simd"
)

// Personalization tag for all transaction-domain hashing. Exactly 16
// bytes, the maximum BLAKE2b allows.
const HashPersonalization = "ckb-default-hash"

// Blake160Size is the length of a lock arg: a truncated hash identifying
// the owner of the default lock script.
const Blake160Size = 20

// newHash creates a BLAKE2b-256 with the domain personalization. The only
// failure mode of the underlying constructor is an invalid config, and the
// config here is fixed and valid.
func newHash() hash.Hash {
	h, err := blake2b.New(&blake2b.Config{
		Size:   32,
		Person: []byte(HashPersonalization),
	})
	if err != nil {
		panic("crypto: invalid blake2b config: " + err.Error())
	}
	return h
}

// Blake2b256 hashes data with the domain-personalized BLAKE2b-256.
func Blake2b256(data []byte) [32]byte {
	h := newHash()
	h.Write(data)

	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest
}

// Blake160 returns the first 20 bytes of Blake2b256(data). Applied to a
// 33-byte compressed public key it yields the lock arg embedded in the
// default lock script's args.
func Blake160(data []byte) [Blake160Size]byte {
	full := Blake2b256(data)

	var digest [Blake160Size]byte
	copy(digest[:], full[:Blake160Size])
	return digest
}
