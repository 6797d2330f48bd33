package crypto

import (
	"github.com/cell-labs/ckb-txkit/pkg/molecule"
	"github.com/cell-labs/ckb-txkit/pkg/tx"
)

// SigningHash computes the 32-byte hash a transaction's owner must sign.
//
// Three ordered stages:
//
//  1. raw_hash = Hash(serialized RawTransaction)
//  2. build a WitnessArgs whose lock field is a zero-filled buffer of
//     the signature length (65 bytes), other fields None, and serialize
//     it to wa_bytes
//  3. signing_hash = Hash(raw_hash || u64_le(len(wa_bytes)) || wa_bytes)
//
// The hash must not depend on the eventual signature bytes, which do not
// exist yet, so a same-length zero placeholder stands in. The final
// witness is swapped in afterwards by Transaction.SetWitnessSignature
// without touching the raw transaction, preserving the signed hash.
//
// The placeholder length is fixed at tx.SignatureSize regardless of the
// selected signing algorithm; all supported algorithms produce 65-byte
// signatures, and the same-length invariant depends on that staying true.
//
// The result is a pure function of the RawTransaction contents: calling
// it twice on an unchanged transaction yields an identical hash.
func SigningHash(t *tx.Transaction) ([32]byte, error) {
	if t == nil {
		return [32]byte{}, &tx.ParameterError{Message: "transaction is not built"}
	}

	rawHash := Blake2b256(t.RawBytes())

	placeholder, err := tx.NewWitnessArgs(make([]byte, tx.SignatureSize), nil, nil)
	if err != nil {
		return [32]byte{}, &tx.BuildError{Entity: "WitnessArgs", Message: "placeholder witness encode failed", Cause: err}
	}
	waBytes := placeholder.Serialized()

	h := newHash()
	h.Write(rawHash[:])
	h.Write(molecule.PutUint64(nil, uint64(len(waBytes))))
	h.Write(waBytes)

	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest, nil
}

// TransactionHash returns the transaction hash: the domain hash of the
// serialized RawTransaction. This is the hash other transactions use in
// their OutPoints to reference this transaction's outputs.
func TransactionHash(t *tx.Transaction) ([32]byte, error) {
	if t == nil {
		return [32]byte{}, &tx.ParameterError{Message: "transaction is not built"}
	}
	return Blake2b256(t.RawBytes()), nil
}
