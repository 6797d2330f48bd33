// Package api provides the high-level public API for building and signing
// transactions.
//
// This is the main entry point for applications using the library. The
// flow mirrors the pipeline the lower-level packages expose:
//
//  1. BuildTransaction - assembles a Transaction from a Proposal
//  2. crypto.SigningHash - derives the hash to sign
//  3. crypto.Signer - produces the recoverable signature
//  4. Transaction.SetWitnessSignature + Serialize - final wire bytes
//
// SignedTransaction runs the whole flow in one call for the common
// single-owner case. The resulting byte buffer is ready to be embedded in
// a send_transaction JSON-RPC call; network transport is out of scope.
package api

import (
	"github.com/cell-labs/ckb-txkit/pkg/address"
	"github.com/cell-labs/ckb-txkit/pkg/crypto"
	"github.com/cell-labs/ckb-txkit/pkg/tx"
)

// Input references a live cell to consume.
type Input struct {
	TxHash [32]byte // Hash of the transaction that created the cell
	Index  uint32   // Output index within that transaction
	Since  uint64   // Maturity condition (0 = spendable now)
}

// Output describes a cell to create.
type Output struct {
	Capacity uint64     // Capacity in shannons
	Lock     *tx.Script // Lock script (required)
	Type     *tx.Script // Type script (nil = none)
	Data     []byte     // Cell data (may be empty)
}

// CellDep references a cell the transaction's scripts depend on.
type CellDep struct {
	TxHash  [32]byte
	Index   uint32
	DepType tx.DepType
}

// Proposal contains everything needed to assemble a transaction. All
// collections are subject to the pkg/tx capacity bounds.
type Proposal struct {
	Version    uint32
	CellDeps   []CellDep
	HeaderDeps [][32]byte
	Inputs     []Input
	Outputs    []Output
}

// BuildTransaction assembles and serializes the raw transaction from a
// proposal. The result is ready for crypto.SigningHash.
func BuildTransaction(p *Proposal) (*tx.Transaction, error) {
	if p == nil {
		return nil, &tx.ParameterError{Message: "proposal is nil"}
	}

	builder := tx.NewBuilder(p.Version)

	for _, d := range p.CellDeps {
		dep, err := tx.NewCellDep(tx.NewOutPoint(d.TxHash, d.Index), d.DepType)
		if err != nil {
			return nil, err
		}
		if err := builder.AddCellDep(dep); err != nil {
			return nil, err
		}
	}

	for _, h := range p.HeaderDeps {
		if err := builder.AddHeaderDep(h); err != nil {
			return nil, err
		}
	}

	for _, in := range p.Inputs {
		input, err := tx.NewCellInput(in.Since, tx.NewOutPoint(in.TxHash, in.Index))
		if err != nil {
			return nil, err
		}
		if err := builder.AddInput(input); err != nil {
			return nil, err
		}
	}

	for _, out := range p.Outputs {
		output, err := tx.NewCellOutput(out.Capacity, out.Lock, out.Type)
		if err != nil {
			return nil, err
		}
		if err := builder.AddOutput(output, out.Data); err != nil {
			return nil, err
		}
	}

	return builder.Build()
}

// SignTransaction computes the signing hash of t, signs it with key under
// the selected algorithm, embeds the signature as witness 0 and returns
// the final serialized transaction. The key material the signer holds is
// wiped before returning, on every path.
func SignTransaction(t *tx.Transaction, key [32]byte, alg crypto.Algorithm) ([]byte, error) {
	sighash, err := crypto.SigningHash(t)
	if err != nil {
		return nil, err
	}

	var signer crypto.Signer
	if err := signer.Begin(key, alg); err != nil {
		return nil, err
	}
	defer signer.Wipe()

	sig, err := signer.Sign(sighash)
	if err != nil {
		return nil, err
	}

	if err := t.SetWitnessSignature(sig); err != nil {
		return nil, err
	}
	return t.Serialize()
}

// SignedTransaction builds, signs and serializes a proposal in one call.
func SignedTransaction(p *Proposal, key [32]byte, alg crypto.Algorithm) ([]byte, error) {
	t, err := BuildTransaction(p)
	if err != nil {
		return nil, err
	}
	return SignTransaction(t, key, alg)
}

// AddressForKey derives the default-lock address for the owner of key:
// lock arg from the compressed public key, wrapped in the secp256k1 /
// blake160 lock script, bech32m-encoded under hrp.
func AddressForKey(hrp string, key [32]byte) (string, error) {
	var signer crypto.Signer
	if err := signer.Begin(key, crypto.AlgorithmCkb); err != nil {
		return "", err
	}
	defer signer.Wipe()

	lockArg, err := signer.LockArg()
	if err != nil {
		return "", err
	}
	return address.EncodeSecp256k1Blake160(hrp, lockArg)
}
