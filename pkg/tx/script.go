// Package tx provides typed builders for the entities of a CKB-style
// cell-model transaction: Script, OutPoint, CellInput, CellOutput,
// CellDep, WitnessArgs and the transaction itself.
//
// Every entity is serialized once at construction and immutable
// afterwards. A constructor that returns an error has built nothing, so a
// nil check on the returned pointer is equivalent to a "was it built"
// check. Parent builders validate their children the same way: composing
// an entity from a nil child is a ParameterError, never a panic.
//
// The binary layout of each entity is the molecule encoding produced by
// the pkg/molecule primitives; see that package for the wire format.
package tx

import (
	"github.com/cell-labs/ckb-txkit/pkg/molecule"
)

// ScriptHashType selects how a script's code hash is matched against
// on-chain code.
type ScriptHashType byte

const (
	// HashTypeData matches the hash of the cell data carrying the code.
	HashTypeData ScriptHashType = 0x00
	// HashTypeType matches the hash of the code cell's type script.
	HashTypeType ScriptHashType = 0x01
	// HashTypeData1 is HashTypeData under the CKB-VM v1 instruction set.
	HashTypeData1 ScriptHashType = 0x02
	// HashTypeData2 is HashTypeData under the CKB-VM v2 instruction set.
	HashTypeData2 ScriptHashType = 0x04
)

func (t ScriptHashType) valid() bool {
	switch t {
	case HashTypeData, HashTypeType, HashTypeData1, HashTypeData2:
		return true
	}
	return false
}

// Script is the lock or type predicate of a cell: a 32-byte code hash, a
// hash type selector and an argument blob (for the default lock, the
// 20-byte lock arg derived from the owner's public key).
//
// Wire format: table(code_hash: [32]byte, hash_type: byte, args: Bytes).
type Script struct {
	CodeHash [32]byte
	HashType ScriptHashType
	Args     []byte

	raw []byte
}

// NewScript constructs and serializes a Script. args may be empty but is
// bounded by molecule.MaxItemLen; the bytes are copied, so the caller may
// reuse its slice.
func NewScript(codeHash [32]byte, hashType ScriptHashType, args []byte) (*Script, error) {
	if !hashType.valid() {
		return nil, &ParameterError{Message: "unknown script hash type"}
	}

	argsField, err := molecule.Bytes(args)
	if err != nil {
		return nil, &ParameterError{Message: "script args too large", Cause: err}
	}

	raw, err := molecule.Table(codeHash[:], []byte{byte(hashType)}, argsField)
	if err != nil {
		return nil, &BuildError{Entity: "Script", Message: "table encode failed", Cause: err}
	}

	s := &Script{
		CodeHash: codeHash,
		HashType: hashType,
		Args:     append([]byte(nil), args...),
		raw:      raw,
	}
	return s, nil
}

// Serialized returns the molecule encoding of the script. The slice is
// owned by the Script and must not be modified.
func (s *Script) Serialized() []byte { return s.raw }
