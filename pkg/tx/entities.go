package tx

import (
	"github.com/cell-labs/ckb-txkit/pkg/molecule"
)

// Serialized sizes of the fixed-width entities. A serializer producing any
// other length is non-conformant, so these are asserted at construction.
const (
	OutPointSize  = 36 // tx_hash (32) || index (u32)
	CellInputSize = 44 // since (u64) || previous_output (36)
	CellDepSize   = 37 // out_point (36) || dep_type (byte)
)

// OutPoint references a live cell by the hash of the transaction that
// created it and the output index within that transaction.
//
// Wire format: struct, always exactly 36 bytes.
type OutPoint struct {
	TxHash [32]byte
	Index  uint32

	raw []byte
}

// NewOutPoint constructs and serializes an OutPoint.
func NewOutPoint(txHash [32]byte, index uint32) *OutPoint {
	raw := molecule.Struct(txHash[:], molecule.PutUint32(nil, index))
	return &OutPoint{TxHash: txHash, Index: index, raw: raw}
}

// Serialized returns the 36-byte struct encoding.
func (o *OutPoint) Serialized() []byte { return o.raw }

// CellInput consumes the cell referenced by PreviousOutput. Since encodes
// the transaction's relative or absolute maturity condition (0 = none).
//
// Wire format: struct, always exactly 44 bytes.
type CellInput struct {
	Since          uint64
	PreviousOutput *OutPoint

	raw []byte
}

// NewCellInput constructs and serializes a CellInput. previousOutput must
// be a built OutPoint.
func NewCellInput(since uint64, previousOutput *OutPoint) (*CellInput, error) {
	if previousOutput == nil {
		return nil, &ParameterError{Message: "cell input requires a built previous output"}
	}
	raw := molecule.Struct(molecule.PutUint64(nil, since), previousOutput.Serialized())
	return &CellInput{Since: since, PreviousOutput: previousOutput, raw: raw}, nil
}

// Serialized returns the 44-byte struct encoding.
func (c *CellInput) Serialized() []byte { return c.raw }

// DepType selects how a cell dependency is resolved.
type DepType byte

const (
	// DepTypeCode uses the referenced cell's data directly as code.
	DepTypeCode DepType = 0x00
	// DepTypeGroup treats the referenced cell as a dep group whose data
	// lists the actual code cells.
	DepTypeGroup DepType = 0x01
)

// CellDep declares a cell the transaction's scripts depend on, typically
// the cell carrying the lock script code.
//
// Wire format: struct, always exactly 37 bytes.
type CellDep struct {
	OutPoint *OutPoint
	DepType  DepType

	raw []byte
}

// NewCellDep constructs and serializes a CellDep. outPoint must be a built
// OutPoint.
func NewCellDep(outPoint *OutPoint, depType DepType) (*CellDep, error) {
	if outPoint == nil {
		return nil, &ParameterError{Message: "cell dep requires a built out point"}
	}
	if depType != DepTypeCode && depType != DepTypeGroup {
		return nil, &ParameterError{Message: "unknown dep type"}
	}
	raw := molecule.Struct(outPoint.Serialized(), []byte{byte(depType)})
	return &CellDep{OutPoint: outPoint, DepType: depType, raw: raw}, nil
}

// Serialized returns the 37-byte struct encoding.
func (c *CellDep) Serialized() []byte { return c.raw }

// CellOutput creates a new cell holding Capacity shannons, locked by Lock.
// Type is the optional type script constraining the cell's data; nil means
// the cell carries no type script.
//
// Wire format: table(capacity: u64, lock: Script, type: Option<Script>).
// An absent type script occupies its offset slot with zero bytes.
type CellOutput struct {
	Capacity uint64
	Lock     *Script
	Type     *Script

	raw []byte
}

// NewCellOutput constructs and serializes a CellOutput. lock must be a
// built Script; typ may be nil.
func NewCellOutput(capacity uint64, lock *Script, typ *Script) (*CellOutput, error) {
	if lock == nil {
		return nil, &ParameterError{Message: "cell output requires a built lock script"}
	}

	var typeField []byte // zero-length slot encodes Option::None
	if typ != nil {
		typeField = typ.Serialized()
	}

	raw, err := molecule.Table(molecule.PutUint64(nil, capacity), lock.Serialized(), typeField)
	if err != nil {
		return nil, &BuildError{Entity: "CellOutput", Message: "table encode failed", Cause: err}
	}
	return &CellOutput{Capacity: capacity, Lock: lock, Type: typ, raw: raw}, nil
}

// Serialized returns the table encoding of the output.
func (c *CellOutput) Serialized() []byte { return c.raw }
