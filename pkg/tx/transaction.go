package tx

import (
	"github.com/cell-labs/ckb-txkit/pkg/molecule"
)

// Collection capacity bounds. The transaction layout comes from an
// embedded deployment with no dynamic growth, so the bounds are explicit
// configuration rather than silent truncation: exceeding one is a
// ParameterError.
const (
	MaxCellDeps   = 4
	MaxHeaderDeps = 4
	MaxInputs     = 8
	MaxOutputs    = 8
	MaxWitnesses  = 8
)

// SignatureSize is the length of a recoverable secp256k1 signature:
// recovery id (1) || r (32) || s (32). The signing-hash pipeline's
// zero-filled witness placeholder is fixed to this length; an algorithm
// with a different signature size would break the same-length invariant
// the pipeline depends on.
const SignatureSize = 65

// Builder accumulates the components of a transaction and serializes the
// RawTransaction table on Build. Add methods reject nil children and
// enforce the capacity bounds; a failed add leaves the builder unchanged.
type Builder struct {
	version     uint32
	cellDeps    []*CellDep
	headerDeps  [][32]byte
	inputs      []*CellInput
	outputs     []*CellOutput
	outputsData [][]byte
	witnesses   [][]byte
}

// NewBuilder creates a Builder for a transaction with the given version.
func NewBuilder(version uint32) *Builder {
	return &Builder{version: version}
}

// AddCellDep appends a cell dependency.
func (b *Builder) AddCellDep(dep *CellDep) error {
	if dep == nil {
		return &ParameterError{Message: "cell dep is not built"}
	}
	if len(b.cellDeps) >= MaxCellDeps {
		return &ParameterError{Message: "cell dep capacity exceeded"}
	}
	b.cellDeps = append(b.cellDeps, dep)
	return nil
}

// AddHeaderDep appends a header dependency (a block hash the transaction
// requires to be on-chain).
func (b *Builder) AddHeaderDep(blockHash [32]byte) error {
	if len(b.headerDeps) >= MaxHeaderDeps {
		return &ParameterError{Message: "header dep capacity exceeded"}
	}
	b.headerDeps = append(b.headerDeps, blockHash)
	return nil
}

// AddInput appends a cell input.
func (b *Builder) AddInput(input *CellInput) error {
	if input == nil {
		return &ParameterError{Message: "cell input is not built"}
	}
	if len(b.inputs) >= MaxInputs {
		return &ParameterError{Message: "input capacity exceeded"}
	}
	b.inputs = append(b.inputs, input)
	return nil
}

// AddOutput appends a cell output together with its data field. data may
// be empty; it is copied.
func (b *Builder) AddOutput(output *CellOutput, data []byte) error {
	if output == nil {
		return &ParameterError{Message: "cell output is not built"}
	}
	if len(b.outputs) >= MaxOutputs {
		return &ParameterError{Message: "output capacity exceeded"}
	}
	if len(data) > molecule.MaxItemLen {
		return &ParameterError{Message: "output data too large"}
	}
	b.outputs = append(b.outputs, output)
	b.outputsData = append(b.outputsData, append([]byte(nil), data...))
	return nil
}

// AddWitness appends a raw witness blob. Witness 0 is conventionally a
// serialized WitnessArgs; SetWitnessSignature on the built transaction
// fills it in after signing.
func (b *Builder) AddWitness(witness []byte) error {
	if len(b.witnesses) >= MaxWitnesses {
		return &ParameterError{Message: "witness capacity exceeded"}
	}
	if len(witness) > molecule.MaxItemLen {
		return &ParameterError{Message: "witness too large"}
	}
	b.witnesses = append(b.witnesses, append([]byte(nil), witness...))
	return nil
}

// Build serializes the RawTransaction table and returns the resulting
// Transaction. The builder remains usable, but the Transaction owns its
// own copies and is unaffected by later Add calls.
//
// RawTransaction wire format:
//
//	table(version: u32,
//	      cell_deps: FixVec<CellDep>,
//	      header_deps: FixVec<[32]byte>,
//	      inputs: FixVec<CellInput>,
//	      outputs: DynVec<CellOutput>,
//	      outputs_data: DynVec<Bytes>)
func (b *Builder) Build() (*Transaction, error) {
	deps := make([][]byte, len(b.cellDeps))
	for i, d := range b.cellDeps {
		deps[i] = d.Serialized()
	}
	cellDepsField, err := molecule.FixVec(CellDepSize, deps...)
	if err != nil {
		return nil, &BuildError{Entity: "RawTransaction", Message: "cell_deps encode failed", Cause: err}
	}

	headers := make([][]byte, len(b.headerDeps))
	for i := range b.headerDeps {
		headers[i] = b.headerDeps[i][:]
	}
	headerDepsField, err := molecule.FixVec(32, headers...)
	if err != nil {
		return nil, &BuildError{Entity: "RawTransaction", Message: "header_deps encode failed", Cause: err}
	}

	inputs := make([][]byte, len(b.inputs))
	for i, in := range b.inputs {
		inputs[i] = in.Serialized()
	}
	inputsField, err := molecule.FixVec(CellInputSize, inputs...)
	if err != nil {
		return nil, &BuildError{Entity: "RawTransaction", Message: "inputs encode failed", Cause: err}
	}

	outputs := make([][]byte, len(b.outputs))
	for i, out := range b.outputs {
		outputs[i] = out.Serialized()
	}
	outputsField, err := molecule.DynVec(outputs...)
	if err != nil {
		return nil, &BuildError{Entity: "RawTransaction", Message: "outputs encode failed", Cause: err}
	}

	outputsData := make([][]byte, len(b.outputsData))
	for i, data := range b.outputsData {
		outputsData[i], err = molecule.Bytes(data)
		if err != nil {
			return nil, &BuildError{Entity: "RawTransaction", Message: "outputs_data encode failed", Cause: err}
		}
	}
	outputsDataField, err := molecule.DynVec(outputsData...)
	if err != nil {
		return nil, &BuildError{Entity: "RawTransaction", Message: "outputs_data encode failed", Cause: err}
	}

	raw, err := molecule.Table(
		molecule.PutUint32(nil, b.version),
		cellDepsField,
		headerDepsField,
		inputsField,
		outputsField,
		outputsDataField,
	)
	if err != nil {
		return nil, &BuildError{Entity: "RawTransaction", Message: "table encode failed", Cause: err}
	}

	t := &Transaction{
		rawBytes:  raw,
		witnesses: make([][]byte, len(b.witnesses)),
	}
	for i, w := range b.witnesses {
		t.witnesses[i] = append([]byte(nil), w...)
	}
	return t, nil
}

// Transaction pairs a serialized RawTransaction with its witnesses. The
// raw bytes are frozen at Build time, so the signing hash computed from
// them stays valid while witnesses are filled in afterwards.
type Transaction struct {
	rawBytes  []byte
	witnesses [][]byte
}

// RawBytes returns the serialized RawTransaction table. The slice is owned
// by the Transaction and must not be modified.
func (t *Transaction) RawBytes() []byte { return t.rawBytes }

// Witnesses returns the current witness blobs.
func (t *Transaction) Witnesses() [][]byte { return t.witnesses }

// SetWitnessSignature replaces witness 0 (inserting it if absent) with a
// serialized WitnessArgs whose lock field carries sig and whose other
// fields are None. Call it after the signing hash has been computed and
// signed, and before Serialize; the raw transaction bytes the signature
// commits to are unaffected.
func (t *Transaction) SetWitnessSignature(sig [SignatureSize]byte) error {
	wa, err := NewWitnessArgs(sig[:], nil, nil)
	if err != nil {
		return err
	}
	if len(t.witnesses) == 0 {
		t.witnesses = append(t.witnesses, wa.Serialized())
		return nil
	}
	t.witnesses[0] = wa.Serialized()
	return nil
}

// Serialize assembles the final Transaction table, ready for submission.
//
// Wire format: table(raw: RawTransaction, witnesses: DynVec<Bytes>).
// The first 4 bytes of the result equal its own total length.
func (t *Transaction) Serialize() ([]byte, error) {
	witnesses := make([][]byte, len(t.witnesses))
	for i, w := range t.witnesses {
		var err error
		witnesses[i], err = molecule.Bytes(w)
		if err != nil {
			return nil, &BuildError{Entity: "Transaction", Message: "witness encode failed", Cause: err}
		}
	}
	witnessesField, err := molecule.DynVec(witnesses...)
	if err != nil {
		return nil, &BuildError{Entity: "Transaction", Message: "witnesses encode failed", Cause: err}
	}

	out, err := molecule.Table(t.rawBytes, witnessesField)
	if err != nil {
		return nil, &BuildError{Entity: "Transaction", Message: "table encode failed", Cause: err}
	}
	return out, nil
}
