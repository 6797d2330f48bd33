package tx

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLockScript(t *testing.T) *Script {
	t.Helper()
	lock, err := NewScript([32]byte{0x0A}, HashTypeType, make([]byte, 20))
	require.NoError(t, err)
	return lock
}

func testTransaction(t *testing.T) *Transaction {
	t.Helper()

	builder := NewBuilder(0)

	dep, err := NewCellDep(NewOutPoint([32]byte{0x01}, 0), DepTypeGroup)
	require.NoError(t, err)
	require.NoError(t, builder.AddCellDep(dep))

	input, err := NewCellInput(0, NewOutPoint([32]byte{0x02}, 1))
	require.NoError(t, err)
	require.NoError(t, builder.AddInput(input))

	output, err := NewCellOutput(100, testLockScript(t), nil)
	require.NoError(t, err)
	require.NoError(t, builder.AddOutput(output, nil))

	built, err := builder.Build()
	require.NoError(t, err)
	return built
}

func TestBuilderRejectsNilChildren(t *testing.T) {
	builder := NewBuilder(0)

	assert.Error(t, builder.AddCellDep(nil))
	assert.Error(t, builder.AddInput(nil))
	assert.Error(t, builder.AddOutput(nil, nil))
}

func TestBuilderCapacityBounds(t *testing.T) {
	builder := NewBuilder(0)

	for i := 0; i < MaxInputs; i++ {
		input, err := NewCellInput(0, NewOutPoint([32]byte{byte(i)}, 0))
		require.NoError(t, err)
		require.NoError(t, builder.AddInput(input))
	}

	overflow, err := NewCellInput(0, NewOutPoint([32]byte{0xFF}, 0))
	require.NoError(t, err)

	err = builder.AddInput(overflow)
	require.Error(t, err)
	var paramErr *ParameterError
	assert.ErrorAs(t, err, &paramErr)

	// A failed add leaves the builder unchanged and still buildable.
	built, err := builder.Build()
	require.NoError(t, err)
	assert.NotNil(t, built)
}

func TestBuilderOutputCapacityBound(t *testing.T) {
	builder := NewBuilder(0)
	lock := testLockScript(t)

	for i := 0; i < MaxOutputs; i++ {
		output, err := NewCellOutput(uint64(i), lock, nil)
		require.NoError(t, err)
		require.NoError(t, builder.AddOutput(output, nil))
	}

	output, err := NewCellOutput(999, lock, nil)
	require.NoError(t, err)
	assert.Error(t, builder.AddOutput(output, nil))
}

func TestBuilderCellDepCapacityBound(t *testing.T) {
	builder := NewBuilder(0)

	for i := 0; i < MaxCellDeps; i++ {
		dep, err := NewCellDep(NewOutPoint([32]byte{byte(i)}, 0), DepTypeCode)
		require.NoError(t, err)
		require.NoError(t, builder.AddCellDep(dep))
	}

	dep, err := NewCellDep(NewOutPoint([32]byte{0xFF}, 0), DepTypeCode)
	require.NoError(t, err)
	assert.Error(t, builder.AddCellDep(dep))
}

func TestBuilderWitnessCapacityBound(t *testing.T) {
	builder := NewBuilder(0)

	for i := 0; i < MaxWitnesses; i++ {
		require.NoError(t, builder.AddWitness([]byte{byte(i)}))
	}
	assert.Error(t, builder.AddWitness([]byte{0xFF}))
}

func TestBuilderHeaderDepCapacityBound(t *testing.T) {
	builder := NewBuilder(0)

	for i := 0; i < MaxHeaderDeps; i++ {
		require.NoError(t, builder.AddHeaderDep([32]byte{byte(i)}))
	}
	assert.Error(t, builder.AddHeaderDep([32]byte{0xFF}))
}

func TestRawTransactionSelfDescribing(t *testing.T) {
	built := testTransaction(t)

	raw := built.RawBytes()
	require.NotEmpty(t, raw)
	assert.Equal(t, uint32(len(raw)), binary.LittleEndian.Uint32(raw[0:4]))

	// Six offset slots: version, cell_deps, header_deps, inputs, outputs,
	// outputs_data.
	firstOffset := binary.LittleEndian.Uint32(raw[4:8])
	assert.Equal(t, uint32(6), (firstOffset-4)/4)
}

func TestSerializeTotalLengthPrefix(t *testing.T) {
	built := testTransaction(t)

	out, err := built.Serialize()
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, uint32(len(out)), binary.LittleEndian.Uint32(out[0:4]))
}

func TestSetWitnessSignatureInsertsWitnessZero(t *testing.T) {
	built := testTransaction(t)
	require.Empty(t, built.Witnesses())

	var sig [SignatureSize]byte
	for i := range sig {
		sig[i] = byte(i)
	}
	require.NoError(t, built.SetWitnessSignature(sig))
	require.Len(t, built.Witnesses(), 1)

	expected, err := NewWitnessArgs(sig[:], nil, nil)
	require.NoError(t, err)
	assert.Equal(t, expected.Serialized(), built.Witnesses()[0])
}

func TestSetWitnessSignatureReplacesExistingWitness(t *testing.T) {
	builder := NewBuilder(0)
	require.NoError(t, builder.AddWitness([]byte{0x01, 0x02}))
	require.NoError(t, builder.AddWitness([]byte{0x03}))

	built, err := builder.Build()
	require.NoError(t, err)

	var sig [SignatureSize]byte
	require.NoError(t, built.SetWitnessSignature(sig))

	require.Len(t, built.Witnesses(), 2)
	expected, err := NewWitnessArgs(sig[:], nil, nil)
	require.NoError(t, err)
	assert.Equal(t, expected.Serialized(), built.Witnesses()[0])
	assert.Equal(t, []byte{0x03}, built.Witnesses()[1], "other witnesses untouched")
}

func TestSerializedWitnessRoundTrip(t *testing.T) {
	built := testTransaction(t)

	var sig [SignatureSize]byte
	for i := range sig {
		sig[i] = 0xA5
	}
	require.NoError(t, built.SetWitnessSignature(sig))

	out, err := built.Serialize()
	require.NoError(t, err)

	// Outer table: raw at slot 0, witnesses DynVec at slot 1.
	witnessesOffset := binary.LittleEndian.Uint32(out[8:12])
	witnesses := out[witnessesOffset:]

	firstItemOffset := binary.LittleEndian.Uint32(witnesses[4:8])
	item := witnesses[firstItemOffset:]

	// Witness 0 is a Bytes wrapping the WitnessArgs encoding.
	waLen := binary.LittleEndian.Uint32(item[0:4])
	waBytes := item[4 : 4+waLen]

	expected, err := NewWitnessArgs(sig[:], nil, nil)
	require.NoError(t, err)
	assert.Equal(t, expected.Serialized(), waBytes)

	// Unwrap the WitnessArgs table: lock is Some(sig), the other two
	// fields are None (their offset slots span zero bytes).
	lockOffset := binary.LittleEndian.Uint32(waBytes[4:8])
	inputTypeOffset := binary.LittleEndian.Uint32(waBytes[8:12])
	outputTypeOffset := binary.LittleEndian.Uint32(waBytes[12:16])

	lockField := waBytes[lockOffset:inputTypeOffset]
	require.Len(t, lockField, 4+SignatureSize)
	assert.Equal(t, sig[:], lockField[4:])
	assert.Equal(t, inputTypeOffset, outputTypeOffset)
	assert.Equal(t, int(outputTypeOffset), len(waBytes))
}

func TestBuildIsIndependentOfLaterAdds(t *testing.T) {
	builder := NewBuilder(0)
	input, err := NewCellInput(0, NewOutPoint([32]byte{0x01}, 0))
	require.NoError(t, err)
	require.NoError(t, builder.AddInput(input))

	first, err := builder.Build()
	require.NoError(t, err)
	firstRaw := append([]byte(nil), first.RawBytes()...)

	second, err := NewCellInput(0, NewOutPoint([32]byte{0x02}, 0))
	require.NoError(t, err)
	require.NoError(t, builder.AddInput(second))

	assert.Equal(t, firstRaw, first.RawBytes())
}
