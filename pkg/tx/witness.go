package tx

import (
	"github.com/cell-labs/ckb-txkit/pkg/molecule"
)

// WitnessArgs carries the per-transaction authorization data that is not
// part of the committed transaction body. Lock holds the data consumed by
// the lock script (for the default lock, a 65-byte recoverable signature);
// InputType and OutputType hold data for the input and output cells' type
// scripts.
//
// All three fields are Option<Bytes>: a nil slice is None and serializes
// to zero bytes at its offset slot, any non-nil slice (including an empty
// one) is Some and serializes as a full Bytes encoding.
//
// Wire format: table(lock, input_type, output_type).
type WitnessArgs struct {
	Lock       []byte
	InputType  []byte
	OutputType []byte

	raw []byte
}

// NewWitnessArgs constructs and serializes a WitnessArgs.
func NewWitnessArgs(lock, inputType, outputType []byte) (*WitnessArgs, error) {
	lockField, err := optionBytes(lock)
	if err != nil {
		return nil, &ParameterError{Message: "witness lock too large", Cause: err}
	}
	inputTypeField, err := optionBytes(inputType)
	if err != nil {
		return nil, &ParameterError{Message: "witness input_type too large", Cause: err}
	}
	outputTypeField, err := optionBytes(outputType)
	if err != nil {
		return nil, &ParameterError{Message: "witness output_type too large", Cause: err}
	}

	raw, err := molecule.Table(lockField, inputTypeField, outputTypeField)
	if err != nil {
		return nil, &BuildError{Entity: "WitnessArgs", Message: "table encode failed", Cause: err}
	}

	w := &WitnessArgs{
		Lock:       cloneOption(lock),
		InputType:  cloneOption(inputType),
		OutputType: cloneOption(outputType),
		raw:        raw,
	}
	return w, nil
}

// Serialized returns the table encoding of the witness args.
func (w *WitnessArgs) Serialized() []byte { return w.raw }

// optionBytes encodes Option<Bytes>: nil is None (zero bytes at the offset
// slot), anything else is Some and gets the length-prefixed encoding.
func optionBytes(data []byte) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	return molecule.Bytes(data)
}

func cloneOption(data []byte) []byte {
	if data == nil {
		return nil
	}
	return append([]byte(nil), data...)
}
