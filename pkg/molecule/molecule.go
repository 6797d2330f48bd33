// Package molecule implements the subset of the molecule serialization
// format used by CKB transactions.
//
// Molecule is a self-describing binary layout built from four composite
// kinds. All integers are little-endian u32 unless stated otherwise.
//
//	Struct:  raw concatenation of fixed-width fields, no header
//	FixVec:  u32 item-count || item bytes (items share one fixed size;
//	         Bytes is the byte-sized specialization)
//	DynVec:  u32 total-size || u32 offset per item || item bytes
//	Table:   same shape as DynVec with a fixed field count per schema type
//
// Offsets inside a DynVec or Table are measured from the first byte of the
// encoding, header included, so the serialized length of any DynVec or
// Table always equals the value in its own total-size prefix.
//
// Reference: https://github.com/nervosnetwork/molecule (encoding spec).
// Only encoding is implemented; decoding is out of scope for this library.
package molecule

import (
	"encoding/binary"
	"math"
)

// HeaderSize is the size of the u32 length/total-size prefix.
const HeaderSize = 4

// MaxItemLen bounds the size of any single variable-length item (script
// args, output data, witnesses). Inputs larger than this are rejected with
// a LimitError rather than encoded, so a malformed or hostile field cannot
// force an arbitrarily large allocation.
const MaxItemLen = 32 * 1024

// PutUint32 appends v to dst as little-endian u32 and returns the
// extended slice.
func PutUint32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

// PutUint64 appends v to dst as little-endian u64 and returns the
// extended slice.
func PutUint64(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// Struct encodes a fixed-size composite: the raw concatenation of its
// fields with no header. Callers are responsible for passing fixed-width
// field encodings in schema order.
func Struct(fields ...[]byte) []byte {
	size := 0
	for _, f := range fields {
		size += len(f)
	}
	out := make([]byte, 0, size)
	for _, f := range fields {
		out = append(out, f...)
	}
	return out
}

// Bytes encodes a byte vector: u32 length || raw bytes.
func Bytes(data []byte) ([]byte, error) {
	if len(data) > MaxItemLen {
		return nil, &LimitError{Kind: "Bytes", Size: len(data), Limit: MaxItemLen}
	}
	out := make([]byte, 0, HeaderSize+len(data))
	out = PutUint32(out, uint32(len(data)))
	return append(out, data...), nil
}

// FixVec encodes a vector of fixed-size items: u32 item-count || items.
// itemSize is the schema-declared size of each item; any item of a
// different length is rejected.
func FixVec(itemSize int, items ...[]byte) ([]byte, error) {
	for _, item := range items {
		if len(item) != itemSize {
			return nil, &SizeError{Kind: "FixVec", Size: len(item), Want: itemSize}
		}
	}
	out := make([]byte, 0, HeaderSize+itemSize*len(items))
	out = PutUint32(out, uint32(len(items)))
	for _, item := range items {
		out = append(out, item...)
	}
	return out, nil
}

// DynVec encodes a vector of variable-size items:
// u32 total-size || u32 offset per item || item bytes.
// An empty DynVec is the 4-byte header alone, with total-size 4. The item
// count is implied by the first offset: (first_offset - 4) / 4.
func DynVec(items ...[]byte) ([]byte, error) {
	return offsetComposite("DynVec", items)
}

// Table encodes a composite with named fields. The wire shape is identical
// to DynVec; the field count is fixed by the schema type, so even an
// absent (zero-length) field consumes an offset slot.
func Table(fields ...[]byte) ([]byte, error) {
	return offsetComposite("Table", fields)
}

func offsetComposite(kind string, items [][]byte) ([]byte, error) {
	if kind == "DynVec" && len(items) == 0 {
		return PutUint32(nil, HeaderSize), nil
	}

	headerLen := HeaderSize + HeaderSize*len(items)
	total := uint64(headerLen)
	for _, item := range items {
		total += uint64(len(item))
	}
	if total > math.MaxUint32 {
		return nil, &LimitError{Kind: kind, Size: int(total), Limit: math.MaxUint32}
	}

	out := make([]byte, 0, total)
	out = PutUint32(out, uint32(total))

	offset := uint32(headerLen)
	for _, item := range items {
		out = PutUint32(out, offset)
		offset += uint32(len(item))
	}
	for _, item := range items {
		out = append(out, item...)
	}
	return out, nil
}
