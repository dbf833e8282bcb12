// Package field implements packing and unpacking of named bit ranges within
// the 64-bit words that make up an FXT stream.
package field

// Field describes a bit range [begin, end] (inclusive) within a 64-bit word.
//
// Values wider than the field are clamped by masking rather than rejected,
// so callers may assemble header words directly from enum values.
type Field struct {
	begin uint
	end   uint
}

// New creates a Field spanning bits [begin, end] inclusive.
//
// It panics if the range is malformed or covers the whole word; field
// layouts are package-level constants, so a bad range is a programming
// error, not a runtime condition.
func New(begin, end uint) Field {
	if begin > end {
		panic("field: begin must not be larger than end")
	}
	if end > 63 {
		panic("field: end is out of bounds")
	}
	if end-begin+1 >= 64 {
		panic("field: must be a part of a word, not a whole word")
	}

	return Field{begin: begin, end: end}
}

func (f Field) mask() uint64 {
	return (uint64(1) << (f.end - f.begin + 1)) - 1
}

// Make returns value shifted and masked into the field's bit range.
func (f Field) Make(value uint64) uint64 {
	return (value & f.mask()) << f.begin
}

// Get extracts the field's value from word.
func (f Field) Get(word uint64) uint64 {
	return (word >> f.begin) & f.mask()
}

// Set overwrites the field's bits within word with value.
func (f Field) Set(word *uint64, value uint64) {
	*word = (*word &^ (f.mask() << f.begin)) | f.Make(value)
}

// Fits reports whether value is representable without clamping.
func (f Field) Fits(value uint64) bool {
	return value <= f.mask()
}

// Pad rounds size up to the next multiple of 8 bytes.
func Pad(size int) int {
	return size + ((8 - (size & 7)) & 7)
}

// BytesToWords returns the number of 64-bit words needed to hold numBytes
// bytes after zero-padding to an 8-byte boundary.
func BytesToWords(numBytes int) int {
	return Pad(numBytes) / 8
}

// WordsToBytes returns the byte length of numWords 64-bit words.
func WordsToBytes(numWords int) int {
	return numWords * 8
}
