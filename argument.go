package fxt

import (
	"encoding/hex"
	"math"

	"github.com/arloliu/fxt/errs"
	"github.com/arloliu/fxt/format"
	"github.com/arloliu/fxt/internal/field"
	"github.com/arloliu/fxt/section"
)

// ArgumentValue is one of the ten FXT argument kinds together with its
// payload. The set of kinds is closed; values are built with the
// constructors below.
//
// String values are interned through the writer's string table by default.
// InlineStr embeds the bytes in the argument instead, and HexBytes embeds a
// lowercase-hex rendering of a raw byte slice.
type ArgumentValue struct {
	typ format.ArgumentType
	// bits holds the numeric payload: the zero-extended 32-bit kinds, the
	// full 64-bit kinds, the raw IEEE-754 pattern for Double, and 0/1 for
	// Bool.
	bits      uint64
	str       string
	inline    bool
	hexEncode bool
}

// Null returns a valueless argument payload.
func Null() ArgumentValue {
	return ArgumentValue{typ: format.ArgNull}
}

// Int32 returns a signed 32-bit argument payload.
func Int32(v int32) ArgumentValue {
	return ArgumentValue{typ: format.ArgInt32, bits: uint64(uint32(v))}
}

// Uint32 returns an unsigned 32-bit argument payload.
func Uint32(v uint32) ArgumentValue {
	return ArgumentValue{typ: format.ArgUint32, bits: uint64(v)}
}

// Int64 returns a signed 64-bit argument payload.
func Int64(v int64) ArgumentValue {
	return ArgumentValue{typ: format.ArgInt64, bits: uint64(v)}
}

// Uint64 returns an unsigned 64-bit argument payload.
func Uint64(v uint64) ArgumentValue {
	return ArgumentValue{typ: format.ArgUint64, bits: v}
}

// Double returns a 64-bit floating point argument payload.
func Double(v float64) ArgumentValue {
	return ArgumentValue{typ: format.ArgDouble, bits: math.Float64bits(v)}
}

// Str returns a string argument payload. The value is interned through the
// writer's string table; the argument references it by handle.
func Str(v string) ArgumentValue {
	return ArgumentValue{typ: format.ArgString, str: v}
}

// InlineStr returns a string argument payload whose bytes are embedded in
// the argument itself rather than interned. Use this for strings unlikely
// to repeat, so they do not evict useful intern-table entries.
func InlineStr(v string) ArgumentValue {
	return ArgumentValue{typ: format.ArgString, str: v, inline: true}
}

// HexBytes returns a string argument payload rendering data as lowercase
// hex digits, two per input byte. The rendering is always embedded inline.
func HexBytes(data []byte) ArgumentValue {
	return ArgumentValue{typ: format.ArgString, str: string(data), inline: true, hexEncode: true}
}

// Pointer returns a pointer-valued argument payload.
func Pointer(v uint64) ArgumentValue {
	return ArgumentValue{typ: format.ArgPointer, bits: v}
}

// KOID returns a kernel-object-ID argument payload.
func KOID(id KernelObjectID) ArgumentValue {
	return ArgumentValue{typ: format.ArgKOID, bits: uint64(id)}
}

// Bool returns a boolean argument payload.
func Bool(v bool) ArgumentValue {
	var bits uint64
	if v {
		bits = 1
	}

	return ArgumentValue{typ: format.ArgBool, bits: bits}
}

// Type returns the argument kind.
func (v ArgumentValue) Type() format.ArgumentType {
	return v.typ
}

// Argument is a name/value pair attached to a record. The name is interned
// through the writer's string table unless WithInlineName is used.
type Argument struct {
	name       string
	inlineName bool
	value      ArgumentValue
}

// Arg creates an argument with the given name and value.
func Arg(name string, value ArgumentValue) Argument {
	return Argument{name: name, value: value}
}

// WithInlineName returns a copy of the argument whose name bytes are
// embedded in the argument rather than interned.
func (a Argument) WithInlineName() Argument {
	a.inlineName = true

	return a
}

// Name returns the argument name.
func (a Argument) Name() string {
	return a.name
}

// Value returns the argument value.
func (a Argument) Value() ArgumentValue {
	return a.value
}

// processedArgument is the result of the sizing phase: resolved name and
// value references plus the word counts the record header needs before any
// argument byte is emitted.
type processedArgument struct {
	arg      Argument
	nameRef  uint16
	valueRef uint16
	// nameWords is the inline name footprint; zero when the name is interned.
	nameWords int
	// headerAndValueWords counts the argument header word plus payload words,
	// including inline value bytes.
	headerAndValueWords int
}

func (p *processedArgument) totalWords() int {
	return p.nameWords + p.headerAndValueWords
}

// prepareArgument resolves the argument's references and computes its word
// counts, interning the name and any interned string value. Interning
// emits binding records, so prepareArgument must run for every argument of
// a record before that record's header is written.
func (w *Writer) prepareArgument(arg Argument) (processedArgument, error) {
	p := processedArgument{arg: arg}

	switch arg.value.typ {
	case format.ArgNull, format.ArgInt32, format.ArgUint32, format.ArgBool:
		p.headerAndValueWords = 1
	case format.ArgInt64, format.ArgUint64, format.ArgDouble, format.ArgPointer, format.ArgKOID:
		p.headerAndValueWords = 2
	case format.ArgString:
		// Resolved below, after the name, to keep binding records in
		// name-then-value order.
	default:
		return p, errs.ErrInvalidArgType
	}

	if arg.inlineName {
		if len(arg.name) > section.MaxInlineStringLength {
			return p, errs.ErrArgNameTooLong
		}
		p.nameRef = section.InlineStringRef(len(arg.name))
		p.nameWords = field.BytesToWords(len(arg.name))
	} else {
		nameIndex, err := w.GetOrCreateStringIndex(arg.name)
		if err != nil {
			return p, err
		}
		p.nameRef = nameIndex
	}

	if arg.value.typ == format.ArgString {
		switch {
		case arg.value.hexEncode:
			encodedLen := hex.EncodedLen(len(arg.value.str))
			if encodedLen > section.MaxInlineStringLength {
				return p, errs.ErrArgStrValueTooLong
			}
			p.valueRef = section.InlineStringRef(encodedLen)
			p.headerAndValueWords = 1 + field.BytesToWords(encodedLen)
		case arg.value.inline:
			if len(arg.value.str) > section.MaxInlineStringLength {
				return p, errs.ErrArgStrValueTooLong
			}
			p.valueRef = section.InlineStringRef(len(arg.value.str))
			p.headerAndValueWords = 1 + field.BytesToWords(len(arg.value.str))
		default:
			valueIndex, err := w.GetOrCreateStringIndex(arg.value.str)
			if err != nil {
				return p, err
			}
			p.valueRef = valueIndex
			p.headerAndValueWords = 1
		}
	}

	return p, nil
}

// writeArgument emits the argument's packed header, inline name bytes if
// any, and value payload, in that order. It returns the number of words
// written so the caller can verify the total against the pre-computed size.
func (w *Writer) writeArgument(p *processedArgument) (int, error) {
	header := section.ArgumentType.Make(uint64(p.arg.value.typ)) |
		section.ArgumentSize.Make(uint64(p.totalWords())) |
		section.ArgumentNameRef.Make(uint64(p.nameRef))

	switch p.arg.value.typ {
	case format.ArgInt32, format.ArgUint32:
		header |= section.ArgumentValue.Make(p.arg.value.bits)
	case format.ArgBool:
		header |= section.ArgumentBoolValue.Make(p.arg.value.bits)
	case format.ArgString:
		header |= section.ArgumentStringValueRef.Make(uint64(p.valueRef))
	}

	if err := w.stream.WriteWord(header); err != nil {
		return 0, err
	}
	wordsWritten := 1

	if p.arg.inlineName {
		if err := w.stream.WritePaddedBytes([]byte(p.arg.name)); err != nil {
			return wordsWritten, err
		}
		wordsWritten += p.nameWords
	}

	switch p.arg.value.typ {
	case format.ArgInt64, format.ArgUint64, format.ArgDouble, format.ArgPointer, format.ArgKOID:
		if err := w.stream.WriteWord(p.arg.value.bits); err != nil {
			return wordsWritten, err
		}
		wordsWritten++
	case format.ArgString:
		payload := []byte(p.arg.value.str)
		if p.arg.value.hexEncode {
			encoded := make([]byte, hex.EncodedLen(len(payload)))
			hex.Encode(encoded, payload)
			payload = encoded
		}
		if p.arg.value.hexEncode || p.arg.value.inline {
			if err := w.stream.WritePaddedBytes(payload); err != nil {
				return wordsWritten, err
			}
			wordsWritten += field.BytesToWords(len(payload))
		}
	}

	return wordsWritten, nil
}

// prepareArguments runs the sizing phase for a record's argument list and
// returns the prepared arguments with their summed word count.
func (w *Writer) prepareArguments(args []Argument) ([]processedArgument, int, error) {
	if len(args) > section.MaxArguments {
		return nil, 0, errs.ErrTooManyArgs
	}

	prepared := make([]processedArgument, len(args))
	totalWords := 0
	for i, arg := range args {
		p, err := w.prepareArgument(arg)
		if err != nil {
			return nil, 0, err
		}
		prepared[i] = p
		totalWords += p.totalWords()
	}

	return prepared, totalWords, nil
}

// writeArguments runs the emission phase and verifies the written word
// count against the pre-computed total from prepareArguments.
func (w *Writer) writeArguments(prepared []processedArgument, expectedWords int) error {
	wordsWritten := 0
	for i := range prepared {
		n, err := w.writeArgument(&prepared[i])
		if err != nil {
			return err
		}
		wordsWritten += n
	}
	if wordsWritten != expectedWords {
		return errs.ErrWriteLengthMismatch
	}

	return nil
}
