// Package section defines the packed bit-field layouts of every FXT record
// and argument kind, together with the size limits the field widths impose.
//
// Every record is one or more little-endian 64-bit words. The first word is
// a header carrying, at minimum, the record type tag in bits [0..3] and the
// record size in words in bits [4..15]; each record kind places its
// remaining fixed fields in the rest of the header. The layouts here mirror
// the Fuchsia trace format reference.
package section

import "github.com/arloliu/fxt/internal/field"

// Limits imposed by field widths and the format reference.
const (
	// MaxRecordSizeWords is the largest value of the 12-bit record size
	// field, including the header word.
	MaxRecordSizeWords = 0xFFF

	// MaxProviderNameLength bounds the provider name of a provider-info
	// record (8-bit length field).
	MaxProviderNameLength = 0xFF

	// MaxInlineStringLength bounds inline argument names and string values
	// (15-bit inline length).
	MaxInlineStringLength = 0x7FFF

	// MaxInternedStringLength bounds the content of a string record (the
	// 15-bit string length field, with its top value reserved).
	MaxInternedStringLength = 0x7FFE

	// MaxBlobLength bounds a blob payload (23-bit size field).
	MaxBlobLength = 0x7FFFFF

	// MaxLogMessageLength bounds a log record message (15-bit length field).
	MaxLogMessageLength = 0x7FFF

	// MaxArguments bounds the argument list of any record (4-bit count).
	MaxArguments = 15

	// MaxOutgoingThreadState bounds the context-switch thread state (4 bits).
	MaxOutgoingThreadState = 0xF

	// StringTableCapacity is the number of interning slots for strings.
	StringTableCapacity = 512

	// ThreadTableCapacity is the number of interning slots for threads.
	ThreadTableCapacity = 128
)

// TraceMagic is the FXT identification value carried by the magic number
// record, and MagicNumberWord is that record's complete header word: the
// first eight bytes of every well-formed stream, 10 00 04 46 78 54 16 00 in
// stream order.
const (
	TraceMagic      = 0x16547846
	MagicNumberWord = 0x0016547846040010
)

// Common record header fields.
var (
	RecordType = field.New(0, 3)
	RecordSize = field.New(4, 15)
)

// Metadata record fields.
var (
	MetadataType       = field.New(16, 19)
	ProviderID         = field.New(20, 51)
	ProviderNameLength = field.New(52, 59)
	ProviderEvent      = field.New(52, 55)
	TraceInfoType      = field.New(20, 23)
	TraceInfoMagic     = field.New(24, 55)
)

// String record fields.
var (
	StringIndex  = field.New(16, 30)
	StringLength = field.New(32, 46)
)

// Thread record fields.
var (
	ThreadIndex = field.New(16, 23)
)

// Event record fields.
var (
	EventType          = field.New(16, 19)
	EventArgumentCount = field.New(20, 23)
	EventThreadRef     = field.New(24, 31)
	EventCategoryRef   = field.New(32, 47)
	EventNameRef       = field.New(48, 63)
)

// Blob record fields.
var (
	BlobNameRef = field.New(16, 31)
	BlobSize    = field.New(32, 46)
	BlobType    = field.New(48, 55)
)

// Userspace object record fields.
var (
	UserObjectThreadRef     = field.New(16, 23)
	UserObjectNameRef       = field.New(24, 39)
	UserObjectArgumentCount = field.New(40, 43)
)

// Kernel object record fields.
var (
	KernelObjectType          = field.New(16, 23)
	KernelObjectNameRef       = field.New(24, 39)
	KernelObjectArgumentCount = field.New(40, 43)
)

// Scheduling record fields. The subtype lives in the top nibble; the
// remaining fields are shared by context-switch and thread-wakeup records,
// with the outgoing state used by context switches only.
var (
	SchedulingEventType     = field.New(60, 63)
	SchedulingArgumentCount = field.New(16, 19)
	SchedulingCPUNumber     = field.New(20, 35)
	SchedulingOutgoingState = field.New(36, 39)
)

// Log record fields.
var (
	LogMessageLength = field.New(16, 30)
	LogThreadRef     = field.New(32, 39)
)

// Argument header fields. The name reference occupies [16..31]; the value
// region [32..63] is interpreted per argument type.
var (
	ArgumentType           = field.New(0, 3)
	ArgumentSize           = field.New(4, 15)
	ArgumentNameRef        = field.New(16, 31)
	ArgumentValue          = field.New(32, 63)
	ArgumentStringValueRef = field.New(32, 47)
	ArgumentBoolValue      = field.New(32, 32)
)

// InlineStringRef encodes a 16-bit inline string reference: the top bit set
// and the byte length in the low 15 bits. The caller must have bounded
// length by MaxInlineStringLength.
func InlineStringRef(length int) uint16 {
	return 0x8000 | uint16(length&MaxInlineStringLength)
}
