package section

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fxt/format"
)

func TestMagicNumberWord(t *testing.T) {
	composed := RecordType.Make(uint64(format.RecordMetadata)) |
		RecordSize.Make(1) |
		MetadataType.Make(uint64(format.MetadataTraceInfo)) |
		TraceInfoType.Make(uint64(format.TraceInfoMagicNumber)) |
		TraceInfoMagic.Make(TraceMagic)

	require.Equal(t, uint64(MagicNumberWord), composed)

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], MagicNumberWord)
	require.Equal(t, []byte{0x10, 0x00, 0x04, 0x46, 0x78, 0x54, 0x16, 0x00}, buf[:])
}

func TestRecordHeaderFields(t *testing.T) {
	header := RecordType.Make(uint64(format.RecordEvent)) | RecordSize.Make(3)

	require.Equal(t, uint64(format.RecordEvent), RecordType.Get(header))
	require.Equal(t, uint64(3), RecordSize.Get(header))
}

func TestProviderSectionHeader(t *testing.T) {
	header := RecordType.Make(uint64(format.RecordMetadata)) |
		RecordSize.Make(1) |
		MetadataType.Make(uint64(format.MetadataProviderSection)) |
		ProviderID.Make(0x1F633)

	require.Equal(t, uint64(0x1F633)<<20|uint64(2)<<16|uint64(1)<<4, header)
}

func TestInlineStringRef(t *testing.T) {
	require.Equal(t, uint16(0x8000), InlineStringRef(0))
	require.Equal(t, uint16(0x8003), InlineStringRef(3))
	require.Equal(t, uint16(0xFFFF), InlineStringRef(MaxInlineStringLength))
}

func TestLimits(t *testing.T) {
	// The limits must agree with the field widths they guard.
	require.True(t, RecordSize.Fits(MaxRecordSizeWords))
	require.False(t, RecordSize.Fits(MaxRecordSizeWords+1))
	require.True(t, ProviderNameLength.Fits(MaxProviderNameLength))
	require.True(t, BlobSize.Fits(MaxBlobLength))
	require.False(t, BlobSize.Fits(MaxBlobLength+1))
	require.True(t, StringLength.Fits(MaxInternedStringLength))
	require.True(t, LogMessageLength.Fits(MaxLogMessageLength))
	require.True(t, EventArgumentCount.Fits(MaxArguments))
	require.False(t, EventArgumentCount.Fits(MaxArguments+1))
	require.True(t, SchedulingOutgoingState.Fits(MaxOutgoingThreadState))

	// Intern handles stay within their reference fields.
	require.True(t, EventThreadRef.Fits(ThreadTableCapacity))
	require.True(t, StringIndex.Fits(StringTableCapacity))
}
