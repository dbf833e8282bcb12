package fxt

import (
	"io"

	"github.com/arloliu/fxt/errs"
	"github.com/arloliu/fxt/format"
	"github.com/arloliu/fxt/internal/field"
	"github.com/arloliu/fxt/internal/hash"
	"github.com/arloliu/fxt/section"
	"github.com/arloliu/fxt/stream"
)

// Writer creates FXT streams.
//
// Writer holds the two intern tables and the destination stream. It does no
// buffering: every operation forwards its bytes directly to the destination
// writer, and a failed operation leaves the stream truncated.
//
// The intern tables store content hashes, not content. Each table is a
// fixed array probed linearly; when it fills up, the next insertion reuses
// the oldest slot position and emits a fresh binding record, which is legal
// because an FXT stream may re-bind a handle at any time and readers apply
// bindings in stream order.
//
// Note: Writer is NOT thread-safe. It's up to the caller to protect it with
// a mutex if they wish to use it from multiple goroutines.
type Writer struct {
	stream *stream.Stream

	stringTable [section.StringTableCapacity]uint64
	threadTable [section.ThreadTableCapacity]uint64

	nextStringIndex int
	nextThreadIndex int
}

// NewWriter creates a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{stream: stream.New(w)}
}

// WriteMagicNumberRecord writes the 8-byte record identifying the stream as
// FXT. It must be the first record of a well-formed stream.
func (w *Writer) WriteMagicNumberRecord() error {
	header := section.RecordType.Make(uint64(format.RecordMetadata)) |
		section.RecordSize.Make(1) |
		section.MetadataType.Make(uint64(format.MetadataTraceInfo)) |
		section.TraceInfoType.Make(uint64(format.TraceInfoMagicNumber)) |
		section.TraceInfoMagic.Make(section.TraceMagic)

	return w.stream.WriteWord(header)
}

// AddProviderInfoRecord writes a provider-info metadata record binding
// providerID to a human-readable provider name.
//
// The name must be shorter than 256 bytes.
func (w *Writer) AddProviderInfoRecord(providerID uint32, providerName string) error {
	if len(providerName) > section.MaxProviderNameLength {
		return errs.ErrStrTooLong
	}

	sizeInWords := 1 + field.BytesToWords(len(providerName))
	header := section.RecordType.Make(uint64(format.RecordMetadata)) |
		section.RecordSize.Make(uint64(sizeInWords)) |
		section.MetadataType.Make(uint64(format.MetadataProviderInfo)) |
		section.ProviderID.Make(uint64(providerID)) |
		section.ProviderNameLength.Make(uint64(len(providerName)))
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}

	return w.stream.WritePaddedBytes([]byte(providerName))
}

// AddProviderSectionRecord writes a provider-section metadata record: all
// subsequent records belong to providerID until the next such record.
func (w *Writer) AddProviderSectionRecord(providerID uint32) error {
	header := section.RecordType.Make(uint64(format.RecordMetadata)) |
		section.RecordSize.Make(1) |
		section.MetadataType.Make(uint64(format.MetadataProviderSection)) |
		section.ProviderID.Make(uint64(providerID))

	return w.stream.WriteWord(header)
}

// AddProviderEventRecord writes a provider-event metadata record notifying
// consumers of an event (such as a filled buffer) on providerID.
func (w *Writer) AddProviderEventRecord(providerID uint32, eventType format.ProviderEventType) error {
	header := section.RecordType.Make(uint64(format.RecordMetadata)) |
		section.RecordSize.Make(1) |
		section.MetadataType.Make(uint64(format.MetadataProviderEvent)) |
		section.ProviderID.Make(uint64(providerID)) |
		section.ProviderEvent.Make(uint64(eventType))

	return w.stream.WriteWord(header)
}

// AddInitializationRecord writes an initialization record declaring the
// tick rate for all subsequent event timestamps.
//
// Another initialization record may be written later to change the rate.
func (w *Writer) AddInitializationRecord(ticksPerSecond uint64) error {
	header := section.RecordType.Make(uint64(format.RecordInitialization)) |
		section.RecordSize.Make(2)
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}

	return w.stream.WriteWord(ticksPerSecond)
}

// SetProcessName writes a kernel-object record giving a human-readable name
// to a process ID.
func (w *Writer) SetProcessName(processID KernelObjectID, name string) error {
	nameIndex, err := w.GetOrCreateStringIndex(name)
	if err != nil {
		return err
	}

	header := section.RecordType.Make(uint64(format.RecordKernelObject)) |
		section.RecordSize.Make(2) |
		section.KernelObjectType.Make(uint64(format.KOIDProcess)) |
		section.KernelObjectNameRef.Make(uint64(nameIndex)) |
		section.KernelObjectArgumentCount.Make(0)
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}

	return w.stream.WriteWord(uint64(processID))
}

// SetThreadName writes a kernel-object record giving a human-readable name
// to a thread ID. The owning process is attached as a KOID argument named
// "process".
func (w *Writer) SetThreadName(processID, threadID KernelObjectID, name string) error {
	nameIndex, err := w.GetOrCreateStringIndex(name)
	if err != nil {
		return err
	}

	prepared, argWords, err := w.prepareArguments([]Argument{
		Arg("process", KOID(processID)),
	})
	if err != nil {
		return err
	}

	sizeInWords := 1 + 1 + argWords
	if sizeInWords > section.MaxRecordSizeWords {
		return errs.ErrRecordSizeTooLarge
	}

	header := section.RecordType.Make(uint64(format.RecordKernelObject)) |
		section.RecordSize.Make(uint64(sizeInWords)) |
		section.KernelObjectType.Make(uint64(format.KOIDThread)) |
		section.KernelObjectNameRef.Make(uint64(nameIndex)) |
		section.KernelObjectArgumentCount.Make(uint64(len(prepared)))
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}
	if err := w.stream.WriteWord(uint64(threadID)); err != nil {
		return err
	}

	return w.writeArguments(prepared, argWords)
}

// AddBlobRecord writes a blob record carrying an opaque named payload.
//
// The payload may be at most 0x7FFFFF bytes; larger payloads fail with
// errs.ErrDataTooLong.
func (w *Writer) AddBlobRecord(name string, data []byte, blobType format.BlobType) error {
	if len(data) > section.MaxBlobLength {
		// Blob length is stored in 23 bits.
		return errs.ErrDataTooLong
	}

	nameIndex, err := w.GetOrCreateStringIndex(name)
	if err != nil {
		return err
	}

	sizeInWords := 1 + field.BytesToWords(len(data))
	header := section.RecordType.Make(uint64(format.RecordBlob)) |
		section.RecordSize.Make(uint64(sizeInWords)) |
		section.BlobNameRef.Make(uint64(nameIndex)) |
		section.BlobSize.Make(uint64(len(data))) |
		section.BlobType.Make(uint64(blobType))
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}

	return w.stream.WritePaddedBytes(data)
}

// AddLogRecord writes a log record attaching a message to a thread at a
// point in time.
//
// The message may be at most 0x7FFF bytes; longer messages fail with
// errs.ErrStrTooLong.
func (w *Writer) AddLogRecord(message string, processID, threadID KernelObjectID, timestamp uint64) error {
	if len(message) > section.MaxLogMessageLength {
		return errs.ErrStrTooLong
	}

	threadIndex, err := w.GetOrCreateThreadIndex(processID, threadID)
	if err != nil {
		return err
	}

	sizeInWords := 1 + 1 + field.BytesToWords(len(message))
	if sizeInWords > section.MaxRecordSizeWords {
		return errs.ErrRecordSizeTooLarge
	}

	header := section.RecordType.Make(uint64(format.RecordLog)) |
		section.RecordSize.Make(uint64(sizeInWords)) |
		section.LogMessageLength.Make(uint64(len(message))) |
		section.LogThreadRef.Make(uint64(threadIndex))
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}
	if err := w.stream.WriteWord(timestamp); err != nil {
		return err
	}

	return w.stream.WritePaddedBytes([]byte(message))
}

// GetOrCreateStringIndex finds the intern-table handle for s, emitting a
// string record binding a new handle if s has not been seen. Handles are in
// [1, 512]; 0 is reserved.
//
// The table stores content hashes only. When all 512 slots are bound, a new
// string replaces the oldest slot position and re-binds its handle; the
// fresh string record precedes any record that references the handle, so
// readers always hold the current binding.
func (w *Writer) GetOrCreateStringIndex(s string) (uint16, error) {
	if len(s) > section.MaxInternedStringLength {
		return 0, errs.ErrStrTooLong
	}

	h := hash.ID(s)
	limit := min(w.nextStringIndex, section.StringTableCapacity)
	for i := 0; i < limit; i++ {
		if w.stringTable[i] == h {
			// 0 is a reserved index, so handles are slot+1.
			return uint16(i + 1), nil
		}
	}

	index := w.nextStringIndex % section.StringTableCapacity
	if err := w.addStringRecord(uint16(index+1), s); err != nil {
		return 0, err
	}

	w.stringTable[index] = h
	w.nextStringIndex++

	return uint16(index + 1), nil
}

// GetOrCreateThreadIndex finds the intern-table handle for the
// (processID, threadID) pair, emitting a thread record binding a new handle
// if the pair has not been seen. Handles are in [1, 128]; 0 is reserved.
func (w *Writer) GetOrCreateThreadIndex(processID, threadID KernelObjectID) (uint16, error) {
	h := hash.PairID(uint64(processID), uint64(threadID))
	limit := min(w.nextThreadIndex, section.ThreadTableCapacity)
	for i := 0; i < limit; i++ {
		if w.threadTable[i] == h {
			return uint16(i + 1), nil
		}
	}

	index := w.nextThreadIndex % section.ThreadTableCapacity
	if err := w.addThreadRecord(uint16(index+1), processID, threadID); err != nil {
		return 0, err
	}

	w.threadTable[index] = h
	w.nextThreadIndex++

	return uint16(index + 1), nil
}

// addStringRecord writes a string record binding stringIndex to the given
// content. Emitted exclusively by the string intern table.
func (w *Writer) addStringRecord(stringIndex uint16, s string) error {
	sizeInWords := 1 + field.BytesToWords(len(s))
	header := section.RecordType.Make(uint64(format.RecordString)) |
		section.RecordSize.Make(uint64(sizeInWords)) |
		section.StringIndex.Make(uint64(stringIndex)) |
		section.StringLength.Make(uint64(len(s)))
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}

	return w.stream.WritePaddedBytes([]byte(s))
}

// addThreadRecord writes a thread record binding threadIndex to the
// (processID, threadID) pair. Emitted exclusively by the thread intern
// table.
func (w *Writer) addThreadRecord(threadIndex uint16, processID, threadID KernelObjectID) error {
	header := section.RecordType.Make(uint64(format.RecordThread)) |
		section.RecordSize.Make(3) |
		section.ThreadIndex.Make(uint64(threadIndex))
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}
	if err := w.stream.WriteWord(uint64(processID)); err != nil {
		return err
	}

	return w.stream.WriteWord(uint64(threadID))
}

// bytesWritten reports the total bytes handed to the destination.
func (w *Writer) bytesWritten() uint64 {
	return w.stream.BytesWritten()
}
