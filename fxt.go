// Package fxt produces binary trace streams in the Fuchsia Trace Format
// (FXT), the format consumed by FXT-aware viewers such as the Perfetto UI.
//
// A Writer translates each named operation ("record an instant event",
// "declare a process name", "record a context switch") into one or more
// 64-bit-word-aligned records written to a caller-supplied io.Writer.
// Strings and thread identities referenced by records are interned into
// bounded tables so later records can refer to earlier ones by small
// numeric handles.
//
// # Basic Usage
//
//	var buf bytes.Buffer
//	w := fxt.NewWriter(&buf)
//
//	w.WriteMagicNumberRecord()
//	w.AddProviderInfoRecord(1234, "my-provider")
//	w.AddInitializationRecord(1_000_000_000) // ticks per second
//
//	w.SetProcessName(3, "app")
//	w.SetThreadName(3, 45, "main")
//
//	w.AddDurationBeginEvent("render", "frame", 3, 45, 1000)
//	w.AddDurationEndEvent("render", "frame", 3, 45, 2500,
//	    fxt.Arg("dropped", fxt.Bool(false)))
//
// The first record of a well-formed stream is the magic number record;
// after that, records may appear in any order. String and thread binding
// records are emitted automatically by the intern tables before the first
// record that references them.
//
// # Buffering and Errors
//
// The Writer does no buffering of its own: every operation either hands all
// of its bytes to the destination or returns an error, in which case the
// destination has received a partial record and the stream should be
// discarded. Failure modes are the sentinels in the errs package.
//
// Note: Writer is NOT thread-safe. Two writers over two separate
// destinations are independent and may be used from separate goroutines.
package fxt

// KernelObjectID is a KOID: a 64-bit opaque process or thread identifier,
// carried verbatim through the stream.
type KernelObjectID uint64
