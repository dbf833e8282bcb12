package fxt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fxt/errs"
	"github.com/arloliu/fxt/format"
	"github.com/arloliu/fxt/section"
)

func TestAddInstantEventWithArgument(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.AddInstantEvent("cat", "name", 3, 45, 100, Arg("k", Int32(42))))

	records := scanRecords(t, buf.Bytes())
	require.Len(t, records, 5)

	// Binding records precede the event: category, name, thread, arg name.
	require.Equal(t, format.RecordString, recordType(records[0][0]))
	require.Equal(t, format.RecordString, recordType(records[1][0]))
	require.Equal(t, format.RecordThread, recordType(records[2][0]))
	require.Equal(t, format.RecordString, recordType(records[3][0]))

	event := records[4]
	require.Len(t, event, 3)
	require.Equal(t, format.RecordEvent, recordType(event[0]))
	require.Equal(t, uint64(3), section.RecordSize.Get(event[0]))
	require.Equal(t, uint64(format.EventInstant), section.EventType.Get(event[0]))
	require.Equal(t, uint64(1), section.EventArgumentCount.Get(event[0]))
	require.Equal(t, uint64(1), section.EventThreadRef.Get(event[0]))
	require.Equal(t, uint64(1), section.EventCategoryRef.Get(event[0]))
	require.Equal(t, uint64(2), section.EventNameRef.Get(event[0]))
	require.Equal(t, uint64(100), event[1])

	argHeader := event[2]
	require.Equal(t, uint64(format.ArgInt32), section.ArgumentType.Get(argHeader))
	require.Equal(t, uint64(1), section.ArgumentSize.Get(argHeader))
	require.Equal(t, uint64(3), section.ArgumentNameRef.Get(argHeader))
	require.Equal(t, uint64(42), section.ArgumentValue.Get(argHeader))
}

func TestEventSubtypes(t *testing.T) {
	tests := []struct {
		name      string
		write     func(w *Writer) error
		eventType format.EventType
		extra     []uint64
	}{
		{
			name:      "Instant",
			write:     func(w *Writer) error { return w.AddInstantEvent("c", "n", 3, 45, 100) },
			eventType: format.EventInstant,
		},
		{
			name:      "Counter",
			write:     func(w *Writer) error { return w.AddCounterEvent("c", "n", 3, 45, 100, 555) },
			eventType: format.EventCounter,
			extra:     []uint64{555},
		},
		{
			name:      "DurationBegin",
			write:     func(w *Writer) error { return w.AddDurationBeginEvent("c", "n", 3, 45, 100) },
			eventType: format.EventDurationBegin,
		},
		{
			name:      "DurationEnd",
			write:     func(w *Writer) error { return w.AddDurationEndEvent("c", "n", 3, 45, 100) },
			eventType: format.EventDurationEnd,
		},
		{
			name:      "DurationComplete",
			write:     func(w *Writer) error { return w.AddDurationCompleteEvent("c", "n", 3, 45, 100, 800) },
			eventType: format.EventDurationComplete,
			extra:     []uint64{800},
		},
		{
			name:      "AsyncBegin",
			write:     func(w *Writer) error { return w.AddAsyncBeginEvent("c", "n", 3, 45, 100, 111) },
			eventType: format.EventAsyncBegin,
			extra:     []uint64{111},
		},
		{
			name:      "AsyncInstant",
			write:     func(w *Writer) error { return w.AddAsyncInstantEvent("c", "n", 3, 45, 100, 111) },
			eventType: format.EventAsyncInstant,
			extra:     []uint64{111},
		},
		{
			name:      "AsyncEnd",
			write:     func(w *Writer) error { return w.AddAsyncEndEvent("c", "n", 3, 45, 100, 111) },
			eventType: format.EventAsyncEnd,
			extra:     []uint64{111},
		},
		{
			name:      "FlowBegin",
			write:     func(w *Writer) error { return w.AddFlowBeginEvent("c", "n", 3, 45, 100, 123) },
			eventType: format.EventFlowBegin,
			extra:     []uint64{123},
		},
		{
			name:      "FlowStep",
			write:     func(w *Writer) error { return w.AddFlowStepEvent("c", "n", 3, 45, 100, 123) },
			eventType: format.EventFlowStep,
			extra:     []uint64{123},
		},
		{
			name:      "FlowEnd",
			write:     func(w *Writer) error { return w.AddFlowEndEvent("c", "n", 3, 45, 100, 123) },
			eventType: format.EventFlowEnd,
			extra:     []uint64{123},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, buf := newTestWriter()
			require.NoError(t, tt.write(w))

			event := lastRecord(t, buf.Bytes())
			require.Equal(t, format.RecordEvent, recordType(event[0]))
			require.Equal(t, uint64(tt.eventType), section.EventType.Get(event[0]))
			require.Equal(t, uint64(0), section.EventArgumentCount.Get(event[0]))
			require.Len(t, event, 2+len(tt.extra))
			require.Equal(t, uint64(100), event[1])
			for i, want := range tt.extra {
				require.Equal(t, want, event[2+i])
			}
		})
	}
}

func TestCounterEventArgumentsPrecedeCounterID(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.AddCounterEvent("c", "n", 3, 45, 250, 555, Arg("int_arg", Int32(111))))

	event := lastRecord(t, buf.Bytes())
	require.Len(t, event, 4)
	require.Equal(t, uint64(250), event[1])
	require.Equal(t, uint64(format.ArgInt32), section.ArgumentType.Get(event[2]))
	require.Equal(t, uint64(555), event[3])
}

func TestEventArgumentCountBounds(t *testing.T) {
	makeArgs := func(n int) []Argument {
		args := make([]Argument, n)
		for i := range args {
			args[i] = Arg("k", Int32(int32(i)))
		}

		return args
	}

	t.Run("Fifteen arguments accepted", func(t *testing.T) {
		w, buf := newTestWriter()

		require.NoError(t, w.AddInstantEvent("c", "n", 3, 45, 100, makeArgs(15)...))

		event := lastRecord(t, buf.Bytes())
		require.Equal(t, uint64(15), section.EventArgumentCount.Get(event[0]))
		require.Equal(t, uint64(17), section.RecordSize.Get(event[0]))
	})

	t.Run("Sixteen arguments rejected", func(t *testing.T) {
		w, _ := newTestWriter()

		err := w.AddInstantEvent("c", "n", 3, 45, 100, makeArgs(16)...)
		require.ErrorIs(t, err, errs.ErrTooManyArgs)
	})
}

func TestEventRecordSizeCap(t *testing.T) {
	w, _ := newTestWriter()

	// A single inline string of the maximum length overflows the 12-bit
	// record size on its own.
	err := w.AddInstantEvent("c", "n", 3, 45, 100,
		Arg("k", InlineStr(string(make([]byte, 0x7FFF)))))
	require.ErrorIs(t, err, errs.ErrRecordSizeTooLarge)
}

func TestAddUserspaceObjectRecord(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.AddUserspaceObjectRecord("MyObject", 3, 26, 67890, Arg("bool_arg", Bool(true))))

	rec := lastRecord(t, buf.Bytes())
	require.Len(t, rec, 3)
	require.Equal(t, format.RecordUserspaceObject, recordType(rec[0]))
	require.Equal(t, uint64(1), section.UserObjectThreadRef.Get(rec[0]))
	require.Equal(t, uint64(1), section.UserObjectNameRef.Get(rec[0]))
	require.Equal(t, uint64(1), section.UserObjectArgumentCount.Get(rec[0]))
	require.Equal(t, uint64(67890), rec[1])
	require.Equal(t, uint64(format.ArgBool), section.ArgumentType.Get(rec[2]))
	require.Equal(t, uint64(1), section.ArgumentBoolValue.Get(rec[2]))
}

func TestAddContextSwitchRecord(t *testing.T) {
	t.Run("With weight arguments", func(t *testing.T) {
		w, buf := newTestWriter()

		require.NoError(t, w.AddContextSwitchRecord(3, 1, 45, 87, 250,
			Arg("incoming_weight", Int32(2)),
			Arg("outgoing_weight", Int32(4)),
		))

		rec := lastRecord(t, buf.Bytes())
		require.Len(t, rec, 6)
		require.Equal(t, format.RecordScheduling, recordType(rec[0]))
		require.Equal(t, uint64(format.SchedulingContextSwitch), section.SchedulingEventType.Get(rec[0]))
		require.Equal(t, uint64(2), section.SchedulingArgumentCount.Get(rec[0]))
		require.Equal(t, uint64(3), section.SchedulingCPUNumber.Get(rec[0]))
		require.Equal(t, uint64(1), section.SchedulingOutgoingState.Get(rec[0]))
		require.Equal(t, uint64(250), rec[1])
		require.Equal(t, uint64(45), rec[2])
		require.Equal(t, uint64(87), rec[3])
		require.Equal(t, uint64(2), section.ArgumentValue.Get(rec[4]))
		require.Equal(t, uint64(4), section.ArgumentValue.Get(rec[5]))
	})

	t.Run("Without arguments", func(t *testing.T) {
		w, buf := newTestWriter()

		require.NoError(t, w.AddContextSwitchRecord(0, 2, 45, 87, 300))

		rec := lastRecord(t, buf.Bytes())
		require.Len(t, rec, 4)
		require.Equal(t, uint64(0), section.SchedulingArgumentCount.Get(rec[0]))
	})

	t.Run("Outgoing state boundary", func(t *testing.T) {
		w, _ := newTestWriter()
		require.NoError(t, w.AddContextSwitchRecord(0, 15, 45, 87, 300))

		err := w.AddContextSwitchRecord(0, 16, 45, 87, 300)
		require.ErrorIs(t, err, errs.ErrInvalidOutgoingThreadState)
	})
}

func TestAddThreadWakeupRecord(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.AddThreadWakeupRecord(3, 45, 925, Arg("weight", Int32(7))))

	rec := lastRecord(t, buf.Bytes())
	require.Len(t, rec, 4)
	require.Equal(t, format.RecordScheduling, recordType(rec[0]))
	require.Equal(t, uint64(format.SchedulingThreadWakeup), section.SchedulingEventType.Get(rec[0]))
	require.Equal(t, uint64(1), section.SchedulingArgumentCount.Get(rec[0]))
	require.Equal(t, uint64(3), section.SchedulingCPUNumber.Get(rec[0]))
	require.Equal(t, uint64(925), rec[1])
	require.Equal(t, uint64(45), rec[2])
	require.Equal(t, uint64(7), section.ArgumentValue.Get(rec[3]))
}

func TestEventsReuseInternHandles(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.AddDurationBeginEvent("Foo", "Root", 3, 45, 200))
	before := buf.Len()

	// Same category, name, and thread: no new binding records.
	require.NoError(t, w.AddDurationEndEvent("Foo", "Root", 3, 45, 900))
	require.Equal(t, before+16, buf.Len())

	end := lastRecord(t, buf.Bytes())
	require.Equal(t, uint64(1), section.EventCategoryRef.Get(end[0]))
	require.Equal(t, uint64(2), section.EventNameRef.Get(end[0]))
	require.Equal(t, uint64(1), section.EventThreadRef.Get(end[0]))
}

// TestGeneralWrite drives the writer the way a real tracing session does
// and checks the stream stays well-formed end to end.
func TestGeneralWrite(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.WriteMagicNumberRecord())

	require.NoError(t, w.AddProviderInfoRecord(1234, "Test Provider"))
	require.NoError(t, w.AddProviderSectionRecord(1234))
	require.NoError(t, w.AddInitializationRecord(1000))

	require.NoError(t, w.SetProcessName(3, "Test.exe"))
	require.NoError(t, w.SetThreadName(3, 45, "Main"))
	require.NoError(t, w.SetThreadName(3, 87, "Worker0"))
	require.NoError(t, w.SetProcessName(4, "Server.exe"))
	require.NoError(t, w.SetThreadName(4, 50, "ServerThread"))

	require.NoError(t, w.AddDurationBeginEvent("Foo", "Root", 3, 45, 200))
	require.NoError(t, w.AddInstantEvent("OtherThing", "EventHappened", 3, 45, 300))
	require.NoError(t, w.AddAsyncBeginEvent("Asdf", "AsyncThing", 3, 45, 450, 111))
	require.NoError(t, w.AddDurationCompleteEvent("OtherService", "DoStuff", 3, 45, 500, 800))
	require.NoError(t, w.AddAsyncEndEvent("Asdf", "AsyncThing", 3, 87, 850, 111))
	require.NoError(t, w.AddDurationEndEvent("Foo", "Root", 3, 45, 900))

	require.NoError(t, w.AddFlowBeginEvent("CategoryA", "AwesomeFlow", 3, 45, 955, 123))
	require.NoError(t, w.AddFlowStepEvent("CategoryA", "AwesomeFlow", 4, 50, 1005, 123))
	require.NoError(t, w.AddFlowEndEvent("CategoryA", "AwesomeFlow", 3, 45, 1155, 123))

	require.NoError(t, w.AddCounterEvent("Bar", "CounterA", 3, 45, 250, 555,
		Arg("int_arg", Int32(111)),
		Arg("uint_arg", Uint32(984)),
		Arg("double_arg", Double(1.0)),
		Arg("int64_arg", Int64(851)),
		Arg("uint64_arg", Uint64(35)),
	))

	require.NoError(t, w.AddBlobRecord("TestBlob", []byte("testing123"), format.BlobData))
	require.NoError(t, w.AddUserspaceObjectRecord("MyAwesomeObject", 3, 26, 67890, Arg("bool_arg", Bool(true))))
	require.NoError(t, w.AddLogRecord("worker started", 3, 87, 1100))

	require.NoError(t, w.AddContextSwitchRecord(3, 1, 45, 87, 250,
		Arg("incoming_weight", Int32(2)),
		Arg("outgoing_weight", Int32(4)),
	))
	require.NoError(t, w.AddThreadWakeupRecord(3, 45, 925))

	data := buf.Bytes()
	require.Equal(t, []byte{0x10, 0x00, 0x04, 0x46, 0x78, 0x54, 0x16, 0x00}, data[:8])

	totalWords := 0
	for _, rec := range scanRecords(t, data) {
		require.LessOrEqual(t, section.RecordType.Get(rec[0]), uint64(format.RecordLog))
		totalWords += len(rec)
	}
	require.Equal(t, len(data), totalWords*8)
}
