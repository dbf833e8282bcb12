package fxt

import (
	"github.com/arloliu/fxt/errs"
	"github.com/arloliu/fxt/format"
	"github.com/arloliu/fxt/section"
)

// writeEventRecord encodes one event record: interned category, name, and
// thread references, a packed header, the timestamp word, the argument
// list, and any subtype-specific trailing words.
func (w *Writer) writeEventRecord(eventType format.EventType, category, name string, processID, threadID KernelObjectID, timestamp uint64, extra []uint64, args []Argument) error {
	categoryIndex, err := w.GetOrCreateStringIndex(category)
	if err != nil {
		return err
	}
	nameIndex, err := w.GetOrCreateStringIndex(name)
	if err != nil {
		return err
	}
	threadIndex, err := w.GetOrCreateThreadIndex(processID, threadID)
	if err != nil {
		return err
	}

	prepared, argWords, err := w.prepareArguments(args)
	if err != nil {
		return err
	}

	sizeInWords := 1 + 1 + argWords + len(extra)
	if sizeInWords > section.MaxRecordSizeWords {
		return errs.ErrRecordSizeTooLarge
	}

	header := section.RecordType.Make(uint64(format.RecordEvent)) |
		section.RecordSize.Make(uint64(sizeInWords)) |
		section.EventType.Make(uint64(eventType)) |
		section.EventArgumentCount.Make(uint64(len(prepared))) |
		section.EventThreadRef.Make(uint64(threadIndex)) |
		section.EventCategoryRef.Make(uint64(categoryIndex)) |
		section.EventNameRef.Make(uint64(nameIndex))
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}
	if err := w.stream.WriteWord(timestamp); err != nil {
		return err
	}

	if err := w.writeArguments(prepared, argWords); err != nil {
		return err
	}

	for _, word := range extra {
		if err := w.stream.WriteWord(word); err != nil {
			return err
		}
	}

	return nil
}

// AddInstantEvent writes an instant event: a single moment in time.
func (w *Writer) AddInstantEvent(category, name string, processID, threadID KernelObjectID, timestamp uint64, args ...Argument) error {
	return w.writeEventRecord(format.EventInstant, category, name, processID, threadID, timestamp, nil, args)
}

// AddCounterEvent writes a counter event sampling the argument values under
// counterID. Consumers plot each argument as a separate series keyed by
// (counter name, argument name).
func (w *Writer) AddCounterEvent(category, name string, processID, threadID KernelObjectID, timestamp uint64, counterID uint64, args ...Argument) error {
	return w.writeEventRecord(format.EventCounter, category, name, processID, threadID, timestamp, []uint64{counterID}, args)
}

// AddDurationBeginEvent writes the start of a duration on a thread.
// Durations nest; each begin pairs with the next end on the same thread.
func (w *Writer) AddDurationBeginEvent(category, name string, processID, threadID KernelObjectID, timestamp uint64, args ...Argument) error {
	return w.writeEventRecord(format.EventDurationBegin, category, name, processID, threadID, timestamp, nil, args)
}

// AddDurationEndEvent writes the end of a duration on a thread.
func (w *Writer) AddDurationEndEvent(category, name string, processID, threadID KernelObjectID, timestamp uint64, args ...Argument) error {
	return w.writeEventRecord(format.EventDurationEnd, category, name, processID, threadID, timestamp, nil, args)
}

// AddDurationCompleteEvent writes a whole duration as a single record, with
// both its begin and end timestamps.
func (w *Writer) AddDurationCompleteEvent(category, name string, processID, threadID KernelObjectID, beginTimestamp, endTimestamp uint64, args ...Argument) error {
	return w.writeEventRecord(format.EventDurationComplete, category, name, processID, threadID, beginTimestamp, []uint64{endTimestamp}, args)
}

// AddAsyncBeginEvent writes the start of an async operation. Matching
// begin/instant/end records share an async correlation ID.
func (w *Writer) AddAsyncBeginEvent(category, name string, processID, threadID KernelObjectID, timestamp uint64, asyncCorrelationID uint64, args ...Argument) error {
	return w.writeEventRecord(format.EventAsyncBegin, category, name, processID, threadID, timestamp, []uint64{asyncCorrelationID}, args)
}

// AddAsyncInstantEvent writes a moment within an async operation.
func (w *Writer) AddAsyncInstantEvent(category, name string, processID, threadID KernelObjectID, timestamp uint64, asyncCorrelationID uint64, args ...Argument) error {
	return w.writeEventRecord(format.EventAsyncInstant, category, name, processID, threadID, timestamp, []uint64{asyncCorrelationID}, args)
}

// AddAsyncEndEvent writes the end of an async operation.
func (w *Writer) AddAsyncEndEvent(category, name string, processID, threadID KernelObjectID, timestamp uint64, asyncCorrelationID uint64, args ...Argument) error {
	return w.writeEventRecord(format.EventAsyncEnd, category, name, processID, threadID, timestamp, []uint64{asyncCorrelationID}, args)
}

// AddFlowBeginEvent writes the start of a flow. A flow connects events
// across threads and processes; matching begin/step/end records share a
// flow correlation ID and must occur within enclosing durations.
func (w *Writer) AddFlowBeginEvent(category, name string, processID, threadID KernelObjectID, timestamp uint64, flowCorrelationID uint64, args ...Argument) error {
	return w.writeEventRecord(format.EventFlowBegin, category, name, processID, threadID, timestamp, []uint64{flowCorrelationID}, args)
}

// AddFlowStepEvent writes an intermediate step of a flow.
func (w *Writer) AddFlowStepEvent(category, name string, processID, threadID KernelObjectID, timestamp uint64, flowCorrelationID uint64, args ...Argument) error {
	return w.writeEventRecord(format.EventFlowStep, category, name, processID, threadID, timestamp, []uint64{flowCorrelationID}, args)
}

// AddFlowEndEvent writes the end of a flow.
func (w *Writer) AddFlowEndEvent(category, name string, processID, threadID KernelObjectID, timestamp uint64, flowCorrelationID uint64, args ...Argument) error {
	return w.writeEventRecord(format.EventFlowEnd, category, name, processID, threadID, timestamp, []uint64{flowCorrelationID}, args)
}

// AddUserspaceObjectRecord writes a userspace-object record naming a
// pointer within a process.
func (w *Writer) AddUserspaceObjectRecord(name string, processID, threadID KernelObjectID, pointer uint64, args ...Argument) error {
	nameIndex, err := w.GetOrCreateStringIndex(name)
	if err != nil {
		return err
	}
	threadIndex, err := w.GetOrCreateThreadIndex(processID, threadID)
	if err != nil {
		return err
	}

	prepared, argWords, err := w.prepareArguments(args)
	if err != nil {
		return err
	}

	sizeInWords := 1 + 1 + argWords
	if sizeInWords > section.MaxRecordSizeWords {
		return errs.ErrRecordSizeTooLarge
	}

	header := section.RecordType.Make(uint64(format.RecordUserspaceObject)) |
		section.RecordSize.Make(uint64(sizeInWords)) |
		section.UserObjectThreadRef.Make(uint64(threadIndex)) |
		section.UserObjectNameRef.Make(uint64(nameIndex)) |
		section.UserObjectArgumentCount.Make(uint64(len(prepared)))
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}
	if err := w.stream.WriteWord(pointer); err != nil {
		return err
	}

	return w.writeArguments(prepared, argWords)
}

// AddContextSwitchRecord writes a scheduling record for a CPU switching
// between threads.
//
// By convention the caller may include Int32 arguments named
// "incoming_weight" and "outgoing_weight" carrying the relative weights of
// the two threads.
func (w *Writer) AddContextSwitchRecord(cpuNumber uint16, outgoingThreadState uint8, outgoingThreadID, incomingThreadID KernelObjectID, timestamp uint64, args ...Argument) error {
	if outgoingThreadState > section.MaxOutgoingThreadState {
		return errs.ErrInvalidOutgoingThreadState
	}

	prepared, argWords, err := w.prepareArguments(args)
	if err != nil {
		return err
	}

	sizeInWords := 1 + 3 + argWords
	if sizeInWords > section.MaxRecordSizeWords {
		return errs.ErrRecordSizeTooLarge
	}

	header := section.RecordType.Make(uint64(format.RecordScheduling)) |
		section.RecordSize.Make(uint64(sizeInWords)) |
		section.SchedulingArgumentCount.Make(uint64(len(prepared))) |
		section.SchedulingCPUNumber.Make(uint64(cpuNumber)) |
		section.SchedulingOutgoingState.Make(uint64(outgoingThreadState)) |
		section.SchedulingEventType.Make(uint64(format.SchedulingContextSwitch))
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}
	if err := w.stream.WriteWord(timestamp); err != nil {
		return err
	}
	if err := w.stream.WriteWord(uint64(outgoingThreadID)); err != nil {
		return err
	}
	if err := w.stream.WriteWord(uint64(incomingThreadID)); err != nil {
		return err
	}

	return w.writeArguments(prepared, argWords)
}

// AddThreadWakeupRecord writes a scheduling record for a thread becoming
// runnable on a CPU.
//
// By convention the caller may include an Int32 argument named "weight"
// carrying the relative weight of the waking thread.
func (w *Writer) AddThreadWakeupRecord(cpuNumber uint16, wakingThreadID KernelObjectID, timestamp uint64, args ...Argument) error {
	prepared, argWords, err := w.prepareArguments(args)
	if err != nil {
		return err
	}

	sizeInWords := 1 + 2 + argWords
	if sizeInWords > section.MaxRecordSizeWords {
		return errs.ErrRecordSizeTooLarge
	}

	header := section.RecordType.Make(uint64(format.RecordScheduling)) |
		section.RecordSize.Make(uint64(sizeInWords)) |
		section.SchedulingArgumentCount.Make(uint64(len(prepared))) |
		section.SchedulingCPUNumber.Make(uint64(cpuNumber)) |
		section.SchedulingEventType.Make(uint64(format.SchedulingThreadWakeup))
	if err := w.stream.WriteWord(header); err != nil {
		return err
	}
	if err := w.stream.WriteWord(timestamp); err != nil {
		return err
	}
	if err := w.stream.WriteWord(uint64(wakingThreadID)); err != nil {
		return err
	}

	return w.writeArguments(prepared, argWords)
}
