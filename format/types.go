// Package format defines the closed sets of type tags used by the FXT
// binary trace format: record kinds, metadata kinds, argument kinds, event
// subtypes, and the auxiliary enumerations records carry.
//
// The numeric values are part of the wire format and must not change.
package format

type (
	RecordType           uint8
	MetadataType         uint8
	TraceInfoType        uint8
	ArgumentType         uint8
	EventType            uint8
	KOIDType             uint8
	SchedulingRecordType uint8
	BlobType             uint8
	ProviderEventType    uint8
)

// Record type tags, stored in bits [0..3] of every record header.
const (
	RecordMetadata        RecordType = 0
	RecordInitialization  RecordType = 1
	RecordString          RecordType = 2
	RecordThread          RecordType = 3
	RecordEvent           RecordType = 4
	RecordBlob            RecordType = 5
	RecordUserspaceObject RecordType = 6
	RecordKernelObject    RecordType = 7
	RecordScheduling      RecordType = 8
	RecordLog             RecordType = 9
	RecordLargeBlob       RecordType = 15
)

// Metadata record subtypes, stored in bits [16..19] of a metadata header.
const (
	MetadataProviderInfo    MetadataType = 1
	MetadataProviderSection MetadataType = 2
	MetadataProviderEvent   MetadataType = 3
	MetadataTraceInfo       MetadataType = 4
)

// Trace-info record subtypes.
const (
	TraceInfoMagicNumber TraceInfoType = 0
)

// Argument type tags, stored in bits [0..3] of an argument header.
const (
	ArgNull    ArgumentType = 0
	ArgInt32   ArgumentType = 1
	ArgUint32  ArgumentType = 2
	ArgInt64   ArgumentType = 3
	ArgUint64  ArgumentType = 4
	ArgDouble  ArgumentType = 5
	ArgString  ArgumentType = 6
	ArgPointer ArgumentType = 7
	ArgKOID    ArgumentType = 8
	ArgBool    ArgumentType = 9
)

// Event record subtypes, stored in bits [16..19] of an event header.
const (
	EventInstant          EventType = 0
	EventCounter          EventType = 1
	EventDurationBegin    EventType = 2
	EventDurationEnd      EventType = 3
	EventDurationComplete EventType = 4
	EventAsyncBegin       EventType = 5
	EventAsyncInstant     EventType = 6
	EventAsyncEnd         EventType = 7
	EventFlowBegin        EventType = 8
	EventFlowStep         EventType = 9
	EventFlowEnd          EventType = 10
)

// Kernel object types used by kernel-object records.
const (
	KOIDProcess KOIDType = 1
	KOIDThread  KOIDType = 2
)

// Scheduling record subtypes, stored in bits [60..63] of a scheduling header.
const (
	SchedulingContextSwitch SchedulingRecordType = 1
	SchedulingThreadWakeup  SchedulingRecordType = 2
)

// Blob payload types.
const (
	BlobData       BlobType = 1
	BlobLastBranch BlobType = 2
	BlobPerfetto   BlobType = 3
)

// Provider event types.
const (
	ProviderEventBufferFilledUp ProviderEventType = 0
)

func (t RecordType) String() string {
	switch t {
	case RecordMetadata:
		return "Metadata"
	case RecordInitialization:
		return "Initialization"
	case RecordString:
		return "String"
	case RecordThread:
		return "Thread"
	case RecordEvent:
		return "Event"
	case RecordBlob:
		return "Blob"
	case RecordUserspaceObject:
		return "UserspaceObject"
	case RecordKernelObject:
		return "KernelObject"
	case RecordScheduling:
		return "Scheduling"
	case RecordLog:
		return "Log"
	case RecordLargeBlob:
		return "LargeBlob"
	default:
		return "Unknown"
	}
}

func (t MetadataType) String() string {
	switch t {
	case MetadataProviderInfo:
		return "ProviderInfo"
	case MetadataProviderSection:
		return "ProviderSection"
	case MetadataProviderEvent:
		return "ProviderEvent"
	case MetadataTraceInfo:
		return "TraceInfo"
	default:
		return "Unknown"
	}
}

func (t TraceInfoType) String() string {
	switch t {
	case TraceInfoMagicNumber:
		return "MagicNumber"
	default:
		return "Unknown"
	}
}

func (t ArgumentType) String() string {
	switch t {
	case ArgNull:
		return "Null"
	case ArgInt32:
		return "Int32"
	case ArgUint32:
		return "UInt32"
	case ArgInt64:
		return "Int64"
	case ArgUint64:
		return "UInt64"
	case ArgDouble:
		return "Double"
	case ArgString:
		return "String"
	case ArgPointer:
		return "Pointer"
	case ArgKOID:
		return "KOID"
	case ArgBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

func (t EventType) String() string {
	switch t {
	case EventInstant:
		return "Instant"
	case EventCounter:
		return "Counter"
	case EventDurationBegin:
		return "DurationBegin"
	case EventDurationEnd:
		return "DurationEnd"
	case EventDurationComplete:
		return "DurationComplete"
	case EventAsyncBegin:
		return "AsyncBegin"
	case EventAsyncInstant:
		return "AsyncInstant"
	case EventAsyncEnd:
		return "AsyncEnd"
	case EventFlowBegin:
		return "FlowBegin"
	case EventFlowStep:
		return "FlowStep"
	case EventFlowEnd:
		return "FlowEnd"
	default:
		return "Unknown"
	}
}

func (t KOIDType) String() string {
	switch t {
	case KOIDProcess:
		return "Process"
	case KOIDThread:
		return "Thread"
	default:
		return "Unknown"
	}
}

func (t SchedulingRecordType) String() string {
	switch t {
	case SchedulingContextSwitch:
		return "ContextSwitch"
	case SchedulingThreadWakeup:
		return "ThreadWakeup"
	default:
		return "Unknown"
	}
}

func (t BlobType) String() string {
	switch t {
	case BlobData:
		return "Data"
	case BlobLastBranch:
		return "LastBranch"
	case BlobPerfetto:
		return "Perfetto"
	default:
		return "Unknown"
	}
}

func (t ProviderEventType) String() string {
	switch t {
	case ProviderEventBufferFilledUp:
		return "BufferFilledUp"
	default:
		return "Unknown"
	}
}
