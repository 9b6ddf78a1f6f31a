// Package console implements the structured console sink (C8): a
// stream-like destination for sequences of typed payload items tagged
// with a thread id and a message type. The component does no locking
// of its own; a Sink implementation must self-serialize.
package console

// ThreadID identifies the worker that produced a message.
// NoThread marks a message with no associated worker (e.g. emitted by
// the controller itself).
type ThreadID int

// NoThread is the sentinel ThreadID meaning "no associated thread".
const NoThread ThreadID = -1

// MessageType is the closed set of console message categories.
type MessageType int

const (
	Information MessageType = iota
	Data
	Debug
	BuildWarning
	BuildError
	RuntimeWarning
	RuntimeError
)

func (t MessageType) String() string {
	switch t {
	case Information:
		return "INFORMATION"
	case Data:
		return "DATA"
	case Debug:
		return "DEBUG"
	case BuildWarning:
		return "BUILD_WARNING"
	case BuildError:
		return "BUILD_ERROR"
	case RuntimeWarning:
		return "RUNTIME_WARNING"
	case RuntimeError:
		return "RUNTIME_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Base identifies the numeric base a formatting modifier or an integer
// payload item should render in.
type Base int

const (
	Decimal Base = iota
	Hexadecimal
	Octal
	Binary
)

// Item is a single payload item forwarded to a Sink between
// StartMessage and EndMessage. Every concrete item type below
// implements Item; formatting modifiers are items too, mutating the
// sink's per-thread formatting state until the message ends.
type Item interface {
	item()
}

type (
	Text    string
	Bool    bool
	Int8    int8
	Int16   int16
	Int32   int32
	Int64   int64
	Uint8   uint8
	Uint16  uint16
	Uint32  uint32
	Uint64  uint64
	Real    float64
	Complex complex128

	// Set renders a collection of items as a set: {a, b, c}.
	Set []Item
	// Tuple renders a fixed-size collection of items as a tuple: (a, b).
	Tuple []Item
	// Variant wraps a single item of otherwise-unknown static type.
	Variant struct{ Item Item }

	// SetBase changes the active integer rendering base.
	SetBase Base
	// SetWidth sets the minimum field width for subsequent items.
	SetWidth int
	// SetPad sets the pad rune used to reach SetWidth.
	SetPad rune
	// UpperCase switches subsequent hex digits/text to upper case.
	UpperCase struct{}
	// LowerCase switches subsequent hex digits/text to lower case.
	LowerCase struct{}
	// ResetCase restores the sink's default case behavior.
	ResetCase struct{}
)

func (Text) item()      {}
func (Bool) item()      {}
func (Int8) item()      {}
func (Int16) item()     {}
func (Int32) item()     {}
func (Int64) item()     {}
func (Uint8) item()     {}
func (Uint16) item()    {}
func (Uint32) item()    {}
func (Uint64) item()    {}
func (Real) item()      {}
func (Complex) item()   {}
func (Set) item()       {}
func (Tuple) item()     {}
func (Variant) item()   {}
func (SetBase) item()   {}
func (SetWidth) item()  {}
func (SetPad) item()    {}
func (UpperCase) item() {}
func (LowerCase) item() {}
func (ResetCase) item() {}

// Sink is the embedder-facing console destination. StartMessage
// returns whether the sink wants the message; if true, every
// subsequent Item is forwarded via Payload, in order, and EndMessage
// closes the message. A Sink that returns false from StartMessage
// receives no further calls for that message.
type Sink interface {
	StartMessage(thread ThreadID, kind MessageType) bool
	Payload(item Item)
	EndMessage()
}
