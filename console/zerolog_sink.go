package console

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// ZerologSink adapts a zerolog.Logger to Sink, translating each
// console message into one structured log event: the thread id and
// message type become fields, and the payload items are rendered into
// a single "msg" string honoring the active formatting modifiers,
// mirroring the field-at-a-time approach izerolog.Event uses to adapt
// structured events onto *zerolog.Event.
type ZerologSink struct {
	logger zerolog.Logger

	mu      sync.Mutex
	pending *pendingMessage
}

type pendingMessage struct {
	thread ThreadID
	kind   MessageType
	state  formatState
	text   strings.Builder
}

type formatState struct {
	base  Base
	width int
	pad   rune
	upper bool
}

func defaultFormatState() formatState {
	return formatState{base: Decimal, pad: ' '}
}

// NewZerologSink constructs a sink backed by a default zerolog console
// writer when w is a terminal (detected via go-isatty, the same
// library zerolog's own console writer depends on transitively) or
// otherwise a raw JSON logger to w.
func NewZerologSink(w *os.File) *ZerologSink {
	var logger zerolog.Logger
	if isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd()) {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(w).With().Timestamp().Logger()
	}
	return NewZerologSinkWithLogger(logger)
}

// NewZerologSinkWithLogger constructs a sink backed by an
// already-configured zerolog.Logger.
func NewZerologSinkWithLogger(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{logger: logger}
}

// StartMessage always accepts the message; zerolog's own level
// filtering applies when EndMessage emits the event at the level that
// event picks for the message type.
func (s *ZerologSink) StartMessage(thread ThreadID, kind MessageType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &pendingMessage{thread: thread, kind: kind, state: defaultFormatState()}
	return true
}

// Payload renders item into the pending message's text buffer,
// applying and updating formatting state as appropriate.
func (s *ZerologSink) Payload(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return
	}
	s.pending.apply(item)
}

// EndMessage flushes the accumulated text as one zerolog event at the
// level implied by the message's MessageType.
func (s *ZerologSink) EndMessage() {
	s.mu.Lock()
	msg := s.pending
	s.pending = nil
	s.mu.Unlock()

	if msg == nil {
		return
	}

	evt := s.event(msg.kind)
	if msg.thread != NoThread {
		evt = evt.Int("thread", int(msg.thread))
	}
	evt.Str("type", msg.kind.String()).Msg(msg.text.String())
}

func (s *ZerologSink) event(kind MessageType) *zerolog.Event {
	switch kind {
	case Information, Data:
		return s.logger.Info()
	case Debug:
		return s.logger.Debug()
	case BuildWarning, RuntimeWarning:
		return s.logger.Warn()
	case BuildError, RuntimeError:
		return s.logger.Error()
	default:
		return s.logger.Info()
	}
}

func (m *pendingMessage) apply(item Item) {
	switch v := item.(type) {
	case SetBase:
		m.state.base = Base(v)
	case SetWidth:
		m.state.width = int(v)
	case SetPad:
		m.state.pad = rune(v)
	case UpperCase:
		m.state.upper = true
	case LowerCase:
		m.state.upper = false
	case ResetCase:
		m.state.upper = false
	case Text:
		m.text.WriteString(string(v))
	case Bool:
		m.text.WriteString(strconv.FormatBool(bool(v)))
	case Int8:
		m.writeInt(int64(v))
	case Int16:
		m.writeInt(int64(v))
	case Int32:
		m.writeInt(int64(v))
	case Int64:
		m.writeInt(int64(v))
	case Uint8:
		m.writeUint(uint64(v))
	case Uint16:
		m.writeUint(uint64(v))
	case Uint32:
		m.writeUint(uint64(v))
	case Uint64:
		m.writeUint(uint64(v))
	case Real:
		m.text.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 64))
	case Complex:
		m.text.WriteString(fmt.Sprintf("%v", complex128(v)))
	case Set:
		m.writeSequence("{", "}", []Item(v))
	case Tuple:
		m.writeSequence("(", ")", []Item(v))
	case Variant:
		m.apply(v.Item)
	}
}

func (m *pendingMessage) writeInt(v int64) {
	m.text.WriteString(m.pad32(m.formatInt(v)))
}

func (m *pendingMessage) writeUint(v uint64) {
	m.text.WriteString(m.pad32(m.formatUint(v)))
}

func (m *pendingMessage) formatInt(v int64) string {
	base := integerBase(m.state.base)
	s := strconv.FormatInt(v, base)
	if m.state.upper {
		s = strings.ToUpper(s)
	}
	return s
}

func (m *pendingMessage) formatUint(v uint64) string {
	base := integerBase(m.state.base)
	s := strconv.FormatUint(v, base)
	if m.state.upper {
		s = strings.ToUpper(s)
	}
	return s
}

func integerBase(b Base) int {
	switch b {
	case Hexadecimal:
		return 16
	case Octal:
		return 8
	case Binary:
		return 2
	default:
		return 10
	}
}

func (m *pendingMessage) pad32(s string) string {
	if m.state.width <= len(s) {
		return s
	}
	pad := m.state.pad
	if pad == 0 {
		pad = ' '
	}
	return strings.Repeat(string(pad), m.state.width-len(s)) + s
}

func (m *pendingMessage) writeSequence(open, close string, items []Item) {
	m.text.WriteString(open)
	for i, it := range items {
		if i > 0 {
			m.text.WriteString(", ")
		}
		m.apply(it)
	}
	m.text.WriteString(close)
}
