package itch

// ParseResult is the outcome of decoding a single ITCH message.
type ParseResult int

const (
	// Ok means a message was fully classified and delivered to the handler.
	Ok ParseResult = iota
	// BufferTooSmall means the buffer is shorter than the type byte's
	// declared message length; no handler method was invoked.
	BufferTooSmall
	// UnknownType means the type byte is not a recognized ITCH code; the
	// raw bytes were delivered to Handler.OnUnknown.
	UnknownType
	// InvalidMessage is reserved for structurally invalid input (for
	// example a zero-length buffer); no handler method was invoked.
	InvalidMessage
)

func (r ParseResult) String() string {
	switch r {
	case Ok:
		return "Ok"
	case BufferTooSmall:
		return "BufferTooSmall"
	case UnknownType:
		return "UnknownType"
	case InvalidMessage:
		return "InvalidMessage"
	default:
		return "Unknown"
	}
}

// ParseOne decodes a single message at the front of buf and delivers it to
// handler. It never copies buf and never allocates.
//
// Preconditions: len(buf) >= 1.
func ParseOne(buf []byte, handler Handler) ParseResult {
	if len(buf) < 1 {
		return InvalidMessage
	}

	msgType := buf[0]
	length, known := MessageLength(msgType)
	if !known {
		handler.OnUnknown(msgType, buf)
		return UnknownType
	}
	if len(buf) < length {
		return BufferTooSmall
	}

	frame := buf[:length]
	header := Header{buf: frame}

	switch msgType {
	case MsgTypeAddOrder:
		handler.OnAddOrder(AddOrder{Header: header, buf: frame})
	case MsgTypeOrderExecuted:
		handler.OnOrderExecuted(OrderExecuted{Header: header, buf: frame})
	case MsgTypeOrderCancel:
		handler.OnOrderCancel(OrderCancel{Header: header, buf: frame})
	case MsgTypeOrderDelete:
		handler.OnOrderDelete(OrderDelete{Header: header, buf: frame})
	default:
		handler.OnUnknown(msgType, frame)
	}
	return Ok
}

// ParseStream repeatedly calls ParseOne over buf, advancing by each
// message's known length, until the first non-Ok result. It returns the
// number of bytes successfully consumed; a trailing incomplete message is
// not an error, and its bytes are not counted.
func ParseStream(buf []byte, handler Handler) int {
	consumed := 0
	for consumed < len(buf) {
		remaining := buf[consumed:]
		result := ParseOne(remaining, handler)
		if result != Ok {
			break
		}
		length, _ := MessageLength(remaining[0])
		consumed += length
	}
	return consumed
}

// SplitFrames walks buf as a concatenation of whole ITCH messages without
// dispatching any of them to a Handler, returning each message's raw bytes
// (still aliasing buf) plus the total number of bytes consumed. It stops at
// the first unrecognized type byte or truncated trailing message, exactly
// like ParseStream; the caller decides what "unconsumed" means for their
// transport (feedgateway reports it back to the sender as a byte count).
func SplitFrames(buf []byte) (frames [][]byte, consumed int) {
	for consumed < len(buf) {
		remaining := buf[consumed:]
		length, known := MessageLength(remaining[0])
		if !known || len(remaining) < length {
			break
		}
		frames = append(frames, remaining[:length])
		consumed += length
	}
	return frames, consumed
}
