package itch

// Side is the ITCH buy/sell indicator, encoded on the wire as the ASCII
// bytes 'B' and 'S'.
type Side byte

const (
	SideBuy  Side = 'B'
	SideSell Side = 'S'
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "Buy"
	case SideSell:
		return "Sell"
	default:
		return "Unknown"
	}
}

// Message type codes recognized by the dispatcher. Only AddOrder,
// OrderExecuted, OrderCancel, and OrderDelete get typed views; the rest are
// recognized so their length is known and the stream can advance past them,
// but are otherwise delivered to Handler.OnUnknown.
const (
	MsgTypeSystemEvent               = 'S'
	MsgTypeStockDirectory            = 'R'
	MsgTypeStockTradingAction        = 'H'
	MsgTypeRegSHORestriction         = 'Y'
	MsgTypeMarketParticipantPosition = 'L'
	MsgTypeMWCBDeclineLevel          = 'V'
	MsgTypeMWCBStatus                = 'W'
	MsgTypeIPOQuotingPeriod          = 'K'
	MsgTypeAddOrder                  = 'A'
	MsgTypeAddOrderMPID              = 'F'
	MsgTypeOrderExecuted             = 'E'
	MsgTypeOrderExecutedWithPrice    = 'C'
	MsgTypeOrderCancel               = 'X'
	MsgTypeOrderDelete               = 'D'
	MsgTypeOrderReplace              = 'U'
	MsgTypeTrade                     = 'P'
	MsgTypeCrossTrade                = 'Q'
	MsgTypeBrokenTrade               = 'B'
	MsgTypeNOII                      = 'I'
	MsgTypeRPII                      = 'N'
)

// messageLengths maps every recognized ITCH 5.0 type byte to its fixed
// total wire length, header included. Lengths for types without a typed
// view in this package come from the NASDAQ TotalView-ITCH 5.0 binary
// specification; they exist here only so ParseStream can advance past an
// unrecognized-but-known message without reading undefined memory.
var messageLengths = map[byte]int{
	MsgTypeSystemEvent:               12,
	MsgTypeStockDirectory:            39,
	MsgTypeStockTradingAction:        25,
	MsgTypeRegSHORestriction:         20,
	MsgTypeMarketParticipantPosition: 26,
	MsgTypeMWCBDeclineLevel:          35,
	MsgTypeMWCBStatus:                12,
	MsgTypeIPOQuotingPeriod:          28,
	MsgTypeAddOrder:                  36,
	MsgTypeAddOrderMPID:              40,
	MsgTypeOrderExecuted:             31,
	MsgTypeOrderExecutedWithPrice:    36,
	MsgTypeOrderCancel:               23,
	MsgTypeOrderDelete:               19,
	MsgTypeOrderReplace:              35,
	MsgTypeTrade:                     44,
	MsgTypeCrossTrade:                40,
	MsgTypeBrokenTrade:               19,
	MsgTypeNOII:                      50,
	MsgTypeRPII:                      20,
}

// MessageLength reports the fixed wire length of a recognized ITCH message
// type, and whether the type byte was recognized at all.
func MessageLength(msgType byte) (int, bool) {
	n, ok := messageLengths[msgType]
	return n, ok
}

// Header is the 11-byte prefix shared by every ITCH 5.0 message.
type Header struct {
	buf []byte
}

// HeaderOf views the leading 11 bytes of frame as a Header. frame must be
// at least 11 bytes long, true of any message that survived MessageLength.
func HeaderOf(frame []byte) Header { return Header{buf: frame} }

func (h Header) MessageType() byte      { return h.buf[0] }
func (h Header) StockLocate() uint16    { return beUint16(h.buf[1:3]) }
func (h Header) TrackingNumber() uint16 { return beUint16(h.buf[3:5]) }
func (h Header) TimestampNanos() uint64 { return beUint48(h.buf[5:11]) }

// Symbol is an 8-byte ASCII stock symbol, right-padded with 0x20.
type Symbol [8]byte

// String trims the trailing pad bytes.
func (s Symbol) String() string {
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	return string(s[:end])
}

// Equals reports whether query matches the leading bytes of the symbol and
// every remaining slot byte is the 0x20 pad character.
func (s Symbol) Equals(query string) bool {
	if len(query) > len(s) {
		return false
	}
	for i := 0; i < len(query); i++ {
		if s[i] != query[i] {
			return false
		}
	}
	for i := len(query); i < len(s); i++ {
		if s[i] != ' ' {
			return false
		}
	}
	return true
}

func symbolFrom(buf []byte) Symbol {
	var s Symbol
	copy(s[:], buf)
	return s
}

// AddOrder is a zero-copy view of an ITCH 'A' (Add Order — No MPID
// Attribution) message. It aliases the buffer it was decoded from; its
// validity does not outlive that buffer.
type AddOrder struct {
	Header
	buf []byte
}

func (m AddOrder) OrderReference() uint64 { return beUint64(m.buf[11:19]) }
func (m AddOrder) Side() Side             { return Side(m.buf[19]) }
func (m AddOrder) Shares() uint32         { return beUint32(m.buf[20:24]) }
func (m AddOrder) Stock() Symbol          { return symbolFrom(m.buf[24:32]) }

// Price is the fixed-point price, in ticks (decimal price * 10 000).
func (m AddOrder) Price() uint32 { return beUint32(m.buf[32:36]) }

// OrderExecuted is a zero-copy view of an ITCH 'E' (Order Executed) message.
type OrderExecuted struct {
	Header
	buf []byte
}

func (m OrderExecuted) OrderReference() uint64 { return beUint64(m.buf[11:19]) }
func (m OrderExecuted) ExecutedShares() uint32  { return beUint32(m.buf[19:23]) }
func (m OrderExecuted) MatchNumber() uint64     { return beUint64(m.buf[23:31]) }

// OrderCancel is a zero-copy view of an ITCH 'X' (Order Cancel) message.
// Not part of the minimal core in spec, added because a book that never
// sees cancels leaks resting quantity; the layout matches ITCH 5.0's real
// Order Cancel message.
type OrderCancel struct {
	Header
	buf []byte
}

func (m OrderCancel) OrderReference() uint64  { return beUint64(m.buf[11:19]) }
func (m OrderCancel) CancelledShares() uint32 { return beUint32(m.buf[19:23]) }

// OrderDelete is a zero-copy view of an ITCH 'D' (Order Delete) message.
type OrderDelete struct {
	Header
	buf []byte
}

func (m OrderDelete) OrderReference() uint64 { return beUint64(m.buf[11:19]) }
