// Package wire decodes the packed little-endian binary framing carried in
// each multicast datagram: an 8-octet-aligned header followed by one of
// four fixed-size message variants. Decoding reads fields by explicit byte
// offset with encoding/binary rather than reinterpreting the buffer through
// a pointer cast, since Go has no safe equivalent of the reference
// implementation's #pragma pack(1) struct overlay.
package wire

import "encoding/binary"

// Message type identifiers carried in MessageHeader.MsgType.
const (
	MsgQuote       uint16 = 1
	MsgTrade       uint16 = 2
	MsgOrderAdd    uint16 = 3
	MsgOrderCancel uint16 = 4
)

// HeaderSize is the fixed, packed size of MessageHeader in octets.
const HeaderSize = 16

// Wire sizes of each message variant, header included. These are the exact
// byte layout of the packed structs the feed emits: 4-octet symbol/order
// fields, 8-octet price/order-id fields, and explicit padding octets, with
// no compiler-inserted alignment padding.
const (
	QuoteSize       = HeaderSize + 4 + 8 + 8 + 4 + 4 // symbol_id, bid_price, ask_price, bid_size, ask_size
	TradeSize       = HeaderSize + 4 + 8 + 4 + 1 + 3 // symbol_id, price, size, side, pad
	OrderAddSize    = HeaderSize + 8 + 4 + 8 + 4 + 1 + 3
	OrderCancelSize = HeaderSize + 8 + 4 // order_id, symbol_id
)

// Side identifiers used by Trade and OrderAdd.
const (
	SideBuy  = 'B'
	SideSell = 'S'
)

// MessageHeader is the common prefix of every message variant.
type MessageHeader struct {
	MsgType     uint16
	MsgLen      uint16
	SequenceNum uint32
	TimestampNs uint64
}

// DecodeHeader reads a MessageHeader from the front of b. The caller must
// ensure len(b) >= HeaderSize.
func DecodeHeader(b []byte) MessageHeader {
	return MessageHeader{
		MsgType:     binary.LittleEndian.Uint16(b[0:2]),
		MsgLen:      binary.LittleEndian.Uint16(b[2:4]),
		SequenceNum: binary.LittleEndian.Uint32(b[4:8]),
		TimestampNs: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// ExpectedSize returns the exact wire size a message of the given type must
// have, and whether msgType is a recognized type at all.
func ExpectedSize(msgType uint16) (int, bool) {
	switch msgType {
	case MsgQuote:
		return QuoteSize, true
	case MsgTrade:
		return TradeSize, true
	case MsgOrderAdd:
		return OrderAddSize, true
	case MsgOrderCancel:
		return OrderCancelSize, true
	default:
		return 0, false
	}
}

// Quote is a snapshot of the best bid/ask at specific prices for one symbol.
type Quote struct {
	Header   MessageHeader
	SymbolID uint32
	BidPrice int64
	AskPrice int64
	BidSize  uint32
	AskSize  uint32
}

// AsQuote decodes b as a Quote. The caller must pass the variant matching
// the header's MsgType (MsgQuote) and len(b) >= QuoteSize; passing the
// wrong variant or a short buffer is a programming error, not a runtime
// condition this function checks for.
func AsQuote(b []byte) Quote {
	return Quote{
		Header:   DecodeHeader(b),
		SymbolID: binary.LittleEndian.Uint32(b[16:20]),
		BidPrice: int64(binary.LittleEndian.Uint64(b[20:28])),
		AskPrice: int64(binary.LittleEndian.Uint64(b[28:36])),
		BidSize:  binary.LittleEndian.Uint32(b[36:40]),
		AskSize:  binary.LittleEndian.Uint32(b[40:44]),
	}
}

// Encode writes q into b in wire format. len(b) must be >= QuoteSize.
func (q Quote) Encode(b []byte) {
	encodeHeader(b, q.Header)
	binary.LittleEndian.PutUint32(b[16:20], q.SymbolID)
	binary.LittleEndian.PutUint64(b[20:28], uint64(q.BidPrice))
	binary.LittleEndian.PutUint64(b[28:36], uint64(q.AskPrice))
	binary.LittleEndian.PutUint32(b[36:40], q.BidSize)
	binary.LittleEndian.PutUint32(b[40:44], q.AskSize)
}

// Trade reports an execution at a price. It is observed by the processing
// loop but affects no book state.
type Trade struct {
	Header   MessageHeader
	SymbolID uint32
	Price    int64
	Size     uint32
	Side     byte
}

// AsTrade decodes b as a Trade. See AsQuote for the caller contract.
func AsTrade(b []byte) Trade {
	return Trade{
		Header:   DecodeHeader(b),
		SymbolID: binary.LittleEndian.Uint32(b[16:20]),
		Price:    int64(binary.LittleEndian.Uint64(b[20:28])),
		Size:     binary.LittleEndian.Uint32(b[28:32]),
		Side:     b[32],
	}
}

// Encode writes t into b in wire format. len(b) must be >= TradeSize.
func (t Trade) Encode(b []byte) {
	encodeHeader(b, t.Header)
	binary.LittleEndian.PutUint32(b[16:20], t.SymbolID)
	binary.LittleEndian.PutUint64(b[20:28], uint64(t.Price))
	binary.LittleEndian.PutUint32(b[28:32], t.Size)
	b[32] = t.Side
	b[33], b[34], b[35] = 0, 0, 0
}

// OrderAdd introduces a new resting order.
type OrderAdd struct {
	Header   MessageHeader
	OrderID  uint64
	SymbolID uint32
	Price    int64
	Size     uint32
	Side     byte
}

// AsOrderAdd decodes b as an OrderAdd. See AsQuote for the caller contract.
func AsOrderAdd(b []byte) OrderAdd {
	return OrderAdd{
		Header:   DecodeHeader(b),
		OrderID:  binary.LittleEndian.Uint64(b[16:24]),
		SymbolID: binary.LittleEndian.Uint32(b[24:28]),
		Price:    int64(binary.LittleEndian.Uint64(b[28:36])),
		Size:     binary.LittleEndian.Uint32(b[36:40]),
		Side:     b[40],
	}
}

// Encode writes a into b in wire format. len(b) must be >= OrderAddSize.
func (a OrderAdd) Encode(b []byte) {
	encodeHeader(b, a.Header)
	binary.LittleEndian.PutUint64(b[16:24], a.OrderID)
	binary.LittleEndian.PutUint32(b[24:28], a.SymbolID)
	binary.LittleEndian.PutUint64(b[28:36], uint64(a.Price))
	binary.LittleEndian.PutUint32(b[36:40], a.Size)
	b[40] = a.Side
	b[41], b[42], b[43] = 0, 0, 0
}

// OrderCancel removes a previously added order by id. It carries only the
// order id and symbol; the book must look up the order's own price and
// side to remove it.
type OrderCancel struct {
	Header   MessageHeader
	OrderID  uint64
	SymbolID uint32
}

// AsOrderCancel decodes b as an OrderCancel. See AsQuote for the caller
// contract.
func AsOrderCancel(b []byte) OrderCancel {
	return OrderCancel{
		Header:   DecodeHeader(b),
		OrderID:  binary.LittleEndian.Uint64(b[16:24]),
		SymbolID: binary.LittleEndian.Uint32(b[24:28]),
	}
}

// Encode writes c into b in wire format. len(b) must be >= OrderCancelSize.
func (c OrderCancel) Encode(b []byte) {
	encodeHeader(b, c.Header)
	binary.LittleEndian.PutUint64(b[16:24], c.OrderID)
	binary.LittleEndian.PutUint32(b[24:28], c.SymbolID)
}

func encodeHeader(b []byte, h MessageHeader) {
	binary.LittleEndian.PutUint16(b[0:2], h.MsgType)
	binary.LittleEndian.PutUint16(b[2:4], h.MsgLen)
	binary.LittleEndian.PutUint32(b[4:8], h.SequenceNum)
	binary.LittleEndian.PutUint64(b[8:16], h.TimestampNs)
}
