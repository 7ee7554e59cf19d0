package wire

import "testing"

func TestQuoteRoundTrip(t *testing.T) {
	q := Quote{
		Header: MessageHeader{
			MsgType:     MsgQuote,
			MsgLen:      QuoteSize,
			SequenceNum: 7,
			TimestampNs: 123456,
		},
		SymbolID: 1001,
		BidPrice: 1_500_000,
		AskPrice: 1_500_050,
		BidSize:  100,
		AskSize:  200,
	}

	buf := make([]byte, QuoteSize)
	q.Encode(buf)

	got := AsQuote(buf)
	if got != q {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, q)
	}
}

func TestTradeRoundTrip(t *testing.T) {
	tr := Trade{
		Header:   MessageHeader{MsgType: MsgTrade, MsgLen: TradeSize, SequenceNum: 3},
		SymbolID: 42,
		Price:    99999,
		Size:     10,
		Side:     SideSell,
	}

	buf := make([]byte, TradeSize)
	tr.Encode(buf)

	got := AsTrade(buf)
	if got != tr {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, tr)
	}
}

func TestOrderAddAndCancelRoundTrip(t *testing.T) {
	add := OrderAdd{
		Header:   MessageHeader{MsgType: MsgOrderAdd, MsgLen: OrderAddSize, SequenceNum: 1},
		OrderID:  10,
		SymbolID: 1001,
		Price:    1_000_000,
		Size:     100,
		Side:     SideBuy,
	}
	buf := make([]byte, OrderAddSize)
	add.Encode(buf)
	if got := AsOrderAdd(buf); got != add {
		t.Fatalf("order add round trip mismatch: got %+v, want %+v", got, add)
	}

	cancel := OrderCancel{
		Header:   MessageHeader{MsgType: MsgOrderCancel, MsgLen: OrderCancelSize, SequenceNum: 2},
		OrderID:  10,
		SymbolID: 1001,
	}
	cbuf := make([]byte, OrderCancelSize)
	cancel.Encode(cbuf)
	if got := AsOrderCancel(cbuf); got != cancel {
		t.Fatalf("order cancel round trip mismatch: got %+v, want %+v", got, cancel)
	}
}

func TestExpectedSize(t *testing.T) {
	cases := []struct {
		msgType uint16
		size    int
		ok      bool
	}{
		{MsgQuote, QuoteSize, true},
		{MsgTrade, TradeSize, true},
		{MsgOrderAdd, OrderAddSize, true},
		{MsgOrderCancel, OrderCancelSize, true},
		{99, 0, false},
	}

	for _, c := range cases {
		size, ok := ExpectedSize(c.msgType)
		if size != c.size || ok != c.ok {
			t.Errorf("ExpectedSize(%d) = (%d, %v), want (%d, %v)", c.msgType, size, ok, c.size, c.ok)
		}
	}
}
