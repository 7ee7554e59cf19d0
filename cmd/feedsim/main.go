// Command feedsim emits a synthetic multicast market data feed for
// exercising the receiver without a real exchange gateway, mirroring the
// reference feed_simulator tool's mix of quotes, order adds/cancels, and
// trades.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net"
	"os"
	"time"

	"mdreceiver/internal/core"
	"mdreceiver/internal/wire"
)

func main() {
	multicast := flag.String("multicast", "239.255.0.1", "multicast group address to send to")
	port := flag.Int("port", 5000, "UDP port to send to")
	rate := flag.Uint64("rate", 1_000_000, "messages per second")
	symbolCount := flag.Uint64("symbols", 100, "number of distinct symbol ids to synthesize")
	duration := flag.Uint64("duration", 10, "seconds to run")
	flag.Parse()

	if err := run(*multicast, *port, *rate, uint32(*symbolCount), *duration); err != nil {
		fmt.Fprintln(os.Stderr, "feedsim:", err)
		os.Exit(1)
	}
}

func run(multicast string, port int, rate uint64, symbolCount uint32, durationSec uint64) error {
	if rate == 0 {
		return fmt.Errorf("rate must be > 0")
	}

	addr, err := net.ResolveUDPAddr("udp4", fmt.Sprintf("%s:%d", multicast, port))
	if err != nil {
		return fmt.Errorf("resolve %s:%d: %w", multicast, port, err)
	}

	conn, err := net.DialUDP("udp4", nil, addr)
	if err != nil {
		return fmt.Errorf("dial %s:%d: %w", multicast, port, err)
	}
	defer conn.Close()

	fmt.Printf("feed simulator -> %s:%d @ %d msg/sec\n", multicast, port, rate)

	rng := rand.New(rand.NewSource(42))
	symbols := make([]uint32, symbolCount)
	for i := range symbols {
		symbols[i] = 1000 + uint32(i)
	}

	var sequence uint32 = 1
	var orderID uint64 = 1

	interval := time.Duration(int64(time.Second) / int64(rate))
	deadline := time.Now().Add(time.Duration(durationSec) * time.Second)
	next := time.Now()

	buf := make([]byte, wire.OrderAddSize) // largest fixed variant, reused across sends

	for time.Now().Before(deadline) {
		symbol := symbols[int(sequence)%len(symbols)]
		n := emit(conn, buf, rng, symbol, &sequence, &orderID)
		_ = n

		next = next.Add(interval)
		if sleep := time.Until(next); sleep > 0 {
			time.Sleep(sleep)
		}
	}

	fmt.Printf("feed simulator finished after %ds\n", durationSec)
	return nil
}

func emit(conn *net.UDPConn, buf []byte, rng *rand.Rand, symbol uint32, sequence *uint32, orderID *uint64) int {
	priceDelta := int64(rng.Intn(1001) - 500)
	size := uint32(100 + rng.Intn(401))
	side := byte(wire.SideBuy)
	if rng.Intn(2) == 1 {
		side = wire.SideSell
	}

	switch rng.Intn(4) + 1 {
	case int(wire.MsgQuote):
		bidPrice := 1_500_000 + priceDelta
		q := wire.Quote{
			Header:   header(wire.MsgQuote, wire.QuoteSize, sequence),
			SymbolID: symbol,
			BidPrice: bidPrice,
			AskPrice: bidPrice + 25,
			BidSize:  size,
			AskSize:  uint32(100 + rng.Intn(401)),
		}
		q.Encode(buf[:wire.QuoteSize])
		n, _ := conn.Write(buf[:wire.QuoteSize])
		return n

	case int(wire.MsgOrderAdd):
		a := wire.OrderAdd{
			Header:   header(wire.MsgOrderAdd, wire.OrderAddSize, sequence),
			OrderID:  *orderID,
			SymbolID: symbol,
			Price:    1_500_000 + priceDelta,
			Size:     size,
			Side:     side,
		}
		*orderID++
		a.Encode(buf[:wire.OrderAddSize])
		n, _ := conn.Write(buf[:wire.OrderAddSize])
		return n

	case int(wire.MsgOrderCancel):
		cancelID := *orderID
		if cancelID > 1 {
			cancelID--
		}
		c := wire.OrderCancel{
			Header:   header(wire.MsgOrderCancel, wire.OrderCancelSize, sequence),
			OrderID:  cancelID,
			SymbolID: symbol,
		}
		c.Encode(buf[:wire.OrderCancelSize])
		n, _ := conn.Write(buf[:wire.OrderCancelSize])
		return n

	default:
		t := wire.Trade{
			Header:   header(wire.MsgTrade, wire.TradeSize, sequence),
			SymbolID: symbol,
			Price:    1_500_000 + priceDelta,
			Size:     size,
			Side:     side,
		}
		t.Encode(buf[:wire.TradeSize])
		n, _ := conn.Write(buf[:wire.TradeSize])
		return n
	}
}

func header(msgType uint16, msgLen int, sequence *uint32) wire.MessageHeader {
	h := wire.MessageHeader{
		MsgType:     msgType,
		MsgLen:      uint16(msgLen),
		SequenceNum: *sequence,
		TimestampNs: core.NowNs(),
	}
	*sequence++
	return h
}
