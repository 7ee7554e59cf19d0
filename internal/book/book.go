// Package book maintains resting-order aggregate size at each price level,
// keyed by price and order id only, never by symbol: it is the Go
// counterpart of the reference OrderBook, generalized from int32 to int64
// prices and from per-order intrusive lists to aggregate-only levels.
package book

// Order is a resting order tracked by id so a later cancel (which carries
// only the id) can find its price and side.
type Order struct {
	OrderID  uint64
	SymbolID uint32
	Price    int64
	Size     uint32
	Side     byte
}

// Book aggregates bid and ask size by price. Symbol is not part of the key:
// the book intentionally spans every symbol on the feed as one venue, per
// the design note on symbol scoping.
type Book struct {
	bids   *priceTree
	asks   *priceTree
	orders map[uint64]Order
}

// New creates an empty Book.
func New() *Book {
	return &Book{
		bids:   newPriceTree(false), // descending: highest bid first
		asks:   newPriceTree(true),  // ascending: lowest ask first
		orders: make(map[uint64]Order),
	}
}

// OnOrderAdd records a new resting order and adds its size to the
// corresponding price level. An order id already present is overwritten:
// its prior contribution is first removed from the old level, then the new
// order is applied, so a duplicate add never double-counts size.
func (b *Book) OnOrderAdd(orderID uint64, symbolID uint32, price int64, size uint32, side byte) {
	if existing, ok := b.orders[orderID]; ok {
		b.levelFor(existing.Side).subtractSize(existing.Price, int64(existing.Size))
	}

	b.orders[orderID] = Order{OrderID: orderID, SymbolID: symbolID, Price: price, Size: size, Side: side}
	b.levelFor(side).addSize(price, int64(size))
}

// OnOrderCancel removes a resting order by id, subtracting its size from
// the level at its own recorded price and side. The price/symbol carried on
// the cancel message itself, if any, is ignored: only the book's own record
// of the order is authoritative. Canceling an unknown order id is a no-op.
func (b *Book) OnOrderCancel(orderID uint64) {
	existing, ok := b.orders[orderID]
	if !ok {
		return
	}

	b.levelFor(existing.Side).subtractSize(existing.Price, int64(existing.Size))
	delete(b.orders, orderID)
}

// OnQuote overwrites the bid level at bidPrice and the ask level at
// askPrice with a fresh snapshot, independent of any order-level state.
// Levels at other prices, including earlier quoted ones, are left in
// place, so the quoted prices need not become the best bid or ask. A zero size is stored
// verbatim rather than clearing the level, matching a quote feed that
// reports "no interest" as a level rather than omitting it.
func (b *Book) OnQuote(bidPrice int64, bidSize uint32, askPrice int64, askSize uint32) {
	b.bids.set(bidPrice, int64(bidSize))
	b.asks.set(askPrice, int64(askSize))
}

// BestBid returns the highest bid price and its aggregated size.
func (b *Book) BestBid() (price int64, size int64, ok bool) {
	return b.bids.best()
}

// BestAsk returns the lowest ask price and its aggregated size.
func (b *Book) BestAsk() (price int64, size int64, ok bool) {
	return b.asks.best()
}

// Spread returns BestAsk - BestBid. ok is false if either side is empty.
func (b *Book) Spread() (spread int64, ok bool) {
	bidPrice, _, bidOK := b.bids.best()
	askPrice, _, askOK := b.asks.best()
	if !bidOK || !askOK {
		return 0, false
	}
	return askPrice - bidPrice, true
}

// OrderCount returns the number of resting orders currently tracked.
func (b *Book) OrderCount() int {
	return len(b.orders)
}

func (b *Book) levelFor(side byte) *priceTree {
	if side == 'B' {
		return b.bids
	}
	return b.asks
}
