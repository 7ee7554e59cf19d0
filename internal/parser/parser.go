// Package parser validates and sequences the wire framing decoded by
// package wire: it is the pure-function counterpart to the reference
// implementation's MessageParser, applied to one RawFrame at a time on the
// processing thread only.
package parser

import (
	"mdreceiver/internal/core"
	"mdreceiver/internal/wire"
)

// Parser validates RawFrames against the wire framing rules and tracks
// per-feed sequence continuity. It is single-threaded state: exactly one
// goroutine (the processing thread) may call Parse.
type Parser struct {
	lastSequence    uint32
	sequenceGaps    uint64
	invalidMessages uint64
}

// New creates a Parser with no prior sequence state.
func New() *Parser {
	return &Parser{}
}

// Parse validates raw against the framing rules in §4.3: minimum length,
// declared length, and exact-size-for-type. On success it returns the
// decoded header and the message payload (header included, sized exactly
// to MsgLen) ready to hand to wire.AsQuote/AsTrade/AsOrderAdd/AsOrderCancel
// matching the header's MsgType. On failure it increments
// InvalidMessages and returns ok=false.
//
// Sequence gaps are tallied against every message that passes validation:
// a regression (SequenceNum <= last seen) is accepted and advances the
// tracked sequence without being counted as a gap.
func (p *Parser) Parse(raw *core.RawFrame) (wire.MessageHeader, []byte, bool) {
	if raw.Len < wire.HeaderSize {
		p.invalidMessages++
		return wire.MessageHeader{}, nil, false
	}

	data := raw.Payload()
	header := wire.DecodeHeader(data)

	if header.MsgLen == 0 || int(header.MsgLen) > raw.Len {
		p.invalidMessages++
		return wire.MessageHeader{}, nil, false
	}

	expected, known := wire.ExpectedSize(header.MsgType)
	if !known || int(header.MsgLen) != expected {
		p.invalidMessages++
		return wire.MessageHeader{}, nil, false
	}

	p.accountSequence(header.SequenceNum)

	return header, data[:header.MsgLen], true
}

func (p *Parser) accountSequence(seq uint32) {
	if p.lastSequence == 0 {
		p.lastSequence = seq
		return
	}

	if seq > p.lastSequence+1 {
		p.sequenceGaps += uint64(seq - p.lastSequence - 1)
	}

	p.lastSequence = seq
}

// SequenceGaps returns the total number of skipped sequence numbers
// observed since the last Reset.
func (p *Parser) SequenceGaps() uint64 {
	return p.sequenceGaps
}

// InvalidMessages returns the total number of frames rejected by
// validation since the last Reset.
func (p *Parser) InvalidMessages() uint64 {
	return p.invalidMessages
}

// Reset zeroes all counters and forgets the last observed sequence number,
// as the pipeline driver does at the start of every reporting interval.
func (p *Parser) Reset() {
	p.lastSequence = 0
	p.sequenceGaps = 0
	p.invalidMessages = 0
}
