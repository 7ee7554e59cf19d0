//go:build !linux

package ingest

import (
	"net"

	"golang.org/x/net/ipv4"
	"mdreceiver/internal/core"
)

// genericSource reads one datagram per syscall via the standard net
// package. Platforms without recvmmsg get no batching: ReceiveBatch always
// fills at most one frame per call.
type genericSource struct {
	conn *net.UDPConn
}

func newBatchSource(conn *net.UDPConn, _ *ipv4.PacketConn) Source {
	return &genericSource{conn: conn}
}

func (s *genericSource) ReceiveBatch(frames []core.RawFrame) (int, error) {
	if len(frames) == 0 {
		return 0, nil
	}
	n, err := s.conn.Read(frames[0].Bytes[:])
	if err != nil {
		return 0, err
	}
	frames[0].Len = n
	return 1, nil
}

func (s *genericSource) Close() error {
	return s.conn.Close()
}
