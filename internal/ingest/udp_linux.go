//go:build linux

package ingest

import (
	"net"

	"golang.org/x/net/ipv4"
	"mdreceiver/internal/core"
)

// linuxBatchSource reads with ipv4.PacketConn.ReadBatch, which issues a
// single recvmmsg(2) syscall per call on Linux instead of one recvfrom per
// datagram, matching the reference implementation's batched receive path.
type linuxBatchSource struct {
	conn  *net.UDPConn
	pconn *ipv4.PacketConn
}

func newBatchSource(conn *net.UDPConn, pconn *ipv4.PacketConn) Source {
	return &linuxBatchSource{conn: conn, pconn: pconn}
}

func (s *linuxBatchSource) ReceiveBatch(frames []core.RawFrame) (int, error) {
	msgs := make([]ipv4.Message, len(frames))
	for i := range frames {
		msgs[i].Buffers = [][]byte{frames[i].Bytes[:]}
	}

	n, err := s.pconn.ReadBatch(msgs, 0)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		frames[i].Len = msgs[i].N
	}
	return n, nil
}

func (s *linuxBatchSource) Close() error {
	return s.conn.Close()
}
