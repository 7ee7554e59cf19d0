package ingest

import (
	"context"
	"fmt"
	"net"
	"syscall"

	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

// recvBufferBytes is the requested SO_RCVBUF size. The kernel doubles
// whatever is requested for bookkeeping, so this asks for 16MiB of usable
// buffer to absorb bursts ahead of the ring buffer itself.
const recvBufferBytes = 16 * 1024 * 1024

// OpenMulticast binds a UDP socket on port, joins the given multicast
// group, and returns a Source that reads batches of datagrams from it.
// ifaceName selects the multicast interface; an empty string lets the
// kernel pick the default.
func OpenMulticast(group string, port int, ifaceName string) (Source, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
				if sockErr != nil {
					return
				}
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, recvBufferBytes)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}

	packetConn, err := lc.ListenPacket(context.Background(), "udp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen udp4 :%d: %w", port, err)
	}
	udpConn, ok := packetConn.(*net.UDPConn)
	if !ok {
		packetConn.Close()
		return nil, fmt.Errorf("unexpected packet conn type %T", packetConn)
	}

	var iface *net.Interface
	if ifaceName != "" {
		iface, err = net.InterfaceByName(ifaceName)
		if err != nil {
			udpConn.Close()
			return nil, fmt.Errorf("resolve interface %s: %w", ifaceName, err)
		}
	}

	groupAddr := net.ParseIP(group)
	if groupAddr == nil {
		udpConn.Close()
		return nil, fmt.Errorf("invalid multicast group address %q", group)
	}

	pconn := ipv4.NewPacketConn(udpConn)
	if err := pconn.JoinGroup(iface, &net.UDPAddr{IP: groupAddr}); err != nil {
		udpConn.Close()
		return nil, fmt.Errorf("join multicast group %s: %w", group, err)
	}

	return newBatchSource(udpConn, pconn), nil
}
