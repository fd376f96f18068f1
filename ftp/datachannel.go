package ftp

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/telebroad/ftpd/filesystem"
	"github.com/telebroad/ftpd/metrics"
)

// errTransferAborted marks an I/O failure after the data channel was
// established; the control channel answers it with 426.
var errTransferAborted = errors.New("transfer aborted")

// makePassive binds a fresh listener on the address the client already
// reached us on and switches the session to passive mode. The listener is
// held on the session until the next data-bearing command consumes it.
func (s *Session) makePassive() (HostPort, error) {
	s.closeDataListener()

	local, err := HostPortFromAddr(s.conn.LocalAddr())
	if err != nil {
		return HostPort{}, fmt.Errorf("error resolving control address: %w", err)
	}
	listener, err := net.Listen("tcp4", net.JoinHostPort(local.IP.String(), "0"))
	if err != nil {
		return HostPort{}, fmt.Errorf("error listening for data connection: %w", err)
	}
	s.dataListener = listener
	s.passiveMode = true

	hp, err := HostPortFromAddr(listener.Addr())
	if err != nil {
		listener.Close()
		s.dataListener = nil
		return HostPort{}, err
	}
	s.logger.Debug("data listener started", "addr", listener.Addr().String())
	return hp, nil
}

// openDataConn produces the data socket for one data-bearing command. In
// passive mode it accepts on the held listener, dropping peers whose IP is
// not the control peer's; in active mode it dials the announced endpoint.
func (s *Session) openDataConn() (net.Conn, error) {
	timeout := s.ftpServer.DataTimeout
	if !s.passiveMode {
		conn, err := net.DialTimeout("tcp4", s.dataAddr.Addr(), timeout)
		if err != nil {
			return nil, fmt.Errorf("error connecting to data endpoint: %w", err)
		}
		return conn, nil
	}

	if s.dataListener == nil {
		return nil, errors.New("no passive listener; PASV required")
	}
	controlPeer, err := HostPortFromAddr(s.conn.RemoteAddr())
	if err != nil {
		return nil, err
	}
	tcpListener, ok := s.dataListener.(*net.TCPListener)
	if !ok {
		return nil, fmt.Errorf("unexpected listener type %T", s.dataListener)
	}
	deadline := time.Now().Add(timeout)
	if err := tcpListener.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("error setting accept deadline: %w", err)
	}
	for {
		conn, err := tcpListener.Accept()
		if err != nil {
			return nil, fmt.Errorf("error accepting data connection: %w", err)
		}
		peer, err := HostPortFromAddr(conn.RemoteAddr())
		if err != nil || !peer.IP.Equal(controlPeer.IP) {
			s.logger.Warn("dropping data connection from unexpected peer", "peer", conn.RemoteAddr().String())
			conn.Close()
			continue
		}
		return conn, nil
	}
}

// sendFile streams the file at p to the data socket until EOF.
func (s *Session) sendFile(dataConn net.Conn, p filesystem.Path) error {
	file, err := s.fs.OpenRead(p)
	if err != nil {
		return err
	}
	defer file.Close()
	n, err := io.Copy(dataConn, file)
	metrics.TransferBytes.WithLabelValues("retr").Add(float64(n))
	if err != nil {
		return fmt.Errorf("sending %s: %w", p.Virtual, errTransferAborted)
	}
	return nil
}

// receiveFile streams the data socket into a fresh file at p until the peer
// closes its end.
func (s *Session) receiveFile(dataConn net.Conn, p filesystem.Path) error {
	file, err := s.fs.Create(p)
	if err != nil {
		return err
	}
	n, copyErr := io.Copy(file, dataConn)
	metrics.TransferBytes.WithLabelValues("stor").Add(float64(n))
	closeErr := file.Close()
	if copyErr != nil {
		return fmt.Errorf("receiving %s: %w", p.Virtual, errTransferAborted)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", p.Virtual, closeErr)
	}
	return nil
}

// sendNameList writes one CRLF-terminated entry name per line. NLST and
// LIST both emit this minimal form.
func (s *Session) sendNameList(dataConn net.Conn, p filesystem.Path) error {
	names, err := s.fs.Dir(p)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err := io.WriteString(dataConn, name+"\r\n"); err != nil {
			return fmt.Errorf("sending listing of %s: %w", p.Virtual, errTransferAborted)
		}
	}
	return nil
}
