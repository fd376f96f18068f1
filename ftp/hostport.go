package ftp

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// HostPort is an IPv4 address and port in the six-byte textual encoding
// PORT and the 227 reply use: h1,h2,h3,h4,p1,p2 with port = p1*256 + p2.
type HostPort struct {
	IP   net.IP
	Port uint16
}

func NewHostPort(ip net.IP, port uint16) HostPort {
	return HostPort{IP: ip.To4(), Port: port}
}

// ParseHostPort parses the comma-separated form. Exactly six decimal
// integers in 0..=255 are required.
func ParseHostPort(s string) (HostPort, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 6 {
		return HostPort{}, fmt.Errorf("host-port %q: expected 6 fields, got %d", s, len(fields))
	}
	var b [6]byte
	for i, field := range fields {
		n, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			return HostPort{}, fmt.Errorf("host-port %q: %w", s, err)
		}
		b[i] = byte(n)
	}
	return HostPort{
		IP:   net.IPv4(b[0], b[1], b[2], b[3]).To4(),
		Port: uint16(b[4])<<8 | uint16(b[5]),
	}, nil
}

// HostPortFromAddr extracts the IPv4 host-port of a TCP address.
func HostPortFromAddr(addr net.Addr) (HostPort, error) {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return HostPort{}, fmt.Errorf("not a TCP address: %v", addr)
	}
	ip := tcpAddr.IP.To4()
	if ip == nil {
		return HostPort{}, fmt.Errorf("not an IPv4 address: %v", addr)
	}
	return HostPort{IP: ip, Port: uint16(tcpAddr.Port)}, nil
}

func (hp HostPort) String() string {
	ip := hp.IP.To4()
	return fmt.Sprintf("%d,%d,%d,%d,%d,%d", ip[0], ip[1], ip[2], ip[3], hp.Port>>8, hp.Port&0xFF)
}

// Addr returns the dialable "host:port" form.
func (hp HostPort) Addr() string {
	return net.JoinHostPort(hp.IP.String(), strconv.Itoa(int(hp.Port)))
}
