package ftp

import (
	"net"
	"testing"
)

func TestParseHostPort(t *testing.T) {
	tests := []struct {
		in       string
		wantIP   string
		wantPort uint16
		wantErr  bool
	}{
		{in: "127,0,0,1,34,184", wantIP: "127.0.0.1", wantPort: 8888},
		{in: "10,0,0,7,0,21", wantIP: "10.0.0.7", wantPort: 21},
		{in: "255,255,255,255,255,255", wantIP: "255.255.255.255", wantPort: 65535},
		{in: "127,0,0,1,34", wantErr: true},          // too few fields
		{in: "127,0,0,1,34,184,0", wantErr: true},    // too many fields
		{in: "127,0,0,256,34,184", wantErr: true},    // octet out of range
		{in: "127,0,0,one,34,184", wantErr: true},    // not a number
		{in: "127, 0, 0, 1, 34, 184", wantErr: true}, // stray spaces
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			hp, err := ParseHostPort(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseHostPort(%q) = %v, want error", tt.in, hp)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHostPort(%q): %v", tt.in, err)
			}
			if hp.IP.String() != tt.wantIP || hp.Port != tt.wantPort {
				t.Errorf("ParseHostPort(%q) = %s:%d, want %s:%d", tt.in, hp.IP, hp.Port, tt.wantIP, tt.wantPort)
			}
		})
	}
}

func TestHostPortRoundTrip(t *testing.T) {
	tests := []HostPort{
		{IP: net.IPv4(127, 0, 0, 1).To4(), Port: 8888},
		{IP: net.IPv4(192, 168, 1, 44).To4(), Port: 1},
		{IP: net.IPv4(0, 0, 0, 0).To4(), Port: 65535},
	}
	for _, hp := range tests {
		parsed, err := ParseHostPort(hp.String())
		if err != nil {
			t.Fatalf("ParseHostPort(%q): %v", hp.String(), err)
		}
		if !parsed.IP.Equal(hp.IP) || parsed.Port != hp.Port {
			t.Errorf("round trip of %v = %v", hp, parsed)
		}
	}
}

func TestHostPortString(t *testing.T) {
	hp := HostPort{IP: net.IPv4(127, 0, 0, 1), Port: 8888}
	if got := hp.String(); got != "127,0,0,1,34,184" {
		t.Errorf("String() = %q, want %q", got, "127,0,0,1,34,184")
	}
	if got := hp.Addr(); got != "127.0.0.1:8888" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:8888")
	}
}
