package domain

import (
	"errors"
	"net/netip"
	"testing"
)

func TestFormatCIDR(t *testing.T) {
	tests := []struct {
		addr   string
		suffix int
		want   string
	}{
		{"203.0.113.1", 32, "203.0.113.1/32"},
		{"10.0.0.0", 8, "10.0.0.0/8"},
		{"192.168.1.1", 0, "192.168.1.1/0"},
	}

	for _, tc := range tests {
		got := FormatCIDR(netip.MustParseAddr(tc.addr), tc.suffix)
		if got != tc.want {
			t.Errorf("FormatCIDR(%s, %d) = %s, want %s", tc.addr, tc.suffix, got, tc.want)
		}
	}
}

func TestIsValidIPv4(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"192.168.1.1", true},
		{"203.0.113.1", true},
		{"  9.9.9.9\n", true}, // пробелы вокруг адреса допустимы
		{"invalid", false},
		{"256.1.1.1", false},
		{"", false},
		{"timeout", false},
		{"2001:db8::1", false},
		{"::ffff:1.2.3.4", false}, // 4-in-6 — тоже не dotted-quad
		{"1.2.3.4/32", false},
		{"1.2.3", false},
	}

	for _, tc := range tests {
		if got := IsValidIPv4(tc.in); got != tc.want {
			t.Errorf("IsValidIPv4(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseIPv4_Errors(t *testing.T) {
	if _, err := ParseIPv4("not-an-ip"); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}

	addr, err := ParseIPv4(" 1.2.3.4 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != netip.MustParseAddr("1.2.3.4") {
		t.Fatalf("unexpected addr: %s", addr)
	}
}

func TestOutcomeKindString(t *testing.T) {
	tests := []struct {
		kind OutcomeKind
		want string
	}{
		{OutcomeUnchanged, "unchanged"},
		{OutcomeAlreadyPresent, "already_present"},
		{OutcomeUpdated, "updated"},
		{OutcomeFailed, "failed"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("%d.String() = %s, want %s", tc.kind, got, tc.want)
		}
	}
}
