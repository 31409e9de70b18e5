package domain

import (
	"fmt"
	"net/netip"
	"strings"
)

// ParseIPv4 разбирает ответ сервиса определения IP.
// Допускаются пробелы/переводы строк вокруг адреса. Любой не-IPv4 ответ
// (IPv6, 4-in-6, мусор, пустая строка) отклоняется с ErrInvalidAddress.
func ParseIPv4(raw string) (netip.Addr, error) {
	s := strings.TrimSpace(raw)
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return addr, nil
}

// IsValidIPv4 сообщает, является ли строка корректным IPv4 dotted-quad.
func IsValidIPv4(s string) bool {
	_, err := ParseIPv4(s)
	return err == nil
}

// FormatCIDR форматирует адрес хоста в CIDR-нотацию "addr/suffix".
func FormatCIDR(addr netip.Addr, suffix int) string {
	return fmt.Sprintf("%s/%d", addr, suffix)
}
