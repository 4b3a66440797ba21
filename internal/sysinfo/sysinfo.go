// Package sysinfo reports host network addresses.
package sysinfo

import (
	"net"
)

// NoAddress is reported when the requested address does not exist.
const NoAddress = "0.0.0.0"

// AddrSource lists interface addresses. net.InterfaceAddrs satisfies it.
type AddrSource func() ([]net.Addr, error)

// IPAddress returns the index-th (1-based) non-loopback IPv4 address of the
// host, or NoAddress when there is no such address.
func IPAddress(index int) string {
	return IPAddressFrom(net.InterfaceAddrs, index)
}

// IPAddressFrom is IPAddress over an explicit address source.
func IPAddressFrom(src AddrSource, index int) string {
	if index < 1 {
		return NoAddress
	}

	addrs, err := src()
	if err != nil {
		return NoAddress
	}

	n := 0
	for _, a := range addrs {
		var ip net.IP

		switch v := a.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		default:
			continue
		}

		ip4 := ip.To4()
		if ip4 == nil || ip4.IsLoopback() || ip4.IsUnspecified() {
			continue
		}

		n++
		if n == index {
			return ip4.String()
		}
	}

	return NoAddress
}
