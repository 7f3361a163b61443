// Package bindaddr resolves the listen address for the RPC server,
// preferring a dual-stack wildcard when the host supports one.
package bindaddr

import (
	"fmt"
	"net"
	"strings"
)

// Auto asks Resolve to probe for dual-stack support instead of using a
// fixed address.
const Auto = "auto"

// ListenFunc opens a listener; it matches net.Listen.
type ListenFunc func(network, address string) (net.Listener, error)

// Resolve turns a configured bind address and port into a concrete
// "host:port" listen address.
//
// An explicit address is used verbatim, except that a bare IPv6 literal
// is bracketed first. Auto probes an IPv6 wildcard bind and falls back
// to the IPv4 wildcard when the probe fails. The probe listener is
// closed before returning, which leaves a small window in which another
// process could claim the port.
func Resolve(bindAddress string, port int, listen ListenFunc) string {
	if listen == nil {
		listen = net.Listen
	}

	if bindAddress != Auto {
		host := bindAddress
		if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
			host = "[" + host + "]"
		}
		return fmt.Sprintf("%s:%d", host, port)
	}

	dual := fmt.Sprintf("[::]:%d", port)
	ln, err := listen("tcp", dual)
	if err != nil {
		return fmt.Sprintf("0.0.0.0:%d", port)
	}
	_ = ln.Close()
	return dual
}
