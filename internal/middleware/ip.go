package middleware

import (
	"net"

	"github.com/labstack/echo/v4"
)

// NewIPExtractor decides where c.RealIP reads the client address from.
// With no trusted proxies the TCP peer address is used and forwarding
// headers are ignored, so clients cannot pick their own rate-limit key.
// Otherwise X-Forwarded-For is honoured only for hops inside the given CIDRs.
func NewIPExtractor(trustedProxies []string) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		// CIDRs are checked by config validation.
		if _, ipNet, err := net.ParseCIDR(cidr); err == nil {
			options = append(options, echo.TrustIPRange(ipNet))
		}
	}

	return echo.ExtractIPFromXFFHeader(options...)
}
