package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"fundledger/internal/infra/geoip"
)

const countryKey contextKey = "country_code"

var countryHeaderHints = []string{
	"X-Country-Code",
	"CF-IPCountry",
	"X-Vercel-IP-Country",
	"X-Appengine-Country",
}

// Country annotates the request context with an ISO country code, preferring
// edge-provided headers and falling back to a GeoIP lookup of the client IP.
// The resolver may be nil, in which case only header hints are used.
func Country(resolver geoip.CountryResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := countryFromHeaders(r)
			if code == "" && resolver != nil {
				if ip := ClientIP(r); ip != "" {
					if resolved, err := resolver.CountryCode(ip); err == nil {
						code = resolved
					}
				}
			}
			if code == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), countryKey, code)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CountryFromContext returns the ISO country code set by Country, if any.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(countryKey).(string); ok {
		return v
	}
	return ""
}

func countryFromHeaders(r *http.Request) string {
	for _, h := range countryHeaderHints {
		v := strings.ToUpper(strings.TrimSpace(r.Header.Get(h)))
		if len(v) == 2 && v != "XX" {
			return v
		}
	}
	return ""
}

// ClientIP returns the originating client IP, honoring X-Forwarded-For.
func ClientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}
	return ""
}
