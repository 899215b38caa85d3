package middleware

import (
	"context"
	"net/http"
	"strings"

	"fundledger/internal/domain"
)

const signerHeader = "X-Signer-Identity"

const signerKey contextKey = "signer_identity"

// Signer extracts the caller identity from the X-Signer-Identity header.
// The boundary trusts the header as-is; signature verification belongs to
// the upstream gateway that terminates authentication.
func Signer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(signerHeader))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), signerKey, domain.Identity(raw))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SignerFromContext returns the caller identity set by Signer, or the zero
// Identity when the request carried no signer header.
func SignerFromContext(ctx context.Context) domain.Identity {
	if v, ok := ctx.Value(signerKey).(domain.Identity); ok {
		return v
	}
	return ""
}
