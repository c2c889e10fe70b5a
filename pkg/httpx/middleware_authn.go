package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
)

// SessionLookup resolves a bearer token to its principal.
type SessionLookup func(token string) (Principal, bool)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. A missing or malformed header yields ok=false.
func BearerToken(r *http.Request) (token string, ok bool) {
	authz := r.Header.Get("Authorization")
	scheme, rest, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(rest)
	return token, token != ""
}

// AuthnMiddleware requires a live session. Requests without one get a 401
// with an RFC 6750 WWW-Authenticate header.
func AuthnMiddleware(lookup SessionLookup) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r)
			if !ok {
				writeBearerError(w, "Missing bearer token")
				return
			}

			p, ok := lookup(raw)
			if !ok {
				slogx.FromContext(r.Context()).Debug("rejected unknown session token")
				writeBearerError(w, "Invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// OptionalAuthnMiddleware attaches the principal when a valid session token
// is presented and otherwise lets the request through anonymously.
func OptionalAuthnMiddleware(lookup SessionLookup) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw, ok := BearerToken(r); ok {
				if p, ok := lookup(raw); ok {
					r = r.WithContext(WithPrincipal(r.Context(), p))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin must run after AuthnMiddleware. Non-admin sessions get 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeBearerError(w, "Missing bearer token")
			return
		}
		if !p.IsAdmin {
			w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
			WriteDetail(w, http.StatusForbidden, "Admin session required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteDetail(w, http.StatusUnauthorized, desc)
}
