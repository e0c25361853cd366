/*
token.go - Unsigned token issuing and the auth middleware

Tokens are JWT-shaped (header.payload.signature) with an empty signature
and "alg":"none". Clients only inspect the payload's expiry claim, and
this server only needs to recognize its own tokens, so no signing is
involved anywhere.
*/
package mockapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/warp/reservation-engine/engine"
)

type claimsKey struct{}

// IssueToken builds an unsigned JWT-shaped token for user, expiring at
// expiresAt.
func IssueToken(user engine.User, expiresAt time.Time) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, _ := json.Marshal(engine.Claims{
		Subject: user.Username,
		Expiry:  expiresAt.Unix(),
		Role:    user.Role,
		Groups:  user.Groups,
	})
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

// requireAuth rejects requests without a decodable, unexpired bearer
// token and stashes the claims for handlers.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := engine.DecodeClaims(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if !claims.ExpiresAt().After(s.now()) {
			respondError(w, http.StatusUnauthorized, "token expired")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestClaims returns the claims stored by requireAuth.
func requestClaims(r *http.Request) engine.Claims {
	claims, _ := r.Context().Value(claimsKey{}).(engine.Claims)
	return claims
}
