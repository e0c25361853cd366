/*
session.go - Session guard

PURPOSE:
  Tracks {Authenticated, Unauthenticated}. The initial state derives from
  whether a persisted token exists; the eager expiry check at startup and
  an external fixed-interval timer calling CheckTokenExpiration keep it
  honest afterwards.

TRANSITIONS TO UNAUTHENTICATED:
  - the held token cannot be decoded
  - the expiry claim is at or before the current time
  - any remote call other than login/refresh reports a 401 while the
    session is authenticated (see lifecycle.go)
  - a refresh attempt fails for any reason
  On all of these, the persisted token and user profile are cleared.

TOKEN INSPECTION:
  Tokens are JWT-shaped (header.payload.signature). Only the payload is
  base64url-decoded and parsed; the signature is never verified — that is
  the server's job, this side only needs the expiry claim.
*/
package engine

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// CLAIMS DECODING
// =============================================================================

// DecodeClaims extracts the claims from a JWT-shaped token without
// verifying the signature.
func DecodeClaims(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, fmt.Errorf("token is not a three-segment JWT")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("decode token payload: %w", err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, fmt.Errorf("parse token claims: %w", err)
	}
	return claims, nil
}

// =============================================================================
// SESSION READS
// =============================================================================

// Session returns a snapshot of the authentication state.
func (e *Engine) Session() Session {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := Session{Token: e.auth.token, Authenticated: e.auth.authenticated}
	if e.auth.user != nil {
		u := *e.auth.user
		u.Groups = append([]string(nil), u.Groups...)
		s.User = &u
	}
	return s
}

// Token returns the held session token, "" if none. Transports read the
// current token through this method on every request.
func (e *Engine) Token() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.auth.token
}

// HasRole reports whether the session user holds the given role.
func (e *Engine) HasRole(role string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.auth.user != nil && e.auth.user.Role == role
}

// HasGroup reports whether the session user belongs to the given group.
func (e *Engine) HasGroup(group string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.auth.user == nil {
		return false
	}
	for _, g := range e.auth.user.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// AuthLoading reports the auth slice loading flag.
func (e *Engine) AuthLoading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.auth.flags.loading
}

// AuthError returns the auth slice error message, "" if none.
func (e *Engine) AuthError() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.auth.flags.err
}

// ClearAuthError clears the auth slice error.
func (e *Engine) ClearAuthError() {
	e.mu.Lock()
	e.auth.flags.err = ""
	e.mu.Unlock()
}

// =============================================================================
// SESSION OPERATIONS
// =============================================================================

// Login authenticates with the remote service and, on success, persists
// the token and user profile.
func (e *Engine) Login(ctx context.Context, username, password string) error {
	return run(ctx, e, &e.auth.flags, opLogin,
		func(ctx context.Context) (LoginResult, error) {
			return e.api.Login(ctx, username, password)
		},
		func(res LoginResult) {
			user := res.User
			e.auth.token = res.Token
			e.auth.user = &user
			e.auth.authenticated = true

			e.kv.Set(KeySessionToken, res.Token)
			if raw, err := json.Marshal(res.User); err == nil {
				e.kv.Set(KeySessionUser, string(raw))
			}
		})
}

// Logout clears the session and its persisted state. Tokens are
// stateless, so no remote call is made.
func (e *Engine) Logout() {
	e.mu.Lock()
	e.invalidateSessionLocked()
	e.mu.Unlock()
}

// RefreshToken exchanges the held token for a fresh one and persists it.
// Any failure — including having no token — collapses the session.
func (e *Engine) RefreshToken(ctx context.Context) error {
	if e.Token() == "" {
		e.mu.Lock()
		e.invalidateSessionLocked()
		e.mu.Unlock()
		return ErrNoToken
	}

	err := run(ctx, e, &e.auth.flags, opRefreshToken,
		func(ctx context.Context) (string, error) {
			return e.api.RefreshToken(ctx)
		},
		func(token string) {
			e.auth.token = token
			e.kv.Set(KeySessionToken, token)
		})
	if err != nil {
		e.mu.Lock()
		e.invalidateSessionLocked()
		e.mu.Unlock()
	}
	return err
}

// CheckTokenExpiration inspects the held token's expiry claim and
// collapses the session when the token is undecodable or expired. It is
// called once eagerly at startup and then on a fixed interval by an
// external timer.
func (e *Engine) CheckTokenExpiration() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.auth.token == "" {
		return
	}
	claims, err := DecodeClaims(e.auth.token)
	if err != nil || !claims.ExpiresAt().After(e.now()) {
		e.invalidateSessionLocked()
	}
}

// HandleUnauthorized is the escalation target for authorization failures
// observed outside the engine's own lifecycle (e.g. a transport wired
// directly to it). A 401 while unauthenticated is ignored: the caller is
// already on the login surface.
func (e *Engine) HandleUnauthorized() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.auth.authenticated {
		e.invalidateSessionLocked()
	}
}

// invalidateSessionLocked clears session state and its durable keys.
// Caller holds the engine lock.
func (e *Engine) invalidateSessionLocked() {
	e.auth.token = ""
	e.auth.user = nil
	e.auth.authenticated = false
	e.kv.Delete(KeySessionToken)
	e.kv.Delete(KeySessionUser)
}

// loadSession restores persisted session state. A malformed user profile
// is treated as absent; the eager expiry check decides whether the token
// survives.
func (e *Engine) loadSession() {
	token, ok := e.kv.Get(KeySessionToken)
	if !ok || token == "" {
		return
	}
	e.auth.token = token
	e.auth.authenticated = true

	if raw, ok := e.kv.Get(KeySessionUser); ok {
		var user User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			e.auth.user = &user
		}
	}
}
