// Package auth — session cookie management.
//
// SESSION MODEL:
// The admin front-end runs on a different origin, so the session travels in
// a cross-site cookie. The cookie value is a signed JWT whose Subject claim
// is the user ID — the server keeps no session table. "Destroying" a
// session therefore means deleting the cookie; the token itself simply ages
// out at its 3-day expiry.
//
// COOKIE ATTRIBUTES:
//   - HttpOnly: JavaScript cannot read the cookie (XSS protection)
//   - Secure + SameSite=None: required for the browser to send the cookie
//     cross-origin at all — SameSite=None is rejected without Secure
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// CookieName is the session cookie's name, shared with the front-end.
const CookieName = "session"

// DefaultSessionTTL is how long an issued session stays valid.
const DefaultSessionTTL = 72 * time.Hour // 3 days

// Sessions issues, validates, and clears session cookies.
//
// It is constructed once in the server wiring and injected into the auth
// handler and the RequireUser middleware — there is no package-level state.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewSessions creates a session manager signing with the given secret.
// The secret should be at least 32 bytes of random data in production.
func NewSessions(secret string, ttl time.Duration) (*Sessions, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "desa-pulosari",
	}, nil
}

// sessionClaims is the JWT payload. Subject holds the user ID; ID (jti) is
// a random xid so every issued session is distinguishable in logs.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// Issue signs a session token for userID and sets it as the session cookie.
func (s *Sessions) Issue(w http.ResponseWriter, userID int64) error {
	now := time.Now()

	c := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    s.issuer,
			ID:        xid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("auth: signing session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return nil
}

// Clear deletes the session cookie. MaxAge -1 tells the browser to drop it
// immediately. The attributes must match the ones used in Issue, otherwise
// some browsers treat it as a different cookie and keep the original.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// UserID reads and validates the session cookie on r, returning the user ID
// it was issued for. Any failure (no cookie, bad signature, expired token,
// foreign issuer) comes back as an error — callers treat them all the same:
// the request is unauthenticated.
func (s *Sessions) UserID(r *http.Request) (int64, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return 0, fmt.Errorf("auth: reading session cookie: %w", err)
	}

	token, err := jwt.ParseWithClaims(
		cookie.Value,
		&sessionClaims{},
		func(token *jwt.Token) (any, error) {
			// Reject tokens that aren't signed with HMAC — prevents
			// algorithm-confusion attacks.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return 0, fmt.Errorf("auth: parsing session token: %w", err)
	}

	c, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return 0, errors.New("auth: invalid session token")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("auth: invalid subject claim %q: %w", c.Subject, err)
	}
	return userID, nil
}
