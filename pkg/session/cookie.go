package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-survey-admin/components/surveys"
)

// DefaultCookieName is used when Config.CookieName is empty.
const DefaultCookieName = "survey_admin_session"

var (
	// ErrInvalidToken reports a cookie that is malformed or fails signature checks.
	ErrInvalidToken = errors.New("session: invalid token")
	// ErrExpired reports a correctly signed cookie past its expiry.
	ErrExpired = errors.New("session: token expired")
)

// Config configures a CookieResolver.
type Config struct {
	CookieName string
	Secret     string
	// AllowBearer accepts `Authorization: Bearer <token>` as an opaque access
	// token for API and CLI callers.
	AllowBearer bool
	Now         func() time.Time
}

// CookieResolver reads HMAC-signed session cookies.
type CookieResolver struct {
	cookieName  string
	secret      []byte
	allowBearer bool
	now         func() time.Time
}

var _ surveys.SessionResolver = (*CookieResolver)(nil)

// NewCookieResolver builds a resolver. The secret is required.
func NewCookieResolver(cfg Config) (*CookieResolver, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("session: secret is required")
	}
	name := cfg.CookieName
	if name == "" {
		name = DefaultCookieName
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &CookieResolver{
		cookieName:  name,
		secret:      []byte(cfg.Secret),
		allowBearer: cfg.AllowBearer,
		now:         now,
	}, nil
}

// CookieName returns the cookie the resolver reads.
func (r *CookieResolver) CookieName() string {
	return r.cookieName
}

type claims struct {
	surveys.Session
	ExpiresAt int64 `json:"exp"`
}

// Sign encodes session as a cookie value valid for ttl.
func (r *CookieResolver) Sign(session surveys.Session, ttl time.Duration) (string, error) {
	if session.UserID == "" {
		return "", fmt.Errorf("session: user id is required")
	}
	payload, err := json.Marshal(claims{Session: session, ExpiresAt: r.now().Add(ttl).Unix()})
	if err != nil {
		return "", fmt.Errorf("session: encode claims: %w", err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + r.signature(encoded), nil
}

// Verify decodes a cookie value produced by Sign.
func (r *CookieResolver) Verify(value string) (*surveys.Session, error) {
	encoded, sig, ok := strings.Cut(strings.TrimSpace(value), ".")
	if !ok || encoded == "" || sig == "" {
		return nil, ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(r.signature(encoded))) {
		return nil, ErrInvalidToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var decoded claims
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, ErrInvalidToken
	}
	if decoded.ExpiresAt > 0 && r.now().Unix() >= decoded.ExpiresAt {
		return nil, ErrExpired
	}
	if decoded.UserID == "" {
		return nil, ErrInvalidToken
	}
	session := decoded.Session
	return &session, nil
}

// ResolveSession implements surveys.SessionResolver. Missing, tampered or
// expired cookies resolve to an anonymous viewer rather than an error.
func (r *CookieResolver) ResolveSession(_ context.Context, creds surveys.Credentials) (*surveys.Session, error) {
	if r.allowBearer {
		if token, ok := bearerToken(creds.Authorization); ok {
			return &surveys.Session{UserID: "bearer", AccessToken: token}, nil
		}
	}
	if creds.Cookie == "" {
		return nil, nil
	}
	cookies, err := http.ParseCookie(creds.Cookie)
	if err != nil {
		return nil, nil
	}
	for _, cookie := range cookies {
		if cookie.Name != r.cookieName {
			continue
		}
		session, err := r.Verify(cookie.Value)
		if err != nil {
			return nil, nil
		}
		return session, nil
	}
	return nil, nil
}

func (r *CookieResolver) signature(encoded string) string {
	mac := hmac.New(sha256.New, r.secret)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
