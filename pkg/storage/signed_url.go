package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidToken covers malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("invalid share token")
	// ErrTokenExpired is returned for a well-signed token past its expiry.
	ErrTokenExpired = errors.New("share token expired")
)

// SignedURLSigner issues opaque, expiring tokens naming a single subject
// (a student id for share links).
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignedURLSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate returns a token for subject and its expiry.
// Format: base64url(subject).expiryUnix.base64url(hmac-sha256).
func (s *SignedURLSigner) Generate(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("subject required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(subject))
	exp := strconv.FormatInt(expiresAt.Unix(), 10)
	return encoded + "." + exp + "." + s.sign(encoded, exp), expiresAt, nil
}

// Parse validates token and returns its subject.
func (s *SignedURLSigner) Parse(token string) (string, time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", time.Time{}, ErrInvalidToken
	}
	encoded, exp, signature := parts[0], parts[1], parts[2]

	if !hmac.Equal([]byte(s.sign(encoded, exp)), []byte(signature)) {
		return "", time.Time{}, ErrInvalidToken
	}
	expUnix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return "", time.Time{}, ErrInvalidToken
	}
	subject, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || len(subject) == 0 {
		return "", time.Time{}, ErrInvalidToken
	}

	expiresAt := time.Unix(expUnix, 0)
	if s.now().After(expiresAt) {
		return "", time.Time{}, ErrTokenExpired
	}
	return string(subject), expiresAt, nil
}

func (s *SignedURLSigner) sign(encodedSubject, exp string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(encodedSubject + "|" + exp))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
