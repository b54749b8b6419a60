package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/utils"
	"github.com/MKhiriev/go-vidshare/models"
)

// Clock returns the current time. Services take it as a dependency so that
// expiry logic can be tested.
type Clock func() time.Time

// tokenService signs HS256 session tokens and manages opaque one-time
// tokens. One-time tokens are 32 random bytes, hex encoded; only their
// HMAC-SHA256 digest is ever stored.
type tokenService struct {
	signKey    string
	issuer     string
	sessionTTL time.Duration
	ttl        map[models.OneTimeTokenKind]time.Duration

	hasher *utils.Hasher
	now    Clock
}

// NewTokenService builds a TokenService from the auth settings. A nil clock
// means time.Now.
func NewTokenService(cfg config.Auth, clock Clock) TokenService {
	if clock == nil {
		clock = time.Now
	}

	hashKey := cfg.TokenHashKey
	if hashKey == "" {
		hashKey = cfg.JWTSecret
	}

	return &tokenService{
		signKey:    cfg.JWTSecret,
		issuer:     cfg.TokenIssuer,
		sessionTTL: cfg.SessionTTL,
		ttl: map[models.OneTimeTokenKind]time.Duration{
			models.OneTimeTokenVerification: cfg.VerificationTTL,
			models.OneTimeTokenReset:        cfg.ResetTTL,
		},
		hasher: utils.NewHasher(hashKey),
		now:    clock,
	}
}

func (s *tokenService) IssueSessionToken(userID int64) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.issuer, userID, s.sessionTTL, s.signKey, s.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (s *tokenService) VerifySessionToken(token string) (int64, error) {
	parsed, err := utils.ValidateAndParseJWTToken(token, s.signKey, s.issuer, s.now())
	if err != nil {
		return 0, err
	}

	return parsed.UserID, nil
}

func (s *tokenService) IssueOneTimeToken(kind models.OneTimeTokenKind) (models.OneTimeToken, error) {
	ttl, ok := s.ttl[kind]
	if !ok || ttl <= 0 {
		return models.OneTimeToken{}, fmt.Errorf("%w: unknown one-time token kind %q", ErrTokenCreationFailed, kind)
	}

	value, err := utils.RandomToken(utils.OneTimeTokenBytes)
	if err != nil {
		return models.OneTimeToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.OneTimeToken{
		Kind:      kind,
		Value:     value,
		Digest:    s.DigestOneTimeToken(value),
		ExpiresAt: s.now().Add(ttl).UTC(),
	}, nil
}

// VerifyOneTimeToken compares digests in constant time before looking at
// the expiry, so an expired token is only reported for the right token.
func (s *tokenService) VerifyOneTimeToken(kind models.OneTimeTokenKind, presented, storedDigest string, storedExpiry *time.Time) error {
	if _, ok := s.ttl[kind]; !ok {
		return fmt.Errorf("%w: unknown kind %q", utils.ErrTokenInvalid, kind)
	}
	if presented == "" || storedDigest == "" {
		return utils.ErrTokenInvalid
	}

	digest := s.DigestOneTimeToken(presented)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(storedDigest)) != 1 {
		return utils.ErrTokenInvalid
	}

	if storedExpiry == nil || !s.now().Before(*storedExpiry) {
		return utils.ErrTokenExpired
	}

	return nil
}

func (s *tokenService) DigestOneTimeToken(presented string) string {
	return s.hasher.HashString(presented)
}
