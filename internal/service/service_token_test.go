package service

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/utils"
	"github.com/MKhiriev/go-vidshare/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testAuthConfig() config.Auth {
	return config.Auth{
		JWTSecret:       "test-secret-that-is-long-enough-32",
		TokenIssuer:     "go-vidshare",
		SessionTTL:      7 * 24 * time.Hour,
		VerificationTTL: 24 * time.Hour,
		ResetTTL:        time.Hour,
		BcryptCost:      4,
		TokenHashKey:    "token-hash-key",
	}
}

// ─────────────────────────────────────────────
// Session tokens
// ─────────────────────────────────────────────

func TestTokenService_SessionRoundTrip(t *testing.T) {
	clock := newFakeClock()
	svc := NewTokenService(testAuthConfig(), clock.Now)

	token, err := svc.IssueSessionToken(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token.String())
	assert.Equal(t, clock.now.Add(7*24*time.Hour).Unix(), token.ExpiresAt.Unix())

	userID, err := svc.VerifySessionToken(token.String())
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenService_SessionExpired(t *testing.T) {
	clock := newFakeClock()
	svc := NewTokenService(testAuthConfig(), clock.Now)

	token, err := svc.IssueSessionToken(42)
	require.NoError(t, err)

	clock.Advance(7*24*time.Hour + time.Second)

	_, err = svc.VerifySessionToken(token.String())
	assert.ErrorIs(t, err, utils.ErrTokenExpired)
}

func TestTokenService_SessionInvalid(t *testing.T) {
	clock := newFakeClock()
	svc := NewTokenService(testAuthConfig(), clock.Now)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "a-completely-different-signing-key"
	other := NewTokenService(otherCfg, clock.Now)

	foreign, err := other.IssueSessionToken(42)
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-jwt", foreign.String()} {
		_, err = svc.VerifySessionToken(raw)
		assert.ErrorIs(t, err, utils.ErrTokenInvalid, raw)
	}
}

func TestTokenService_SessionWrongIssuer(t *testing.T) {
	clock := newFakeClock()
	cfg := testAuthConfig()
	svc := NewTokenService(cfg, clock.Now)

	cfg.TokenIssuer = "someone-else"
	token, err := NewTokenService(cfg, clock.Now).IssueSessionToken(1)
	require.NoError(t, err)

	_, err = svc.VerifySessionToken(token.String())
	assert.ErrorIs(t, err, utils.ErrTokenInvalid)
}

func TestTokenService_IssueSessionToken_InvalidUser(t *testing.T) {
	svc := NewTokenService(testAuthConfig(), nil)

	_, err := svc.IssueSessionToken(0)
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

// ─────────────────────────────────────────────
// One-time tokens
// ─────────────────────────────────────────────

func TestTokenService_IssueOneTimeToken(t *testing.T) {
	clock := newFakeClock()
	svc := NewTokenService(testAuthConfig(), clock.Now)

	tests := []struct {
		kind models.OneTimeTokenKind
		ttl  time.Duration
	}{
		{models.OneTimeTokenVerification, 24 * time.Hour},
		{models.OneTimeTokenReset, time.Hour},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			token, err := svc.IssueOneTimeToken(tt.kind)
			require.NoError(t, err)

			raw, err := hex.DecodeString(token.Value)
			require.NoError(t, err)
			assert.Len(t, raw, utils.OneTimeTokenBytes)

			assert.Equal(t, tt.kind, token.Kind)
			assert.Equal(t, svc.DigestOneTimeToken(token.Value), token.Digest)
			assert.NotEqual(t, token.Value, token.Digest)
			assert.True(t, clock.now.Add(tt.ttl).Equal(token.ExpiresAt))
		})
	}

	_, err := svc.IssueOneTimeToken("magic-link")
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestTokenService_IssueOneTimeToken_Unique(t *testing.T) {
	svc := NewTokenService(testAuthConfig(), nil)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := svc.IssueOneTimeToken(models.OneTimeTokenReset)
		require.NoError(t, err)
		require.False(t, seen[token.Value])
		seen[token.Value] = true
	}
}

func TestTokenService_DigestDependsOnKey(t *testing.T) {
	cfg := testAuthConfig()
	a := NewTokenService(cfg, nil)
	cfg.TokenHashKey = "another-key"
	b := NewTokenService(cfg, nil)

	assert.Equal(t, a.DigestOneTimeToken("abc"), a.DigestOneTimeToken("abc"))
	assert.NotEqual(t, a.DigestOneTimeToken("abc"), b.DigestOneTimeToken("abc"))
}

func TestTokenService_VerifyOneTimeToken(t *testing.T) {
	clock := newFakeClock()
	svc := NewTokenService(testAuthConfig(), clock.Now)

	token, err := svc.IssueOneTimeToken(models.OneTimeTokenReset)
	require.NoError(t, err)
	expires := token.ExpiresAt

	tests := []struct {
		name      string
		kind      models.OneTimeTokenKind
		presented string
		digest    string
		expiry    *time.Time
		advance   time.Duration
		wantErr   error
	}{
		{name: "valid", kind: models.OneTimeTokenReset, presented: token.Value, digest: token.Digest, expiry: &expires},
		{name: "wrong token", kind: models.OneTimeTokenReset, presented: "deadbeef", digest: token.Digest, expiry: &expires, wantErr: utils.ErrTokenInvalid},
		{name: "empty token", kind: models.OneTimeTokenReset, presented: "", digest: token.Digest, expiry: &expires, wantErr: utils.ErrTokenInvalid},
		{name: "no stored digest", kind: models.OneTimeTokenReset, presented: token.Value, digest: "", expiry: &expires, wantErr: utils.ErrTokenInvalid},
		{name: "no stored expiry", kind: models.OneTimeTokenReset, presented: token.Value, digest: token.Digest, wantErr: utils.ErrTokenExpired},
		{name: "expired", kind: models.OneTimeTokenReset, presented: token.Value, digest: token.Digest, expiry: &expires, advance: time.Hour, wantErr: utils.ErrTokenExpired},
		{name: "unknown kind", kind: "magic-link", presented: token.Value, digest: token.Digest, expiry: &expires, wantErr: utils.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			clock.Advance(tt.advance)
			svc := NewTokenService(testAuthConfig(), clock.Now)

			err := svc.VerifyOneTimeToken(tt.kind, tt.presented, tt.digest, tt.expiry)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
