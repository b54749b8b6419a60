// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vidshare/internal/service"
	"github.com/MKhiriev/go-vidshare/internal/store"
	"github.com/MKhiriev/go-vidshare/internal/validators"
	"github.com/MKhiriev/go-vidshare/models"
)

// stubToken returns a models.Token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{Token: &jwt.Token{}, SignedString: signed}
}

// ─────────────────────────────────────────────
// Signup
// ─────────────────────────────────────────────

func TestSignup(t *testing.T) {
	unverified := models.User{ID: 7, Name: "Alice", Email: "alice@example.com"}

	tests := []struct {
		name        string
		body        string
		serviceErr  error
		callService bool
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "created",
			body:        `{"name":"Alice","email":"alice@example.com","password":"secret1"}`,
			callService: true,
			wantStatus:  http.StatusCreated,
			wantMessage: "User created successfully. Please check your email to verify your account.",
		},
		{
			name:        "invalid json",
			body:        `{"name":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid JSON was passed",
		},
		{
			name:        "duplicate email",
			body:        `{"name":"Alice","email":"alice@example.com","password":"secret1"}`,
			callService: true,
			serviceErr:  service.ErrDuplicateEmail,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "User with this email already exists",
		},
		{
			name:        "short password",
			body:        `{"name":"Alice","email":"alice@example.com","password":"123"}`,
			callService: true,
			serviceErr:  fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrPasswordTooShort),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Password must be at least 6 characters long",
		},
		{
			name:        "store failure is hidden",
			body:        `{"name":"Alice","email":"alice@example.com","password":"secret1"}`,
			callService: true,
			serviceErr:  fmt.Errorf("user creation ended with error: %w", store.ErrStoreUnavailable),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "An error occurred while processing your request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.allowAttempts()
			if tt.callService {
				f.auth.EXPECT().Signup(gomock.Any(), gomock.Any()).Return(unverified, tt.serviceErr)
			}

			rr := f.do(t, http.MethodPost, "/api/auth/signup", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMessage, messageOf(t, rr))
			if tt.wantStatus == http.StatusCreated {
				got := decodeBody[models.UserResponse](t, rr)
				assert.Equal(t, int64(7), got.User.ID)
				assert.False(t, got.User.IsVerified)
				assert.NotContains(t, rr.Body.String(), "token")
			}
		})
	}
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	f := newHandlerFixture(t)
	f.allowAttempts()
	f.auth.EXPECT().
		Login(gomock.Any(), models.LoginRequest{Email: "alice@example.com", Password: "secret1"}, gomock.Any()).
		DoAndReturn(func(_ any, _ models.LoginRequest, client models.ClientInfo) (models.User, models.Token, error) {
			assert.Equal(t, "192.0.2.1", client.IPAddress)
			assert.Equal(t, "vidshare-test", client.UserAgent)
			return alice, stubToken("signed.jwt.value"), nil
		})

	rr := f.do(t, http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret1"}`, "User-Agent", "vidshare-test")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer signed.jwt.value", rr.Header().Get("Authorization"))

	got := decodeBody[models.LoginResponse](t, rr)
	assert.Equal(t, "Login successful", got.Message)
	assert.Equal(t, "signed.jwt.value", got.Token)
	assert.Equal(t, alice.Email, got.User.Email)
}

func TestLogin_Rejected(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{"invalid credentials", service.ErrInvalidCredentials, "Invalid email or password"},
		{"not verified", service.ErrEmailNotVerified, "Please verify your email before logging in. Check your email for verification link."},
		{"missing fields", fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrLoginFieldsRequired), "Email and password are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.allowAttempts()
			f.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, models.Token{}, tt.err)

			rr := f.do(t, http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"x"}`)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.wantMessage, messageOf(t, rr))
			assert.Empty(t, rr.Header().Get("Authorization"))
		})
	}
}

// ─────────────────────────────────────────────
// Me / Logout
// ─────────────────────────────────────────────

func TestMe(t *testing.T) {
	f := newHandlerFixture(t)
	f.authenticate(alice)

	rr := f.do(t, http.MethodGet, "/api/auth/me", "", bearer()...)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, alice, decodeBody[models.UserResponse](t, rr).User)
}

func TestLogout(t *testing.T) {
	f := newHandlerFixture(t)
	f.authenticate(alice)
	f.auth.EXPECT().Logout(gomock.Any(), alice.ID, gomock.Any()).Return(nil)

	rr := f.do(t, http.MethodPost, "/api/auth/logout", "", bearer()...)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Logged out", messageOf(t, rr))
}

// ─────────────────────────────────────────────
// Forgot / reset password
// ─────────────────────────────────────────────

func TestForgotPassword(t *testing.T) {
	f := newHandlerFixture(t)
	f.allowAttempts()
	f.auth.EXPECT().ForgotPassword(gomock.Any(), models.EmailRequest{Email: "alice@example.com"}).Return(nil)

	rr := f.do(t, http.MethodPost, "/api/auth/forgot-password", `{"email":"alice@example.com"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "If an account with that email exists, a password reset link has been sent", messageOf(t, rr))
}

func TestForgotPassword_InvalidEmail(t *testing.T) {
	f := newHandlerFixture(t)
	f.allowAttempts()
	f.auth.EXPECT().ForgotPassword(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrInvalidEmail))

	rr := f.do(t, http.MethodPost, "/api/auth/forgot-password", `{"email":"nope"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please provide a valid email address", messageOf(t, rr))
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"updated", nil, http.StatusOK, "Password updated successfully"},
		{"invalid token", service.ErrInvalidOrExpiredToken, http.StatusBadRequest, "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.auth.EXPECT().ResetPassword(gomock.Any(), models.ResetPasswordRequest{Token: "abc", Password: "newpass1"}).Return(tt.err)

			rr := f.do(t, http.MethodPost, "/api/auth/reset-password", `{"token":"abc","password":"newpass1"}`)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMessage, messageOf(t, rr))
		})
	}
}

// ─────────────────────────────────────────────
// Verify / resend
// ─────────────────────────────────────────────

func TestVerifyEmail_QueryAndBody(t *testing.T) {
	verified := alice

	t.Run("query string", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.auth.EXPECT().VerifyEmail(gomock.Any(), models.VerifyEmailRequest{Token: "tok"}).Return(verified, nil)

		rr := f.do(t, http.MethodGet, "/api/auth/verify-email?token=tok", "")

		require.Equal(t, http.StatusOK, rr.Code)
		got := decodeBody[models.UserResponse](t, rr)
		assert.Equal(t, "Email verified successfully! You can now login.", got.Message)
		assert.True(t, got.User.IsVerified)
	})

	t.Run("post body", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.auth.EXPECT().VerifyEmail(gomock.Any(), models.VerifyEmailRequest{Token: "tok"}).Return(verified, nil)

		rr := f.do(t, http.MethodPost, "/api/auth/verify-email", `{"token":"tok"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.auth.EXPECT().VerifyEmail(gomock.Any(), models.VerifyEmailRequest{}).
			Return(models.User{}, fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrTokenRequired))

		rr := f.do(t, http.MethodGet, "/api/auth/verify-email", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Verification token is required", messageOf(t, rr))
	})
}

func TestResendVerification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"sent or unknown", nil, http.StatusOK, "If the email exists, a verification email has been sent."},
		{"already verified", service.ErrAlreadyVerified, http.StatusBadRequest, "Email is already verified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.allowAttempts()
			f.auth.EXPECT().ResendVerification(gomock.Any(), models.EmailRequest{Email: "alice@example.com"}).Return(tt.err)

			rr := f.do(t, http.MethodPost, "/api/auth/resend-verification", `{"email":"alice@example.com"}`)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMessage, messageOf(t, rr))
		})
	}
}

func TestAuthHandlers_BodyTooLarge(t *testing.T) {
	f := newHandlerFixture(t)

	big := `{"token":"` + strings.Repeat("a", maxJSONBodySize) + `"}`
	rr := f.do(t, http.MethodPost, "/api/auth/reset-password", big)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid JSON was passed", messageOf(t, rr))
}
