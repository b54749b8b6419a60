package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/mail"
	"github.com/MKhiriev/go-vidshare/internal/store"
	"github.com/MKhiriev/go-vidshare/internal/utils"
	"github.com/MKhiriev/go-vidshare/internal/validators"
	"github.com/MKhiriev/go-vidshare/models"
)

// authService is the concrete implementation of AuthService.
//
// Accounts are created unverified and receive a session token only after the
// email address is confirmed. Verification and reset tokens are opaque; the
// store keeps their digests and consumes them with a conditional update, so a
// token can be redeemed at most once.
type authService struct {
	// userRepository is the data-access layer for accounts.
	userRepository store.UserRepository

	// loginLogRepository records logins and logouts. Failures are logged
	// and never fail the request.
	loginLogRepository store.LoginLogRepository

	tokens    TokenService
	passwords *utils.PasswordHasher
	mailer    mail.Mailer

	now    Clock
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService. A nil clock means time.Now.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	userRepository store.UserRepository,
	loginLogRepository store.LoginLogRepository,
	tokens TokenService,
	passwords *utils.PasswordHasher,
	mailer mail.Mailer,
	clock Clock,
	logger *logger.Logger,
) AuthService {
	if clock == nil {
		clock = time.Now
	}

	return &authService{
		userRepository:     userRepository,
		loginLogRepository: loginLogRepository,
		tokens:             tokens,
		passwords:          passwords,
		mailer:             mailer,
		now:                clock,
		logger:             logger,
	}
}

// Signup creates an unverified account and queues the verification email.
//
// Returns the sanitized user or:
//   - ErrDuplicateEmail if the email is taken, including a concurrent signup
//     that wins the unique index.
//   - A wrapped error for hashing, token or storage failures.
//
// A failure to queue the email is logged only; the user can ask for a new
// link with ResendVerification.
func (a *authService) Signup(ctx context.Context, request models.SignupRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	email := validators.NormalizeEmail(request.Email)

	_, err := a.userRepository.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, ErrDuplicateEmail
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*authService.Signup").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	passwordHash, err := a.passwords.Hash(request.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Msg("password hashing failed")
		return models.User{}, err
	}

	verification, err := a.tokens.IssueOneTimeToken(models.OneTimeTokenVerification)
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Msg("verification token creation failed")
		return models.User{}, err
	}

	user, err := a.userRepository.Create(ctx, models.User{
		Name:                     strings.TrimSpace(request.Name),
		Email:                    email,
		PasswordHash:             passwordHash,
		VerificationToken:        &verification.Digest,
		VerificationTokenExpires: &verification.ExpiresAt,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, ErrDuplicateEmail
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if err = a.mailer.SendVerification(ctx, user, verification.Value); err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("verification email was not queued")
	}

	log.Info().Int64("user_id", user.ID).Msg("user signed up")
	return user.Sanitized(), nil
}

// Login checks the credentials of a verified account and issues a session
// token.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials
// after the same bcrypt work. A correct password on an unverified account
// yields ErrEmailNotVerified.
func (a *authService) Login(ctx context.Context, request models.LoginRequest, client models.ClientInfo) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByEmail(ctx, validators.NormalizeEmail(request.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		a.passwords.CompareDummy(request.Password)
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = a.passwords.Compare(user.PasswordHash, request.Password); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			log.Info().Int64("user_id", user.ID).Msg("wrong password")
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("func", "*authService.Login").Msg("password comparison failed")
		return models.User{}, models.Token{}, err
	}

	if !user.IsVerified {
		return models.User{}, models.Token{}, ErrEmailNotVerified
	}

	token, err := a.tokens.IssueSessionToken(user.ID)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("session token creation failed")
		return models.User{}, models.Token{}, err
	}

	a.appendLoginLog(ctx, user.ID, models.LoginActionLogin, client)

	return user.Sanitized(), token, nil
}

// Logout only records the event: session tokens are stateless.
func (a *authService) Logout(ctx context.Context, userID int64, client models.ClientInfo) error {
	a.appendLoginLog(ctx, userID, models.LoginActionLogout, client)
	return nil
}

// CurrentUser loads the account behind a session token. A deleted or
// unknown account yields ErrUnauthenticated.
func (a *authService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrUnauthenticated
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.CurrentUser").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user.Sanitized(), nil
}

// ForgotPassword stores a new reset digest and queues the reset email. An
// unknown email is not an error, so callers cannot tell the cases apart.
func (a *authService) ForgotPassword(ctx context.Context, request models.EmailRequest) error {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByEmail(ctx, validators.NormalizeEmail(request.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Msg("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	reset, err := a.tokens.IssueOneTimeToken(models.OneTimeTokenReset)
	if err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Msg("reset token creation failed")
		return err
	}

	if err = a.userRepository.SetResetToken(ctx, user.ID, reset.Digest, reset.ExpiresAt); err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Msg("saving reset token failed")
		return fmt.Errorf("saving reset token failed: %w", err)
	}

	if err = a.mailer.SendPasswordReset(ctx, user, reset.Value); err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("password reset email was not queued")
	}

	return nil
}

// ResetPassword redeems a reset token. Unknown, mismatching, expired and
// already consumed tokens all yield ErrInvalidOrExpiredToken and leave the
// password unchanged.
func (a *authService) ResetPassword(ctx context.Context, request models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	digest := a.tokens.DigestOneTimeToken(request.Token)
	user, err := a.userRepository.FindByResetToken(ctx, digest)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrInvalidOrExpiredToken
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ResetPassword").Msg("user search by reset token failed")
		return fmt.Errorf("user search by reset token failed: %w", err)
	}

	if err = a.tokens.VerifyOneTimeToken(models.OneTimeTokenReset, request.Token, deref(user.ResetToken), user.ResetTokenExpires); err != nil {
		log.Info().Err(err).Int64("user_id", user.ID).Msg("reset token rejected")
		return ErrInvalidOrExpiredToken
	}

	passwordHash, err := a.passwords.Hash(request.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.ResetPassword").Msg("password hashing failed")
		return err
	}

	err = a.userRepository.UpdatePassword(ctx, user.ID, passwordHash, digest, a.now().UTC())
	if errors.Is(err, store.ErrTokenNotMatched) {
		return ErrInvalidOrExpiredToken
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ResetPassword").Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Msg("password reset")
	return nil
}

// VerifyEmail redeems a verification token, marks the account verified and
// queues the welcome email.
func (a *authService) VerifyEmail(ctx context.Context, request models.VerifyEmailRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	digest := a.tokens.DigestOneTimeToken(request.Token)
	user, err := a.userRepository.FindByVerificationToken(ctx, digest)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrInvalidOrExpiredToken
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyEmail").Msg("user search by verification token failed")
		return models.User{}, fmt.Errorf("user search by verification token failed: %w", err)
	}

	if err = a.tokens.VerifyOneTimeToken(models.OneTimeTokenVerification, request.Token, deref(user.VerificationToken), user.VerificationTokenExpires); err != nil {
		log.Info().Err(err).Int64("user_id", user.ID).Msg("verification token rejected")
		return models.User{}, ErrInvalidOrExpiredToken
	}

	now := a.now().UTC()
	err = a.userRepository.MarkVerified(ctx, user.ID, digest, now)
	if errors.Is(err, store.ErrTokenNotMatched) {
		return models.User{}, ErrInvalidOrExpiredToken
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyEmail").Msg("marking user verified failed")
		return models.User{}, fmt.Errorf("marking user verified failed: %w", err)
	}

	user.IsVerified = true
	user.UpdatedAt = now

	if err = a.mailer.SendWelcome(ctx, user); err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("welcome email was not queued")
	}

	log.Info().Int64("user_id", user.ID).Msg("email verified")
	return user.Sanitized(), nil
}

// ResendVerification replaces the verification token of an unverified
// account and queues a new email. Unknown emails are not an error.
func (a *authService) ResendVerification(ctx context.Context, request models.EmailRequest) error {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByEmail(ctx, validators.NormalizeEmail(request.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ResendVerification").Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	verification, err := a.tokens.IssueOneTimeToken(models.OneTimeTokenVerification)
	if err != nil {
		log.Err(err).Str("func", "*authService.ResendVerification").Msg("verification token creation failed")
		return err
	}

	if err = a.userRepository.SetVerificationToken(ctx, user.ID, verification.Digest, verification.ExpiresAt); err != nil {
		log.Err(err).Str("func", "*authService.ResendVerification").Msg("saving verification token failed")
		return fmt.Errorf("saving verification token failed: %w", err)
	}

	if err = a.mailer.SendVerification(ctx, user, verification.Value); err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("verification email was not queued")
	}

	return nil
}

func (a *authService) appendLoginLog(ctx context.Context, userID int64, action models.LoginAction, client models.ClientInfo) {
	err := a.loginLogRepository.Append(ctx, models.LoginLog{
		UserID:    userID,
		Action:    action,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		CreatedAt: a.now().UTC(),
	})
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*authService.appendLoginLog").
			Int64("user_id", userID).
			Str("action", string(action)).
			Msg("login log was not written")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
