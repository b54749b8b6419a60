package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vidshare/internal/validators"
	"github.com/MKhiriev/go-vidshare/models"
)

// authValidationService validates requests before they reach the wrapped
// AuthService. Validator errors are wrapped with ErrValidation.
type authValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &authValidationService{
		validator: validators.NewAuthValidator(),
	}
}

func (v *authValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

func (v *authValidationService) Signup(ctx context.Context, request models.SignupRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v.inner.Signup(ctx, request)
}

func (v *authValidationService) Login(ctx context.Context, request models.LoginRequest, client models.ClientInfo) (models.User, models.Token, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v.inner.Login(ctx, request, client)
}

func (v *authValidationService) Logout(ctx context.Context, userID int64, client models.ClientInfo) error {
	return v.inner.Logout(ctx, userID, client)
}

func (v *authValidationService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	return v.inner.CurrentUser(ctx, userID)
}

func (v *authValidationService) ForgotPassword(ctx context.Context, request models.EmailRequest) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v.inner.ForgotPassword(ctx, request)
}

func (v *authValidationService) ResetPassword(ctx context.Context, request models.ResetPasswordRequest) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v.inner.ResetPassword(ctx, request)
}

func (v *authValidationService) VerifyEmail(ctx context.Context, request models.VerifyEmailRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v.inner.VerifyEmail(ctx, request)
}

func (v *authValidationService) ResendVerification(ctx context.Context, request models.EmailRequest) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v.inner.ResendVerification(ctx, request)
}
