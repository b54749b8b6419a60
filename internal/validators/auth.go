package validators

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-vidshare/models"
)

// Field name constants accepted by [AuthValidator] to restrict validation to
// a subset of fields.
const (
	// FieldName targets the display name of a new account.
	FieldName = "name"

	// FieldEmail targets the email address.
	FieldEmail = "email"

	// FieldPassword targets a plain-text password.
	FieldPassword = "password"

	// FieldToken targets a one-time verification or reset token.
	FieldToken = "token"
)

// Length limits for account fields. Passwords are capped at the bcrypt
// input limit.
const (
	MinNameLength     = 2
	MaxNameLength     = 50
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether the normalized email has a local part, an
// "@" and a dotted domain.
func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(NormalizeEmail(email))
}

// AuthValidator validates the request bodies of the authentication
// endpoints: SignupRequest, LoginRequest, EmailRequest,
// ResetPasswordRequest and VerifyEmailRequest.
//
// Presence checks run first, so a request missing several fields reports a
// single "required" error before any format error.
type AuthValidator struct {
}

// NewAuthValidator constructs a new AuthValidator and returns it as the
// Validator interface.
func NewAuthValidator() Validator {
	return &AuthValidator{}
}

// Validate dispatches on the request type. Both values and pointers are
// accepted.
func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.EmailRequest:
		return v.validateEmailRequest(value, fields...)
	case *models.EmailRequest:
		return v.validateEmailRequest(*value, fields...)

	case models.ResetPasswordRequest:
		return v.validateResetPassword(value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPassword(*value, fields...)

	case models.VerifyEmailRequest:
		return v.validateVerifyEmail(value, fields...)
	case *models.VerifyEmailRequest:
		return v.validateVerifyEmail(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateSignup(request models.SignupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	if strings.TrimSpace(request.Name) == "" || strings.TrimSpace(request.Email) == "" || request.Password == "" {
		return ErrSignupFieldsRequired
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := validateName(request.Name); err != nil {
				return err
			}
		case FieldEmail:
			if !IsValidEmail(request.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if err := validatePassword(request.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// Login only checks presence: a password that violates the signup rules
// simply fails to match.
func (v *AuthValidator) validateLogin(request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if strings.TrimSpace(request.Email) == "" {
				return ErrLoginFieldsRequired
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrLoginFieldsRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateEmailRequest(request models.EmailRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if strings.TrimSpace(request.Email) == "" {
				return ErrEmailRequired
			}
			if !IsValidEmail(request.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateResetPassword(request models.ResetPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldToken, FieldPassword}
	}

	if strings.TrimSpace(request.Token) == "" || request.Password == "" {
		return ErrResetFieldsRequired
	}

	for _, f := range fields {
		switch f {
		case FieldToken:
		case FieldPassword:
			if err := validatePassword(request.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateVerifyEmail(request models.VerifyEmailRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldToken}
	}

	for _, f := range fields {
		switch f {
		case FieldToken:
			if strings.TrimSpace(request.Token) == "" {
				return ErrTokenRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	switch {
	case n < MinNameLength:
		return ErrNameTooShort
	case n > MaxNameLength:
		return ErrNameTooLong
	}
	return nil
}

func validatePassword(password string) error {
	switch {
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}
