package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set of a session token: the user id plus the
// standard registered claims (sub, iss, iat, exp).
type SessionClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// Token wraps a signed session JWT with convenience accessors.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be sent as a bearer credential.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// SessionClaims holds the decoded claims.
	SessionClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// GetUserID returns the user id carried by the token. The "userId" claim is
// preferred; the "sub" claim is used when it is absent.
func (t *Token) GetUserID() (int64, error) {
	if t.UserID > 0 {
		return t.UserID, nil
	}

	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// OneTimeTokenKind distinguishes single-use tokens by purpose.
type OneTimeTokenKind string

const (
	OneTimeTokenVerification OneTimeTokenKind = "verification"
	OneTimeTokenReset        OneTimeTokenKind = "reset"
)

// OneTimeToken is a freshly issued single-use token.
//
// Value is mailed to the user and never stored. Digest is what the
// credential store keeps and looks up by.
type OneTimeToken struct {
	Kind      OneTimeTokenKind
	Value     string
	Digest    string
	ExpiresAt time.Time
}
