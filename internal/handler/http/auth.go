package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/utils"
	"github.com/MKhiriev/go-vidshare/models"
)

const (
	msgSignedUp       = "User created successfully. Please check your email to verify your account."
	msgLoggedIn       = "Login successful"
	msgLoggedOut      = "Logged out"
	msgResetSent      = "If an account with that email exists, a password reset link has been sent"
	msgPasswordReset  = "Password updated successfully"
	msgEmailVerified  = "Email verified successfully! You can now login."
	msgVerifyResent   = "If the email exists, a verification email has been sent."
	authorizationHead = "Authorization"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var request models.SignupRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Signup(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{Message: msgSignedUp, User: user}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var request models.LoginRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Login(r.Context(), request, h.clientInfo(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("user_id", user.ID).Msg("user successfully logged in")

	w.Header().Set(authorizationHead, "Bearer "+token.String())
	utils.WriteJSON(w, models.LoginResponse{Message: msgLoggedIn, Token: token.String(), User: user}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, errors.New("auth middleware did not store a user"))
		return
	}

	utils.WriteJSON(w, models.UserResponse{User: user}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AuthService.Logout(r.Context(), currentUserID(r), h.clientInfo(r)); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msgLoggedOut, http.StatusOK)
}

// forgotPassword answers with the same body whether or not the account
// exists.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var request models.EmailRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), request); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msgResetSent, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var request models.ResetPasswordRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ResetPassword(r.Context(), request); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msgPasswordReset, http.StatusOK)
}

// verifyEmail takes the token from the query string, or from the JSON body
// of a POST.
func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	request := models.VerifyEmailRequest{Token: r.URL.Query().Get("token")}
	if request.Token == "" && r.Method == http.MethodPost {
		if err := decodeJSON(w, r, &request); err != nil {
			writeError(w, r, err)
			return
		}
	}

	user, err := h.services.AuthService.VerifyEmail(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{Message: msgEmailVerified, User: user}, http.StatusOK)
}

func (h *Handler) resendVerification(w http.ResponseWriter, r *http.Request) {
	var request models.EmailRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ResendVerification(r.Context(), request); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msgVerifyResent, http.StatusOK)
}
