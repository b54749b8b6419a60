package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/service"
	"github.com/MKhiriev/go-vidshare/internal/utils"
	"github.com/MKhiriev/go-vidshare/internal/validators"
	"github.com/MKhiriev/go-vidshare/models"
)

const (
	msgInternalError   = "An error occurred while processing your request"
	msgNoToken         = "No token provided"
	msgInvalidToken    = "Invalid token"
	msgRouteNotFound   = "Route not found"
	msgTooManyRequests = "Too many requests from this IP, please try again later."
)

type errorResponse struct {
	target  error
	status  int
	message string
}

// errorStatusMap is ordered: a wrapped error matching several targets gets
// the first one. Validator errors come before service.ErrValidation.
var errorStatusMap = []errorResponse{
	{validators.ErrSignupFieldsRequired, http.StatusBadRequest, "Name, email, and password are required"},
	{validators.ErrLoginFieldsRequired, http.StatusBadRequest, "Email and password are required"},
	{validators.ErrEmailRequired, http.StatusBadRequest, "Email is required"},
	{validators.ErrInvalidEmail, http.StatusBadRequest, "Please provide a valid email address"},
	{validators.ErrNameTooShort, http.StatusBadRequest, fmt.Sprintf("Name must be at least %d characters long", validators.MinNameLength)},
	{validators.ErrNameTooLong, http.StatusBadRequest, fmt.Sprintf("Name must be at most %d characters long", validators.MaxNameLength)},
	{validators.ErrPasswordTooShort, http.StatusBadRequest, fmt.Sprintf("Password must be at least %d characters long", validators.MinPasswordLength)},
	{validators.ErrPasswordTooLong, http.StatusBadRequest, fmt.Sprintf("Password must be at most %d characters long", validators.MaxPasswordLength)},
	{validators.ErrTokenRequired, http.StatusBadRequest, "Verification token is required"},
	{validators.ErrResetFieldsRequired, http.StatusBadRequest, "Token and password are required"},
	{validators.ErrTitleTooLong, http.StatusBadRequest, fmt.Sprintf("Title must be at most %d characters long", validators.MaxTitleLength)},
	{validators.ErrTitleEmpty, http.StatusBadRequest, "Title cannot be empty"},
	{validators.ErrDescriptionTooLong, http.StatusBadRequest, fmt.Sprintf("Description must be at most %d characters long", validators.MaxDescriptionLength)},
	{validators.ErrVideoRequired, http.StatusBadRequest, "Video file is required"},
	{validators.ErrInvalidVideoType, http.StatusBadRequest, "Only video files are allowed"},
	{validators.ErrInvalidThumbnailType, http.StatusBadRequest, "Only image files are allowed for thumbnails"},
	{validators.ErrNoFieldsToUpdate, http.StatusBadRequest, "Nothing to update"},
	{validators.ErrCommentRequired, http.StatusBadRequest, "Comment content is required"},
	{validators.ErrCommentTooLong, http.StatusBadRequest, fmt.Sprintf("Comment must be at most %d characters long", validators.MaxCommentLength)},
	{service.ErrValidation, http.StatusBadRequest, "Validation failed"},

	{service.ErrDuplicateEmail, http.StatusBadRequest, "User with this email already exists"},
	{service.ErrInvalidCredentials, http.StatusBadRequest, "Invalid email or password"},
	{service.ErrEmailNotVerified, http.StatusBadRequest, "Please verify your email before logging in. Check your email for verification link."},
	{service.ErrUnauthenticated, http.StatusUnauthorized, msgInvalidToken},
	{service.ErrInvalidOrExpiredToken, http.StatusBadRequest, "Invalid or expired token"},
	{service.ErrAlreadyVerified, http.StatusBadRequest, "Email is already verified"},
	{service.ErrForbidden, http.StatusForbidden, "Unauthorized to modify this video"},
	{service.ErrPostNotFound, http.StatusNotFound, "Video not found"},
	{service.ErrMediaTooLarge, http.StatusRequestEntityTooLarge, "File is too large"},
	{service.ErrInvalidMedia, http.StatusBadRequest, "Invalid media file"},

	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, msgNoToken},
	{utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized, msgInvalidToken},
	{utils.ErrTokenExpired, http.StatusUnauthorized, msgInvalidToken},
	{utils.ErrTokenInvalid, http.StatusUnauthorized, msgInvalidToken},
	{ErrInvalidJSON, http.StatusBadRequest, "Invalid JSON was passed"},
	{ErrInvalidID, http.StatusBadRequest, "Invalid id"},
	{ErrInvalidQuery, http.StatusBadRequest, "Invalid limit or offset"},
	{ErrInvalidMultipart, http.StatusBadRequest, "File upload is required"},
	{ErrTooManyRequests, http.StatusTooManyRequests, msgTooManyRequests},
}

// statusFromError returns the status code and the client-facing message for
// err. Unknown errors are 500 with a generic message.
func statusFromError(err error) (int, string) {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, msgInternalError
}

// writeError logs err with the request logger and writes its JSON mapping.
// The underlying error text never reaches the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	writeMessage(w, message, status)
}

func writeMessage(w http.ResponseWriter, message string, status int) {
	utils.WriteJSON(w, models.MessageResponse{Message: message}, status)
}
