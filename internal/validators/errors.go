package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrSignupFieldsRequired = errors.New("name, email and password are required")
	ErrLoginFieldsRequired  = errors.New("email and password are required")
	ErrEmailRequired        = errors.New("email is required")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrNameTooShort         = errors.New("name is too short")
	ErrNameTooLong          = errors.New("name is too long")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrPasswordTooLong      = errors.New("password is too long")
	ErrTokenRequired        = errors.New("token is required")
	ErrResetFieldsRequired  = errors.New("token and password are required")

	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrInvalidPostID        = errors.New("invalid post ID")
	ErrTitleTooLong         = errors.New("title is too long")
	ErrTitleEmpty           = errors.New("title cannot be empty")
	ErrDescriptionTooLong   = errors.New("description is too long")
	ErrVideoRequired        = errors.New("video file is required")
	ErrInvalidVideoType     = errors.New("video must have a video/* content type")
	ErrInvalidThumbnailType = errors.New("thumbnail must have an image/* content type")
	ErrNoFieldsToUpdate     = errors.New("at least one field must be provided for update")
	ErrCommentRequired      = errors.New("comment content is required")
	ErrCommentTooLong       = errors.New("comment is too long")
)
