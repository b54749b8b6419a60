package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-vidshare/models"
)

// Field name constants accepted by [PostValidator].
const (
	FieldUserID      = "user_id"
	FieldPostID      = "post_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldVideo       = "video"
	FieldThumbnail   = "thumbnail"
	FieldContent     = "content"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxCommentLength     = 2000
)

// PostValidator validates CreatePostRequest, UpdatePostRequest and
// CreateCommentRequest.
type PostValidator struct {
}

// NewPostValidator constructs a new PostValidator.
func NewPostValidator() Validator {
	return &PostValidator{}
}

func (v *PostValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreatePostRequest:
		return v.validateCreatePost(value, fields...)
	case *models.CreatePostRequest:
		return v.validateCreatePost(*value, fields...)

	case models.UpdatePostRequest:
		return v.validateUpdatePost(value, fields...)
	case *models.UpdatePostRequest:
		return v.validateUpdatePost(*value, fields...)

	case models.CreateCommentRequest:
		return v.validateCreateComment(value, fields...)
	case *models.CreateCommentRequest:
		return v.validateCreateComment(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *PostValidator) validateCreatePost(request models.CreatePostRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldVideo, FieldThumbnail, FieldTitle, FieldDescription}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldVideo:
			if request.Video == nil {
				return ErrVideoRequired
			}
			if !hasMediaType(request.Video.ContentType, "video/") {
				return ErrInvalidVideoType
			}
		case FieldThumbnail:
			if request.Thumbnail != nil && !hasMediaType(request.Thumbnail.ContentType, "image/") {
				return ErrInvalidThumbnailType
			}
		case FieldTitle:
			if utf8.RuneCountInString(request.Title) > MaxTitleLength {
				return ErrTitleTooLong
			}
		case FieldDescription:
			if utf8.RuneCountInString(request.Description) > MaxDescriptionLength {
				return ErrDescriptionTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PostValidator) validateUpdatePost(request models.UpdatePostRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPostID, FieldUserID, FieldTitle, FieldDescription}
	}

	for _, f := range fields {
		switch f {
		case FieldPostID:
			if request.PostID <= 0 {
				return ErrInvalidPostID
			}
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldTitle:
			if request.Title == nil {
				continue
			}
			if strings.TrimSpace(*request.Title) == "" {
				return ErrTitleEmpty
			}
			if utf8.RuneCountInString(*request.Title) > MaxTitleLength {
				return ErrTitleTooLong
			}
		case FieldDescription:
			if request.Description != nil && utf8.RuneCountInString(*request.Description) > MaxDescriptionLength {
				return ErrDescriptionTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	if request.Title == nil && request.Description == nil {
		return ErrNoFieldsToUpdate
	}

	return nil
}

func (v *PostValidator) validateCreateComment(request models.CreateCommentRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPostID, FieldUserID, FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldPostID:
			if request.PostID <= 0 {
				return ErrInvalidPostID
			}
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldContent:
			if strings.TrimSpace(request.Content) == "" {
				return ErrCommentRequired
			}
			if utf8.RuneCountInString(request.Content) > MaxCommentLength {
				return ErrCommentTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// hasMediaType compares the type part of a Content-Type value, ignoring
// case and parameters.
func hasMediaType(contentType, prefix string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	return strings.HasPrefix(mediaType, prefix) && len(mediaType) > len(prefix)
}
