package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vidshare/internal/validators"
	"github.com/MKhiriev/go-vidshare/models"
)

// postValidationService validates post and comment requests before they
// reach the wrapped PostService.
type postValidationService struct {
	inner     PostService
	validator validators.Validator
}

func NewPostValidationService() PostServiceWrapper {
	return &postValidationService{
		validator: validators.NewPostValidator(),
	}
}

func (v *postValidationService) Wrap(inner PostService) PostService {
	v.inner = inner
	return v
}

func (v *postValidationService) ListPosts(ctx context.Context, page models.Page) ([]models.Post, error) {
	return v.inner.ListPosts(ctx, page)
}

func (v *postValidationService) ListUserPosts(ctx context.Context, userID int64, page models.Page) ([]models.Post, error) {
	return v.inner.ListUserPosts(ctx, userID, page)
}

func (v *postValidationService) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	return v.inner.GetPost(ctx, postID)
}

func (v *postValidationService) CreatePost(ctx context.Context, request models.CreatePostRequest) (models.Post, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v.inner.CreatePost(ctx, request)
}

func (v *postValidationService) UpdatePost(ctx context.Context, request models.UpdatePostRequest) (models.Post, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v.inner.UpdatePost(ctx, request)
}

func (v *postValidationService) DeletePost(ctx context.Context, postID, userID int64) error {
	return v.inner.DeletePost(ctx, postID, userID)
}

func (v *postValidationService) ListComments(ctx context.Context, postID int64, page models.Page) ([]models.Comment, error) {
	return v.inner.ListComments(ctx, postID, page)
}

func (v *postValidationService) AddComment(ctx context.Context, request models.CreateCommentRequest) (models.Comment, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v.inner.AddComment(ctx, request)
}

func (v *postValidationService) ToggleLike(ctx context.Context, postID, userID int64) (models.LikeState, error) {
	return v.inner.ToggleLike(ctx, postID, userID)
}
