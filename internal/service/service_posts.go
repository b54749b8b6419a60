package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/store"
	"github.com/MKhiriev/go-vidshare/models"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100

	untitledPost = "Untitled Video"
)

type postService struct {
	postRepository    store.PostRepository
	commentRepository store.CommentRepository
	likeRepository    store.LikeRepository
	mediaStorage      store.MediaStorage

	logger *logger.Logger
}

func NewPostService(
	postRepository store.PostRepository,
	commentRepository store.CommentRepository,
	likeRepository store.LikeRepository,
	mediaStorage store.MediaStorage,
	logger *logger.Logger,
) PostService {
	return &postService{
		postRepository:    postRepository,
		commentRepository: commentRepository,
		likeRepository:    likeRepository,
		mediaStorage:      mediaStorage,
		logger:            logger,
	}
}

// NormalizePage applies the default limit, caps it at MaxPageLimit and keeps
// the offset within a signed 64-bit SQL integer.
func NormalizePage(page models.Page) models.Page {
	switch {
	case page.Limit == 0:
		page.Limit = DefaultPageLimit
	case page.Limit > MaxPageLimit:
		page.Limit = MaxPageLimit
	}
	if page.Offset > math.MaxInt64 {
		page.Offset = math.MaxInt64
	}
	return page
}

func (s *postService) ListPosts(ctx context.Context, page models.Page) ([]models.Post, error) {
	posts, err := s.postRepository.List(ctx, NormalizePage(page))
	if err != nil {
		return nil, fmt.Errorf("listing posts failed: %w", err)
	}
	return posts, nil
}

func (s *postService) ListUserPosts(ctx context.Context, userID int64, page models.Page) ([]models.Post, error) {
	posts, err := s.postRepository.ListByUser(ctx, userID, NormalizePage(page))
	if err != nil {
		return nil, fmt.Errorf("listing user posts failed: %w", err)
	}
	return posts, nil
}

func (s *postService) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	if err := s.postRepository.IncrementViews(ctx, postID); err != nil {
		return models.Post{}, mapPostError(err, "counting view failed")
	}

	post, err := s.postRepository.FindByID(ctx, postID)
	if err != nil {
		return models.Post{}, mapPostError(err, "post search failed")
	}
	return post, nil
}

// CreatePost stores the video, then the optional thumbnail, then the post.
// A thumbnail that fails to store is dropped; any later failure removes the
// files already written.
func (s *postService) CreatePost(ctx context.Context, request models.CreatePostRequest) (models.Post, error) {
	log := logger.FromContext(ctx)

	if request.Video == nil {
		return models.Post{}, ErrInvalidMedia
	}

	videoURL, err := s.mediaStorage.Save(ctx, request.UserID, *request.Video)
	if err != nil {
		log.Err(err).Str("func", "*postService.CreatePost").Msg("saving video failed")
		if errors.Is(err, store.ErrInvalidMediaPath) || errors.Is(err, store.ErrUnsupportedMediaType) {
			return models.Post{}, fmt.Errorf("%w: %w", ErrInvalidMedia, err)
		}
		return models.Post{}, fmt.Errorf("saving video failed: %w", err)
	}

	var thumbnailURL string
	if request.Thumbnail != nil {
		thumbnailURL, err = s.mediaStorage.Save(ctx, request.UserID, *request.Thumbnail)
		if err != nil {
			log.Warn().Err(err).Int64("user_id", request.UserID).Msg("thumbnail was not saved, creating post without it")
			thumbnailURL = ""
		}
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		title = untitledPost
	}

	post, err := s.postRepository.Create(ctx, models.Post{
		UserID:       request.UserID,
		Title:        title,
		Description:  strings.TrimSpace(request.Description),
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
	})
	if err != nil {
		log.Err(err).Str("func", "*postService.CreatePost").Msg("post creation failed")
		s.deleteMedia(ctx, videoURL, thumbnailURL)
		return models.Post{}, fmt.Errorf("post creation failed: %w", err)
	}

	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, request models.UpdatePostRequest) (models.Post, error) {
	post, err := s.ownedPost(ctx, request.PostID, request.UserID)
	if err != nil {
		return models.Post{}, err
	}

	if request.Title != nil {
		post.Title = strings.TrimSpace(*request.Title)
	}
	if request.Description != nil {
		post.Description = strings.TrimSpace(*request.Description)
	}
	// stamped by the repository
	post.UpdatedAt = time.Time{}

	updated, err := s.postRepository.Update(ctx, post)
	if err != nil {
		return models.Post{}, mapPostError(err, "post update failed")
	}
	return updated, nil
}

// DeletePost removes a post owned by userID together with its media.
func (s *postService) DeletePost(ctx context.Context, postID, userID int64) error {
	post, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return err
	}

	if err = s.postRepository.Delete(ctx, postID, userID); err != nil {
		return mapPostError(err, "post deletion failed")
	}

	s.deleteMedia(ctx, post.VideoURL, post.ThumbnailURL)
	return nil
}

func (s *postService) ListComments(ctx context.Context, postID int64, page models.Page) ([]models.Comment, error) {
	if _, err := s.postRepository.FindByID(ctx, postID); err != nil {
		return nil, mapPostError(err, "post search failed")
	}

	comments, err := s.commentRepository.ListByPost(ctx, postID, NormalizePage(page))
	if err != nil {
		return nil, fmt.Errorf("listing comments failed: %w", err)
	}
	return comments, nil
}

func (s *postService) AddComment(ctx context.Context, request models.CreateCommentRequest) (models.Comment, error) {
	comment, err := s.commentRepository.Create(ctx, models.Comment{
		PostID:  request.PostID,
		UserID:  request.UserID,
		Content: strings.TrimSpace(request.Content),
	})
	if err != nil {
		return models.Comment{}, mapPostError(err, "comment creation failed")
	}
	return comment, nil
}

func (s *postService) ToggleLike(ctx context.Context, postID, userID int64) (models.LikeState, error) {
	state, err := s.likeRepository.Toggle(ctx, postID, userID)
	if err != nil {
		return models.LikeState{}, mapPostError(err, "like toggle failed")
	}
	return state, nil
}

// ownedPost loads a post and checks that userID owns it.
func (s *postService) ownedPost(ctx context.Context, postID, userID int64) (models.Post, error) {
	post, err := s.postRepository.FindByID(ctx, postID)
	if err != nil {
		return models.Post{}, mapPostError(err, "post search failed")
	}
	if post.UserID != userID {
		logger.FromContext(ctx).Info().
			Int64("post_id", postID).
			Int64("user_id", userID).
			Msg("access to a post of another user denied")
		return models.Post{}, ErrForbidden
	}
	return post, nil
}

func (s *postService) deleteMedia(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.mediaStorage.Delete(ctx, url); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("url", url).Msg("stored media was not removed")
		}
	}
}

func mapPostError(err error, msg string) error {
	if errors.Is(err, store.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
