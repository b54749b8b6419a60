package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/utils"
	"github.com/MKhiriev/go-vidshare/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter returns a REST [ServerAdapter] for the API at address.
// A missing scheme defaults to http.
func NewHTTPServerAdapter(address string, timeout time.Duration, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// ─────────────────────────────────────────────
// Auth
// ─────────────────────────────────────────────

func (h *httpServerAdapter) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	var result models.UserResponse
	resp, err := h.jsonRequest(ctx, req, &result).Post("/api/auth/signup")
	if err = check(resp, err, "signup"); err != nil {
		return models.User{}, err
	}
	return result.User, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	var result models.LoginResponse
	resp, err := h.jsonRequest(ctx, req, &result).Post("/api/auth/login")
	if err = check(resp, err, "login"); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		if result.Token == "" {
			return models.User{}, fmt.Errorf("login parse bearer token: %w", err)
		}
		token = result.Token
	}

	h.SetToken(token)
	h.logger.Debug().Int64("user_id", result.User.ID).Msg("logged in")
	return result.User, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	resp, err := req.Post("/api/auth/logout")
	if err = check(resp, err, "logout"); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.User{}, err
	}

	var result models.UserResponse
	resp, err := req.SetResult(&result).Get("/api/auth/me")
	if err = check(resp, err, "me"); err != nil {
		return models.User{}, err
	}
	return result.User, nil
}

func (h *httpServerAdapter) VerifyEmail(ctx context.Context, token string) (models.User, error) {
	var result models.UserResponse
	resp, err := h.jsonRequest(ctx, models.VerifyEmailRequest{Token: token}, &result).Post("/api/auth/verify-email")
	if err = check(resp, err, "verify email"); err != nil {
		return models.User{}, err
	}
	return result.User, nil
}

func (h *httpServerAdapter) ResendVerification(ctx context.Context, email string) (string, error) {
	return h.postForMessage(ctx, "/api/auth/resend-verification", models.EmailRequest{Email: email}, "resend verification")
}

func (h *httpServerAdapter) ForgotPassword(ctx context.Context, email string) (string, error) {
	return h.postForMessage(ctx, "/api/auth/forgot-password", models.EmailRequest{Email: email}, "forgot password")
}

func (h *httpServerAdapter) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (string, error) {
	return h.postForMessage(ctx, "/api/auth/reset-password", req, "reset password")
}

// ─────────────────────────────────────────────
// Posts
// ─────────────────────────────────────────────

func (h *httpServerAdapter) ListPosts(ctx context.Context, page models.Page) ([]models.Post, error) {
	var result models.PostsResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(pageParams(page)).
		SetResult(&result).
		Get("/api/posts")
	if err = check(resp, err, "list posts"); err != nil {
		return nil, err
	}
	return result.Posts, nil
}

func (h *httpServerAdapter) GetPost(ctx context.Context, id int64) (models.Post, error) {
	var result models.PostResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&result).
		Get("/api/posts/{id}")
	if err = check(resp, err, "get post"); err != nil {
		return models.Post{}, err
	}
	return result.Post, nil
}

func (h *httpServerAdapter) ListComments(ctx context.Context, postID int64, page models.Page) ([]models.Comment, error) {
	var result models.CommentsResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(postID, 10)).
		SetQueryParams(pageParams(page)).
		SetResult(&result).
		Get("/api/posts/{id}/comments")
	if err = check(resp, err, "list comments"); err != nil {
		return nil, err
	}
	return result.Comments, nil
}

func (h *httpServerAdapter) AddComment(ctx context.Context, postID int64, content string) (models.Comment, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Comment{}, err
	}

	var result models.CommentResponse
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", strconv.FormatInt(postID, 10)).
		SetBody(models.CreateCommentRequest{Content: content}).
		SetResult(&result).
		Post("/api/posts/{id}/comments")
	if err = check(resp, err, "add comment"); err != nil {
		return models.Comment{}, err
	}
	return result.Comment, nil
}

func (h *httpServerAdapter) ToggleLike(ctx context.Context, postID int64) (models.LikeState, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.LikeState{}, err
	}

	var result models.LikeState
	resp, err := req.
		SetPathParam("id", strconv.FormatInt(postID, 10)).
		SetResult(&result).
		Post("/api/posts/{id}/like")
	if err = check(resp, err, "toggle like"); err != nil {
		return models.LikeState{}, err
	}
	return result, nil
}

// ─────────────────────────────────────────────
// Service info
// ─────────────────────────────────────────────

// Health returns the decoded body for 503 too, together with ErrUnavailable.
func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var result models.HealthResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&result).
		Get("/api/health")
	return result, check(resp, err, "health")
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionResponse, error) {
	var result models.VersionResponse
	resp, err := h.client.R().SetContext(ctx).SetResult(&result).Get("/api/version")
	if err = check(resp, err, "version"); err != nil {
		return models.VersionResponse{}, err
	}
	return result, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func (h *httpServerAdapter) jsonRequest(ctx context.Context, body, result any) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(result)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return h.client.R().SetContext(ctx).SetAuthToken(token), nil
}

func (h *httpServerAdapter) postForMessage(ctx context.Context, path string, body any, op string) (string, error) {
	var result models.MessageResponse
	resp, err := h.jsonRequest(ctx, body, &result).Post(path)
	if err = check(resp, err, op); err != nil {
		return "", err
	}
	return result.Message, nil
}

func check(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	return mapHTTPError(resp)
}

func pageParams(page models.Page) map[string]string {
	params := map[string]string{}
	if page.Limit > 0 {
		params["limit"] = strconv.FormatUint(page.Limit, 10)
	}
	if page.Offset > 0 {
		params["offset"] = strconv.FormatUint(page.Offset, 10)
	}
	return params
}
