// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/models"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *httpServerAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewHTTPServerAdapter(srv.URL, 5*time.Second, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var alice = models.User{ID: 7, Name: "Alice", Email: "alice@example.com"}

// ── Constructor ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "https kept", raw: "https://api.example.com/", want: "https://api.example.com"},
		{name: "spaces trimmed", raw: "  http://127.0.0.1:9000  ", want: "http://127.0.0.1:9000"},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter("", time.Second, logger.Nop())

	assert.ErrorIs(t, err, ErrEmptyAddress)
}

// ── Auth ────────────────────────────────────────────────────────────────────

func TestSignup_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/signup", r.URL.Path)

		var req models.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Alice", req.Name)

		writeJSON(w, http.StatusCreated, models.UserResponse{Message: "created", User: alice})
	})

	got, err := a.Signup(context.Background(), models.SignupRequest{Name: "Alice", Email: alice.Email, Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, alice, got)
	assert.Empty(t, a.Token())
}

func TestSignup_Duplicate(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "User with this email already exists"})
	})

	_, err := a.Signup(context.Background(), models.SignupRequest{})

	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "User with this email already exists")
}

func TestLogin_StoresHeaderToken(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer header.token")
		writeJSON(w, http.StatusOK, models.LoginResponse{Message: "Login successful", Token: "body.token", User: alice})
	})

	got, err := a.Login(context.Background(), models.LoginRequest{Email: alice.Email, Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "header.token", a.Token())
}

func TestLogin_FallsBackToBodyToken(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.LoginResponse{Token: "body.token", User: alice})
	})

	_, err := a.Login(context.Background(), models.LoginRequest{})

	require.NoError(t, err)
	assert.Equal(t, "body.token", a.Token())
}

func TestLogin_Rejected(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Invalid email or password"})
	})

	_, err := a.Login(context.Background(), models.LoginRequest{})

	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Empty(t, a.Token())
}

func TestMe(t *testing.T) {
	t.Run("without token", func(t *testing.T) {
		a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("request must not be sent")
		})

		_, err := a.Me(context.Background())

		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("sends bearer", func(t *testing.T) {
		a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer session", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, models.UserResponse{User: alice})
		})
		a.SetToken(" session ")

		got, err := a.Me(context.Background())

		require.NoError(t, err)
		assert.Equal(t, alice, got)
	})

	t.Run("expired", func(t *testing.T) {
		a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Invalid token"})
		})
		a.SetToken("old")

		_, err := a.Me(context.Background())

		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestLogout_ForgetsToken(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
	})
	a.SetToken("session")

	require.NoError(t, a.Logout(context.Background()))
	assert.Empty(t, a.Token())
}

func TestMessageEndpoints(t *testing.T) {
	var paths []string
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "ok " + r.URL.Path})
	})
	ctx := context.Background()

	msg, err := a.ForgotPassword(ctx, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, "ok /api/auth/forgot-password", msg)

	msg, err = a.ResendVerification(ctx, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, "ok /api/auth/resend-verification", msg)

	msg, err = a.ResetPassword(ctx, models.ResetPasswordRequest{Token: "t", Password: "secret2"})
	require.NoError(t, err)
	assert.Equal(t, "ok /api/auth/reset-password", msg)

	assert.Equal(t, []string{"/api/auth/forgot-password", "/api/auth/resend-verification", "/api/auth/reset-password"}, paths)
}

func TestTooManyRequests(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		writeJSON(w, http.StatusTooManyRequests, models.MessageResponse{Message: "Too many requests from this IP, please try again later."})
	})

	_, err := a.ForgotPassword(context.Background(), alice.Email)

	assert.ErrorIs(t, err, ErrTooManyRequests)
}

// ── Posts ───────────────────────────────────────────────────────────────────

func TestListPosts_PageParams(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		writeJSON(w, http.StatusOK, models.PostsResponse{Posts: []models.Post{{ID: 1}, {ID: 2}}, Count: 2})
	})

	posts, err := a.ListPosts(context.Background(), models.Page{Limit: 5, Offset: 10})

	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestGetPost_NotFound(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/42", r.URL.Path)
		writeJSON(w, http.StatusNotFound, models.MessageResponse{Message: "Video not found"})
	})

	_, err := a.GetPost(context.Background(), 42)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddCommentAndLike(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer session", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/posts/3/comments":
			var req models.CreateCommentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, http.StatusCreated, models.CommentResponse{Comment: models.Comment{ID: 1, PostID: 3, Content: req.Content}})
		case "/api/posts/3/like":
			writeJSON(w, http.StatusOK, models.LikeState{PostID: 3, Liked: true, Likes: 1})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	a.SetToken("session")
	ctx := context.Background()

	comment, err := a.AddComment(ctx, 3, "nice")
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Content)

	state, err := a.ToggleLike(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, models.LikeState{PostID: 3, Liked: true, Likes: 1}, state)
}

// ── Service info ────────────────────────────────────────────────────────────

func TestHealth_Unavailable(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable"})
	})

	got, err := a.Health(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "unavailable", got.Status)
}

func TestVersion(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.VersionResponse{Version: "1.2.3"})
	})

	got, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got.Version)
}

func TestMapHTTPError_PlainBody(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := a.Version(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502: upstream down")
}
