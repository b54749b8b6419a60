package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/migrations"
	"github.com/MKhiriev/go-vidshare/models"
)

func newSQLiteDB(t *testing.T) *DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", sqliteDSN("file::memory:"))
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	db := newDB(conn, migrations.SQLite, logger.Nop())
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func createTestUser(t *testing.T, repo UserRepository, email string, expires time.Time) models.User {
	t.Helper()

	user, err := repo.Create(context.Background(), models.User{
		Name:                     "Alice",
		Email:                    email,
		PasswordHash:             "hash",
		VerificationToken:        strPtr("digest-" + email),
		VerificationTokenExpires: &expires,
	})
	require.NoError(t, err)
	return user
}

// ---- users ----

func TestSQLiteUserRepository_CreateAndFind(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewUserRepository(db, logger.Nop())
	ctx := context.Background()

	expires := time.Now().UTC().Add(24 * time.Hour)
	created := createTestUser(t, repo, "alice@example.com", expires)
	assert.NotZero(t, created.ID)

	found, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.False(t, found.IsVerified)
	require.NotNil(t, found.VerificationToken)
	assert.Equal(t, "digest-alice@example.com", *found.VerificationToken)
	require.NotNil(t, found.VerificationTokenExpires)
	assert.WithinDuration(t, expires, *found.VerificationTokenExpires, time.Microsecond)
	assert.Nil(t, found.ResetToken)

	byToken, err := repo.FindByVerificationToken(ctx, "digest-alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byToken.ID)

	_, err = repo.FindByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSQLiteUserRepository_DuplicateEmail(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewUserRepository(db, logger.Nop())

	createTestUser(t, repo, "alice@example.com", time.Now().Add(time.Hour))

	_, err := repo.Create(context.Background(), models.User{Name: "Other", Email: "alice@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSQLiteUserRepository_ConcurrentDuplicateCreate(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewUserRepository(db, logger.Nop())

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), models.User{Name: "Alice", Email: "race@example.com", PasswordHash: "h"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrEmailAlreadyExists):
				dupes++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, dupes)
}

func TestSQLiteUserRepository_MarkVerifiedOnce(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewUserRepository(db, logger.Nop())
	ctx := context.Background()
	now := time.Now().UTC()

	user := createTestUser(t, repo, "alice@example.com", now.Add(time.Hour))

	err := repo.MarkVerified(ctx, user.ID, "wrong-digest", now)
	assert.ErrorIs(t, err, ErrTokenNotMatched)

	require.NoError(t, repo.MarkVerified(ctx, user.ID, "digest-alice@example.com", now))

	err = repo.MarkVerified(ctx, user.ID, "digest-alice@example.com", now)
	assert.ErrorIs(t, err, ErrTokenNotMatched)

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.IsVerified)
	assert.Nil(t, found.VerificationToken)
	assert.Nil(t, found.VerificationTokenExpires)

	_, err = repo.FindByVerificationToken(ctx, "digest-alice@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSQLiteUserRepository_ConsumeExpiredToken(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewUserRepository(db, logger.Nop())
	ctx := context.Background()
	now := time.Now().UTC()

	user := createTestUser(t, repo, "alice@example.com", now.Add(-time.Minute))

	err := repo.MarkVerified(ctx, user.ID, "digest-alice@example.com", now)
	assert.ErrorIs(t, err, ErrTokenNotMatched)

	require.NoError(t, repo.SetResetToken(ctx, user.ID, "reset-digest", now.Add(time.Hour)))

	err = repo.UpdatePassword(ctx, user.ID, "new-hash", "reset-digest", now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrTokenNotMatched)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash", "reset-digest", now))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.PasswordHash)
	assert.Nil(t, found.ResetToken)

	err = repo.UpdatePassword(ctx, user.ID, "third-hash", "reset-digest", now)
	assert.ErrorIs(t, err, ErrTokenNotMatched)
}

func TestSQLiteLoginLogRepository_Append(t *testing.T) {
	db := newSQLiteDB(t)
	user := createTestUser(t, NewUserRepository(db, logger.Nop()), "alice@example.com", time.Now().Add(time.Hour))
	repo := NewLoginLogRepository(db, logger.Nop())

	err := repo.Append(context.Background(), models.LoginLog{
		UserID:    user.ID,
		Action:    models.LoginActionLogin,
		IPAddress: "10.0.0.1",
		UserAgent: "curl/8",
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM login_logs WHERE user_id = ? AND action = 'login'", user.ID).Scan(&count))
	assert.Equal(t, 1, count)
}

// ---- posts ----

func TestSQLitePosts_Lifecycle(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	users := NewUserRepository(db, logger.Nop())
	posts := NewPostRepository(db, logger.Nop())
	comments := NewCommentRepository(db, logger.Nop())
	likes := NewLikeRepository(db, logger.Nop())

	alice := createTestUser(t, users, "alice@example.com", time.Now().Add(time.Hour))
	bob := createTestUser(t, users, "bob@example.com", time.Now().Add(time.Hour))

	base := time.Now().UTC()
	first, err := posts.Create(ctx, models.Post{UserID: alice.ID, Title: "first", VideoURL: "/uploads/videos/1/a.mp4", CreatedAt: base})
	require.NoError(t, err)
	second, err := posts.Create(ctx, models.Post{UserID: bob.ID, Title: "second", VideoURL: "/uploads/videos/2/b.mp4", CreatedAt: base.Add(time.Second)})
	require.NoError(t, err)
	assert.Equal(t, "Alice", first.AuthorName)

	feed, err := posts.List(ctx, models.Page{Limit: 50})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, second.ID, feed[0].ID, "newest first")

	mine, err := posts.ListByUser(ctx, alice.ID, models.Page{Limit: 50})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	require.NoError(t, posts.IncrementViews(ctx, first.ID))
	assert.ErrorIs(t, posts.IncrementViews(ctx, 9999), ErrPostNotFound)

	_, err = comments.Create(ctx, models.Comment{PostID: first.ID, UserID: bob.ID, Content: "nice"})
	require.NoError(t, err)
	_, err = comments.Create(ctx, models.Comment{PostID: 9999, UserID: bob.ID, Content: "lost"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	state, err := likes.Toggle(ctx, first.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.EqualValues(t, 1, state.Likes)

	_, err = likes.Toggle(ctx, 9999, bob.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	got, err := posts.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Views)
	assert.EqualValues(t, 1, got.LikesCount)
	assert.EqualValues(t, 1, got.CommentsCount)

	state, err = likes.Toggle(ctx, first.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.EqualValues(t, 0, state.Likes)

	_, err = posts.Update(ctx, models.Post{ID: first.ID, UserID: bob.ID, Title: "hijack"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	updated, err := posts.Update(ctx, models.Post{ID: first.ID, UserID: alice.ID, Title: "renamed", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)

	list, err := comments.ListByPost(ctx, first.ID, models.Page{Limit: 100})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, bob.ID, list[0].UserID)
	assert.Equal(t, "nice", list[0].Content)

	assert.ErrorIs(t, posts.Delete(ctx, first.ID, bob.ID), ErrPostNotFound)
	require.NoError(t, posts.Delete(ctx, first.ID, alice.ID))

	_, err = posts.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	list, err = comments.ListByPost(ctx, first.ID, models.Page{Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, list, "comments are removed with the post")
}
