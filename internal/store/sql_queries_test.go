// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vidshare/models"
)

var (
	pgBuilder     = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	sqliteBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func Test_buildSelectUserQuery(t *testing.T) {
	tests := []struct {
		name     string
		builder  sq.StatementBuilderType
		where    sq.Sqlizer
		wantTail string
		wantArgs []any
	}{
		{
			name:     "postgres by email",
			builder:  pgBuilder,
			where:    sq.Eq{"email": "alice@example.com"},
			wantTail: "FROM users WHERE email = $1 LIMIT 1",
			wantArgs: []any{"alice@example.com"},
		},
		{
			name:     "sqlite by id",
			builder:  sqliteBuilder,
			where:    sq.Eq{"id": int64(5)},
			wantTail: "FROM users WHERE id = ? LIMIT 1",
			wantArgs: []any{int64(5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSelectUserQuery(tt.builder, tt.where)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(query, "SELECT id, name, email, password_hash, is_verified"), query)
			assert.True(t, strings.HasSuffix(query, tt.wantTail), query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_buildConsumeUserTokenQuery(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := buildConsumeUserTokenQuery(pgBuilder, 42, resetTokenColumn, "digest", now,
		map[string]any{"password_hash": "h"})
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE users SET password_hash = $1, reset_token = $2, reset_token_expires = $3, updated_at = $4 "+
			"WHERE id = $5 AND reset_token = $6 AND reset_token_expires > $7",
		query)
	assert.Equal(t, []any{"h", nil, nil, now, int64(42), "digest", now}, args)
}

func Test_buildSetUserTokenQuery(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expires := now.Add(time.Hour)

	query, args, err := buildSetUserTokenQuery(sqliteBuilder, 1, verificationTokenColumn, "d", expires, now)
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE users SET verification_token = ?, verification_token_expires = ?, updated_at = ? WHERE id = ?",
		query)
	assert.Equal(t, []any{"d", expires, now, int64(1)}, args)
}

func Test_buildInsertUserQuery_Returning(t *testing.T) {
	query, args, err := buildInsertUserQuery(pgBuilder, models.User{Name: "A", Email: "a@b.co"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO users (name,email,password_hash,is_verified"), query)
	assert.True(t, strings.HasSuffix(query, "RETURNING id"), query)
	assert.Contains(t, query, "$8")
	assert.Len(t, args, 8)
}

func Test_buildListPostsQuery(t *testing.T) {
	t.Run("feed", func(t *testing.T) {
		query, args, err := buildListPostsQuery(pgBuilder, 0, models.Page{Limit: 50, Offset: 10})
		require.NoError(t, err)

		assert.Contains(t, query, "FROM posts p JOIN users u ON u.id = p.user_id ORDER BY")
		assert.NotContains(t, query, "p.user_id = $")
		assert.True(t, strings.HasSuffix(query, "ORDER BY p.created_at DESC, p.id DESC LIMIT 50 OFFSET 10"), query)
		assert.Empty(t, args)
	})

	t.Run("by user", func(t *testing.T) {
		query, args, err := buildListPostsQuery(pgBuilder, 3, models.Page{Limit: 5})
		require.NoError(t, err)

		assert.Contains(t, query, "JOIN users u ON u.id = p.user_id WHERE p.user_id = $1")
		assert.Equal(t, []any{int64(3)}, args)
	})
}

func Test_buildIncrementViewsQuery(t *testing.T) {
	query, args, err := buildIncrementViewsQuery(pgBuilder, 9)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE posts SET views = views + 1 WHERE id = $1", query)
	assert.Equal(t, []any{int64(9)}, args)
}

func Test_buildUpdatePostQuery_ScopedToOwner(t *testing.T) {
	query, args, err := buildUpdatePostQuery(pgBuilder, models.Post{ID: 2, UserID: 7, Title: "t"})
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE id = $4 AND user_id = $5")
	assert.Equal(t, int64(2), args[3])
	assert.Equal(t, int64(7), args[4])
}

func Test_buildListCommentsQuery_OldestFirst(t *testing.T) {
	query, _, err := buildListCommentsQuery(sqliteBuilder, 1, models.Page{Limit: 100})
	require.NoError(t, err)

	assert.Contains(t, query, "ORDER BY c.created_at ASC, c.id ASC LIMIT 100")
}
