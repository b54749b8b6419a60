package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vidshare/models"
)

var userColumns = []string{
	"id",
	"name",
	"email",
	"password_hash",
	"is_verified",
	"verification_token",
	"verification_token_expires",
	"reset_token",
	"reset_token_expires",
	"created_at",
	"updated_at",
}

var postColumns = []string{
	"p.id",
	"p.user_id",
	"u.name",
	"p.title",
	"p.description",
	"p.video_url",
	"p.thumbnail_url",
	"p.views",
	"(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id)",
	"(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)",
	"p.created_at",
	"p.updated_at",
}

var commentColumns = []string{
	"c.id",
	"c.post_id",
	"c.user_id",
	"u.name",
	"c.content",
	"c.created_at",
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsVerified,
		&u.VerificationToken,
		&u.VerificationTokenExpires,
		&u.ResetToken,
		&u.ResetTokenExpires,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func scanPost(row rowScanner) (models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.AuthorName,
		&p.Title,
		&p.Description,
		&p.VideoURL,
		&p.ThumbnailURL,
		&p.Views,
		&p.LikesCount,
		&p.CommentsCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func scanComment(row rowScanner) (models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.AuthorName, &c.Content, &c.CreatedAt)
	return c, err
}

// ---- users ----

func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertUserQuery(b sq.StatementBuilderType, u models.User) (string, []any, error) {
	query, args, err := b.Insert("users").
		Columns(
			"name",
			"email",
			"password_hash",
			"is_verified",
			"verification_token",
			"verification_token_expires",
			"created_at",
			"updated_at",
		).
		Values(
			u.Name,
			u.Email,
			u.PasswordHash,
			u.IsVerified,
			u.VerificationToken,
			u.VerificationTokenExpires,
			u.CreatedAt,
			u.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSetUserTokenQuery(b sq.StatementBuilderType, id int64, tokenColumn, digest string, expiresAt, now time.Time) (string, []any, error) {
	query, args, err := b.Update("users").
		Set(tokenColumn, digest).
		Set(tokenColumn+"_expires", expiresAt).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildConsumeUserTokenQuery applies set and clears the token only while the
// token column still holds digest and has not expired at now. Otherwise no row
// is updated.
func buildConsumeUserTokenQuery(b sq.StatementBuilderType, id int64, tokenColumn, digest string, now time.Time, set map[string]any) (string, []any, error) {
	upd := b.Update("users").
		SetMap(set).
		Set(tokenColumn, nil).
		Set(tokenColumn+"_expires", nil).
		Set("updated_at", now).
		Where(sq.Eq{"id": id, tokenColumn: digest}).
		Where(sq.Gt{tokenColumn + "_expires": now})

	query, args, err := upd.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// ---- login logs ----

func buildInsertLoginLogQuery(b sq.StatementBuilderType, entry models.LoginLog) (string, []any, error) {
	query, args, err := b.Insert("login_logs").
		Columns("user_id", "action", "ip_address", "user_agent", "created_at").
		Values(entry.UserID, string(entry.Action), entry.IPAddress, entry.UserAgent, entry.CreatedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// ---- posts ----

func selectPosts(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(postColumns...).
		From("posts p").
		Join("users u ON u.id = p.user_id")
}

func buildSelectPostQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	query, args, err := selectPosts(b).Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildListPostsQuery lists newest first. userID of zero lists all users.
func buildListPostsQuery(b sq.StatementBuilderType, userID int64, page models.Page) (string, []any, error) {
	sel := selectPosts(b)
	if userID != 0 {
		sel = sel.Where(sq.Eq{"p.user_id": userID})
	}

	query, args, err := sel.
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertPostQuery(b sq.StatementBuilderType, p models.Post) (string, []any, error) {
	query, args, err := b.Insert("posts").
		Columns("user_id", "title", "description", "video_url", "thumbnail_url", "created_at", "updated_at").
		Values(p.UserID, p.Title, p.Description, p.VideoURL, p.ThumbnailURL, p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdatePostQuery(b sq.StatementBuilderType, p models.Post) (string, []any, error) {
	query, args, err := b.Update("posts").
		Set("title", p.Title).
		Set("description", p.Description).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"id": p.ID, "user_id": p.UserID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeletePostQuery(b sq.StatementBuilderType, id, userID int64) (string, []any, error) {
	query, args, err := b.Delete("posts").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildIncrementViewsQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	query, args, err := b.Update("posts").
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// ---- comments ----

func buildSelectCommentQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	query, args, err := b.Select(commentColumns...).
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(sq.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildListCommentsQuery lists oldest first.
func buildListCommentsQuery(b sq.StatementBuilderType, postID int64, page models.Page) (string, []any, error) {
	query, args, err := b.Select(commentColumns...).
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(sq.Eq{"c.post_id": postID}).
		OrderBy("c.created_at ASC", "c.id ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertCommentQuery(b sq.StatementBuilderType, c models.Comment) (string, []any, error) {
	query, args, err := b.Insert("comments").
		Columns("post_id", "user_id", "content", "created_at").
		Values(c.PostID, c.UserID, c.Content, c.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// ---- likes ----

func buildSelectLikeQuery(b sq.StatementBuilderType, postID, userID int64) (string, []any, error) {
	query, args, err := b.Select("1").
		From("likes").
		Where(sq.Eq{"post_id": postID, "user_id": userID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertLikeQuery(b sq.StatementBuilderType, postID, userID int64, now time.Time) (string, []any, error) {
	query, args, err := b.Insert("likes").
		Columns("post_id", "user_id", "created_at").
		Values(postID, userID, now).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteLikeQuery(b sq.StatementBuilderType, postID, userID int64) (string, []any, error) {
	query, args, err := b.Delete("likes").
		Where(sq.Eq{"post_id": postID, "user_id": userID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildCountLikesQuery(b sq.StatementBuilderType, postID int64) (string, []any, error) {
	query, args, err := b.Select("COUNT(*)").
		From("likes").
		Where(sq.Eq{"post_id": postID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildPostExistsQuery(b sq.StatementBuilderType, postID int64) (string, []any, error) {
	query, args, err := b.Select("1").
		From("posts").
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
