package models

import (
	"io"
	"time"
)

// Post is a published video with its metadata and aggregated counters.
type Post struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	AuthorName   string `json:"authorName,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`

	Views         int64 `json:"views"`
	LikesCount    int64 `json:"likesCount"`
	CommentsCount int64 `json:"commentsCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

// Comment is a text comment left on a post.
type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"postId"`
	UserID     int64     `json:"userId"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Comment model.
func (c Comment) TableName() string {
	return "comments"
}

// LikeState is the result of toggling a like.
type LikeState struct {
	PostID int64 `json:"postId"`
	Liked  bool  `json:"liked"`
	Likes  int64 `json:"likes"`
}

// MediaKind is the category of an uploaded file.
type MediaKind string

const (
	MediaVideo     MediaKind = "videos"
	MediaThumbnail MediaKind = "thumbnails"
)

// MediaUpload is an uploaded file handed from the transport layer to the
// post service. Body is owned by the caller.
type MediaUpload struct {
	Kind        MediaKind
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Page bounds a list query.
type Page struct {
	Limit  uint64
	Offset uint64
}
