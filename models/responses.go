package models

// MessageResponse is the body of every response that carries only a message,
// including all error responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is returned by signup, me and verify-email.
type UserResponse struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// PostsResponse wraps a page of posts.
type PostsResponse struct {
	Posts []Post `json:"posts"`
	Count int    `json:"count"`
}

// CommentsResponse wraps the comments of a post.
type CommentsResponse struct {
	Comments []Comment `json:"comments"`
	Count    int       `json:"count"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date,omitempty"`
	Commit  string `json:"commit,omitempty"`
}

// PostResponse wraps a single post.
type PostResponse struct {
	Message string `json:"message,omitempty"`
	Post    Post   `json:"post"`
}

// CommentResponse wraps a created comment.
type CommentResponse struct {
	Comment Comment `json:"comment"`
}
