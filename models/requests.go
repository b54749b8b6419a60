package models

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest is the body of forgot-password and resend-verification.
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// VerifyEmailRequest carries the verification token from the query string
// or the request body.
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

// CreatePostRequest is the parsed multipart form of POST /api/posts.
type CreatePostRequest struct {
	UserID      int64
	Title       string
	Description string
	Video       *MediaUpload
	Thumbnail   *MediaUpload
}

// UpdatePostRequest is the body of PUT /api/posts/{id}. Nil fields are left unchanged.
type UpdatePostRequest struct {
	PostID      int64   `json:"-"`
	UserID      int64   `json:"-"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateCommentRequest is the body of POST /api/posts/{id}/comments.
type CreateCommentRequest struct {
	PostID  int64  `json:"-"`
	UserID  int64  `json:"-"`
	Content string `json:"content"`
}
