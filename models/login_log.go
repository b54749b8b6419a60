package models

import "time"

// LoginAction is the kind of session event recorded in the login log.
type LoginAction string

const (
	LoginActionLogin  LoginAction = "login"
	LoginActionLogout LoginAction = "logout"
)

// LoginLog is an append-only record of a login or logout.
type LoginLog struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"userId"`
	Action    LoginAction `json:"action"`
	IPAddress string      `json:"ipAddress"`
	UserAgent string      `json:"userAgent"`
	CreatedAt time.Time   `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the LoginLog model.
func (l LoginLog) TableName() string {
	return "login_logs"
}

// ClientInfo describes the caller of an auth request.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}
