package domain

import "time"

// LoginEvent is an audit record appended on every successful login.
// PK: login_id, GSI: email + created_at for per-account history queries.
type LoginEvent struct {
	LoginID   string    `json:"id" dynamodbav:"login_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	RemoteIP  string    `json:"remote_ip,omitempty" dynamodbav:"remote_ip"`
	UserAgent string    `json:"user_agent,omitempty" dynamodbav:"user_agent"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
