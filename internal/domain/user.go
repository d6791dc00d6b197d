package domain

import "time"

// User is the account record, keyed by email. The profile fields are pointers
// so that an unset field round-trips as NULL in storage and is distinguishable
// from an empty string.
type User struct {
	Email        string    `json:"email" dynamodbav:"email"`
	UserID       string    `json:"id" dynamodbav:"user_id"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	FullName     *string   `json:"full_name" dynamodbav:"full_name"`
	Phone        *string   `json:"phone" dynamodbav:"phone"`
	Gender       *string   `json:"gender" dynamodbav:"gender"`
	Birthday     *string   `json:"birthday" dynamodbav:"birthday"` // YYYY-MM-DD
	Location     *string   `json:"location" dynamodbav:"location"`
	Occupation   *string   `json:"occupation" dynamodbav:"occupation"`
	Tags         []string  `json:"tags" dynamodbav:"tags"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}
