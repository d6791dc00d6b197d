package http

import (
	"context"

	"github.com/go-otp-auth/internal/domain"
	jwtinfra "github.com/go-otp-auth/internal/infrastructure/jwt"
	"github.com/go-otp-auth/internal/infrastructure/smtp"
	"github.com/go-otp-auth/internal/otp"
)

// UserRepository is the minimal interface the router requires from the user store.
type UserRepository interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, email string, updates map[string]interface{}) error
}

// LoginRepository is the minimal interface the router requires from the
// login-event store.
type LoginRepository interface {
	Put(ctx context.Context, e *domain.LoginEvent) error
	ListByEmail(ctx context.Context, email string, limit int32) ([]domain.LoginEvent, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Users       UserRepository
	Logins      LoginRepository
	OTPStore    otp.Store
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
}
