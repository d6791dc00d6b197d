// Package account implements the credential workflows: code issuance, signup,
// login and password reset. Signup and reset are gated on the OTP registry;
// login is password-only.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-otp-auth/internal/domain"
	"github.com/go-otp-auth/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Code     string `json:"code" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`

	// Filled in by the transport layer for the audit record.
	RemoteIP  string `json:"-"`
	UserAgent string `json:"-"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type Service interface {
	RequestCode(ctx context.Context, email string) error
	Signup(ctx context.Context, req SignupRequest) (*domain.User, error)
	Login(ctx context.Context, req LoginRequest) (bearer string, u *domain.User, err error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type userStore interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, email string, updates map[string]interface{}) error
}

type loginStore interface {
	Put(ctx context.Context, e *domain.LoginEvent) error
}

type codeRegistry interface {
	Issue(ctx context.Context, identity string) (string, error)
	VerifyAndConsume(ctx context.Context, identity, code string) (bool, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type tokenSigner interface {
	Sign(email string) (string, error)
}

type service struct {
	users  userStore
	logins loginStore
	codes  codeRegistry
	mailer mailer
	signer tokenSigner
}

type ServiceDeps struct {
	Users  userStore
	Logins loginStore
	Codes  codeRegistry
	Mailer mailer
	Signer tokenSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:  deps.Users,
		logins: deps.Logins,
		codes:  deps.Codes,
		mailer: deps.Mailer,
		signer: deps.Signer,
	}
}

// RequestCode issues a fresh passcode for email and dispatches it. It does not
// reveal whether an account exists: signup and reset both start here.
func (s *service) RequestCode(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("email required: %w", domain.ErrBadRequest)
	}
	code, err := s.codes.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("issue code: %w", domain.ErrDependency)
	}
	body := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
	if err := s.mailer.SendEmail(email, "Your verification code", body); err != nil {
		return fmt.Errorf("send code email: %w", domain.ErrDependency)
	}
	return nil
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	ok, err := s.codes.VerifyAndConsume(ctx, req.Email, req.Code)
	if err != nil {
		return nil, fmt.Errorf("verify code: %w", domain.ErrDependency)
	}
	if !ok {
		return nil, fmt.Errorf("invalid or expired code: %w", domain.ErrUnauthorized)
	}
	if _, err := s.users.Get(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("account already exists: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("account lookup: %w", domain.ErrDependency)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		Email:        req.Email,
		UserID:       id.New(),
		PasswordHash: string(hash),
		Tags:         []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, fmt.Errorf("create account: %w", domain.ErrDependency)
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, *domain.User, error) {
	u, err := s.users.Get(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
		}
		return "", nil, fmt.Errorf("account lookup: %w", domain.ErrDependency)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	ev := &domain.LoginEvent{
		LoginID:   id.New(),
		Email:     u.Email,
		RemoteIP:  req.RemoteIP,
		UserAgent: req.UserAgent,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.logins.Put(ctx, ev); err != nil {
		return "", nil, fmt.Errorf("append login event: %w", domain.ErrDependency)
	}
	bearer, err := s.signer.Sign(u.Email)
	if err != nil {
		return "", nil, fmt.Errorf("sign bearer: %w", domain.ErrDependency)
	}
	return bearer, u, nil
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	ok, err := s.codes.VerifyAndConsume(ctx, req.Email, req.Code)
	if err != nil {
		return fmt.Errorf("verify code: %w", domain.ErrDependency)
	}
	if !ok {
		return fmt.Errorf("invalid or expired code: %w", domain.ErrUnauthorized)
	}
	if _, err := s.users.Get(ctx, req.Email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("account not found: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("account lookup: %w", domain.ErrDependency)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.Update(ctx, req.Email, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		return fmt.Errorf("update password: %w", domain.ErrDependency)
	}
	return nil
}
