// Package profile exposes the profile record of an authenticated account as a
// flat view and writes partial updates back to storage.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-otp-auth/internal/domain"
)

// Storage attribute names written by Update.
const (
	fieldFullName   = "full_name"
	fieldPhone      = "phone"
	fieldGender     = "gender"
	fieldBirthday   = "birthday"
	fieldLocation   = "location"
	fieldOccupation = "occupation"
	fieldTags       = "tags"
)

// View is the outward shape of a profile: absent scalars become empty strings
// and absent tags become an empty list, so clients never see nulls.
type View struct {
	Email      string   `json:"email"`
	FullName   string   `json:"full_name"`
	Phone      string   `json:"phone"`
	Gender     string   `json:"gender"`
	Birthday   string   `json:"birthday"`
	Location   string   `json:"location"`
	Occupation string   `json:"occupation"`
	Tags       []string `json:"tags"`
}

// UpdateRequest carries the full writable field set. Every profile column is
// overwritten on update: omitted scalars are stored as null, an omitted or
// empty tag list as an empty list.
type UpdateRequest struct {
	FullName   *string  `json:"full_name"`
	Phone      *string  `json:"phone"`
	Gender     *string  `json:"gender"`
	Birthday   *string  `json:"birthday"` // YYYY-MM-DD
	Location   *string  `json:"location"`
	Occupation *string  `json:"occupation"`
	Tags       []string `json:"tags"`
}

type Service interface {
	Get(ctx context.Context, email string) (*View, error)
	Update(ctx context.Context, email string, req UpdateRequest) (*View, error)
}

type userStore interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, email string, updates map[string]interface{}) error
}

type service struct {
	users userStore
}

func NewService(users userStore) Service {
	return &service{users: users}
}

func (s *service) Get(ctx context.Context, email string) (*View, error) {
	u, err := s.users.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("account lookup: %w", domain.ErrDependency)
	}
	return toView(u), nil
}

func (s *service) Update(ctx context.Context, email string, req UpdateRequest) (*View, error) {
	if _, err := s.users.Get(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("account lookup: %w", domain.ErrDependency)
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	updates := map[string]interface{}{
		fieldFullName:   deref(req.FullName),
		fieldPhone:      deref(req.Phone),
		fieldGender:     deref(req.Gender),
		fieldBirthday:   deref(req.Birthday),
		fieldLocation:   deref(req.Location),
		fieldOccupation: deref(req.Occupation),
		fieldTags:       tags,
	}
	if err := s.users.Update(ctx, email, updates); err != nil {
		return nil, fmt.Errorf("update profile: %w", domain.ErrDependency)
	}
	u, err := s.users.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("reload profile: %w", domain.ErrDependency)
	}
	return toView(u), nil
}

func toView(u *domain.User) *View {
	v := &View{
		Email:      u.Email,
		FullName:   strOrEmpty(u.FullName),
		Phone:      strOrEmpty(u.Phone),
		Gender:     strOrEmpty(u.Gender),
		Birthday:   strOrEmpty(u.Birthday),
		Location:   strOrEmpty(u.Location),
		Occupation: strOrEmpty(u.Occupation),
		Tags:       u.Tags,
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	return v
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// deref unwraps an optional string so storage sees either the value or null,
// never a pointer.
func deref(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
