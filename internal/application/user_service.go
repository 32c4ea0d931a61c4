package application

import (
	"context"
	"errors"

	"github.com/andikarya/go-user-service/internal/domain/entity"
	repo "github.com/andikarya/go-user-service/internal/domain/repository"
)

// Pagination describes the page window of a listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int64 `json:"total_pages"`
	Limit       int   `json:"limit"`
}

// ListUsers returns one page of public projections.
func (s *Service) ListUsers(ctx context.Context, page, limit int) ([]entity.PublicUser, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	users, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, Pagination{}, err
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}

	out := make([]entity.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	meta := Pagination{
		CurrentPage: page,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		Limit:       limit,
	}
	return out, meta, nil
}

type UpdateProfileInput struct {
	Username        string
	FullName        string
	Bio             string
	ProfileImageURL string
}

// UpdateProfile overwrites the mutable profile fields that were provided;
// empty fields keep their current value. Email is immutable here.
func (s *Service) UpdateProfile(ctx context.Context, id int64, in UpdateProfileInput) (entity.PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.PublicUser{}, ErrUserNotFound
		}
		return entity.PublicUser{}, err
	}
	if in.Username != "" {
		u.Username = in.Username
	}
	if in.FullName != "" {
		u.FullName = in.FullName
	}
	if in.Bio != "" {
		u.Bio = in.Bio
	}
	if in.ProfileImageURL != "" {
		u.ProfileImageURL = in.ProfileImageURL
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.PublicUser{}, ErrUserNotFound
		}
		return entity.PublicUser{}, err
	}
	return u.Public(), nil
}
