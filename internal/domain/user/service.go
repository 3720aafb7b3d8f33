package user

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vtuboss/vtuboss-api/internal/pkg/jwt"
	"github.com/vtuboss/vtuboss-api/internal/pkg/password"
)

type Service struct {
	repo Repository
	jwt  *jwt.Service
}

func NewService(repo Repository, jwtService *jwt.Service) *Service {
	return &Service{repo: repo, jwt: jwtService}
}

// Signup registers a customer account with a zero wallet balance
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: sql.NullString{String: hash, Valid: true},
		Role:         RoleCustomer,
		Status:       StatusActive,
		Balance:      0,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and returns a signed access token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, *User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return "", nil, err
	}
	if u == nil || !u.PasswordHash.Valid || !password.Verify(req.Password, u.PasswordHash.String) {
		return "", nil, ErrInvalidCredentials
	}
	if u.Status == StatusBlocked {
		return "", nil, ErrBlocked
	}

	token, err := s.jwt.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ChangeRole(ctx context.Context, id uuid.UUID, role Role) error {
	return s.repo.UpdateRole(ctx, id, role)
}

func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}
