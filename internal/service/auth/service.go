package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/carelink/healthcare-api/internal/model"
	"github.com/carelink/healthcare-api/internal/repository"
	"github.com/carelink/healthcare-api/pkg/auth"
	apperrors "github.com/carelink/healthcare-api/pkg/errors"
	"github.com/carelink/healthcare-api/pkg/security"
)

// Service handles registration, login and token validation.
type Service interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

type service struct {
	users  repository.UserRepository
	jwtSvc auth.JWTService
	hasher security.PasswordHasher
}

func NewService(users repository.UserRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher) Service {
	return &service{
		users:  users,
		jwtSvc: jwtSvc,
		hasher: hasher,
	}
}

func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.FieldValidation("password_confirm", "Password fields didn't match.")
	}

	if err := security.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.FieldValidation("password", err.Error())
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.FieldValidation("email", "A user with this email already exists.")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.jwtSvc.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &model.AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Authentication("Invalid email or password.")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.Authentication("Invalid email or password.")
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Authentication("Invalid email or password.")
	}

	tokens, err := s.jwtSvc.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &model.AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateAccessToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}
	return claims, nil
}
