package service

import (
	"context"
	"errors"
	"fmt"

	"blogforge/internal/common"
	"blogforge/internal/common/security"
	"blogforge/internal/domain/model"
	"blogforge/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	accountRepo repository.AccountRepository
}

func NewAuthService(accountRepo repository.AccountRepository) *AuthService {
	return &AuthService{accountRepo: accountRepo}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Account *model.Account `json:"account"`
	Token   string         `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, common.Errorf("username, email and password are required: %w", common.ErrBadRequest)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		// Repo returns common.ErrConflict on duplicate email
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	token, err := security.GenerateToken(account.ID, account.Email, account.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	account.HashedPassword = "" // Clear before returning
	return &AuthResponse{Account: account, Token: token}, nil
}

// Login verifies credentials and issues a session token. A missing account
// and a wrong password are indistinguishable to the caller, so the response
// cannot be used to enumerate registered emails.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.Errorf("email and password are required: %w", common.ErrBadRequest)
	}

	account, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, account.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := security.GenerateToken(account.ID, account.Email, account.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	account.HashedPassword = ""
	return &AuthResponse{Account: account, Token: token}, nil
}
