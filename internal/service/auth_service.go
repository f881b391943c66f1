package service

import (
	"context"
	"errors"
	"strings"

	"checkels_casino/internal/domain"
	"checkels_casino/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrAccountBanned      = errors.New("account is banned")
)

// AuthService handles registration and login.
type AuthService struct {
	accountRepo *repository.AccountRepository
}

func NewAuthService(db *pgxpool.Pool) *AuthService {
	return &AuthService{accountRepo: repository.NewAccountRepository(db)}
}

// Register creates an account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Account, string, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(password) < 6 {
		return nil, "", errors.New("username must be at least 3 characters, password at least 6")
	}

	if existing, err := s.accountRepo.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	account, err := s.accountRepo.Create(ctx, username, string(hash))
	if err != nil {
		return nil, "", err
	}

	token, err := GenerateJWT(account.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Login verifies credentials and returns the account with a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, string, error) {
	account, err := s.accountRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	if account.IsBanned {
		return nil, "", ErrAccountBanned
	}

	token, err := GenerateJWT(account.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}
