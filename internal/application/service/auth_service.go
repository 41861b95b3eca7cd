package service

import (
	"context"

	"github.com/pasalhq/pasal-api/internal/config"
	"github.com/pasalhq/pasal-api/pkg/apperror"
	"github.com/pasalhq/pasal-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the fixed accounts defined in configuration.
// Plaintext passwords from the environment are hashed once at startup so
// comparisons always run through bcrypt.
type AuthService struct {
	jwtManager *utils.JWTManager
	accounts   map[string]account
}

type account struct {
	passwordHash []byte
	role         string
	name         string
}

// LoginResult carries the issued token together with the account profile
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// NewAuthService creates a new auth service from the configured accounts
func NewAuthService(cfg *config.AuthConfig, jwtManager *utils.JWTManager) (*AuthService, error) {
	accounts := make(map[string]account, len(cfg.Users))
	for _, u := range cfg.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		accounts[u.Username] = account{
			passwordHash: hash,
			role:         u.Role,
			name:         u.Name,
		}
	}

	return &AuthService{
		jwtManager: jwtManager,
		accounts:   accounts,
	}, nil
}

// Login verifies the credentials and issues a signed token
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	acct, exists := s.accounts[username]
	if !exists {
		// Run a comparison anyway so unknown accounts take as long as
		// known ones.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(username, acct.role, acct.name)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		Username: username,
		Role:     acct.role,
		Name:     acct.name,
	}, nil
}

// Profile returns the account details for a logged-in username
func (s *AuthService) Profile(username string) (*LoginResult, error) {
	acct, exists := s.accounts[username]
	if !exists {
		return nil, apperror.NewNotFoundError("Account")
	}
	return &LoginResult{
		Username: username,
		Role:     acct.role,
		Name:     acct.name,
	}, nil
}

var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
