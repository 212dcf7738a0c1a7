package service

import (
	"context"
	"strings"
	"time"

	"github.com/tenderdesk/procurement-service/internal/auth"
	"github.com/tenderdesk/procurement-service/internal/domain"
	"github.com/tenderdesk/procurement-service/internal/repository"
	apperrors "github.com/tenderdesk/procurement-service/pkg/util"
)

const (
	msgLoginMissingFields = "Username and password must be filled!"
	msgLoginMismatch      = "Username/password didn't match our data!"
)

// AuthService coordinates the login flow.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	TokenManager *auth.TokenManager
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.UserRepo,
		tokenMgr: deps.TokenManager,
	}
}

// Login authenticates an active account of any role and issues a session token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apperrors.NewValidationError(msgLoginMissingFields, nil)
	}

	user, err := s.users.GetActiveByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound(msgLoginMismatch)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.Password, password); err != nil {
		return nil, apperrors.NewNotFound(msgLoginMismatch)
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
