package service

import (
	"context"

	"github.com/tenderdesk/procurement-service/internal/auth"
	"github.com/tenderdesk/procurement-service/internal/config"
	"github.com/tenderdesk/procurement-service/internal/domain"
	"github.com/tenderdesk/procurement-service/internal/repository"
	apperrors "github.com/tenderdesk/procurement-service/pkg/util"
)

// AdminService provisions admin accounts at startup and from the CLI.
type AdminService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewAdminService constructs the service.
func NewAdminService(users repository.UserRepository, bcryptCost int) *AdminService {
	return &AdminService{users: users, bcryptCost: bcryptCost}
}

// EnsureAdmin creates the configured admin when no admin account exists.
// It reports whether an account was created.
func (s *AdminService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) (bool, error) {
	exists, err := s.users.ExistsWithRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if _, err := s.CreateAdmin(ctx, MemberInput{
		Name:     cfg.Name,
		Username: cfg.Username,
		Email:    cfg.Email,
		Password: cfg.Password,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// CreateAdmin adds an admin account, subject to the same uniqueness rules as members.
func (s *AdminService) CreateAdmin(ctx context.Context, in MemberInput) (*domain.User, error) {
	if !in.complete() {
		return nil, apperrors.NewValidationError(msgMissingParams, nil)
	}
	if err := checkAvailable(ctx, s.users, in.Username, in.Email, 0); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeWriteError(err)
	}
	return user, nil
}

// ResetPassword sets a new password for an active account of any role.
func (s *AdminService) ResetPassword(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apperrors.NewValidationError(msgLoginMissingFields, nil)
	}
	user, err := s.users.GetActiveByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return apperrors.NewNotFound("user " + username + " not found")
		}
		return apperrors.NewInternalError(err)
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.Password = hash
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
