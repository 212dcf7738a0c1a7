package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tenderdesk/procurement-service/internal/auth"
	"github.com/tenderdesk/procurement-service/internal/domain"
	"github.com/tenderdesk/procurement-service/internal/repository"
	apperrors "github.com/tenderdesk/procurement-service/pkg/util"
)

const (
	msgMissingParams = "All parameter must be filled!"
	msgTaken         = "Username/email has been taken"
)

// MemberService manages member accounts on behalf of admins.
type MemberService struct {
	users      repository.UserRepository
	bcryptCost int
}

// MemberDependencies bundles member service requirements.
type MemberDependencies struct {
	UserRepo   repository.UserRepository
	BcryptCost int
}

// MemberInput carries the editable account fields. All are required.
type MemberInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

func (in MemberInput) complete() bool {
	return strings.TrimSpace(in.Name) != "" &&
		strings.TrimSpace(in.Username) != "" &&
		strings.TrimSpace(in.Email) != "" &&
		in.Password != ""
}

// NewMemberService constructs the service.
func NewMemberService(deps MemberDependencies) *MemberService {
	return &MemberService{
		users:      deps.UserRepo,
		bcryptCost: deps.BcryptCost,
	}
}

// List returns active members ordered by id.
func (s *MemberService) List(ctx context.Context) ([]domain.User, error) {
	members, err := s.users.ListActiveByRole(ctx, domain.RoleMember)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return members, nil
}

// Create registers a new active member.
func (s *MemberService) Create(ctx context.Context, in MemberInput) (*domain.User, error) {
	if !in.complete() {
		return nil, apperrors.NewValidationError(msgMissingParams, nil)
	}
	if err := s.ensureAvailable(ctx, in.Username, in.Email, 0); err != nil {
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
		Role:     domain.RoleMember,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeWriteError(err)
	}
	return user, nil
}

// Update replaces a member's fields and re-hashes the password. The member's
// own current username and email do not count as taken.
func (s *MemberService) Update(ctx context.Context, id int64, in MemberInput) (*domain.User, error) {
	if !in.complete() {
		return nil, apperrors.NewValidationError(msgMissingParams, nil)
	}
	user, err := s.getMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAvailable(ctx, in.Username, in.Email, id); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user.Name = in.Name
	user.Username = in.Username
	user.Email = in.Email
	user.Password = hash
	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeWriteError(err)
	}
	return user, nil
}

// Delete soft-deletes a member; their username and email become reusable.
func (s *MemberService) Delete(ctx context.Context, id int64) error {
	if _, err := s.getMember(ctx, id); err != nil {
		return err
	}
	if err := s.users.Deactivate(ctx, id); err != nil {
		if apperrors.IsNoRows(err) {
			return memberNotFound(id)
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Profile returns the account behind a session.
func (s *MemberService) Profile(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, memberNotFound(id)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

func (s *MemberService) getMember(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, memberNotFound(id)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if user.Role != domain.RoleMember || !user.IsActive {
		return nil, memberNotFound(id)
	}
	return user, nil
}

// ensureAvailable fails with TAKEN when another active account holds the
// username or email. excludeID skips the account being edited.
func (s *MemberService) ensureAvailable(ctx context.Context, username, email string, excludeID int64) error {
	return checkAvailable(ctx, s.users, username, email, excludeID)
}

func checkAvailable(ctx context.Context, users repository.UserRepository, username, email string, excludeID int64) error {
	lookups := []func(context.Context, string) (*domain.User, error){
		users.GetActiveByUsername,
		users.GetActiveByEmail,
	}
	values := []string{username, email}
	for i, lookup := range lookups {
		existing, err := lookup(ctx, values[i])
		switch {
		case err == nil:
			if existing.ID != excludeID {
				return apperrors.NewTaken(msgTaken)
			}
		case apperrors.IsNoRows(err):
		default:
			return apperrors.NewInternalError(err)
		}
	}
	return nil
}

// storeWriteError maps a concurrent duplicate caught by the active-row unique
// indexes to the same answer as the service-level check.
func storeWriteError(err error) error {
	if apperrors.IsUniqueViolation(err) {
		return apperrors.NewTaken(msgTaken)
	}
	return apperrors.NewInternalError(err)
}

func memberNotFound(id int64) error {
	return apperrors.NewNotFound(fmt.Sprintf("Member with id %d not found", id))
}
