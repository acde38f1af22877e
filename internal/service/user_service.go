package service

import (
	"context"
	"fmt"

	"postpilot/internal/flatten"
	"postpilot/internal/identity"
	"postpilot/internal/models"
	"postpilot/internal/repository"
)

// IdentityClient verifies credentials with the external identity provider.
type IdentityClient interface {
	Login(ctx context.Context, email, password string) (identity.Payload, error)
}

// UserService resolves external identities to local users and applies partial
// profile updates.
type UserService struct {
	users     repository.UserRepository
	schedules repository.ScheduleRepository
	identity  IdentityClient
}

// NewUserService returns a UserService.
func NewUserService(users repository.UserRepository, schedules repository.ScheduleRepository, identityClient IdentityClient) *UserService {
	return &UserService{users: users, schedules: schedules, identity: identityClient}
}

// GetUser returns a local user by id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// ResolveOrCreate authenticates the credentials against the identity provider
// and returns the local user bound to that organization, creating the user
// and its schedule on first login. Repeated logins are idempotent.
func (s *UserService) ResolveOrCreate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	payload, err := s.identity.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	// The provider's response shape is not under our control; a payload
	// without the user block or the organization id is bad input, not a
	// server fault.
	if payload.User == nil {
		return nil, models.NewValidationError("Identity payload is missing the user block")
	}
	orgID, ok := payload.OrgID()
	if !ok {
		return nil, models.NewValidationError("Identity payload is missing the organization id")
	}

	user, err := s.users.GetByOrgID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &models.User{
			OrgID: orgID,
			Data: models.JSONMap{
				"user": payload.User,
				"ngo":  payload.NGO,
			},
		}
		if err := s.users.CreateWithSchedule(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	// An existing user without a schedule row means an earlier signup was
	// torn apart; surface it instead of limping along.
	if _, err := s.schedules.GetByUserID(ctx, user.ID); err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewInternalError(fmt.Errorf("user %d exists without a schedule", user.ID))
		}
		return nil, err
	}

	return user, nil
}

// UpdateUser applies a partial update to the user's data document. The
// payload is flattened one level deep so updating a nested field touches only
// that field, never its whole block.
func (s *UserService) UpdateUser(ctx context.Context, id uint, payload map[string]any) (*models.User, error) {
	fields := flatten.Flatten(payload)
	if len(fields) == 0 {
		return s.users.GetByID(ctx, id)
	}
	return s.users.UpdateFields(ctx, id, fields)
}
