package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/scorepadhq/scorepad/internal/domain/gameset"
	"github.com/scorepadhq/scorepad/internal/domain/identity"
)

// AdminService is the authorization state machine for set membership: one
// permanent creator plus zero or more secondary admins. Authorization is
// computed fresh from the stored set on every check, so a revocation takes
// effect on the very next call.
type AdminService struct {
	setRepo  gameset.Repository
	resolver identity.Resolver
}

func NewAdminService(setRepo gameset.Repository, resolver identity.Resolver) *AdminService {
	return &AdminService{
		setRepo:  setRepo,
		resolver: resolver,
	}
}

func (s *AdminService) IsAdmin(ctx context.Context, gameSetID, userID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.IsAdmin")
	defer span.End()

	set, err := s.getSet(ctx, gameSetID)
	if err != nil {
		return false, err
	}
	return set.IsAdmin(strings.TrimSpace(userID)), nil
}

// AddAdmin resolves email through the account service and appends the user to
// the admin list. Any current admin may add; adding an existing admin is
// reported distinctly so the caller can message it rather than pretend a
// change happened.
func (s *AdminService) AddAdmin(ctx context.Context, gameSetID, requestedBy, email string) (gameset.GameSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.AddAdmin")
	defer span.End()

	email = strings.TrimSpace(email)
	if email == "" {
		return gameset.GameSet{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	set, err := s.getSet(ctx, gameSetID)
	if err != nil {
		return gameset.GameSet{}, err
	}
	if !set.IsAdmin(strings.TrimSpace(requestedBy)) {
		return gameset.GameSet{}, fmt.Errorf("%w: only admins can add admins", ErrUnauthorized)
	}

	userID, found, err := s.resolver.ResolveEmail(ctx, email)
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("resolve email: %w", err)
	}
	if !found {
		return gameset.GameSet{}, fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	if set.IsAdmin(userID) {
		return gameset.GameSet{}, fmt.Errorf("%w: %s", ErrAlreadyAdmin, email)
	}

	updated, err := s.setRepo.UpdateAdmins(ctx, set.ID, append(set.AdminIDs, userID))
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("update admins: %w", err)
	}
	return updated, nil
}

// RemoveAdmin is creator-only, stricter than AddAdmin: removal is the
// higher-stakes transition. The creator can never be removed.
func (s *AdminService) RemoveAdmin(ctx context.Context, gameSetID, requestedBy, targetUserID string) (gameset.GameSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.RemoveAdmin")
	defer span.End()

	requestedBy = strings.TrimSpace(requestedBy)
	targetUserID = strings.TrimSpace(targetUserID)
	if targetUserID == "" {
		return gameset.GameSet{}, fmt.Errorf("%w: target user id is required", ErrInvalidInput)
	}

	set, err := s.getSet(ctx, gameSetID)
	if err != nil {
		return gameset.GameSet{}, err
	}
	if requestedBy != set.CreatorID {
		return gameset.GameSet{}, fmt.Errorf("%w: only the set creator can remove admins", ErrUnauthorized)
	}
	if targetUserID == set.CreatorID {
		return gameset.GameSet{}, ErrCannotRemoveCreator
	}

	remaining := make([]string, 0, len(set.AdminIDs))
	removed := false
	for _, id := range set.AdminIDs {
		if id == targetUserID {
			removed = true
			continue
		}
		remaining = append(remaining, id)
	}
	if !removed {
		return gameset.GameSet{}, fmt.Errorf("%w: %s", ErrNotAnAdmin, targetUserID)
	}

	updated, err := s.setRepo.UpdateAdmins(ctx, set.ID, remaining)
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("update admins: %w", err)
	}
	return updated, nil
}

// GetAdmins resolves the creator and secondary admins to account-service
// users for display. Unresolvable ids fall back to a bare id row rather than
// hiding an admin from the list.
func (s *AdminService) GetAdmins(ctx context.Context, gameSetID string) ([]identity.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.GetAdmins")
	defer span.End()

	set, err := s.getSet(ctx, gameSetID)
	if err != nil {
		return nil, err
	}

	ids := append([]string{set.CreatorID}, set.AdminIDs...)
	users, err := s.resolver.FetchUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch admin users: %w", err)
	}

	out := make([]identity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := users[id]; ok {
			out = append(out, u)
			continue
		}
		out = append(out, identity.User{ID: id})
	}
	return out, nil
}

func (s *AdminService) getSet(ctx context.Context, gameSetID string) (gameset.GameSet, error) {
	gameSetID = strings.TrimSpace(gameSetID)
	if gameSetID == "" {
		return gameset.GameSet{}, fmt.Errorf("%w: set id is required", ErrInvalidInput)
	}

	set, exists, err := s.setRepo.GetByID(ctx, gameSetID)
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("get game set: %w", err)
	}
	if !exists {
		return gameset.GameSet{}, fmt.Errorf("%w: id %q", ErrSetNotFound, gameSetID)
	}
	return set, nil
}
