package usecase

import (
	"errors"
	"testing"

	"github.com/scorepadhq/scorepad/internal/domain/gameset"
	"github.com/scorepadhq/scorepad/internal/domain/identity"
	"github.com/scorepadhq/scorepad/internal/infrastructure/repository/memory"
)

func newAdminFixture(t *testing.T) (*AdminService, *memory.GameSetRepository, *fakeResolver) {
	t.Helper()

	setRepo := memory.NewGameSetRepository()
	resolver := &fakeResolver{
		emailToID: map[string]string{
			"bob@example.com":   "user-bob",
			"carol@example.com": "user-carol",
		},
		users: map[string]identity.User{
			"user-creator": {ID: "user-creator", Email: "creator@example.com", DisplayName: "Creator"},
			"user-bob":     {ID: "user-bob", Email: "bob@example.com", DisplayName: "Bob"},
		},
	}
	seedSet(t, setRepo, gameset.GameSet{
		ID:        "set-1",
		Name:      "Friday Night",
		CreatorID: "user-creator",
		AdminIDs:  []string{"user-bob"},
		PlayerIDs: []string{"p1", "p2"},
	})
	return NewAdminService(setRepo, resolver), setRepo, resolver
}

func TestAdminService_AddAdmin(t *testing.T) {
	service, _, _ := newAdminFixture(t)

	updated, err := service.AddAdmin(t.Context(), "set-1", "user-bob", "carol@example.com")
	if err != nil {
		t.Fatalf("add admin: %v", err)
	}
	if len(updated.AdminIDs) != 2 || updated.AdminIDs[1] != "user-carol" {
		t.Fatalf("unexpected admins: %v", updated.AdminIDs)
	}
}

func TestAdminService_AddAdmin_Errors(t *testing.T) {
	service, _, _ := newAdminFixture(t)

	if _, err := service.AddAdmin(t.Context(), "set-1", "stranger", "carol@example.com"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-admin requester, got %v", err)
	}
	if _, err := service.AddAdmin(t.Context(), "set-1", "user-creator", "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := service.AddAdmin(t.Context(), "set-1", "user-creator", "bob@example.com"); !errors.Is(err, ErrAlreadyAdmin) {
		t.Fatalf("expected ErrAlreadyAdmin, got %v", err)
	}
	if _, err := service.AddAdmin(t.Context(), "missing", "user-creator", "carol@example.com"); !errors.Is(err, ErrSetNotFound) {
		t.Fatalf("expected ErrSetNotFound, got %v", err)
	}
}

func TestAdminService_RemoveAdmin_CreatorOnly(t *testing.T) {
	service, _, _ := newAdminFixture(t)

	// Secondary admins cannot remove, not even themselves.
	if _, err := service.RemoveAdmin(t.Context(), "set-1", "user-bob", "user-bob"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-creator, got %v", err)
	}

	if _, err := service.RemoveAdmin(t.Context(), "set-1", "user-creator", "user-creator"); !errors.Is(err, ErrCannotRemoveCreator) {
		t.Fatalf("expected ErrCannotRemoveCreator, got %v", err)
	}

	// Removing someone who is not an admin is an authorization failure, not a
	// validation one: the action is terminal without a privilege change.
	if _, err := service.RemoveAdmin(t.Context(), "set-1", "user-creator", "user-carol"); !errors.Is(err, ErrNotAnAdmin) {
		t.Fatalf("expected ErrNotAnAdmin for unlisted target, got %v", err)
	} else if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ErrNotAnAdmin must carry the authorization category, got %v", err)
	}

	updated, err := service.RemoveAdmin(t.Context(), "set-1", "user-creator", "user-bob")
	if err != nil {
		t.Fatalf("remove admin: %v", err)
	}
	if len(updated.AdminIDs) != 0 {
		t.Fatalf("expected empty admin list, got %v", updated.AdminIDs)
	}

	// Revocation is effective immediately.
	isAdmin, err := service.IsAdmin(t.Context(), "set-1", "user-bob")
	if err != nil {
		t.Fatalf("is admin: %v", err)
	}
	if isAdmin {
		t.Fatalf("removed admin must lose authorization")
	}
}

func TestAdminService_GetAdmins_FallsBackToBareID(t *testing.T) {
	service, setRepo, _ := newAdminFixture(t)

	if _, err := setRepo.UpdateAdmins(t.Context(), "set-1", []string{"user-bob", "user-unknown"}); err != nil {
		t.Fatalf("update admins: %v", err)
	}

	admins, err := service.GetAdmins(t.Context(), "set-1")
	if err != nil {
		t.Fatalf("get admins: %v", err)
	}
	if len(admins) != 3 {
		t.Fatalf("expected creator plus 2 admins, got %d", len(admins))
	}
	if admins[0].ID != "user-creator" || admins[0].DisplayName != "Creator" {
		t.Fatalf("creator must lead the list, got %+v", admins[0])
	}
	if admins[2].ID != "user-unknown" || admins[2].Email != "" {
		t.Fatalf("unresolvable id must fall back to a bare row, got %+v", admins[2])
	}
}
