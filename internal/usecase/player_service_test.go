package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/scorepadhq/scorepad/internal/infrastructure/repository/memory"
)

func TestPlayerService_CreatePlayer(t *testing.T) {
	repo := memory.NewPlayerRepository()
	service := NewPlayerService(repo, &seqIDGenerator{prefix: "player"})
	now := time.Date(2026, 8, 14, 18, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	created, err := service.CreatePlayer(t.Context(), "  Ana  ")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if created.ID != "player-001" {
		t.Fatalf("unexpected id: %s", created.ID)
	}
	if created.Name != "Ana" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("unexpected created at: %v", created.CreatedAt)
	}
}

func TestPlayerService_CreatePlayer_DuplicateNameCaseInsensitive(t *testing.T) {
	repo := memory.NewPlayerRepository()
	service := NewPlayerService(repo, &seqIDGenerator{prefix: "player"})

	if _, err := service.CreatePlayer(t.Context(), "Ana"); err != nil {
		t.Fatalf("create player: %v", err)
	}

	_, err := service.CreatePlayer(t.Context(), "ANA")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate name must also match the conflict category, got %v", err)
	}
}

func TestPlayerService_CreatePlayer_EmptyName(t *testing.T) {
	service := NewPlayerService(memory.NewPlayerRepository(), &seqIDGenerator{prefix: "player"})

	if _, err := service.CreatePlayer(t.Context(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayerService_ListPlayers_Alphabetical(t *testing.T) {
	repo := memory.NewPlayerRepository()
	service := NewPlayerService(repo, &seqIDGenerator{prefix: "player"})

	for _, name := range []string{"citra", "Ana", "Budi"} {
		if _, err := service.CreatePlayer(t.Context(), name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	players, err := service.ListPlayers(t.Context())
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	want := []string{"Ana", "Budi", "citra"}
	for i, p := range players {
		if p.Name != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], p.Name)
		}
	}
}
