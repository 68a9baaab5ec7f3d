package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/gridpath/game/engine"
	"github.com/wricardo/gridpath/game/grid"
	"github.com/wricardo/gridpath/game/service"
)

func createTestConfig() *engine.LayoutConfig {
	return &engine.LayoutConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Width:       5,
		Height:      5,
		Start:       grid.Coordinate{X: 0, Y: 0},
		Target:      grid.Coordinate{X: 4, Y: 4},
	}
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Board == nil {
			t.Error("Expected board to be initialized")
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if !regexp.MustCompile(`^[0-9a-f]{4}$`).MatchString(session.ID) {
			t.Errorf("Expected 4 hex characters, got %q", session.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", config)
		if err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", config)
		if err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("invalid ID", func(t *testing.T) {
		_, err := manager.Create("has space", config)
		if err != ErrInvalidSessionID {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		bad := createTestConfig()
		bad.Target = bad.Start
		_, err := manager.Create("bad", bad)
		if !errors.Is(err, grid.ErrInvalidConfiguration) {
			t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, _ := manager.Create("MixedCase", createTestConfig())

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("MixedCase")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		if _, err := manager.Get("mixedcase"); err != nil {
			t.Errorf("Expected case-insensitive lookup to succeed, got %v", err)
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("nope")
		if err != ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
		if !errors.Is(err, service.ErrNotFound) {
			t.Error("Expected ErrSessionNotFound to match service.ErrNotFound")
		}
	})
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	manager.Create("to-delete", createTestConfig())

	if err := manager.Delete("TO-DELETE"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := manager.Get("to-delete"); err != ErrSessionNotFound {
		t.Error("Expected session to be deleted")
	}
	if err := manager.Delete("to-delete"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	for i := 0; i < 3; i++ {
		manager.Create(fmt.Sprintf("s%d", i), config)
	}

	if got := len(manager.List()); got != 3 {
		t.Errorf("Expected 3 sessions, got %d", got)
	}
	if manager.Count() != 3 {
		t.Errorf("Expected count 3, got %d", manager.Count())
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	active, _ := manager.Create("active", config)
	expired, _ := manager.Create("expired", config)

	expired.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	active.LastAccessedAt = time.Now()

	deleted := manager.CleanupExpiredSessions(1 * time.Hour)
	if deleted != 1 {
		t.Errorf("Expected 1 session to be deleted, got %d", deleted)
	}
	if _, err := manager.Get("expired"); err != ErrSessionNotFound {
		t.Error("Expected expired session to be deleted")
	}
	if _, err := manager.Get("active"); err != nil {
		t.Error("Expected active session to still exist")
	}
}

func TestManager_RunCleanup(t *testing.T) {
	manager := NewManager()
	expired, _ := manager.Create("expired", createTestConfig())
	expired.LastAccessedAt = time.Now().Add(-time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.RunCleanup(ctx, 5*time.Millisecond, time.Minute, nil)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for manager.Count() != 0 {
		select {
		case <-deadline:
			t.Fatal("Expected cleanup routine to remove the expired session")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected cleanup routine to stop on cancel")
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	session, _ := manager.Create("access-test", createTestConfig())
	originalTime := session.LastAccessedAt

	time.Sleep(10 * time.Millisecond)

	if err := manager.UpdateLastAccessed("ACCESS-TEST"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}
	if !session.LastAccessedAt.After(originalTime) {
		t.Error("Expected LastAccessedAt to advance")
	}
	if err := manager.UpdateLastAccessed("missing"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			sessionID := fmt.Sprintf("concurrent-%d", id)
			if _, err := manager.Create(sessionID, config); err != nil {
				t.Errorf("Failed to create session %s: %v", sessionID, err)
				return
			}
			manager.Get(sessionID)
			manager.UpdateLastAccessed(sessionID)
			manager.List()
		}(i)
	}
	wg.Wait()

	if manager.Count() != 50 {
		t.Errorf("Expected 50 sessions, got %d", manager.Count())
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	first, _ := manager.Create("first", config)
	second, _ := manager.Create("second", config)

	if _, err := first.Board.ToggleWall(grid.Coordinate{X: 2, Y: 2}); err != nil {
		t.Fatalf("Failed to toggle wall: %v", err)
	}
	first.Board.Search()

	if second.Board.GetState().WallCount != 0 {
		t.Error("Expected second session to be unaffected by walls in the first")
	}
	if second.Board.Status() != engine.Idle {
		t.Errorf("Expected second session to stay idle, got %s", second.Board.Status())
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		session, err := manager.Create("", createTestConfig())
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if seen[session.ID] {
			t.Fatalf("Duplicate session ID generated: %s", session.ID)
		}
		seen[session.ID] = true
	}
}

func TestManager_SessionIDExhaustion(t *testing.T) {
	manager := NewManager()
	for n := 0; n < sessionIDSpace; n++ {
		manager.sessions[fmt.Sprintf("%04x", n)] = &service.Session{}
	}
	delete(manager.sessions, "beef")

	session, err := manager.Create("", createTestConfig())
	if err != nil {
		t.Fatalf("Expected the last free ID to be found, got %v", err)
	}
	if session.ID != "beef" {
		t.Errorf("Expected ID beef, got %s", session.ID)
	}

	_, err = manager.Create("", createTestConfig())
	if !errors.Is(err, ErrNoSessionIDs) {
		t.Errorf("Expected ErrNoSessionIDs, got %v", err)
	}

	// caller-chosen IDs still work
	if _, err := manager.Create("custom-id", createTestConfig()); err != nil {
		t.Errorf("Expected explicit ID to succeed, got %v", err)
	}
}
