package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/gridpath/game/engine"
	"github.com/wricardo/gridpath/game/grid"
)

// ErrNotFound is matched by every "no such session/preset" error
var ErrNotFound = errors.New("not found")

// GridService defines all board-related operations
type GridService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Topology edits
	ToggleWall(ctx context.Context, sessionID string, c grid.Coordinate) (*EditResult, error)
	MoveStart(ctx context.Context, sessionID string, c grid.Coordinate) (*EditResult, error)
	MoveTarget(ctx context.Context, sessionID string, c grid.Coordinate) (*EditResult, error)

	// Search
	Search(ctx context.Context, sessionID string) (*SearchResult, error)
	Clear(ctx context.Context, sessionID string) (*engine.BoardState, error)
	ResetBoard(ctx context.Context, sessionID string) (*engine.BoardState, error)

	// Board State
	GetBoardState(ctx context.Context, sessionID string) (*engine.BoardState, error)
	CellAt(ctx context.Context, sessionID string, c grid.Coordinate) (*CellInfo, error)
	GetEditHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.LayoutConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.LayoutConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.LayoutConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles layout preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.LayoutConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.LayoutConfig
	SaveConfig(name string, config *engine.LayoutConfig) error
}

// Session represents one independent board
type Session struct {
	ID             string
	Board          *engine.Board
	Config         *engine.LayoutConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
