package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wricardo/gridpath/game/engine"
	"github.com/wricardo/gridpath/game/grid"
	"github.com/wricardo/gridpath/metrics"
)

// gridServiceImpl implements the GridService interface. A single mutex
// serialises every call that touches a session, reads included: getSession
// updates the access time that sessionInfo reads.
type gridServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewGridService creates a new grid service instance
func NewGridService(sessions SessionManager, configs ConfigManager, logger *slog.Logger) GridService {
	if logger == nil {
		logger = slog.Default()
	}
	return &gridServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger.With("component", "service"),
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gridServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gridServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		BoardState:     sess.Board.GetState(),
		LayoutConfig:   sess.Config,
	}
}

// getSession fetches a session and touches its access time
func (s *gridServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// CreateSession creates a new session from a preset; an empty name uses the default preset
func (s *gridServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.LayoutConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s': %w. Available configs: %v", configName, err, configIDs)
				}
				return nil, fmt.Errorf("config '%s': %w. Use /api/configs to list available configurations", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	s.logger.Info("session created", "session", sess.ID, "config", configID,
		"width", config.Width, "height", config.Height)

	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gridServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gridServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gridServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.logger.Info("session deleted", "session", sessionID)
	return nil
}

// ToggleWall flips a wall on a session board
func (s *gridServiceImpl) ToggleWall(ctx context.Context, sessionID string, c grid.Coordinate) (*EditResult, error) {
	return s.edit(sessionID, engine.ActionToggleWall, c, func(b *engine.Board) error {
		_, err := b.ToggleWall(c)
		return err
	})
}

// MoveStart relocates the start cell of a session board
func (s *gridServiceImpl) MoveStart(ctx context.Context, sessionID string, c grid.Coordinate) (*EditResult, error) {
	return s.edit(sessionID, engine.ActionMoveStart, c, func(b *engine.Board) error {
		return b.MoveStart(c)
	})
}

// MoveTarget relocates the target cell of a session board
func (s *gridServiceImpl) MoveTarget(ctx context.Context, sessionID string, c grid.Coordinate) (*EditResult, error) {
	return s.edit(sessionID, engine.ActionMoveTarget, c, func(b *engine.Board) error {
		return b.MoveTarget(c)
	})
}

// edit applies one topology command. Rejected commands are returned as
// errors wrapping the grid sentinel and are still recorded in history.
func (s *gridServiceImpl) edit(sessionID, action string, c grid.Coordinate, apply func(*engine.Board) error) (*EditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	err = apply(sess.Board)
	metrics.RecordEdit(action, err == nil)
	if err != nil {
		s.logger.Debug("edit rejected", "session", sessionID, "action", action,
			"x", c.X, "y", c.Y, "error", err)
		return nil, fmt.Errorf("%s at %s: %w", action, c, err)
	}

	cell, _ := sess.Board.CellAt(c)
	state := sess.Board.GetState()
	s.logger.Info("edit applied", "session", sessionID, "action", action,
		"x", c.X, "y", c.Y, "cell", cell, "version", state.Version)

	return &EditResult{
		Success:    true,
		Action:     action,
		Coordinate: c,
		Cell:       cell,
		Message:    state.Message,
		State:      state,
	}, nil
}

// Search runs (or returns the cached) search for a session board
func (s *gridServiceImpl) Search(ctx context.Context, sessionID string) (*SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	cached := sess.Board.Status().Done()
	started := time.Now()
	result, err := sess.Board.Search()
	elapsed := time.Since(started)
	if err != nil {
		metrics.RecordEdit(engine.ActionSearch, false)
		s.logger.Error("search failed", "session", sessionID, "error", err)
		return nil, fmt.Errorf("search: %w", err)
	}

	metrics.RecordEdit(engine.ActionSearch, true)
	metrics.ObserveSearch(string(result.Status), elapsed, len(result.Explored))

	state := sess.Board.GetState()
	s.logger.Info("search finished", "session", sessionID, "status", result.Status,
		"length", result.Length, "explored", len(result.Explored), "cached", cached,
		"duration", elapsed)

	return &SearchResult{
		Status:        result.Status,
		Path:          result.Path,
		Length:        result.Length,
		ExploredCount: len(result.Explored),
		Explored:      result.Explored,
		Dequeued:      result.Dequeued,
		Cached:        cached,
		DurationMs:    float64(elapsed.Microseconds()) / 1000,
		Message:       state.Message,
		State:         state,
	}, nil
}

// Clear forgets the last search of a session board
func (s *gridServiceImpl) Clear(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Board.Clear()
	metrics.RecordEdit(engine.ActionClear, true)
	s.logger.Info("search cleared", "session", sessionID)
	return sess.Board.GetState(), nil
}

// ResetBoard restores a session board to its preset layout
func (s *gridServiceImpl) ResetBoard(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	err = sess.Board.Reset()
	metrics.RecordEdit(engine.ActionReset, err == nil)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}

	s.logger.Info("board reset", "session", sessionID)
	return sess.Board.GetState(), nil
}

// GetBoardState returns the current snapshot of a session board
func (s *gridServiceImpl) GetBoardState(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Board.GetState(), nil
}

// CellAt describes one cell of a session board
func (s *gridServiceImpl) CellAt(ctx context.Context, sessionID string, c grid.Coordinate) (*CellInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state, err := sess.Board.CellAt(c)
	if err != nil {
		return nil, err
	}

	info := &CellInfo{
		X:        c.X,
		Y:        c.Y,
		State:    state,
		Char:     string(state.Char()),
		Passable: state != grid.Wall,
	}
	if parent, ok := sess.Board.Parent(c); ok {
		info.Parent = &parent
	}
	return info, nil
}

// GetEditHistory returns paginated edit history
func (s *gridServiceImpl) GetEditHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Board.GetEditHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	edits := []engine.EditHistoryEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			edits = append(edits, history[i])
		}
	} else if start < total {
		edits = append(edits, history[start:end]...)
	}

	return &HistoryResponse{
		Edits:       edits,
		TotalEdits:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available layout presets
func (s *gridServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific layout preset
func (s *gridServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.LayoutConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a layout preset to disk
func (s *gridServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.LayoutConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	s.logger.Info("config saved", "config", configName)
	return nil
}
