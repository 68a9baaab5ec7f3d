package service

import (
	"time"

	"github.com/wricardo/gridpath/game/engine"
	"github.com/wricardo/gridpath/game/grid"
)

// SessionInfo provides information about a session
type SessionInfo struct {
	ID             string               `json:"id"`
	ConfigName     string               `json:"config_name"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	BoardState     *engine.BoardState   `json:"board_state"`
	LayoutConfig   *engine.LayoutConfig `json:"layout_config"`
}

// EditResult contains the result of a topology edit
type EditResult struct {
	Success    bool               `json:"success"`
	Action     string             `json:"action"`
	Coordinate grid.Coordinate    `json:"coordinate"`
	Cell       grid.CellState     `json:"cell"` // classification of the edited cell afterwards
	Message    string             `json:"message"`
	State      *engine.BoardState `json:"state"`
}

// SearchResult contains the outcome of a search request
type SearchResult struct {
	Status        engine.Status      `json:"status"`
	Path          []grid.Coordinate  `json:"path"`
	Length        int                `json:"length"`
	ExploredCount int                `json:"explored_count"`
	Explored      []grid.Coordinate  `json:"explored,omitempty"`
	Dequeued      int                `json:"dequeued"`
	Cached        bool               `json:"cached"` // true when the previous result was still valid
	DurationMs    float64            `json:"duration_ms"`
	Message       string             `json:"message"`
	State         *engine.BoardState `json:"state"`
}

// CellInfo describes one cell of a board
type CellInfo struct {
	X        int              `json:"x"`
	Y        int              `json:"y"`
	State    grid.CellState   `json:"state"`
	Char     string           `json:"char"`
	Passable bool             `json:"passable"`
	Parent   *grid.Coordinate `json:"parent,omitempty"` // cell that discovered this one in the last search
}

// HistoryOptions configures edit history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated edit history
type HistoryResponse struct {
	Edits       []engine.EditHistoryEntry `json:"edits"`
	TotalEdits  int                       `json:"total_edits"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a layout preset
type ConfigInfo struct {
	Filename    string          `json:"filename"`
	ConfigID    string          `json:"config_id"` // The identifier to use for session creation
	Name        string          `json:"name"`      // Display name
	Description string          `json:"description"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Start       grid.Coordinate `json:"start"`
	Target      grid.Coordinate `json:"target"`
}
