package engine

import "github.com/wricardo/gridpath/game/grid"

// Status represents the search state machine: idle -> searching -> found|unreachable
type Status string

const (
	Idle        Status = "idle"
	Searching   Status = "searching"
	Found       Status = "found"
	Unreachable Status = "unreachable"

	// Validation constants
	MinGridSize         = 2
	MaxGridSize         = 100
	DefaultCellSize     = 32
	DefaultScreenWidth  = 640
	DefaultScreenHeight = 480
	WebSocketBufferSize = 256
)

// Done reports whether the status is a terminal search outcome.
func (s Status) Done() bool {
	return s == Found || s == Unreachable
}

// Edit actions recorded in the board history
const (
	ActionToggleWall = "toggle_wall"
	ActionMoveStart  = "move_start"
	ActionMoveTarget = "move_target"
	ActionSearch     = "search"
	ActionClear      = "clear"
	ActionReset      = "reset"
)

// LayoutConfig is the configuration surface of a board
type LayoutConfig struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Start       grid.Coordinate `json:"start"`
	Target      grid.Coordinate `json:"target"`
}

// Result is the outcome of one search run
type Result struct {
	Status Status `json:"status"`

	// Path holds the interior cells from the cell after start to the cell
	// before target. Start and target themselves are excluded.
	Path []grid.Coordinate `json:"path"`

	// Length is the number of edges between start and target (len(Path)+1),
	// or 0 when no path exists.
	Length int `json:"length"`

	// Explored lists every discovered cell in the order it was enqueued.
	Explored []grid.Coordinate `json:"explored"`

	// Dequeued counts frontier pops, including the start and target.
	Dequeued int `json:"dequeued"`
}

// BoardState is the complete snapshot of a board for rendering clients
type BoardState struct {
	Width         int                `json:"width"`
	Height        int                `json:"height"`
	Cells         [][]grid.CellState `json:"cells"`
	Start         grid.Coordinate    `json:"start"`
	Target        grid.Coordinate    `json:"target"`
	Status        Status             `json:"status"`
	Path          []grid.Coordinate  `json:"path,omitempty"`
	PathLength    int                `json:"path_length"`
	ExploredCount int                `json:"explored_count"`
	WallCount     int                `json:"wall_count"`
	Version       uint64             `json:"version"`
	Message       string             `json:"message"`
	ConfigName    string             `json:"config_name"`
	TotalEdits    int                `json:"total_edits"`
}

// EditHistoryEntry represents a single command applied to a board
type EditHistoryEntry struct {
	Action     string           `json:"action"`
	Coordinate *grid.Coordinate `json:"coordinate,omitempty"`
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
	Status     Status           `json:"status"`
	Timestamp  int64            `json:"timestamp"`
	EditNumber int              `json:"edit_number"`
}
