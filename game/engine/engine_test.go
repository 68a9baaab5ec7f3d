package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/gridpath/game/grid"
)

func createTestConfig() *LayoutConfig {
	return &LayoutConfig{
		Name:        "Engine Test Config",
		Description: "Configuration for board integration tests",
		Width:       5,
		Height:      5,
		Start:       grid.Coordinate{X: 0, Y: 0},
		Target:      grid.Coordinate{X: 4, Y: 4},
	}
}

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	board, err := NewBoard(createTestConfig())
	require.NoError(t, err)
	return board
}

func TestNewBoard(t *testing.T) {
	board := newTestBoard(t)

	state := board.GetState()
	assert.Equal(t, 5, state.Width)
	assert.Equal(t, 5, state.Height)
	assert.Equal(t, Idle, state.Status)
	assert.Equal(t, "Engine Test Config", state.ConfigName)
	assert.Empty(t, board.GetEditHistory())
	assert.Nil(t, board.GetLastEdit())
}

func TestNewBoard_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Target = config.Start

	_, err := NewBoard(config)
	assert.ErrorIs(t, err, grid.ErrInvalidConfiguration)
}

func TestNewBoardWithDefaults(t *testing.T) {
	board := NewBoardWithDefaults()
	state := board.GetState()

	assert.Equal(t, 20, state.Width)
	assert.Equal(t, 15, state.Height)
	assert.Equal(t, grid.Coordinate{X: 0, Y: 3}, state.Start)
	assert.Equal(t, grid.Coordinate{X: 0, Y: 5}, state.Target)

	result, err := board.Search()
	require.NoError(t, err)
	assert.Equal(t, Found, result.Status)
	assert.Equal(t, 2, result.Length)
}

func TestBoard_MoveStartInvalidatesSearch(t *testing.T) {
	board := newTestBoard(t)

	result, err := board.Search()
	require.NoError(t, err)
	require.Equal(t, Found, result.Status)
	require.NotZero(t, board.Grid().Count(grid.Path), "expected path cells after search")

	require.NoError(t, board.MoveStart(grid.Coordinate{X: 2, Y: 2}))

	assert.Equal(t, Idle, board.Status())
	g := board.Grid()
	assert.Zero(t, g.Count(grid.Path)+g.Count(grid.Explored), "search overlay not cleared")
	assert.Equal(t, 23, g.Count(grid.Free))
}

func TestBoard_EditsInvalidateSearch(t *testing.T) {
	edits := map[string]func(b *Board) error{
		"ToggleWall": func(b *Board) error {
			_, err := b.ToggleWall(grid.Coordinate{X: 2, Y: 3})
			return err
		},
		"MoveStart":  func(b *Board) error { return b.MoveStart(grid.Coordinate{X: 1, Y: 0}) },
		"MoveTarget": func(b *Board) error { return b.MoveTarget(grid.Coordinate{X: 3, Y: 4}) },
	}

	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			board := newTestBoard(t)
			_, err := board.Search()
			require.NoError(t, err)
			require.NoError(t, edit(board))

			assert.Equal(t, Idle, board.Status())
			state := board.GetState()
			assert.Zero(t, state.PathLength)
			assert.Empty(t, state.Path)
		})
	}
}

func TestBoard_RejectedEditKeepsResult(t *testing.T) {
	board := newTestBoard(t)
	_, err := board.Search()
	require.NoError(t, err)

	_, err = board.ToggleWall(grid.Coordinate{X: 0, Y: 0})
	require.ErrorIs(t, err, grid.ErrProtected)
	assert.Equal(t, Found, board.Status(), "rejected edit must not invalidate the search")

	last := board.GetLastEdit()
	require.NotNil(t, last)
	assert.False(t, last.Success)
	assert.NotEmpty(t, last.Error)
}

func TestBoard_Clear(t *testing.T) {
	board := newTestBoard(t)
	board.ToggleWall(grid.Coordinate{X: 1, Y: 1})
	board.Search()

	board.Clear()

	assert.Equal(t, Idle, board.Status())
	assert.Equal(t, 1, board.Grid().Count(grid.Wall), "clear must keep walls")
	assert.Zero(t, board.Grid().Count(grid.Explored), "clear must remove explored cells")
}

func TestBoard_Reset(t *testing.T) {
	board := newTestBoard(t)
	board.ToggleWall(grid.Coordinate{X: 1, Y: 1})
	board.ToggleWall(grid.Coordinate{X: 2, Y: 1})
	board.MoveTarget(grid.Coordinate{X: 3, Y: 3})
	board.Search()

	require.NoError(t, board.Reset())

	state := board.GetState()
	assert.Zero(t, state.WallCount)
	assert.Equal(t, grid.Coordinate{X: 4, Y: 4}, state.Target)
	assert.Equal(t, Idle, state.Status)
	assert.Equal(t, 5, state.TotalEdits, "history survives reset")
}

func TestBoard_History(t *testing.T) {
	board := newTestBoard(t)
	board.ToggleWall(grid.Coordinate{X: 1, Y: 1})
	board.ToggleWall(grid.Coordinate{X: 9, Y: 9})
	board.Search()

	history := board.GetEditHistory()
	require.Len(t, history, 3)

	expected := []struct {
		action  string
		success bool
		status  Status
	}{
		{ActionToggleWall, true, Idle},
		{ActionToggleWall, false, Idle},
		{ActionSearch, true, Found},
	}
	for i, exp := range expected {
		entry := history[i]
		assert.Equal(t, exp.action, entry.Action, "entry %d", i)
		assert.Equal(t, exp.success, entry.Success, "entry %d", i)
		assert.Equal(t, exp.status, entry.Status, "entry %d", i)
		assert.Equal(t, i+1, entry.EditNumber, "entry %d", i)
	}
	assert.Nil(t, history[2].Coordinate, "search entries carry no coordinate")
}

func TestBoard_StateConsistency(t *testing.T) {
	board := newTestBoard(t)
	board.ToggleWall(grid.Coordinate{X: 1, Y: 0})
	result, err := board.Search()
	require.NoError(t, err)

	state := board.GetState()
	assert.Equal(t, result.Length, state.PathLength)
	assert.Equal(t, len(result.Explored), state.ExploredCount)
	assert.Equal(t, len(state.Path), CountCellState(state.Cells, grid.Path))
	assert.Equal(t, uint64(1), state.Version)
}
