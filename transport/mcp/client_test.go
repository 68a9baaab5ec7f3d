package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/gridpath/game/engine"
	"github.com/wricardo/gridpath/game/grid"
	"github.com/wricardo/gridpath/game/service"
)

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func foundState() *engine.BoardState {
	board, err := engine.NewBoard(&engine.LayoutConfig{
		Name: "corridor", Width: 3, Height: 2,
		Start: grid.Coordinate{X: 0, Y: 0}, Target: grid.Coordinate{X: 2, Y: 0},
	})
	if err != nil {
		panic(err)
	}
	board.Search()
	return board.GetState()
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL + "/")

	require.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.mcpServer)
	assert.Same(t, client.mcpServer, client.GetMCPServer())
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "ab12"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]any
	require.NoError(t, client.apiCall(context.Background(), "GET", "/api/sessions/ab12", nil, &response))
	assert.Equal(t, "ab12", response["id"])
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall(context.Background(), "GET", "/api", nil, nil)
	assert.Error(t, err)
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json":
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "grid: start and target cells are protected"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall(context.Background(), "GET", "/json", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "grid: start and target cells are protected", err.Error())

	err = client.apiCall(context.Background(), "GET", "/plain", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_createSession(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.SessionInfo{
			ID:         "test-session-123",
			ConfigName: "maze",
			BoardState: foundState(),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handleCreateSession(context.Background(), callRequest("create_session", map[string]any{"config_id": "maze"}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "test-session-123")
	assert.Contains(t, text, "Config: maze")
	assert.Equal(t, "maze", gotBody["config_id"])
}

func TestClient_editTools(t *testing.T) {
	var gotPath string
	var gotBody map[string]int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(service.EditResult{Success: true, Message: "Wall placed at (1,1)", State: foundState()})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	tests := []struct {
		endpoint string
		wantPath string
	}{
		{"walls", "/api/sessions/ab12/walls"},
		{"start", "/api/sessions/ab12/start"},
		{"target", "/api/sessions/ab12/target"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			// JSON numbers arrive as float64
			req := callRequest("edit", map[string]any{"session_id": "ab12", "x": float64(1), "y": float64(1)})
			result, err := client.editHandler(tt.endpoint)(context.Background(), req)
			require.NoError(t, err)

			assert.False(t, result.IsError)
			assert.Contains(t, resultText(t, result), "Wall placed at (1,1)")
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, map[string]int{"x": 1, "y": 1}, gotBody)
		})
	}
}

func TestClient_editMissingCoordinate(t *testing.T) {
	client := NewClient("http://localhost:0")

	result, err := client.editHandler("walls")(context.Background(), callRequest("toggle_wall", map[string]any{"session_id": "ab12", "x": 1}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestClient_search(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(service.SearchResult{
			Status:        engine.Found,
			Path:          []grid.Coordinate{{X: 1, Y: 0}},
			Length:        2,
			ExploredCount: 3,
			Cached:        true,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handleSearch(context.Background(), callRequest("search", map[string]any{"session_id": "ab12", "trace": true}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "Path found: 2 steps, 3 cells explored")
	assert.Contains(t, text, "Via: (1,0)")
	assert.Contains(t, text, "cached result")
	assert.Equal(t, "trace=true", gotQuery)
}

func TestClient_searchErrorIsToolError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session zz99: session not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handleSearch(context.Background(), callRequest("search", map[string]any{"session_id": "zz99"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "session not found")
}

func TestClient_editHistory(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		c := grid.Coordinate{X: 0, Y: 0}
		json.NewEncoder(w).Encode(service.HistoryResponse{
			Edits: []engine.EditHistoryEntry{
				{Action: engine.ActionToggleWall, Coordinate: &c, Success: false, Error: "protected", Status: engine.Idle, EditNumber: 1},
				{Action: engine.ActionSearch, Success: true, Status: engine.Found, EditNumber: 2},
			},
			TotalEdits: 2, Page: 1, PageSize: 10, TotalPages: 1,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handleEditHistory(context.Background(), callRequest("edit_history", map[string]any{"session_id": "ab12", "limit": float64(10)}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Equal(t, "limit=10", gotQuery)
	assert.Contains(t, text, "1. toggle_wall (0,0) ✗ [idle] protected")
	assert.Contains(t, text, "2. search ✓ [found]")
}

func TestFormatBoardState(t *testing.T) {
	text := formatBoardState(foundState())

	assert.Contains(t, text, "Board: 3x2")
	assert.Contains(t, text, "Status: found")
	assert.Contains(t, text, "Path length: 2")

	lines := strings.Split(text, "\n")
	// highest row first
	assert.Contains(t, lines, "  1 oo.")
	assert.Contains(t, lines, "  0 S*T")
}

func TestFormatBoardState_Nil(t *testing.T) {
	assert.Equal(t, "No board state available", formatBoardState(nil))
}

func TestFormatSearchResult_Unreachable(t *testing.T) {
	text := formatSearchResult(&service.SearchResult{Status: engine.Unreachable, ExploredCount: 19})
	assert.Contains(t, text, "Target unreachable: 19 cells explored")
}

func TestFormatSearchResult_Adjacent(t *testing.T) {
	text := formatSearchResult(&service.SearchResult{Status: engine.Found, Path: []grid.Coordinate{}, Length: 1})
	assert.Contains(t, text, "Start and target are adjacent")
}

func TestClient_handleInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleInstructions(context.Background(), callRequest("instructions", nil))
	require.NoError(t, err)

	text := resultText(t, result)
	for _, want := range []string{"LEGEND", "# wall", "left, right, down, up", "cached result"} {
		assert.Contains(t, text, want)
	}
}
