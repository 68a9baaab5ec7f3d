package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/gridpath/game/engine"
	"github.com/wricardo/gridpath/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Grid Pathfinder",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Pathfinder - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Each session holds one rectangular board with a start cell (S), a target
cell (T) and any number of walls (#). A breadth-first search finds the
shortest 4-connected path between them.

AVAILABLE TOOLS:
- create_session / list_sessions / get_session: manage boards
- board_state: print the board
- describe_cell: inspect one cell
- toggle_wall, move_start, move_target: edit the board (invalidates the last search)
- search: run the search, or return the cached result
- clear_search: drop the search overlay
- reset_board: restore the preset layout
- edit_history: past commands
- list_configs: available presets
- instructions: coordinate system and legend`),
	)

	c.registerTools()
}

func sessionIDParam() mcp.ToolOption {
	return mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID"))
}

func coordinateParams(what string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Column of the "+what+" (0-based, left to right)")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Row of the "+what+" (0-based, bottom to top)")),
	}
}

func tool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	return mcp.NewTool(name, append([]mcp.ToolOption{mcp.WithDescription(description)}, opts...)...)
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(tool("create_session", "Create a new board from a preset",
		mcp.WithString("config_id", mcp.Description("Preset to use (optional, see list_configs)")),
	), c.handleCreateSession)

	c.mcpServer.AddTool(tool("list_sessions", "List all active boards"), c.handleListSessions)

	c.mcpServer.AddTool(tool("get_session", "Get details of a specific session", sessionIDParam()), c.handleGetSession)

	// Board queries
	c.mcpServer.AddTool(tool("board_state", "Print the board with the current search overlay", sessionIDParam()), c.handleBoardState)

	c.mcpServer.AddTool(tool("describe_cell", "Describe one cell: its classification, whether it is passable and which cell discovered it in the last search",
		append([]mcp.ToolOption{sessionIDParam()}, coordinateParams("cell")...)...,
	), c.handleDescribeCell)

	// Edits
	c.mcpServer.AddTool(tool("toggle_wall", "Place a wall on a free cell or remove an existing wall. Start and target cannot be walled.",
		append([]mcp.ToolOption{sessionIDParam()}, coordinateParams("cell")...)...,
	), c.editHandler("walls"))

	c.mcpServer.AddTool(tool("move_start", "Move the start cell. A wall at the destination is replaced.",
		append([]mcp.ToolOption{sessionIDParam()}, coordinateParams("new start")...)...,
	), c.editHandler("start"))

	c.mcpServer.AddTool(tool("move_target", "Move the target cell. A wall at the destination is replaced.",
		append([]mcp.ToolOption{sessionIDParam()}, coordinateParams("new target")...)...,
	), c.editHandler("target"))

	// Search
	c.mcpServer.AddTool(tool("search", "Find the shortest path from start to target",
		sessionIDParam(),
		mcp.WithBoolean("trace", mcp.Description("Include every explored cell in discovery order")),
	), c.handleSearch)

	c.mcpServer.AddTool(tool("clear_search", "Drop the last search result, keeping walls", sessionIDParam()), c.handleClear)

	c.mcpServer.AddTool(tool("reset_board", "Restore the preset layout: no walls, configured start and target", sessionIDParam()), c.handleReset)

	c.mcpServer.AddTool(tool("edit_history", "Get the command history of a session",
		sessionIDParam(),
		mcp.WithNumber("page", mcp.Description("Page number")),
		mcp.WithNumber("limit", mcp.Description("Items per page")),
	), c.handleEditHistory)

	// Configuration
	c.mcpServer.AddTool(tool("list_configs", "List available presets"), c.handleListConfigs)

	c.mcpServer.AddTool(tool("instructions", "Explain the coordinate system, legend and search rules"), c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID string, parts ...string) string {
	p := "/api/sessions/" + url.PathEscape(sessionID)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]string{}
	if configID := request.GetString("config_id", ""); configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s", session.ID, session.ConfigName, formatBoardState(session.BoardState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := engine.Idle
		if s.BoardState != nil {
			status = s.BoardState.Status
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Status: %s, Created: %s)\n",
			s.ID, s.ConfigName, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.BoardState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoardState(&state)), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	x, errX := request.RequireInt("x")
	y, errY := request.RequireInt("y")
	if errX != nil || errY != nil {
		return mcp.NewToolResultError("x and y are required integers"), nil
	}

	var cell service.CellInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "cells", fmt.Sprint(x), fmt.Sprint(y)), nil, &cell); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCell(&cell)), nil
}

// editHandler builds the handler for one of the coordinate edits
func (c *Client) editHandler(endpoint string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		x, errX := request.RequireInt("x")
		y, errY := request.RequireInt("y")
		if errX != nil || errY != nil {
			return mcp.NewToolResultError("x and y are required integers"), nil
		}

		var result service.EditResult
		body := map[string]int{"x": x, "y": y}
		if err := c.apiCall(ctx, "POST", sessionPath(sessionID, endpoint), body, &result); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text := fmt.Sprintf("%s\n\n%s", result.Message, formatBoardState(result.State))
		return mcp.NewToolResultText(text), nil
	}
}

func (c *Client) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path := sessionPath(sessionID, "search")
	if request.GetBool("trace", false) {
		path += "?trace=true"
	}

	var result service.SearchResult
	if err := c.apiCall(ctx, "POST", path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSearchResult(&result)), nil
}

func (c *Client) handleClear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.stateCommand(ctx, request, "clear")
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.stateCommand(ctx, request, "reset")
}

// stateCommand posts a body-less command that answers with {message, state}
func (c *Client) stateCommand(ctx context.Context, request mcp.CallToolRequest, endpoint string) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string             `json:"message"`
		State   *engine.BoardState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, endpoint), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatBoardState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleEditHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page := request.GetInt("page", 0); page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}

	path := sessionPath(sessionID, "history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Grid: %dx%d, Start: %s, Target: %s\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.Width, cfg.Height, cfg.Start, cfg.Target)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Grid Pathfinder - Instructions

COORDINATES:
• x is the column, counted from 0 on the left
• y is the row, counted from 0 at the BOTTOM; y+1 is "up"
• board_state prints the highest row first, so the first printed line is y = height-1

LEGEND:
• . free cell
• # wall (impassable)
• S start
• T target
• o explored by the last search
• * on the shortest path

SEARCH:
• Moves are 4-connected: left, right, down, up, expanded in that order
• The reported length counts steps (edges) from start to target
• The path lists the cells strictly between start and target
• Any edit (toggle_wall, move_start, move_target) discards the previous result
• Searching twice without edits returns the cached result

EDITS:
• Start and target cannot be walled, and neither can be moved onto the other
• Moving start or target onto a wall replaces the wall
• Coordinates outside the board are rejected`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatBoardState(session.BoardState))
}

func formatBoardState(state *engine.BoardState) string {
	if state == nil {
		return "No board state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Board: %dx%d | Start: %s | Target: %s | Walls: %d | Status: %s\n",
		state.Width, state.Height, state.Start, state.Target, state.WallCount, state.Status)
	if state.Status == engine.Found {
		fmt.Fprintf(&b, "Path length: %d | Explored: %d\n", state.PathLength, state.ExploredCount)
	} else if state.Status == engine.Unreachable {
		fmt.Fprintf(&b, "Target unreachable | Explored: %d\n", state.ExploredCount)
	}
	b.WriteString("\n")

	rows := engine.FormatRows(state.Cells)
	for i, row := range rows {
		fmt.Fprintf(&b, "%3d %s\n", len(rows)-1-i, row)
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatCell(cell *service.CellInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cell at (%d,%d):\n", cell.X, cell.Y)
	fmt.Fprintf(&b, "State: %s (%s)\n", cell.State, cell.Char)
	fmt.Fprintf(&b, "Passable: %v\n", cell.Passable)
	if cell.Parent != nil {
		fmt.Fprintf(&b, "Discovered from: %s\n", cell.Parent)
	}
	return b.String()
}

func formatSearchResult(result *service.SearchResult) string {
	var b strings.Builder

	switch result.Status {
	case engine.Found:
		fmt.Fprintf(&b, "Path found: %d steps, %d cells explored\n", result.Length, result.ExploredCount)
		if len(result.Path) > 0 {
			steps := make([]string, len(result.Path))
			for i, c := range result.Path {
				steps[i] = c.String()
			}
			fmt.Fprintf(&b, "Via: %s\n", strings.Join(steps, " "))
		} else {
			b.WriteString("Start and target are adjacent\n")
		}
	case engine.Unreachable:
		fmt.Fprintf(&b, "Target unreachable: %d cells explored\n", result.ExploredCount)
	default:
		fmt.Fprintf(&b, "Status: %s\n", result.Status)
	}

	if result.Cached {
		b.WriteString("(cached result, board unchanged since last search)\n")
	}

	if len(result.Explored) > 0 {
		steps := make([]string, len(result.Explored))
		for i, c := range result.Explored {
			steps[i] = c.String()
		}
		fmt.Fprintf(&b, "Explored: %s\n", strings.Join(steps, " "))
	}

	if result.State != nil {
		b.WriteString("\n")
		b.WriteString(formatBoardState(result.State))
	}

	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Edit History (Page %d/%d), Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalEdits)

	for _, edit := range history.Edits {
		status := "✓"
		if !edit.Success {
			status = "✗"
		}
		fmt.Fprintf(&b, "%d. %s", edit.EditNumber, edit.Action)
		if edit.Coordinate != nil {
			fmt.Fprintf(&b, " %s", edit.Coordinate)
		}
		fmt.Fprintf(&b, " %s [%s]", status, edit.Status)
		if edit.Error != "" {
			fmt.Fprintf(&b, " %s", edit.Error)
		}
		b.WriteString("\n")
	}

	return b.String()
}
