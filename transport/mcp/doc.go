// Package mcp exposes grid sessions to AI agents over the Model Context
// Protocol.
//
// The Client registers one MCP tool per REST operation and proxies every call
// to the HTTP API, so an agent drives exactly the same boards a browser sees:
//
//   - create_session, list_sessions, get_session
//   - board_state, describe_cell
//   - toggle_wall, move_start, move_target
//   - search, clear_search, reset_board
//   - edit_history, list_configs, instructions
//
// Boards are rendered as text, highest row first, using the same one
// character legend as the engine ('#' wall, 'S' start, 'T' target, 'o'
// explored, '*' path).
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// stdio
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP, one JSON-RPC message per POST
//	client.GetMCPServer().HandleMessage(ctx, body)
package mcp
