// Package service provides the business logic layer for the grid path finder.
//
// The service package implements:
//   - Multi-session board management
//   - Layout preset loading and saving
//   - Topology edits, searches and clears on a session board
//   - Paginated edit history
//
// Core Interfaces:
//
// GridService is the main service interface used by every transport.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages layout presets.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the engine. Each session owns its own engine.Board. The engine is
// single-threaded, so the service serialises commands with one mutex; a
// search and an edit never interleave on the same board.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gridService := service.NewGridService(sessionMgr, configMgr, logger)
//
//	info, err := gridService.CreateSession(ctx, "corridor")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gridService.ToggleWall(ctx, info.ID, grid.Coordinate{X: 3, Y: 1})
//	result, err := gridService.Search(ctx, info.ID)
//
// Errors:
//
// Rejected edits are returned as errors wrapping grid.ErrOutOfBounds or
// grid.ErrProtected. Missing sessions and presets match ErrNotFound. An
// unreachable target is a normal SearchResult, not an error.
package service
