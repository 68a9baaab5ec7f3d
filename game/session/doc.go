// Package session keeps the live boards of a running server in memory.
//
// A Manager maps lower-cased session IDs to service.Session values, each of
// which owns one engine.Board. Nothing is persisted; a restart drops every
// board.
//
// IDs chosen by the caller are accepted as-is up to 64 characters. An empty
// ID gets a generated 4-character hex ID from crypto/rand. Generation gives
// up on random draws after a fixed number of collisions and scans the
// remaining space, returning ErrNoSessionIDs once all 65536 IDs are taken.
//
// The service layer calls UpdateLastAccessed on every request. RunCleanup
// sweeps sessions idle for longer than a TTL on a ticker until its context
// ends:
//
//	go manager.RunCleanup(ctx, time.Minute, cfg.SessionTTL, logger)
//
// Every create, delete and sweep republishes the session count through the
// metrics.SetActiveSessions gauge. A missing session yields
// ErrSessionNotFound, which matches service.ErrNotFound so the API maps it to
// 404.
package session
