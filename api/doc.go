// Package api exposes grid sessions over HTTP.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions                  create a board from a preset ({"config_id": "maze"})
//   - GET    /api/sessions                  list boards (?sort=created|accessed&order=asc|desc&limit=N&config=name)
//   - GET    /api/sessions/{id}             session info with the current board state
//   - DELETE /api/sessions/{id}             drop a board
//
// Board:
//   - GET  /api/sessions/{id}/state         full snapshot
//   - GET  /api/sessions/{id}/cells/{x}/{y} one cell, including its search parent
//   - GET  /api/sessions/{id}/history       paginated edit history (?page=&limit=&order=)
//   - POST /api/sessions/{id}/walls         toggle a wall, body {"x": 3, "y": 4}
//   - POST /api/sessions/{id}/start         move the start cell
//   - POST /api/sessions/{id}/target        move the target cell
//   - POST /api/sessions/{id}/search        run BFS, or return the cached result (?trace=true adds the explored list)
//   - POST /api/sessions/{id}/clear         drop the search overlay
//   - POST /api/sessions/{id}/reset         restore the preset layout
//
// Presets:
//   - GET  /api/configs                     list presets
//   - GET  /api/configs/{name}              one preset
//   - POST /api/configs                     save a preset as JSON
//
// Operations:
//   - GET /health                           liveness and session count
//   - GET /metrics                          Prometheus metrics
//   - GET /ws?session={id}                  WebSocket stream of board snapshots
//
// Errors are returned as {"error": "..."}. Unknown sessions and presets map to
// 404, coordinates outside the grid and invalid presets to 400, edits that
// would overwrite start or target to 409.
package api
