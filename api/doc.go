// Package api provides the HTTP REST API for the grid path solver.
//
// Endpoints:
//
// Solving:
//   - POST /api/solve - Solve a stored or inline puzzle and store the run
//
// Runs:
//   - GET /api/runs - List runs (sort=created|accessed, order=asc|desc, limit, puzzle)
//   - GET /api/runs/{id} - Get a stored run with its full report
//   - DELETE /api/runs/{id} - Delete a run
//   - GET /api/runs/{id}/cells - Optimal-path cells of a run (render=true adds a drawing)
//   - GET /api/runs/{id}/shortcuts - Saving histogram of a run
//
// Puzzles:
//   - GET /api/puzzles - List puzzle files
//   - POST /api/puzzles - Save a puzzle definition
//   - GET /api/puzzles/{name} - Get a puzzle definition
//
// Other:
//   - GET /api/health - Liveness check
//   - /ws?puzzle=<id> - WebSocket stream of run events for one puzzle, or all when omitted
//
// Solve requests are JSON:
//
//	{
//	  "puzzle_id": "racetrack",
//	  "frontier": "priority|stack",
//	  "cheat_budget": 20,
//	  "saving_threshold": 50,
//	  "render": true
//	}
//
// Errors are returned as JSON with the matching HTTP status code:
//
//	{
//	  "error": "error message",
//	  "code": 404
//	}
package api
