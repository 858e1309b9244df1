// Package mcp exposes the solver to AI agents over the Model Context Protocol.
//
// The client is a thin proxy: every tool call is translated into a request
// against the REST API, and the JSON response is formatted as text.
//
// MCP Tools:
//   - list_puzzles: List puzzle definitions
//   - get_puzzle: Show one puzzle with its layout
//   - solve_puzzle: Solve a puzzle and store the run
//   - list_runs: List stored runs, optionally for one puzzle
//   - get_run: Show the report of a stored run
//   - optimal_cells: List or draw the optimal-path cells of a run
//   - shortcuts: Show the saving histogram of a run
//   - solver_instructions: Explain movement models and reports
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer()) for local MCP clients
//   - HTTP: server.NewStreamableHTTPServer(client.GetMCPServer()) mounted at /mcp
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
