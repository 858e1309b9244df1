// Package service provides the business logic layer of the grid path solver.
//
// Core Interfaces:
//
// SolverService is the main service interface used by the REST API, the MCP
// tools, and the solve command. RunStore keeps finished solve reports and
// PuzzleStore loads puzzle definitions.
//
// Architecture:
//
// The service layer sits between the transports (HTTP/WebSocket/MCP) and the
// solver packages. A solve resolves a stored or inline puzzle, runs the forward
// search and the reverse pass, adds shortcut and cut-off analyses where the
// puzzle calls for them, and stores the report as a run.
//
// Usage:
//
//	puzzles, _ := config.NewManager("configs")
//	svc := service.NewSolverService(run.NewManager(), puzzles, logger)
//
//	report, err := svc.Solve(ctx, &service.SolveRequest{PuzzleID: "reindeer"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Logging:
//
// Every solve is logged through the injected logrus.FieldLogger with the
// puzzle, frontier, cost, and elapsed time as fields.
package service
