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

	"github.com/wricardo/gridpath/maze/grid"
	"github.com/wricardo/gridpath/maze/puzzle"
	"github.com/wricardo/gridpath/maze/service"
)

// maxListedCells caps how many optimal cells are spelled out in tool output
const maxListedCells = 200

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
			Timeout: 30 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Grid Path Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Path Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

The solver finds the minimal cost from a start cell to a goal cell on a grid,
every cell that lies on at least one optimal route, shortcut savings along a
single route, and the first falling obstacle that cuts the goal off.

AVAILABLE TOOLS:
- list_puzzles: List puzzle definitions
- get_puzzle: Show one puzzle definition
- solve_puzzle: Solve a puzzle and store the run
- list_runs: List stored runs
- get_run: Show a stored run report
- optimal_cells: Show the optimal-path cells of a run, optionally drawn on the grid
- shortcuts: Show the saving histogram of a run
- solver_instructions: Explain movement models and costs`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Puzzles
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List available puzzle definitions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_puzzle",
		Description: "Get a puzzle definition with its layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle identifier (file name without .json)",
				},
			},
			Required: []string{"puzzle_id"},
		},
	}, c.handleGetPuzzle)

	// Solving
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_puzzle",
		Description: "Solve a puzzle: minimal cost, optimal-path cells, shortcuts and cut-off analysis",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle identifier (optional, defaults to the default puzzle)",
				},
				"frontier": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"priority", "stack"},
					"description": "Frontier ordering of the search",
				},
				"cheat_budget": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum Manhattan distance of a shortcut (optional)",
				},
				"saving_threshold": map[string]interface{}{
					"type":        "integer",
					"description": "Minimum saving counted in the summary (optional)",
				},
				"render": map[string]interface{}{
					"type":        "boolean",
					"description": "Include the grid with optimal cells marked as O",
				},
			},
		},
	}, c.handleSolve)

	// Runs
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_runs",
		Description: "List stored solve runs, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Only runs of this puzzle",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of runs to list",
				},
			},
		},
	}, c.handleListRuns)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_run",
		Description: "Get the report of a stored run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID to retrieve",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleGetRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "optimal_cells",
		Description: "List every cell on some optimal path of a run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
				"render": map[string]interface{}{
					"type":        "boolean",
					"description": "Draw the grid with the cells marked as O",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleOptimalCells)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "shortcuts",
		Description: "Show the shortcut saving histogram of a run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleShortcuts)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solver_instructions",
		Description: "Explain the movement models, costs and reports of the solver",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
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
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// argument readers; JSON numbers arrive as float64

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func boolArg(args map[string]interface{}, key string) bool {
	b, _ := args[key].(bool)
	return b
}

// Tool handlers

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                  `json:"count"`
		Puzzles []service.PuzzleInfo `json:"puzzles"`
	}

	err := c.apiCall(ctx, "GET", "/api/puzzles", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available Puzzles (%d):\n\n", response.Count)
	for _, p := range response.Puzzles {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Grid: %dx%d, Movement: %s\n\n",
			p.PuzzleID, p.Name, p.Description, p.Width, p.Height, p.Movement)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetPuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	puzzleID := stringArg(request.GetArguments(), "puzzle_id")
	if puzzleID == "" {
		return mcp.NewToolResultError("puzzle_id is required"), nil
	}

	var p puzzle.Puzzle
	err := c.apiCall(ctx, "GET", "/api/puzzles/"+url.PathEscape(puzzleID), nil, &p)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPuzzle(puzzleID, &p)), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body := service.SolveRequest{
		PuzzleID: stringArg(args, "puzzle_id"),
		Frontier: stringArg(args, "frontier"),
		Render:   boolArg(args, "render"),
	}
	if budget, ok := intArg(args, "cheat_budget"); ok {
		body.CheatBudget = &budget
	}
	if threshold, ok := intArg(args, "saving_threshold"); ok {
		body.SavingThreshold = &threshold
	}

	var report service.SolveReport
	err := c.apiCall(ctx, "POST", "/api/solve", body, &report)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatReport(&report)), nil
}

func (c *Client) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	params := url.Values{}
	if puzzleID := stringArg(args, "puzzle_id"); puzzleID != "" {
		params.Set("puzzle", puzzleID)
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	path := "/api/runs"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var response struct {
		Count int               `json:"count"`
		Total int               `json:"total"`
		Runs  []service.RunInfo `json:"runs"`
	}
	err := c.apiCall(ctx, "GET", path, nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stored Runs (%d of %d):\n\n", response.Count, response.Total)
	for _, r := range response.Runs {
		fmt.Fprintf(&b, "- %s (Puzzle: %s, Created: %s, Cost: %s)\n",
			r.ID, r.PuzzleID, r.CreatedAt.Format("15:04:05"), formatCost(r.Report))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID := stringArg(request.GetArguments(), "run_id")
	if runID == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}

	var info service.RunInfo
	err := c.apiCall(ctx, "GET", "/api/runs/"+url.PathEscape(runID), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if info.Report == nil {
		return mcp.NewToolResultError("run has no report"), nil
	}

	return mcp.NewToolResultText(formatReport(info.Report)), nil
}

func (c *Client) handleOptimalCells(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	runID := stringArg(args, "run_id")
	if runID == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}

	path := "/api/runs/" + url.PathEscape(runID) + "/cells"
	if boolArg(args, "render") {
		path += "?render=true"
	}

	var response struct {
		Reachable bool            `json:"reachable"`
		Cost      *int            `json:"cost"`
		Count     int             `json:"count"`
		Cells     []grid.Position `json:"cells"`
		Rendered  []string        `json:"rendered"`
	}
	err := c.apiCall(ctx, "GET", path, nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !response.Reachable {
		return mcp.NewToolResultText("Goal is unreachable: no optimal cells.\n"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Optimal cells: %d (minimal cost %d)\n", response.Count, *response.Cost)
	if len(response.Rendered) > 0 {
		b.WriteString("\n")
		for _, row := range response.Rendered {
			b.WriteString(row + "\n")
		}
	}
	b.WriteString("\n" + formatCells(response.Cells) + "\n")

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleShortcuts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID := stringArg(request.GetArguments(), "run_id")
	if runID == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}

	var summary service.ShortcutSummary
	err := c.apiCall(ctx, "GET", "/api/runs/"+url.PathEscape(runID)+"/shortcuts", nil, &summary)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatShortcuts(&summary)), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Grid Path Solver - Instructions

GRID LEGEND:
• # - Wall (impassable)
• . - Open cell
• S - Start cell
• E - End (goal) cell
• O - Cell on some optimal route (rendered output only)

MOVEMENT MODELS:
• facing: the state is a cell plus a heading. Stepping forward costs forward_cost
  (default 1), turning left or right in place costs turn_cost (default 1000).
  The start heading is East unless the puzzle says otherwise.
• walker: the state is a cell. Each of the four cardinal steps costs forward_cost.

REPORTS:
• cost: minimal total cost, or unreachable when no route exists.
• optimal cells: every cell lying on at least one minimal-cost route, found by a
  forward search from the start and a reverse search from the goal. A cell is kept
  when its distance from the start plus its distance to the goal equals the cost.
• shortcuts: for a single route, every pair of cells within cheat_budget Manhattan
  distance whose route distance exceeds it. The saving is route distance minus
  Manhattan distance, grouped into a histogram, with a count of savings at least
  saving_threshold.
• cut-off: for obstacle puzzles with pending drops, the first drop after which the
  goal can no longer be reached, found by binary search over drop prefixes.

FRONTIERS:
• priority (default): cheapest state first.
• stack: last in, first out, with requeue on improvement. Same results, different
  amount of work; compare stats.expanded and stats.requeues.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatCost(report *service.SolveReport) string {
	if report == nil || report.Cost == nil {
		return "unreachable"
	}
	return fmt.Sprint(*report.Cost)
}

func formatPuzzle(puzzleID string, p *puzzle.Puzzle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Puzzle: %s", puzzleID)
	if p.Name != "" {
		fmt.Fprintf(&b, " (%s)", p.Name)
	}
	b.WriteString("\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n")
	}
	fmt.Fprintf(&b, "Movement: %s, Forward cost: %d", p.Movement, p.Forward())
	if p.Movement == puzzle.MovementFacing {
		fmt.Fprintf(&b, ", Turn cost: %d", p.Turn())
	}
	b.WriteString("\n")

	if len(p.Layout) > 0 {
		b.WriteString("\n")
		for _, row := range p.Layout {
			b.WriteString(row + "\n")
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Grid: %dx%d, Obstacles: %d", p.Width, p.Height, len(p.Obstacles))
	if p.DropCount != nil {
		fmt.Fprintf(&b, " (%d placed, %d pending)", p.Placed(), len(p.Obstacles)-p.Placed())
	}
	b.WriteString("\n")
	return b.String()
}

func formatReport(report *service.SolveReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\nPuzzle: %s", report.RunID, report.PuzzleID)
	if report.PuzzleName != "" {
		fmt.Fprintf(&b, " (%s)", report.PuzzleName)
	}
	fmt.Fprintf(&b, "\nMovement: %s, Frontier: %s, Grid: %dx%d\n", report.Movement, report.Frontier, report.Width, report.Height)
	fmt.Fprintf(&b, "Start: %s, Goal: %s\n\n", report.Start, report.Goal)

	if !report.Reachable {
		b.WriteString("Goal is UNREACHABLE\n")
	} else {
		fmt.Fprintf(&b, "Minimal cost: %d\n", *report.Cost)
		fmt.Fprintf(&b, "Path steps: %d\n", report.Steps)
		fmt.Fprintf(&b, "Optimal cells: %d\n", report.CellCount)
		fmt.Fprintf(&b, "Forward/reverse costs agree: %t\n", report.Symmetric)
	}
	fmt.Fprintf(&b, "Search: %d expanded, %d relaxations, %d requeues, %d pruned, %d backward expanded\n",
		report.Stats.Expanded, report.Stats.Relaxations, report.Stats.Requeues, report.Stats.Pruned, report.Stats.Backward)

	if len(report.Rendered) > 0 {
		b.WriteString("\n")
		for _, row := range report.Rendered {
			b.WriteString(row + "\n")
		}
	}

	if report.Shortcuts != nil {
		b.WriteString("\n" + formatShortcuts(report.Shortcuts))
	}

	if cut := report.Cutoff; cut != nil {
		b.WriteString("\n")
		if cut.Found && cut.Position != nil {
			fmt.Fprintf(&b, "Cut-off: drop #%d at %s blocks the goal (%d steps before it, %d probes)\n",
				cut.Index, cut.Position, cut.StepsBefore, cut.Probes)
		} else {
			fmt.Fprintf(&b, "Cut-off: no pending drop blocks the goal (%d probes)\n", cut.Probes)
		}
	}

	return b.String()
}

func formatShortcuts(summary *service.ShortcutSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shortcuts (budget %d): %d pairs, %d save at least %d\n",
		summary.Budget, summary.Pairs, summary.AtLeast, summary.Threshold)
	for _, bucket := range summary.Histogram {
		fmt.Fprintf(&b, "  %d shortcuts save %d\n", bucket.Count, bucket.Saving)
	}
	return b.String()
}

func formatCells(cells []grid.Position) string {
	parts := make([]string, 0, min(len(cells), maxListedCells))
	for i, p := range cells {
		if i == maxListedCells {
			break
		}
		parts = append(parts, p.String())
	}
	out := strings.Join(parts, " ")
	if len(cells) > maxListedCells {
		out += fmt.Sprintf(" ... (%d more)", len(cells)-maxListedCells)
	}
	return out
}
