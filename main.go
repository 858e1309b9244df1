// Command gridpath starts the grid path solver.
//
// It supports three commands:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "solve" – solves one puzzle locally and prints the report as text or JSON
//
// Flags control host/port, puzzle directory, logging, and optional ngrok
// tunneling for easy external access during development. Every flag can also
// be set from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/gridpath/api"
	"github.com/wricardo/gridpath/maze/config"
	"github.com/wricardo/gridpath/maze/run"
	"github.com/wricardo/gridpath/maze/service"
	"github.com/wricardo/gridpath/transport/mcp"
	"github.com/wricardo/gridpath/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Grid Path Solver"
)

// Run retention
const (
	runMaxAge       = 24 * time.Hour
	cleanupInterval = time.Hour
)

var log = logrus.New()

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("error loading .env file")
		}
	} else {
		log.Debug("loaded environment variables from .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

// newApp builds the command tree.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "gridpath",
		Usage:   "minimal-cost grid search with optimal-path sets and shortcut analysis",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "puzzle-dir",
				Value:   "configs",
				Usage:   "directory containing puzzle definitions",
				Sources: cli.EnvVars("PUZZLE_DIR", "CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "log format: text or json",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "max-runs",
				Value:   run.DefaultLimit,
				Usage:   "number of solve runs kept in memory",
				Sources: cli.EnvVars("MAX_RUNS"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "enable ngrok tunnel (serve only)",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, configureLogging(cmd.Bool("debug"), cmd.String("log-format"))
		},
		Commands: []*cli.Command{
			serveCommand(),
			mcpCommand(),
			solveCommand(),
		},
		Action: serveAction,
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"server", "http"},
		Usage:   "run HTTP server with API, WebSocket, and MCP endpoint (default)",
		Action:  serveAction,
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "run MCP stdio server, reusing an external API or starting an internal one",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   "http://localhost:8080",
				Usage:   "external API server to reuse when reachable",
				Sources: cli.EnvVars("API_URL"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// stdout carries the MCP protocol
			log.SetOutput(os.Stderr)

			solverService, runs, err := initializeServices(cmd.String("puzzle-dir"), cmd.Int("max-runs"))
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			go cleanupRoutine(ctx, runs)

			return runStdioMCP(ctx, solverService, cmd.String("api-url"))
		},
	}
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Usage:     "solve a puzzle locally and print the report",
		ArgsUsage: "[puzzle]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "frontier",
				Value: "priority",
				Usage: "frontier ordering: priority or stack",
			},
			&cli.IntFlag{
				Name:  "cheat-budget",
				Value: -1,
				Usage: "shortcut detour budget; negative uses the puzzle setting",
			},
			&cli.IntFlag{
				Name:  "threshold",
				Value: -1,
				Usage: "minimum saving to count; negative uses the puzzle setting",
			},
			&cli.BoolFlag{
				Name:  "render",
				Usage: "draw the grid with optimal cells marked",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the report as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			solverService, _, err := initializeServices(cmd.String("puzzle-dir"), run.DefaultLimit)
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}

			req := &service.SolveRequest{
				PuzzleID: cmd.Args().First(),
				Frontier: cmd.String("frontier"),
				Render:   cmd.Bool("render"),
			}
			if budget := cmd.Int("cheat-budget"); budget >= 0 {
				req.CheatBudget = &budget
			}
			if threshold := cmd.Int("threshold"); threshold >= 0 {
				req.SavingThreshold = &threshold
			}

			report, err := solverService.Solve(ctx, req)
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				enc := json.NewEncoder(cmd.Root().Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return printReport(cmd.Root().Writer, report)
		},
	}
}

// configureLogging sets level and formatter of the shared logger.
func configureLogging(debug bool, format string) error {
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	switch strings.ToLower(format) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q, expected text or json", format)
	}
	return nil
}

// initializeServices wires the puzzle and run stores into the solver service.
func initializeServices(puzzleDir string, maxRuns int) (service.SolverService, *run.Manager, error) {
	puzzles, err := config.NewManager(puzzleDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create puzzle manager: %w", err)
	}

	runs := run.NewManager(run.WithLimit(maxRuns))
	return service.NewSolverService(runs, puzzles, log), runs, nil
}

// cleanupRoutine periodically removes runs that have not been accessed
// within the retention window.
func cleanupRoutine(ctx context.Context, runs *run.Manager) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := runs.CleanupExpired(runMaxAge); removed > 0 {
				log.WithField("removed", removed).Info("cleaned up expired runs")
			}
		}
	}
}

// newMainRouter combines the REST API with the /mcp endpoint.
func newMainRouter(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()

	// Mount API server at root
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)
		if response == nil {
			// Notifications have no response
			w.WriteHeader(http.StatusAccepted)
			return
		}

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	})

	return mainRouter
}

// serveAction starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	solverService, runs, err := initializeServices(cmd.String("puzzle-dir"), cmd.Int("max-runs"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	go cleanupRoutine(ctx, runs)

	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	mcpClient := mcp.NewClient("http://" + addr)
	mainRouter := newMainRouter(api.NewServer(solverService, hub), mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.WithFields(logrus.Fields{"version": Version, "addr": addr}).Infof("starting %s", AppName)

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Infof("REST API: http://%s/api", addr)
		log.Infof("WebSocket: ws://%s/ws?puzzle=<puzzle_id>", addr)
		log.Infof("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), mainRouter)
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-serveErr:
		return err
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info("server stopped")
	return nil
}

// runNgrok serves handler through an ngrok tunnel until ctx is done.
func runNgrok(ctx context.Context, authToken, domain string, handler http.Handler) {
	if authToken == "" {
		log.Warn("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	log.Info("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.WithField("domain", domain).Info("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.WithError(err).Error("failed to start ngrok tunnel")
		return
	}
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.WithError(err).Warn("failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.WithField("url", ngrokURL).Info("ngrok tunnel established")
	log.Infof("  REST API (ngrok): %s/api", ngrokURL)
	log.Infof("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.WithError(err).Error("ngrok server error")
	}
	log.Info("ngrok tunnel closed")
}

// runStdioMCP runs an MCP stdio server.
// It tries to reuse an external API at externalURL; if unavailable, it starts
// an internal HTTP API bound to a random loopback port and targets that.
func runStdioMCP(ctx context.Context, solverService service.SolverService, externalURL string) error {
	baseURL := externalURL

	log.WithField("url", externalURL).Info("checking for external API server")
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Info("MCP stdio server ready (using external HTTP server)")
	} else {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub(log)
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: api.NewServer(solverService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("internal HTTP server error")
			}
		}()
		defer httpServer.Close()

		baseURL = "http://" + listener.Addr().String()
		log.WithField("url", baseURL).Info("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcp.NewClient(baseURL).GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// printReport writes a human-readable solve report.
func printReport(w io.Writer, report *service.SolveReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Puzzle:\t%s (%s)\n", report.PuzzleID, report.PuzzleName)
	fmt.Fprintf(tw, "Movement:\t%s, frontier %s, %dx%d\n", report.Movement, report.Frontier, report.Width, report.Height)
	if report.Reachable {
		fmt.Fprintf(tw, "Cost:\t%d\n", *report.Cost)
		fmt.Fprintf(tw, "Path steps:\t%d\n", report.Steps)
		fmt.Fprintf(tw, "Optimal cells:\t%d\n", report.CellCount)
	} else {
		fmt.Fprintf(tw, "Cost:\tunreachable\n")
	}
	fmt.Fprintf(tw, "Expanded:\t%d forward, %d backward\n", report.Stats.Expanded, report.Stats.Backward)
	if s := report.Shortcuts; s != nil {
		fmt.Fprintf(tw, "Shortcuts:\t%d save at least %d (budget %d, %d pairs)\n", s.AtLeast, s.Threshold, s.Budget, s.Pairs)
	}
	if c := report.Cutoff; c != nil && c.Found {
		fmt.Fprintf(tw, "Cut-off:\t%s (drop %d)\n", c.Position, c.Index)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, row := range report.Rendered {
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}
