// Package websocket pushes solve results to browsers and other listeners.
//
// Clients connect to /ws?puzzle=<id> and receive a JSON Message for every run
// of that puzzle. Connecting without a puzzle id subscribes to every run.
//
// Message Protocol:
//
//	{"topic": "reindeer", "event": "run_completed", "run_id": "...", "report": {...}}
//
// Incoming messages are ignored; the read side only tracks liveness.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("puzzle"))
//	})
//	hub.BroadcastRun(report)
//
// Concurrency:
//
// All topic bookkeeping happens on the Run goroutine. BroadcastRun and
// BroadcastEvent are safe to call from any goroutine, and return immediately
// once the hub has stopped.
package websocket
