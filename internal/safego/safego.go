// Package safego launches background goroutines that log a panic instead of
// taking down the server.
package safego

import (
	"log/slog"
	"runtime/debug"
)

// Go runs fn in a new goroutine under the given task name. A panic in fn is
// recovered and logged with the task name and stack.
func Go(task string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("recovered panic in background task",
					"task", task,
					"panic", r,
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
