package jsonrpc

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/habiliai/agenteval/internal/mylog"
)

// newRecoveryHandler turns handler panics into 500s logged at error level.
func newRecoveryHandler(logger *mylog.Logger) func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(true),
	)
}
