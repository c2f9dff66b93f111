package cli

import (
	"io"
	"log/slog"
	"runtime/debug"

	"usermanager/src/infra/logger"
)

// recovered runs fn and turns a panic into an INTERNAL_ERROR response.
func recovered(log *slog.Logger, w io.Writer, command, operationID string, fn func() int) (exit int) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error(log, "panic recovered",
				"operation_id", operationID,
				"error", err,
				"command", command,
				"stack", string(debug.Stack()),
			)
			exit = InternalError(w, operationID)
		}
	}()

	return fn()
}
