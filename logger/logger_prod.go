//go:build !dev
// +build !dev

package logger

import "log/slog"

// HandleError reports an error that does not stop the program.
func HandleError(err error) {
	slog.Default().Error("error", slog.Any("error", err))
}
