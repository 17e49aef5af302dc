// Package logging builds the process logger and scrubs credentials from
// anything that may end up in log output.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New constructs the root zap logger for the given environment. Local
// environments get human-readable development output; everything else gets
// production JSON.
func New(env string) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}
