package syncer

import (
	"context"
	"fmt"
	"os/exec"

	"readwise2org/internal/logger"
)

// CommandReindexer triggers the editor's knowledge-base reindex by
// running an external command, e.g. an emacsclient eval.
type CommandReindexer struct {
	argv []string
}

// NewCommandReindexer creates a reindexer for the given command line.
func NewCommandReindexer(argv []string) *CommandReindexer {
	return &CommandReindexer{argv: argv}
}

// Reindex runs the configured command and waits for it to finish.
func (r *CommandReindexer) Reindex(ctx context.Context) error {
	if len(r.argv) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, r.argv[0], r.argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("reindex command %q: %w: %s", r.argv[0], err, out)
	}

	logger.Info("Triggered knowledge-base reindex", map[string]interface{}{
		"command": r.argv[0],
	})
	return nil
}
