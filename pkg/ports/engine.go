package ports

import (
	"context"
	"io"

	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/machine"
)

// Engine is the surface the adapters (HTTP, MCP, CLI) drive.
type Engine interface {
	// Execute parses and runs src to completion or to the step limit,
	// streaming output to w.
	Execute(ctx context.Context, src string, w io.Writer) (machine.Result, error)

	// Start parses src and creates a session positioned before the first step.
	Start(ctx context.Context, sessionID, src string) (*domain.Session, error)

	// Advance runs at most budget steps of the session and returns the
	// updated session together with the output printed by this call.
	Advance(ctx context.Context, session *domain.Session, budget uint64) (*domain.Session, string, error)

	// Inspect renders the machine state the session is suspended in.
	Inspect(session *domain.Session) (string, error)
}
