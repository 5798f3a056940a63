package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/unabs/internal/presentation/graph"
	"github.com/aretw0/unabs/pkg/domain"
)

// Graph prints the Mermaid diagram of a program. With a session ID the
// session's program is drawn instead, highlighting the term under evaluation.
func Graph(ctx context.Context, env *Env, opts RunOptions, stdio IO) error {
	if opts.SessionID == "" {
		src, err := ReadProgram(opts, stdio.In)
		if err != nil {
			return err
		}
		root, err := env.Engine().Compile(src)
		if err != nil {
			return err
		}
		fmt.Fprint(stdio.Out, graph.GenerateMermaid(root, nil))
		return nil
	}

	sessions, closeStore, err := env.Sessions(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	sess, err := sessions.Load(ctx, opts.SessionID)
	if err != nil {
		return fmt.Errorf("error loading session '%s': %w", opts.SessionID, err)
	}

	engine := env.Engine()
	idx, state, err := engine.State(sess)
	switch {
	case errors.Is(err, domain.ErrSessionHalted):
		root, err := engine.Compile(sess.Program)
		if err != nil {
			return err
		}
		fmt.Fprint(stdio.Out, graph.GenerateMermaid(root, nil))
		return nil
	case err != nil:
		return err
	}
	fmt.Fprint(stdio.Out, graph.GenerateMermaid(idx.Root(), graph.OverlayFor(idx, state)))
	return nil
}
