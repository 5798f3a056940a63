package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/unabs/pkg/domain"
)

// ListSessions prints one status line per stored session.
func ListSessions(ctx context.Context, env *Env, w io.Writer) error {
	sessions, closeStore, err := env.Sessions(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	ids, err := sessions.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return nil
	}

	fmt.Fprintln(w, "Sessions:")
	for _, id := range ids {
		sess, err := sessions.Load(ctx, id)
		if err != nil {
			// Listed but gone (expired or removed concurrently).
			if errors.Is(err, domain.ErrSessionNotFound) {
				continue
			}
			fmt.Fprintf(w, "- %s\t(unreadable: %v)\n", id, err)
			continue
		}
		fmt.Fprintln(w, "- "+SessionStatusLine(sess))
	}
	return nil
}

// InspectSession prints the machine state of a session, or the whole
// session as JSON.
func InspectSession(ctx context.Context, env *Env, id string, asJSON bool, w io.Writer) error {
	sessions, closeStore, err := env.Sessions(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	sess, err := sessions.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("error loading session '%s': %w", id, err)
	}

	if asJSON {
		data, err := json.MarshalIndent(sess, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling session: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintln(w, SessionStatusLine(sess))
	if sess.Status == domain.StatusFailed {
		return nil
	}
	dump, err := env.Engine().Inspect(sess)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, dump)
	return nil
}

// RemoveSessions deletes every listed session, reporting each one.
func RemoveSessions(ctx context.Context, env *Env, ids []string, w io.Writer) error {
	sessions, closeStore, err := env.Sessions(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	var errs []error
	for _, id := range ids {
		if err := sessions.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
			continue
		}
		fmt.Fprintf(w, "Removed session '%s'\n", id)
	}
	return errors.Join(errs...)
}
