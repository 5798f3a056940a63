package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/unabs"
	"github.com/aretw0/unabs/pkg/adapters/loam"
	"github.com/aretw0/unabs/pkg/ports"
)

// ErrExpectationFailed is returned when a library program prints something
// other than its expected output.
var ErrExpectationFailed = errors.New("output does not match expect")

// Library opens the program library at path, or the configured one.
func (e *Env) Library(path string) (ports.ProgramLoader, error) {
	if path == "" {
		path = e.Config.Library.Path
	}
	return loam.Open(path)
}

// ListLibrary prints the IDs and titles of the library programs.
func ListLibrary(ctx context.Context, lib ports.ProgramLoader, w io.Writer) error {
	ids, err := lib.ListPrograms(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No programs found.")
		return nil
	}
	for _, id := range ids {
		p, err := lib.GetProgram(ctx, id)
		if err != nil {
			return err
		}
		line := "- " + id
		if p.Title != "" {
			line += "\t" + p.Title
		}
		if p.Expect != nil {
			line += "\t(checked)"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// RunLibraryProgram runs the program id, streaming its output, and compares
// it with the program's expected output when one is declared.
func RunLibraryProgram(ctx context.Context, env *Env, lib ports.ProgramLoader, id string, stdio IO) error {
	p, err := lib.GetProgram(ctx, id)
	if err != nil {
		return err
	}

	engine := env.Engine()
	if p.MaxSteps > 0 {
		engine = env.Engine(unabs.WithMaxSteps(p.MaxSteps))
	}

	var out strings.Builder
	w := io.MultiWriter(stdio.Out, &out)
	res, err := engine.Execute(ctx, p.Source, w)
	if err != nil {
		return fmt.Errorf("program %s: %w", id, err)
	}
	env.Logger.Debug("Library program finished", "program", id, "steps", res.Steps)

	if p.Expect == nil {
		return nil
	}
	if out.String() != *p.Expect {
		return fmt.Errorf("program %s: %w: want %q, got %q", id, ErrExpectationFailed, *p.Expect, out.String())
	}
	printSystemMessage(stdio.Err, "%s: output matches expect.", id)
	return nil
}
