package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/unabs/internal/presentation/tui"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	// Source is the program text; File is read instead when set ("-" for stdin).
	Source string
	File   string

	Interactive bool
	SessionID   string
	Fresh       bool

	// MaxSteps and CheckpointEvery override the config file when non-zero.
	MaxSteps        uint64
	CheckpointEvery uint64

	// ShowResult prints the final value after the output.
	ShowResult bool
}

// IO is where a command reads commands and writes program output.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdIO binds IO to the process streams.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// ReadProgram returns the sanitized program named by opts.
func ReadProgram(opts RunOptions, stdin io.Reader) (string, error) {
	src := opts.Source
	switch opts.File {
	case "":
	case "-":
		data, err := io.ReadAll(io.LimitReader(stdin, int64(runner.MaxProgramSize())+1))
		if err != nil {
			return "", fmt.Errorf("failed to read program from stdin: %w", err)
		}
		src = string(data)
	default:
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return "", fmt.Errorf("failed to read program: %w", err)
		}
		src = string(data)
	}
	if strings.TrimSpace(src) == "" {
		return "", errors.New("no program given: pass it as an argument or with --file")
	}
	return runner.SanitizeProgram(src)
}

// Execute handles the run command, dispatching to the stepper or the runner.
func Execute(ctx context.Context, env *Env, opts RunOptions, stdio IO) error {
	src, err := ReadProgram(opts, stdio.In)
	if err != nil {
		return err
	}
	if opts.MaxSteps == 0 {
		opts.MaxSteps = env.Config.MaxSteps
	}
	if opts.CheckpointEvery == 0 {
		opts.CheckpointEvery = env.Config.CheckpointEvery
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	if opts.Interactive {
		return RunInteractive(sigCtx, env, src, opts, stdio)
	}
	return RunSession(sigCtx, env, src, opts, stdio)
}

// RunSession runs src to completion, checkpointing it when a session ID is given.
func RunSession(ctx *SignalContext, env *Env, src string, opts RunOptions, stdio IO) error {
	engine := env.Engine()
	runnerOpts := []runner.Option{
		runner.WithEngine(engine),
		runner.WithOutput(stdio.Out),
		runner.WithLogger(env.Logger),
		runner.WithMaxSteps(opts.MaxSteps),
		runner.WithCheckpointEvery(opts.CheckpointEvery),
	}

	if opts.SessionID != "" {
		sessions, closeStore, err := env.Sessions(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		if opts.Fresh {
			if err := sessions.Delete(ctx, opts.SessionID); err != nil {
				return fmt.Errorf("failed to reset session: %w", err)
			}
		}
		runnerOpts = append(runnerOpts, runner.WithSessions(sessions), runner.WithSessionID(opts.SessionID))
	}

	sess, runErr := runner.NewRunner(runnerOpts...).Run(ctx, src)
	if sess == nil {
		return runErr
	}

	switch {
	case runErr == nil:
		if opts.ShowResult {
			fmt.Fprintf(stdio.Out, "\n-----\nResult:\n%s\n", sess.Result)
		}
		return nil
	case errors.Is(runErr, machine.ErrStepLimit):
		printSystemMessage(stdio.Err, "Step limit reached after %d steps.", sess.Steps)
		if opts.SessionID != "" {
			printSystemMessage(stdio.Err, "Resume with --session %s --max-steps N.", opts.SessionID)
		}
		return runErr
	case ctx.Err() != nil:
		logInterruption(stdio.Err, ctx.Signal(), opts.SessionID, sess.Steps)
	}
	return handleExecutionError(runErr)
}

// RunInteractive drives the single-step debugger over src.
func RunInteractive(ctx *SignalContext, env *Env, src string, opts RunOptions, stdio IO) error {
	engine := env.Engine()
	root, err := engine.Compile(src)
	if err != nil {
		return err
	}

	st := runner.NewStepper(stdio.In, stdio.Out)
	st.MaxSteps = opts.MaxSteps
	if f, ok := stdio.Out.(*os.File); ok && tui.IsTerminal(f) {
		tui.PrintBanner(stdio.Out)
		st.Renderer = tui.NewRenderer()
	}

	_, last, err := st.Run(ctx, machine.Start(root))
	if err == nil {
		return nil
	}
	if errors.Is(err, machine.ErrStepLimit) {
		printSystemMessage(stdio.Err, "Step limit reached; stopped at %s.", machine.KindOf(last))
		return err
	}
	if ctx.Err() != nil {
		fmt.Fprintln(stdio.Out)
	}
	return handleExecutionError(err)
}

// SessionStatusLine summarizes a session for listings.
func SessionStatusLine(sess *domain.Session) string {
	line := fmt.Sprintf("%s\t%s\t%d steps", sess.ID, sess.Status, sess.Steps)
	if sess.Status == domain.StatusFailed && sess.Error != "" {
		line += "\t" + sess.Error
	}
	return line
}
