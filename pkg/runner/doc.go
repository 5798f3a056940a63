/*
Package runner implements the execution loops that sit between the engine and
a terminal.

Runner drives a program to completion, streaming its output, and when given a
session manager checkpoints the machine every few steps so an interrupted run
resumes where it stopped. Stepper is the interactive debugger: it prints the
machine state and advances one transition per line of input.

# Usage

	r := runner.NewRunner(
		runner.WithEngine(engine),
		runner.WithSessions(session.NewManager(store)),
		runner.WithSessionID("long-job"),
		runner.WithCheckpointEvery(100_000),
	)

	sess, err := r.Run(ctx, src)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Result:", sess.Result)
*/
package runner
