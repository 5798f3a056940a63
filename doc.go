/*
Package unabs is an interpreter for Unlambda, the minimal functional language
built from combinators, output, delay and first-class continuations.

It implements Unlambda as an explicit abstract machine: every transition is a
plain function from one state to the next, continuations are data, and the
whole machine can be captured between any two steps and resumed later. That
makes a run interruptible, bounded and durable without goroutines or recursion
on the host stack.

# Concept

A program is parsed once into an immutable term tree. The machine then moves
through four kinds of state (evaluating a term, applying a function to an
unevaluated argument, applying to a value, returning to a continuation) until
the empty continuation receives the final value. Output is written rune by rune
to a sink supplied by the host, so the same engine serves a CLI, an HTTP
server or an MCP tool.

# Key Features

  - Deterministic Execution: the same program always takes the same steps and prints the same text.
  - Step Budgets: a run can stop after N steps and resume exactly where it stopped.
  - Durable Sessions: machine states are snapshotted into JSON and kept in file, memory or Redis stores.
  - Multi-shot Continuations: call/cc captures are ordinary values that may be re-entered any number of times.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/unabs"
	)

	func main() {
		eng := unabs.New(unabs.WithMaxSteps(1_000_000))

		// One-shot run streaming to stdout
		res, err := eng.Execute(context.Background(), "`r```````````.H.e.l.l.o. .w.o.r.l.di", os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("result:", res.Value)

		// Step-bounded run
		sess, err := eng.Start(context.Background(), "demo", "``ci`.x`ci")
		if err != nil {
			log.Fatal(err)
		}
		sess, out, err := eng.Advance(context.Background(), sess, 100)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("%s after %d steps: %q", sess.Status, sess.Steps, out)
	}
*/
package unabs
