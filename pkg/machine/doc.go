/*
Package machine implements the sharing abstract machine that executes Unlambda
terms.

Execution is a sequence of small steps over an explicit State:

	Eval(term, k)       evaluate a term under continuation k
	ApplyT(f, term, k)  apply a known function to a not yet evaluated term
	ApplyV(f, x, k)     apply a known function to a known argument
	ApplyK(v, k)        hand a value to the continuation k

Continuations are immutable singly-linked frames (BindT, BindV, BindW, SWait).
Pushing a frame allocates one node that points at the existing tail, so the
tail is shared by every state and every captured continuation that reaches it.
Capturing the current continuation with c is therefore a pointer copy, and
invoking a captured continuation any number of times replays the same tail.

Step performs exactly one transition and never recurses; Run is the trampoline
that repeats Step until the program halts, a step budget is exhausted, or the
context is cancelled. A stopped run returns the State it reached, which can be
passed back to Run (or persisted with package snapshot) to continue.

The only side effect is printing: applying a Put0 value writes one rune to the
Sink given to Step or Run.
*/
package machine
