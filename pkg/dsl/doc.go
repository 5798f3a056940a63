/*
Package dsl provides a Go DSL for programmatically constructing Unlambda
programs and program libraries.

Terms are assembled with Apply, Print, Println and Seq over the shared atoms
I, S, K, V, D, C and R, and a Builder collects programs into an in-memory
library that any ports.ProgramLoader consumer (HTTP, MCP, the CLI) accepts.

Example usage:

	package main

	import (
		"github.com/aretw0/unabs/pkg/dsl"
	)

	func main() {
		lib := dsl.New()

		lib.Add("hello").
			Title("Hello world").
			Term(dsl.Println("Hello world")).
			Expect("Hello world\n")

		lib.Add("identity").
			Source("`ii")

		loader, err := lib.Build()
		// ... pass loader to http.WithLibrary(...)
	}
*/
package dsl
