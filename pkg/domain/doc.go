/*
Package domain contains the core domain models of the unabs engine.

It defines the entities the outer layers exchange: sessions and their status,
library programs, run lifecycle events and the sentinel errors shared by every
adapter. The package has no I/O and no knowledge of the abstract machine; the
machine state a session carries is an opaque encoded snapshot.

# Key Entities

  - Session: A persisted, resumable run (program, output so far, snapshot).
  - Program: A library entry with source and optional expected output.
  - RunEvent / LifecycleHooks: Observability callbacks fired by the engine.
*/
package domain
